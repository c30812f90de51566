package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type DepartmentRepository interface {
	List(ctx context.Context) ([]db_models.Department, error)
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Department, error)
	CountAll(ctx context.Context) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) List(ctx context.Context) ([]db_models.Department, error) {
	var departments []db_models.Department
	err := r.db.WithContext(ctx).Order("name").Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Department, error) {
	var department db_models.Department
	err := r.db.WithContext(ctx).First(&department, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Department{}).Count(&count).Error
	return count, err
}
