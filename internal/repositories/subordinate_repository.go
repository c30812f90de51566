package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type SubordinateRepository interface {
	// Add is idempotent: re-adding an existing edge is a no-op success.
	Add(ctx context.Context, managerID, subordinateID uuid.UUID) error
	// Remove of a non-existent edge succeeds silently.
	Remove(ctx context.Context, managerID, subordinateID uuid.UUID) error
	Exists(ctx context.Context, managerID, subordinateID uuid.UUID) (bool, error)
	ListEdges(ctx context.Context, managerID *uuid.UUID) ([]db_models.ManagerSubordinate, error)
	SubordinateIds(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error)
}

type subordinateRepository struct {
	db *gorm.DB
}

func NewSubordinateRepository(db *gorm.DB) SubordinateRepository {
	return &subordinateRepository{db: db}
}

func (r *subordinateRepository) Add(ctx context.Context, managerID, subordinateID uuid.UUID) error {
	var edge db_models.ManagerSubordinate
	return r.db.WithContext(ctx).
		Where(db_models.ManagerSubordinate{ManagerID: managerID, SubordinateID: subordinateID}).
		FirstOrCreate(&edge).Error
}

func (r *subordinateRepository) Remove(ctx context.Context, managerID, subordinateID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("manager_id = ? AND subordinate_id = ?", managerID, subordinateID).
		Delete(&db_models.ManagerSubordinate{}).Error
}

func (r *subordinateRepository) Exists(ctx context.Context, managerID, subordinateID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.ManagerSubordinate{}).
		Where("manager_id = ? AND subordinate_id = ?", managerID, subordinateID).
		Count(&count).Error
	return count > 0, err
}

func (r *subordinateRepository) ListEdges(ctx context.Context, managerID *uuid.UUID) ([]db_models.ManagerSubordinate, error) {
	query := r.db.WithContext(ctx).
		Preload("Manager.Roles").
		Preload("Manager.Department").
		Preload("Subordinate.Roles").
		Preload("Subordinate.Department").
		Order("manager_id")

	if managerID != nil {
		query = query.Where("manager_id = ?", *managerID)
	}

	var edges []db_models.ManagerSubordinate
	if err := query.Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *subordinateRepository) SubordinateIds(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.ManagerSubordinate{}).
		Where("manager_id = ?", managerID).
		Pluck("subordinate_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
