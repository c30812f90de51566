package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type ProjectRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Project, error)
	// GetOrCreatePersonal returns the user's default workspace project,
	// creating it idempotently on first use (keyed on name + owner).
	GetOrCreatePersonal(ctx context.Context, userID uuid.UUID) (*db_models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Project, error) {
	var project db_models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetOrCreatePersonal(ctx context.Context, userID uuid.UUID) (*db_models.Project, error) {
	var project db_models.Project
	err := r.db.WithContext(ctx).
		Where(db_models.Project{Name: db_models.PersonalWorkspaceName, UserID: userID}).
		Attrs(db_models.Project{Description: "Auto-created personal project", CreatedBy: userID}).
		FirstOrCreate(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}
