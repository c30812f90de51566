package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type RoleRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Role, error)
	List(ctx context.Context) ([]db_models.Role, error)
	ListUsersWithRoles(ctx context.Context) ([]db_models.User, error)
	Attach(ctx context.Context, userID, roleID uuid.UUID) error
	Detach(ctx context.Context, userID, roleID uuid.UUID) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Role, error) {
	var role db_models.Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]db_models.Role, error) {
	var roles []db_models.Role
	err := r.db.WithContext(ctx).Order("name").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) ListUsersWithRoles(ctx context.Context) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).Preload("Roles").Order("name").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *roleRepository) Attach(ctx context.Context, userID, roleID uuid.UUID) error {
	user := db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	role := db_models.Role{BaseModel: db_models.BaseModel{ID: roleID}}
	return r.db.WithContext(ctx).Model(&user).Association("Roles").Append(&role)
}

func (r *roleRepository) Detach(ctx context.Context, userID, roleID uuid.UUID) error {
	user := db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	role := db_models.Role{BaseModel: db_models.BaseModel{ID: roleID}}
	return r.db.WithContext(ctx).Model(&user).Association("Roles").Delete(&role)
}
