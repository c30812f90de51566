package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type AccessTokenRepository interface {
	Insert(ctx context.Context, token *db_models.AccessToken) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.AccessToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type accessTokenRepository struct {
	db *gorm.DB
}

func NewAccessTokenRepository(db *gorm.DB) AccessTokenRepository {
	return &accessTokenRepository{db: db}
}

func (r *accessTokenRepository) Insert(ctx context.Context, token *db_models.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *accessTokenRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.AccessToken, error) {
	var token db_models.AccessToken
	err := r.db.WithContext(ctx).First(&token, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *accessTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&db_models.AccessToken{}, "id = ?", id).Error
}

func (r *accessTokenRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&db_models.AccessToken{}).Error
}
