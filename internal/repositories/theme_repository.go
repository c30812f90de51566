package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type ThemeRepository interface {
	Insert(ctx context.Context, theme *db_models.SystemTheme) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.SystemTheme, error)
	List(ctx context.Context, limit int) ([]db_models.SystemTheme, error)
	// Activate makes the given theme the single active one. Every other
	// theme is deactivated in the same transaction; last writer wins.
	Activate(ctx context.Context, id uuid.UUID) (*db_models.SystemTheme, error)
	DeactivateAll(ctx context.Context) error
	ActiveNow(ctx context.Context) (*db_models.SystemTheme, error)
}

type themeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) Insert(ctx context.Context, theme *db_models.SystemTheme) error {
	return r.db.WithContext(ctx).Create(theme).Error
}

func (r *themeRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.SystemTheme, error) {
	var theme db_models.SystemTheme
	err := r.db.WithContext(ctx).Preload("Creator").First(&theme, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) List(ctx context.Context, limit int) ([]db_models.SystemTheme, error) {
	var themes []db_models.SystemTheme
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC").
		Limit(limit).
		Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepository) Activate(ctx context.Context, id uuid.UUID) (*db_models.SystemTheme, error) {
	var out *db_models.SystemTheme
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var theme db_models.SystemTheme
		if err := tx.First(&theme, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&db_models.SystemTheme{}).
			Where("id <> ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"is_active": true}
		if theme.StartsAt == nil {
			now := time.Now()
			updates["starts_at"] = &now
		}
		if err := tx.Model(&theme).Updates(updates).Error; err != nil {
			return err
		}

		var refreshed db_models.SystemTheme
		if err := tx.Preload("Creator").First(&refreshed, "id = ?", id).Error; err != nil {
			return err
		}
		out = &refreshed
		return nil
	})
	return out, err
}

func (r *themeRepository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&db_models.SystemTheme{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *themeRepository) ActiveNow(ctx context.Context) (*db_models.SystemTheme, error) {
	now := time.Now()
	var theme db_models.SystemTheme
	err := r.db.WithContext(ctx).
		Where(activeWindow, now, now).
		Order("updated_at DESC").
		First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}
