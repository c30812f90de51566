package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	"github.com/Green254/TaskPulse/internal/repositories"
	"github.com/Green254/TaskPulse/pkg/utils"
)

const themeListLimit = 50

type ThemeServiceInterface interface {
	Create(ctx context.Context, actorID uuid.UUID, req request_models.CreateThemeRequest) (*db_models.SystemTheme, error)
	List(ctx context.Context) ([]db_models.SystemTheme, error)
	Activate(ctx context.Context, id uuid.UUID) (*db_models.SystemTheme, error)
	// ActiveNow returns the theme currently in effect, or nil when none is.
	ActiveNow(ctx context.Context) (*db_models.SystemTheme, error)
}

type ThemeService struct {
	themeRepo repositories.ThemeRepository
}

func NewThemeService(themeRepo repositories.ThemeRepository) ThemeServiceInterface {
	return &ThemeService{themeRepo: themeRepo}
}

func (s *ThemeService) Create(ctx context.Context, actorID uuid.UUID, req request_models.CreateThemeRequest) (*db_models.SystemTheme, error) {
	var meta json.RawMessage
	if len(req.Meta) > 0 {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return nil, utils.NewValidationError("meta", "The meta field must be a valid object.")
		}
		meta = raw
	}

	theme := &db_models.SystemTheme{
		Name:          req.Name,
		Tagline:       req.Tagline,
		BannerMessage: req.BannerMessage,
		PrimaryColor:  req.PrimaryColor,
		AccentColor:   req.AccentColor,
		SurfaceColor:  req.SurfaceColor,
		IsActive:      req.IsActive,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Meta:          meta,
		CreatedBy:     actorID,
	}

	if req.IsActive {
		// A newly created active theme displaces whatever was active.
		if err := s.themeRepo.DeactivateAll(ctx); err != nil {
			return nil, utils.ErrDatabaseError
		}
		if theme.StartsAt == nil {
			now := time.Now()
			theme.StartsAt = &now
		}
	}

	if err := s.themeRepo.Insert(ctx, theme); err != nil {
		return nil, utils.ErrDatabaseError
	}

	fresh, err := s.themeRepo.FindById(ctx, theme.ID)
	if err != nil || fresh == nil {
		return nil, utils.ErrDatabaseError
	}
	return fresh, nil
}

func (s *ThemeService) List(ctx context.Context) ([]db_models.SystemTheme, error) {
	themes, err := s.themeRepo.List(ctx, themeListLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return themes, nil
}

func (s *ThemeService) Activate(ctx context.Context, id uuid.UUID) (*db_models.SystemTheme, error) {
	theme, err := s.themeRepo.Activate(ctx, id)
	if err != nil {
		return nil, err
	}
	return theme, nil
}

func (s *ThemeService) ActiveNow(ctx context.Context) (*db_models.SystemTheme, error) {
	theme, err := s.themeRepo.ActiveNow(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return theme, nil
}
