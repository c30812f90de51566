package db_models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SystemTheme struct {
	BaseModel
	Name          string          `gorm:"size:120" json:"name"`
	Tagline       *string         `gorm:"size:255" json:"tagline"`
	BannerMessage *string         `gorm:"size:255" json:"banner_message"`
	PrimaryColor  string          `gorm:"size:7;default:#0f172a" json:"primary_color"`
	AccentColor   string          `gorm:"size:7;default:#2563eb" json:"accent_color"`
	SurfaceColor  string          `gorm:"size:7;default:#ffffff" json:"surface_color"`
	IsActive      bool            `json:"is_active"`
	StartsAt      *time.Time      `json:"starts_at"`
	EndsAt        *time.Time      `json:"ends_at"`
	Meta          json.RawMessage `gorm:"type:jsonb" json:"meta,omitempty"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	Creator       *User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
