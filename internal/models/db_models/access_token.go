package db_models

import "github.com/google/uuid"

// AccessToken is one issued bearer session. The row id doubles as the JWT
// jti; deleting the row revokes that single session.
type AccessToken struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:CASCADE" json:"user_id"`
	Name   string    `gorm:"size:100" json:"name"`
}
