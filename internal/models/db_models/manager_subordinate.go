package db_models

import "github.com/google/uuid"

// ManagerSubordinate is a directed delegation edge. The pair is unique and
// both endpoints cascade on user deletion.
type ManagerSubordinate struct {
	BaseModel
	ManagerID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_manager_subordinate;constraint:OnDelete:CASCADE" json:"manager_id"`
	SubordinateID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_manager_subordinate;constraint:OnDelete:CASCADE" json:"subordinate_id"`
	Manager       *User     `gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE" json:"manager,omitempty"`
	Subordinate   *User     `gorm:"foreignKey:SubordinateID;constraint:OnDelete:CASCADE" json:"subordinate,omitempty"`
}
