package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnnouncementScopeAll        = "all"
	AnnouncementScopeRole       = "role"
	AnnouncementScopeDepartment = "department"
)

var AnnouncementTypes = []string{"info", "warning", "critical", "celebration"}

type Announcement struct {
	BaseModel
	Title              string      `gorm:"size:140" json:"title"`
	Message            string      `json:"message"`
	Type               string      `gorm:"size:20;default:info" json:"type"`
	TargetScope        string      `gorm:"size:20;default:all" json:"target_scope"`
	TargetRole         *string     `gorm:"size:100" json:"target_role"`
	TargetDepartmentID *uuid.UUID  `gorm:"type:uuid" json:"target_department_id"`
	Department         *Department `gorm:"foreignKey:TargetDepartmentID" json:"department,omitempty"`
	IsPinned           bool        `json:"is_pinned"`
	IsActive           bool        `gorm:"default:true" json:"is_active"`
	StartsAt           *time.Time  `json:"starts_at"`
	EndsAt             *time.Time  `json:"ends_at"`
	CreatedBy          uuid.UUID   `gorm:"type:uuid" json:"created_by"`
	Creator            *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func IsAnnouncementType(t string) bool {
	for _, v := range AnnouncementTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsAnnouncementScope(s string) bool {
	return s == AnnouncementScopeAll || s == AnnouncementScopeRole || s == AnnouncementScopeDepartment
}
