package db_models

import "github.com/google/uuid"

// PersonalWorkspaceName is the reserved name of the project every account
// lazily owns; get-or-create is keyed on (name, user_id).
const PersonalWorkspaceName = "Personal Workspace"

type Project struct {
	BaseModel
	Name        string    `gorm:"size:255;uniqueIndex:idx_projects_name_owner" json:"name"`
	Description string    `json:"description"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_projects_name_owner" json:"user_id"`
	CreatedBy   uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Creator     *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Tasks       []Task    `json:"tasks,omitempty"`
}
