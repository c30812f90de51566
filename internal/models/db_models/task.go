package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

var TaskStatuses = []string{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

type Task struct {
	BaseModel
	Title       string     `gorm:"size:255" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"size:20;default:pending" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;index" json:"project_id"`
	Project     *Project   `json:"project,omitempty"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index" json:"created_by"`
	UpdatedBy   uuid.UUID  `gorm:"type:uuid" json:"updated_by"`
	DeletedBy   *uuid.UUID `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

func IsTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}
