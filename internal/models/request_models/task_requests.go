package request_models

import (
	"bytes"
	"encoding/json"
	"time"
)

type CreateTaskRequest struct {
	ProjectID   *string    `json:"project_id" binding:"omitempty,uuid"`
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to" binding:"omitempty,uuid"`
}

// UpdateTaskRequest carries partial updates; nil pointers leave the stored
// value untouched. AssignedTo is kept raw because an explicit null clears the
// assignment while an absent key keeps it.
type UpdateTaskRequest struct {
	ProjectID   *string         `json:"project_id" binding:"omitempty,uuid"`
	Title       *string         `json:"title" binding:"omitempty,max=255"`
	Description *string         `json:"description"`
	Status      *string         `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time      `json:"due_date"`
	AssignedTo  json.RawMessage `json:"assigned_to"`
}

// AssignedToUpdate decodes the assigned_to field. present is false when the
// key was not in the payload; a JSON null yields present with a nil id.
func (r UpdateTaskRequest) AssignedToUpdate() (present bool, id *string, err error) {
	if len(r.AssignedTo) == 0 {
		return false, nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(r.AssignedTo), []byte("null")) {
		return true, nil, nil
	}
	var raw string
	if err := json.Unmarshal(r.AssignedTo, &raw); err != nil {
		return false, nil, err
	}
	return true, &raw, nil
}

type ListTasksQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	ProjectID  string `form:"project_id" binding:"omitempty,uuid"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PerPage    int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}
