package response_models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
)

type UserResponse struct {
	ID                   uuid.UUID              `json:"id"`
	Name                 string                 `json:"name"`
	Email                string                 `json:"email"`
	DepartmentID         *uuid.UUID             `json:"department_id"`
	Department           *db_models.Department  `json:"department"`
	Roles                []db_models.Role       `json:"roles"`
	IsSuspended          bool                   `json:"is_suspended"`
	IsCurrentlySuspended bool                   `json:"is_currently_suspended"`
	SuspendedUntil       *time.Time             `json:"suspended_until"`
	SuspensionReason     *string                `json:"suspension_reason"`
	CreatedAt            int64                  `json:"created_at"`
	UpdatedAt            int64                  `json:"updated_at"`
}

func NewUserResponse(user *db_models.User) UserResponse {
	return UserResponse{
		ID:                   user.ID,
		Name:                 user.Name,
		Email:                user.Email,
		DepartmentID:         user.DepartmentID,
		Department:           user.Department,
		Roles:                user.Roles,
		IsSuspended:          user.IsSuspended,
		IsCurrentlySuspended: user.IsCurrentlySuspended(),
		SuspendedUntil:       user.SuspendedUntil,
		SuspensionReason:     user.SuspensionReason,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}

func NewUserResponses(users []db_models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
