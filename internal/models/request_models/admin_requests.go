package request_models

import "time"

type ListUsersQuery struct {
	Search       string `form:"search" binding:"omitempty,max=120"`
	Role         string `form:"role" binding:"omitempty,oneof=admin manager staff watchman chef user"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=all active suspended"`
}

type CreateUserRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Email        string `json:"email" binding:"required,email,max=255"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"omitempty,oneof=admin manager staff watchman chef user"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager staff watchman chef user"`
}

type SuspendUserRequest struct {
	Reason *string    `json:"reason" binding:"omitempty,max=255"`
	Until  *time.Time `json:"until"`
}

type CreateAnnouncementRequest struct {
	Title              string     `json:"title" binding:"required,max=140"`
	Message            string     `json:"message" binding:"required,max=3000"`
	Type               string     `json:"type" binding:"required,oneof=info warning critical celebration"`
	TargetScope        string     `json:"target_scope" binding:"required,oneof=all role department"`
	TargetRole         *string    `json:"target_role" binding:"omitempty,max=100"`
	TargetDepartmentID *string    `json:"target_department_id" binding:"omitempty,uuid"`
	IsPinned           bool       `json:"is_pinned"`
	IsActive           *bool      `json:"is_active"`
	StartsAt           *time.Time `json:"starts_at"`
	EndsAt             *time.Time `json:"ends_at"`
}

type CreateThemeRequest struct {
	Name          string          `json:"name" binding:"required,max=120"`
	Tagline       *string         `json:"tagline" binding:"omitempty,max=255"`
	BannerMessage *string         `json:"banner_message" binding:"omitempty,max=255"`
	PrimaryColor  string          `json:"primary_color" binding:"required,hexcolor"`
	AccentColor   string          `json:"accent_color" binding:"required,hexcolor"`
	SurfaceColor  string          `json:"surface_color" binding:"required,hexcolor"`
	IsActive      bool            `json:"is_active"`
	StartsAt      *time.Time      `json:"starts_at"`
	EndsAt        *time.Time      `json:"ends_at"`
	Meta          map[string]any  `json:"meta"`
}

type AssignRoleRequest struct {
	RoleID string `json:"role_id" binding:"required,uuid"`
}
