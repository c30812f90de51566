package request_models

type AssignSubordinateRequest struct {
	SubordinateID string  `json:"subordinate_id" binding:"required,uuid"`
	ManagerID     *string `json:"manager_id" binding:"omitempty,uuid"`
}

type RemoveSubordinateRequest struct {
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type SubordinatesQuery struct {
	ManagerID string `form:"manager_id" binding:"omitempty,uuid"`
}
