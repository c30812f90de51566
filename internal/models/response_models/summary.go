package response_models

import "github.com/Green254/TaskPulse/internal/models/db_models"

type AdminSummary struct {
	TotalUsers        int64                  `json:"total_users"`
	ActiveUsers       int64                  `json:"active_users"`
	SuspendedUsers    int64                  `json:"suspended_users"`
	DepartmentCount   int64                  `json:"department_count"`
	ManagerCount      int64                  `json:"manager_count"`
	StaffCount        int64                  `json:"staff_count"`
	AnnouncementCount int64                  `json:"announcement_count"`
	ActiveTheme       *db_models.SystemTheme `json:"active_theme"`
}
