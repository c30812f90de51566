package services_fx

import (
	"go.uber.org/fx"

	"github.com/Green254/TaskPulse/internal/services"
)

var Module = fx.Provide(
	services.NewAuthService,
	services.NewAdminService,
	services.NewTaskService,
	services.NewTeamService,
	services.NewAnnouncementService,
	services.NewThemeService,
	services.NewRoleService,
	services.NewDepartmentService,
)
