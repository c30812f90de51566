package controllers_fx

import (
	"go.uber.org/fx"

	"github.com/Green254/TaskPulse/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewTaskController),
	fx.Provide(controllers.NewTeamController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewSystemController),
	fx.Provide(controllers.NewRoleController),
	fx.Provide(controllers.NewDepartmentController),
)
