package repositories_fx

import (
	"go.uber.org/fx"

	"github.com/Green254/TaskPulse/internal/repositories"
)

var Module = fx.Provide(
	repositories.NewUserRepository,
	repositories.NewRoleRepository,
	repositories.NewDepartmentRepository,
	repositories.NewProjectRepository,
	repositories.NewTaskRepository,
	repositories.NewSubordinateRepository,
	repositories.NewAnnouncementRepository,
	repositories.NewThemeRepository,
	repositories.NewAccessTokenRepository,
)
