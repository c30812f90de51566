package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(infra.Prepare),
)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}
