package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"testimonial/internal/infra"
)

var Module = fx.Provide(
	provideDB, provideConfig)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

func provideConfig() infra.Config {
	return infra.LoadConfig()
}
