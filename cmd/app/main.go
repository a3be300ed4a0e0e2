package main

import (
	"leonine/config"
	"leonine/di"
	"leonine/helper"
	"leonine/shared/logger"
	"leonine/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Leonine Hotel API
// @version 1.0
// @description Hotel booking backend: accounts, catalog, bookings, feedback and gallery.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.SetComponent(cfg, "api")

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Msg("Falling back to UTC")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
