package main

import (
	"venuebook/config"
	"venuebook/di"
	"venuebook/helper"
	"venuebook/shared/logger"
	"venuebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Venue Booking API
// @version 1.0
// @description Venues, districts, images and date bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

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
