package main

import (
	"context"

	"github.com/prayag-camps/magh-mela-api/internal/config"
	"github.com/prayag-camps/magh-mela-api/internal/database"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/seed"
)

func main() {
	cfg := config.LoadConfig()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})

	db := database.Connect(cfg)
	ctx := context.Background()

	camps, pujas, err := seed.Catalog(ctx, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Seeding catalog failed")
	}
	logging.Info().Int("camps", camps).Int("pujas", pujas).Msg("Catalog seeded")

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		logging.Warn().Msg("ADMIN_USERNAME or ADMIN_PASSWORD not set; skipping admin account")
		return
	}
	admin, err := seed.Admin(ctx, db, seed.AdminAccount{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Seeding admin failed")
	}
	logging.Info().Uint("user_id", admin.ID).Str("username", admin.Username).Msg("Admin account ready")
}
