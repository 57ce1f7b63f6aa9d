package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/booking"
	"github.com/prayag-camps/magh-mela-api/internal/config"
	"github.com/prayag-camps/magh-mela-api/internal/database"
	"github.com/prayag-camps/magh-mela-api/internal/events"
	"github.com/prayag-camps/magh-mela-api/internal/handlers"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/notifier"
	"github.com/prayag-camps/magh-mela-api/internal/server"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})

	// Connect to Database
	db := database.Connect(cfg)

	policy, err := auth.NewPolicy()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load access policy")
	}

	bus := events.NewBus(events.NewLogger(logging.With("watermill")))
	defer bus.Close()

	authHandler := auth.NewAuthHandler(cfg, db)
	bookingService := booking.NewService(db, bus)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, cfg, handlers.Handlers{
		Auth:     authHandler,
		Policy:   policy,
		Bookings: handlers.NewBookingHandler(bookingService),
		Catalog:  handlers.NewCatalogHandler(db),
		Contact:  handlers.NewContactHandler(bus, cfg.ContactRequireAuth),
		Profile:  handlers.NewProfileHandler(db),
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sup := server.NewSupervisor("magh-mela")
	sup.Add(server.NewHTTPService(httpServer, 10*time.Second))
	sup.Add(events.NewConsumer(bus.Subscriber(), buildNotifier(cfg), events.NewLogger(logging.With("events"))))
	sup.Add(server.NewSweeper("session-sweeper", time.Hour, authHandler.PurgeExpired))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("port", cfg.Port).Str("driver", cfg.DatabaseDriver).Msg("Starting server")
	if err := sup.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor stopped")
	}
	logging.Info().Msg("Server stopped")
}

// buildNotifier enables every channel that has its credentials configured.
func buildNotifier(cfg *config.Config) *notifier.Multi {
	var channels []notifier.Channel

	if cfg.DiscordBotToken != "" && cfg.DiscordNotificationsChannelID != "" {
		session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			logging.Warn().Err(err).Msg("Discord notifier not initialized")
		} else {
			channels = append(channels, notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID))
		}
	}

	if cfg.SMTPHost != "" && cfg.NotifyEmail != "" {
		mail, err := notifier.NewMailNotifier(notifier.MailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.FromEmail,
			To:       cfg.NotifyEmail,
		})
		if err != nil {
			logging.Warn().Err(err).Msg("Email notifier not initialized")
		} else {
			channels = append(channels, mail)
		}
	}

	if cfg.Web3AccessKey != "" {
		relay, err := notifier.NewFormRelayNotifier(cfg.FormRelayURL, cfg.Web3AccessKey, nil)
		if err != nil {
			logging.Warn().Err(err).Msg("Form relay notifier not initialized")
		} else {
			channels = append(channels, relay)
		}
	}

	if len(channels) == 0 {
		logging.Warn().Msg("No notification channels configured; bookings will only be stored")
	}
	return notifier.NewMulti(channels...)
}
