package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orderdesk/emailer/internal/config"
	"github.com/orderdesk/emailer/internal/database"
	"github.com/orderdesk/emailer/internal/email"
	"github.com/orderdesk/emailer/internal/email/render"
	"github.com/orderdesk/emailer/internal/fetch"
	"github.com/orderdesk/emailer/internal/handler"
	"github.com/orderdesk/emailer/internal/logger"
	"github.com/orderdesk/emailer/internal/middleware"
	"github.com/orderdesk/emailer/internal/repository"
	"github.com/orderdesk/emailer/internal/router"
	"github.com/orderdesk/emailer/internal/service"
	"github.com/orderdesk/emailer/templates"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting OrderDesk Emailer")

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("connected to PostgreSQL")

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	buyerRepo := repository.NewBuyerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db, rdb, cfg.Settings.CacheTTL)

	// Initialize template renderer (process lifetime, parsed once)
	renderer, err := render.New(templates.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse email templates")
	}
	log.Info().Msg("email templates parsed")

	// Initialize mail sender
	sender, err := newSender(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mail sender")
	}
	log.Info().Str("provider", cfg.Email.Provider).Msg("mail sender initialized")

	// Initialize document fetcher
	fetcher := fetch.NewDocumentFetcher(cfg.Documents.FetchTimeout)

	// Initialize notifier service
	notifier := service.NewOrderConfirmationNotifier(
		orderRepo, userRepo, buyerRepo, settingsRepo,
		fetcher, renderer, sender, log,
	)

	// Initialize handlers
	h := handler.New(db, rdb, log, cfg, notifier)

	// Initialize middleware
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw, log, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newSender picks the mail provider from config.
func newSender(cfg *config.Config, log *logger.Logger) (email.Sender, error) {
	switch cfg.Email.Provider {
	case "gmail":
		gmailCfg := cfg.Email.Gmail
		if gmailCfg.RefreshToken != "" {
			return email.NewGmailSenderWithToken(
				context.Background(),
				gmailCfg.ClientID,
				gmailCfg.ClientSecret,
				gmailCfg.RefreshToken,
				gmailCfg.SenderAddress,
				gmailCfg.SenderName,
			)
		}
		return email.NewGmailSender(context.Background(), email.GmailConfig{
			CredentialsJSON: gmailCfg.CredentialsJSON,
			SenderAddress:   gmailCfg.SenderAddress,
			SenderName:      gmailCfg.SenderName,
		})
	case "log":
		return email.NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Email.Provider)
	}
}
