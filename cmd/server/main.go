// @title Tournament Slots API
// @version 1.0
// @description Slot booking and registration backend for daily recurring tournament matches.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"tourneyslots/config"
	"tourneyslots/internal/adapters/auth"
	"tourneyslots/internal/adapters/email"
	"tourneyslots/internal/adapters/notify"
	"tourneyslots/internal/adapters/payment"
	delivery "tourneyslots/internal/delivery/http"
	"tourneyslots/internal/delivery/http/controllers"
	"tourneyslots/internal/delivery/http/middleware"
	"tourneyslots/internal/repository/postgres"
	"tourneyslots/internal/services"
	"tourneyslots/internal/slotcache"
)

const serviceTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, falling back to UTC", "timezone", cfg.Timezone, "err", err)
		loc = time.UTC
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	slotRepo := postgres.NewMatchSlotRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	walletRepo := postgres.NewWalletRepository(db)
	contentRepo := postgres.NewContentRepository(db)

	// Adapters
	_, verifier := auth.NewJWT(cfg.JWTSecret)
	authorizer := auth.NewStaticAuthorizer(cfg.AdminUserIDs)
	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if err != nil {
		logger.Error("failed to set up telegram notifier", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipTLS,
		},
	})
	if err != nil {
		logger.Error("failed to set up mailer", "err", err)
		os.Exit(1)
	}
	gateway := payment.NewGatewayClient(nil, cfg.PaymentGatewayURL,
		cfg.PaymentGatewayKeyID, cfg.PaymentGatewaySecret, cfg.PaymentGatewayCurrency)

	// Seat cache and services
	cache := slotcache.New(logger)
	slotSync := services.NewSlotSync(slotRepo, regRepo, cache)
	matchSlotSvc := services.NewMatchSlotService(slotRepo, cache, slotSync, authorizer, logger, loc, serviceTimeout)
	registrationSvc := services.NewRegistrationService(regRepo, slotRepo, cache, authorizer, notifier, mailer, logger, loc, serviceTimeout)
	walletSvc := services.NewWalletService(walletRepo, gateway, serviceTimeout)
	contentSvc := services.NewContentService(contentRepo, authorizer, serviceTimeout)
	resetSvc := services.NewResetService(regRepo, cache, slotSync, logger, loc)

	// Startup reconciliation: fold completed matches out of the seat map before
	// serving, then keep doing it daily.
	startupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := resetSvc.Run(startupCtx); err != nil {
		logger.Error("startup reconciliation failed", "err", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	if err := resetSvc.Start(); err != nil {
		logger.Error("failed to start daily reset scheduler", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := resetSvc.Stop(); err != nil {
			logger.Warn("scheduler shutdown", "err", err)
		}
	}()

	// Delivery
	mux := delivery.NewRouter(
		logger,
		verifier,
		controllers.NewMatchController(logger, matchSlotSvc),
		controllers.NewRegistrationController(logger, registrationSvc),
		controllers.NewWalletController(logger, walletSvc),
		controllers.NewContentController(logger, contentSvc),
		controllers.NewAdminController(logger, matchSlotSvc, registrationSvc, contentSvc),
	)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
