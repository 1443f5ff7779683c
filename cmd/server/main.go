package main

import (
	"Fridgella/internal/auth"
	"Fridgella/internal/config"
	"Fridgella/internal/handlers"
	"Fridgella/internal/middleware"
	"Fridgella/internal/notifier"
	"Fridgella/internal/repo"
	"Fridgella/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := newLogger(cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	billRepo := repo.NewBillRepository(gormDB)
	jobRepo := repo.NewNotificationRepository(gormDB)

	tokens := auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL)

	sender, err := newSMSSender(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to configure sms sender", "error", err)
	}
	engine := notifier.NewEngine(itemRepo, userRepo, jobRepo, sender, sugar).
		WithLead(cfg.NotifyLead).
		WithBatch(cfg.NotifyBatch).
		WithCountryCode(cfg.SMSCountryCode)

	mail, err := newMailer(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to configure mailer", "error", err)
	}
	avatars, err := newAvatarStore(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to configure avatar storage", "error", err)
	}
	resets, err := newResetStore(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to configure reset token store", "error", err)
	}

	userService := service.NewUserService(userRepo, tokens, sugar).
		WithMailer(mail).
		WithAvatarStore(avatars).
		WithResetStore(resets).
		WithAppURL(cfg.AppURL)

	h := handlers.NewHandler(handlers.Services{
		Users:     userService,
		Items:     service.NewItemService(itemRepo, engine, sugar),
		Bills:     service.NewBillService(billRepo),
		Analytics: service.NewAnalyticsService(itemRepo, billRepo, jobRepo),
	}, tokens, sugar, cfg)

	// фоновый обход сроков годности
	notifierDone := engine.Start(ctx, cfg.NotifyInterval)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"SMSDriver", cfg.SMSDriver,
		"MailDriver", cfg.MailDriver,
		"AvatarDriver", cfg.AvatarDriver,
		"NotifyInterval", cfg.NotifyInterval,
		"NotifyLead", cfg.NotifyLead,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	<-notifierDone
}

// newLogger json-формат для продакшена, иначе человекочитаемый
func newLogger(format string) (*zap.Logger, error) {
	if format == "json" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
