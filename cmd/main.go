package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "adbridge/internal/adapter/http"
	"adbridge/internal/adapter/postgres"
	"adbridge/internal/adapter/remote"
	"adbridge/internal/adapter/usecase"
	"adbridge/internal/cache"
	"adbridge/internal/config"
	"adbridge/internal/db"
)

// main is the entry point of the adbridge service. It loads configuration,
// optionally runs database migrations, initializes the database pool, the
// credential cache and the marketing platform client, wires the entity
// services, then starts the HTTP server. On receiving a termination signal
// it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout))

	// Optionally run migrations if configured. We use the Psql sub‑config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	creds := cache.NewWithJanitor(time.Minute)
	defer creds.Stop()

	client := remote.New(cfg.Remote, logger)

	accounts := postgres.NewAccountResolver(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	adSetRepo := postgres.NewAdSetRepository(pool)
	adRepo := postgres.NewAdRepository(pool)

	campaigns := usecase.NewCampaignUseCase(campaignRepo, accounts, creds, client, logger)
	adSets := usecase.NewAdSetUseCase(adSetRepo, campaignRepo, accounts, creds, client, logger)
	ads := usecase.NewAdUseCase(adRepo, accounts, creds, client, logger)
	creatives := usecase.NewCreativeUseCase(accounts, creds, client, logger)

	handler := httpadapter.NewHandler(campaigns, adSets, ads, creatives,
		creds, cfg.Remote.TokenTTL, logger)
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.HTTP.Addr()))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
