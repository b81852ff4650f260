package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/upmpoly/internal/api"
	"github.com/mcoot/upmpoly/internal/config"
	"github.com/mcoot/upmpoly/internal/factory"
	"github.com/mcoot/upmpoly/internal/model"
	"github.com/mcoot/upmpoly/internal/services/economy"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Build factory config from the loaded configuration
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}
	switch cfg.Storage.Type {
	case factory.StorageTypeRedis:
		redisCfg := cfg.Storage.Redis.StoreConfig()
		factoryCfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := cfg.Storage.SQLite.StoreConfig()
		factoryCfg.SQLiteConfig = &sqliteCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// An existing roster is left as is
	if cfg.Seed.OnStart {
		_, err := app.EconomyController.SeedLedger(context.Background(), economy.DefaultSeed)
		switch {
		case errors.Is(err, model.ErrAssetAlreadyExists):
			logger.Info("ledger already seeded")
		case err != nil:
			logger.Error("failed to seed ledger", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		EconomyController: app.EconomyController,
		QueryService:      app.QueryService,
		AdminTokenHash:    cfg.Admin.TokenHash,
	})

	// Create server
	server := api.NewServer(router, cfg.Server, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
