package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/tablebook/docs"
	"github.com/kirinyoku/tablebook/internal/app"
	"github.com/kirinyoku/tablebook/internal/config"
	"github.com/kirinyoku/tablebook/internal/logger"
)

// @title Tablebook API
// @version 1.0
// @description Restaurant table reservations: booking, conflict checks and status tracking.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,

		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		slog.Error("failed to build logger", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to create application", "error", err)
		closer.Close()
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		log.Error("application finished with error", "error", err)
		closer.Close()
		os.Exit(1)
	}
}
