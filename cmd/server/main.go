// Package main implements the entry point for the knowledge-agent API
// server: a thin backend exposing health/status/user endpoints and the
// admin surface for the vector collection registry.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"knowledgeagent/internal/config"
	"knowledgeagent/internal/migrate"
	"knowledgeagent/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, and either executes a migration
// command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"database_url", migrate.MaskDatabaseURL(cfg.Database.DSN()))

	ctx := context.Background()

	if migrateCmd != "" {
		return migrate.Run(ctx, cfg, migrateCmd)
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
