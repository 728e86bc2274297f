// Command createtables applies all pending schema migrations so a fresh
// database has every table the backend expects. It is the operator-facing
// equivalent of `server -migrate up`.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"knowledgeagent/internal/config"
	"knowledgeagent/internal/migrate"
	"knowledgeagent/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("table creation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("creating tables",
		"database_url", migrate.MaskDatabaseURL(cfg.Database.DSN()),
		"migration_dir", cfg.Database.MigrationDir)

	if err := migrate.Run(context.Background(), cfg, "up"); err != nil {
		return err
	}

	log.Info("all tables created")
	return nil
}
