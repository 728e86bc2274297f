package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"knowledgeagent/internal/config"
)

// setupAppDatabase establishes a connection to the database and configures
// the connection pool from the resolved settings. The pool size maps to open
// connections kept idle; the overflow allowance caps connections beyond that.
func setupAppDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.Database.PoolSize)
	db.SetMaxOpenConns(cfg.Database.PoolSize + cfg.Database.MaxOverflow)
	db.SetConnMaxLifetime(cfg.Database.PoolTimeout)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		"pool_size", cfg.Database.PoolSize,
		"max_overflow", cfg.Database.MaxOverflow)
	return db, nil
}
