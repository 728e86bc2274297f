// Command dropcollection deletes a vector collection: its registry row and
// its backing embedding table. Destructive, so it refuses to run without
// the -force flag.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"knowledgeagent/internal/config"
	"knowledgeagent/internal/migrate"
	"knowledgeagent/internal/platform/logger"
	"knowledgeagent/internal/platform/postgres"
	"knowledgeagent/internal/store"
)

func main() {
	name := flag.String("name", "", "name of the collection to delete (required)")
	force := flag.Bool("force", false, "actually delete; without it the command only reports what it would do")
	flag.Parse()

	if err := run(*name, *force); err != nil {
		slog.Error("drop collection failed", "error", err)
		os.Exit(1)
	}
}

func run(name string, force bool) error {
	if name == "" {
		flag.Usage()
		return fmt.Errorf("-name is required")
	}

	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("connecting to database",
		"database_url", migrate.MaskDatabaseURL(cfg.Database.DSN()))

	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database connection", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	collections := postgres.NewPostgresCollectionStore(db, log)

	collection, err := collections.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			return fmt.Errorf("collection %q is not registered", name)
		}
		return err
	}

	if !force {
		log.Info("dry run: collection would be deleted (re-run with -force)",
			"collection", collection.Name,
			"table", collection.Table,
			"dimension", collection.Dimension)
		return nil
	}

	if err := collections.Delete(ctx, name); err != nil {
		return err
	}

	log.Info("collection deleted", "collection", name, "table", collection.Table)
	return nil
}
