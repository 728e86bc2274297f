package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"knowledgeagent/internal/store"
)

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend. Collection metadata
// lives in the vector_collections registry table; each collection also owns
// a backing embedding table named by the registry row.
type PostgresCollectionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of the
// CollectionStore interface. It accepts a database connection that should be
// initialized and managed by the caller.
func NewPostgresCollectionStore(db *sql.DB, logger *slog.Logger) *PostgresCollectionStore {
	return &PostgresCollectionStore{
		db:     db,
		logger: logger.With("component", "collection_store"),
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// Create implements store.CollectionStore.Create. The registry row and the
// backing embedding table are created in a single transaction.
func (s *PostgresCollectionStore) Create(ctx context.Context, c store.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("failed to roll back collection create", "error", rbErr, "collection", c.Name)
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO vector_collections (name, table_name, dimension, distance_func)
		 VALUES ($1, $2, $3, $4)`,
		c.Name, c.Table, c.Dimension, c.DistanceFunc)
	if err != nil {
		if pgErrorCode(err) == uniqueViolationCode {
			return store.ErrCollectionExists
		}
		return fmt.Errorf("failed to register collection %q: %w", c.Name, err)
	}

	createStmt := fmt.Sprintf(
		`CREATE TABLE %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			content TEXT NOT NULL,
			embedding DOUBLE PRECISION[] NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, pgx.Identifier{c.Table}.Sanitize())
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create backing table %q: %w", c.Table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection create: %w", err)
	}

	s.logger.Info("collection created", "collection", c.Name, "table", c.Table, "dimension", c.Dimension)
	return nil
}

// List implements store.CollectionStore.List
func (s *PostgresCollectionStore) List(ctx context.Context) ([]store.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, table_name, dimension, distance_func, created_at
		   FROM vector_collections
		  ORDER BY name`)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("vector_collections table missing, run migrations first: %w", err)
		}
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", "error", closeErr)
		}
	}()

	var collections []store.Collection
	for rows.Next() {
		var c store.Collection
		if err := rows.Scan(&c.Name, &c.Table, &c.Dimension, &c.DistanceFunc, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection rows: %w", err)
	}

	return collections, nil
}

// GetByName implements store.CollectionStore.GetByName
func (s *PostgresCollectionStore) GetByName(ctx context.Context, name string) (*store.Collection, error) {
	var c store.Collection
	err := s.db.QueryRowContext(ctx,
		`SELECT name, table_name, dimension, distance_func, created_at
		   FROM vector_collections
		  WHERE name = $1`, name).
		Scan(&c.Name, &c.Table, &c.Dimension, &c.DistanceFunc, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection %q: %w", name, err)
	}

	return &c, nil
}

// Delete implements store.CollectionStore.Delete. The registry row and the
// backing embedding table are removed in a single transaction so a failed
// drop never leaves a dangling registry entry.
func (s *PostgresCollectionStore) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", store.ErrDeleteFailed, err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("failed to roll back collection delete", "error", rbErr, "collection", name)
		}
	}()

	var table string
	err = tx.QueryRowContext(ctx,
		`SELECT table_name FROM vector_collections WHERE name = $1 FOR UPDATE`, name).
		Scan(&table)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrCollectionNotFound
		}
		return fmt.Errorf("%w: lookup collection %q: %v", store.ErrDeleteFailed, name, err)
	}

	// Table names cannot be bound as parameters; sanitize the identifier
	// taken from the registry before interpolating it.
	dropStmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{table}.Sanitize())
	if _, err := tx.ExecContext(ctx, dropStmt); err != nil {
		return fmt.Errorf("%w: drop backing table %q: %v", store.ErrDeleteFailed, table, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM vector_collections WHERE name = $1`, name); err != nil {
		return fmt.Errorf("%w: delete registry row for %q: %v", store.ErrDeleteFailed, name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrDeleteFailed, err)
	}

	s.logger.Info("collection deleted", "collection", name, "table", table)
	return nil
}
