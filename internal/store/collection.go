package store

import (
	"context"
	"time"
)

// Collection describes a registered vector collection: a named set of
// embeddings with a dedicated backing table.
type Collection struct {
	Name         string
	Table        string
	Dimension    int
	DistanceFunc string
	CreatedAt    time.Time
}

// CollectionStore manages the vector collection registry.
type CollectionStore interface {
	// Create registers a new collection and creates its backing table in
	// one transaction. Returns ErrCollectionExists if the name is taken.
	Create(ctx context.Context, c Collection) error

	// List returns all registered collections ordered by name.
	List(ctx context.Context) ([]Collection, error)

	// GetByName returns the collection with the given name.
	// Returns ErrCollectionNotFound if no such collection is registered.
	GetByName(ctx context.Context, name string) (*Collection, error)

	// Delete removes the named collection: the registry row and the
	// backing table go together in one transaction.
	// Returns ErrCollectionNotFound if no such collection is registered.
	Delete(ctx context.Context, name string) error
}
