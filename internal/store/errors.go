package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic form of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrDeleteFailed is returned when a delete operation fails, for
	// example because the backing table could not be dropped.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrCollectionNotFound indicates that the requested vector collection
	// is not registered.
	ErrCollectionNotFound = fmt.Errorf("%w: collection", ErrNotFound)

	// ErrCollectionExists indicates that a collection with the given name
	// is already registered.
	ErrCollectionExists = fmt.Errorf("%w: collection", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
