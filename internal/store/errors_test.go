package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionNotFoundIsNotFound(t *testing.T) {
	assert.ErrorIs(t, ErrCollectionNotFound, ErrNotFound)
	assert.True(t, IsNotFoundError(ErrCollectionNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("context: %w", ErrCollectionNotFound)))
	assert.False(t, IsNotFoundError(errors.New("something else")))
	assert.False(t, IsNotFoundError(ErrDeleteFailed))
}
