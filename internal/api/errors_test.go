package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"knowledgeagent/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"collection not found", store.ErrCollectionNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", store.ErrCollectionNotFound), http.StatusNotFound},
		{"duplicate collection", store.ErrCollectionExists, http.StatusConflict},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
		{"delete failed", store.ErrDeleteFailed, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Collection not found", GetSafeErrorMessage(store.ErrCollectionNotFound))
	assert.Equal(t, "Collection already exists", GetSafeErrorMessage(store.ErrCollectionExists))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(assert.AnError))
	assert.NotContains(t, GetSafeErrorMessage(assert.AnError), assert.AnError.Error())
}
