package api

import (
	"errors"
	"net/http"

	"knowledgeagent/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrCollectionNotFound):
		return "Collection not found"
	case errors.Is(err, store.ErrCollectionExists):
		return "Collection already exists"
	case store.IsNotFoundError(err):
		return "Not found"
	default:
		return "An unexpected error occurred"
	}
}
