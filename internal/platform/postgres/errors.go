package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to the store implementations.
const (
	uniqueViolationCode  = "23505"
	undefinedTableCode   = "42P01"
	invalidCatalogCode   = "3D000" // database does not exist
	insufficientPrivCode = "42501"
)

// pgErrorCode extracts the PostgreSQL error code from err, or "" when err is
// not a PostgreSQL error.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUndefinedTable checks if the given error reports a missing table, which
// for the collection registry means migrations have not been applied yet.
func isUndefinedTable(err error) bool {
	return pgErrorCode(err) == undefinedTableCode
}
