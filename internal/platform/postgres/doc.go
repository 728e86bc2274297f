// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles the
// details of query execution, transaction boundaries, and mapping PostgreSQL
// error codes onto the store's sentinel errors.
package postgres
