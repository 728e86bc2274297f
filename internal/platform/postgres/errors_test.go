package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: undefinedTableCode}

	assert.Equal(t, undefinedTableCode, pgErrorCode(pgErr))
	assert.Equal(t, undefinedTableCode, pgErrorCode(fmt.Errorf("query: %w", pgErr)),
		"wrapped errors should still expose their code")
	assert.Equal(t, "", pgErrorCode(errors.New("not a pg error")))
	assert.Equal(t, "", pgErrorCode(nil))
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(&pgconn.PgError{Code: undefinedTableCode}))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isUndefinedTable(errors.New("plain error")))
}
