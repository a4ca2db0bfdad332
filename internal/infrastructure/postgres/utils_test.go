package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCode(t *testing.T) {
	unique := fmt.Errorf("insertar conteo: %w", &pgconn.PgError{Code: codeUniqueViolation})
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.Empty(t, pgErrorCode(errors.New("timeout")))
}
