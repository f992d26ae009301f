package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

func TestTagStoreError_Nil(t *testing.T) {
	assert.NoError(t, tagStoreError(nil))
}

func TestTagStoreError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "shipments_tracking_number_key",
	}

	tagged := tagStoreError(fmt.Errorf("insert: %w", pgErr))
	se, ok := domain.AsStoreError(tagged)
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrUnique, se.Kind)
	assert.Equal(t, "tracking_number", se.Field)
}

func TestTagStoreError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		ConstraintName: "shipments_order_id_fkey",
	}

	se, ok := domain.AsStoreError(tagStoreError(pgErr))
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrForeignKey, se.Kind)
	assert.Equal(t, "order_id", se.Field)
}

func TestTagStoreError_UnknownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "something_else_key",
	}

	se, ok := domain.AsStoreError(tagStoreError(pgErr))
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrUnique, se.Kind)
	// Неизвестное ограничение остаётся без имени поля.
	assert.Empty(t, se.Field)
}

func TestTagStoreError_NonPgError(t *testing.T) {
	se, ok := domain.AsStoreError(tagStoreError(errors.New("connection reset")))
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrOther, se.Kind)
}
