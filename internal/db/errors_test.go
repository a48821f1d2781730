package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/surrealdb/surrealdb.go"
)

func TestWrapQueryError(t *testing.T) {
	assert.NoError(t, wrapQueryError(nil))

	dup := &surrealdb.QueryError{Message: "Database index `locality_unique` already contains ['442107', 'Sawangi Meghe']"}
	assert.ErrorIs(t, wrapQueryError(fmt.Errorf("query: %w", dup)), ErrAlreadyExists)

	conflict := &surrealdb.QueryError{Message: "Transaction conflict: resource busy"}
	assert.ErrorIs(t, wrapQueryError(conflict), ErrTransactionConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, wrapQueryError(other))
}
