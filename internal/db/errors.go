package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for database operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrAlreadyExists indicates an office with the same PIN code and name
	// is already stored.
	ErrAlreadyExists = errors.New("locality already exists")

	// ErrTransactionConflict indicates a SurrealDB transaction conflict.
	// Callers should typically retry.
	ErrTransactionConflict = errors.New("transaction conflict")
)

// wrapQueryError inspects a SurrealDB error and wraps it with the matching
// sentinel. Errors that are not query errors are returned unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		msg := queryErr.Message
		if strings.Contains(msg, "already contains") || strings.Contains(msg, "already exists") {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, msg)
		}
		if strings.Contains(msg, "Transaction conflict") {
			return fmt.Errorf("%w: %s", ErrTransactionConflict, msg)
		}
	}

	return err
}
