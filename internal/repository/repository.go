package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when an update or delete matched zero rows. The
// classification happens here, at the data-access boundary, so callers never
// re-derive it from affected-row counts.
var ErrNotFound = errors.New("entity not found")

// DBTX is the statement-level interface shared by *sql.DB and *sql.Tx.
// Repositories are constructed over either, so the transactional answer
// creation path reuses the exact statements of the non-transactional one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Sort columns accepted by the list queries. Anything else falls back to
// helpful; ORDER BY columns cannot be bound as placeholders.
const (
	SortByHelpful     = "helpful"
	SortByDateWritten = "date_written"
)

func orderColumn(sortBy string) string {
	if sortBy == SortByDateWritten {
		return SortByDateWritten
	}
	return SortByHelpful
}
