// Package dbx provides the tiny DB abstraction shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Provider yields the statement executor for a single operation.
// Implementations may establish the underlying connection lazily, so every
// repository call acquires the handle through the provider instead of
// holding one.
type Provider func(ctx context.Context) (DBTX, error)

// Static returns a Provider that always yields db. Used in tests and
// wherever the handle is already established.
func Static(db DBTX) Provider {
	return func(context.Context) (DBTX, error) { return db, nil }
}
