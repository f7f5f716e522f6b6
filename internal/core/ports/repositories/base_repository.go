package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by SQL-backed repositories whose multi-row
// writes (an entry with its lines, a reversal with its status flip) share one
// database transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on an already committed transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
