package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines database transaction control for repositories
// whose writes must be atomic, such as the snapshot store's
// deactivate-then-insert.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back the transaction. Rolling back an already finished
	// transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
