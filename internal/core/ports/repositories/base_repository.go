package repositories

import (
	"context"
)

// Tx is a unit of work opened by a TransactionManager. Repositories accept it
// on every method that must run inside the caller's transaction.
// Rollback after Commit is a no-op.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (Tx, error)
}
