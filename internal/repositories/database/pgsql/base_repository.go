package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres SQLSTATE codes this package reacts to.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgTx adapts pgx.Tx to portsrepo.Tx. Rollback after Commit is a no-op.
type pgTx struct {
	pgx.Tx
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.Tx.Commit(ctx); err != nil {
		return mapPgError(err, "failed to commit transaction")
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	if err := t.Tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return &pgTx{Tx: tx}, nil
}

// db returns the querier for tx, or the pool when tx is nil.
func (r *BaseRepository) db(tx portsrepo.Tx) (querier, error) {
	if tx == nil {
		return r.Pool, nil
	}
	t, ok := tx.(*pgTx)
	if !ok {
		return nil, apperrors.NewAppError(500, "transaction was not opened by the postgres repository", nil)
	}
	return t.Tx, nil
}

// requireTx is db for methods that must not run outside a transaction.
func (r *BaseRepository) requireTx(tx portsrepo.Tx) (querier, error) {
	if tx == nil {
		return nil, apperrors.NewAppError(500, "operation requires a transaction", nil)
	}
	return r.db(tx)
}

// mapPgError translates driver errors into apperrors sentinels. Lock and
// serialization failures become ErrTxConflict so services can retry them.
func mapPgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, msg, pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrTxConflict, msg, pgErr.Code)
		}
	}
	return apperrors.NewAppError(500, msg, err)
}
