package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/ganges/ganges_backend/internal/models"
	"github.com/ganges/ganges_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxIdempotencyRepository struct {
	BaseRepository
}

func newPgxIdempotencyRepository(base BaseRepository) portsrepo.IdempotencyRepositoryFacade {
	return &PgxIdempotencyRepository{BaseRepository: base}
}

var _ portsrepo.IdempotencyRepositoryFacade = (*PgxIdempotencyRepository)(nil)

// FindRecord loads the record for scope.
func (r *PgxIdempotencyRepository) FindRecord(ctx context.Context, scope domain.IdempotencyScope) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT user_id, operation_type, key, request_hash, status, result, created_at, updated_at, expires_at
		FROM idempotency_keys
		WHERE user_id = $1 AND operation_type = $2 AND key = $3;
	`
	var m models.IdempotencyKey
	err := r.Pool.QueryRow(ctx, query, scope.UserID, string(scope.OperationType), scope.Key).Scan(
		&m.UserID,
		&m.OperationType,
		&m.Key,
		&m.RequestHash,
		&m.Status,
		&m.Result,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: idempotency key %s", apperrors.ErrNotFound, scope.Key)
		}
		return nil, mapPgError(err, "failed to load idempotency key")
	}
	rec := mapping.ToDomainIdempotencyRecord(m)
	return &rec, nil
}

// ReserveRecord inserts an IN_FLIGHT record; the primary key makes concurrent
// reservations of one scope race to a single winner.
func (r *PgxIdempotencyRepository) ReserveRecord(ctx context.Context, record domain.IdempotencyRecord) error {
	m := mapping.ToModelIdempotencyKey(record)
	query := `
		INSERT INTO idempotency_keys (user_id, operation_type, key, request_hash, status, result, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.OperationType,
		m.Key,
		m.RequestHash,
		m.Status,
		m.Result,
		m.CreatedAt,
		m.UpdatedAt,
		m.ExpiresAt,
	)
	if err != nil {
		return mapPgError(err, "failed to reserve idempotency key")
	}
	return nil
}

// CompleteRecord stores the result and flips the record to COMPLETED.
func (r *PgxIdempotencyRepository) CompleteRecord(ctx context.Context, tx portsrepo.Tx, scope domain.IdempotencyScope, result json.RawMessage, now time.Time) error {
	q, err := r.db(tx)
	if err != nil {
		return err
	}
	query := `
		UPDATE idempotency_keys
		SET status = $4, result = $5, updated_at = $6
		WHERE user_id = $1 AND operation_type = $2 AND key = $3;
	`
	tag, err := q.Exec(ctx, query,
		scope.UserID,
		string(scope.OperationType),
		scope.Key,
		string(domain.IdempotencyCompleted),
		[]byte(result),
		now,
	)
	if err != nil {
		return mapPgError(err, "failed to complete idempotency key")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: idempotency key %s", apperrors.ErrNotFound, scope.Key)
	}
	return nil
}

// DeleteInFlight releases a reservation that never completed.
func (r *PgxIdempotencyRepository) DeleteInFlight(ctx context.Context, scope domain.IdempotencyScope) error {
	query := `
		DELETE FROM idempotency_keys
		WHERE user_id = $1 AND operation_type = $2 AND key = $3 AND status = $4;
	`
	if _, err := r.Pool.Exec(ctx, query, scope.UserID, string(scope.OperationType), scope.Key, string(domain.IdempotencyInFlight)); err != nil {
		return mapPgError(err, "failed to release idempotency key")
	}
	return nil
}

// DeleteIfExpired removes the scope's record when its TTL has passed.
func (r *PgxIdempotencyRepository) DeleteIfExpired(ctx context.Context, scope domain.IdempotencyScope, now time.Time) (bool, error) {
	query := `
		DELETE FROM idempotency_keys
		WHERE user_id = $1 AND operation_type = $2 AND key = $3 AND expires_at <= $4;
	`
	tag, err := r.Pool.Exec(ctx, query, scope.UserID, string(scope.OperationType), scope.Key, now)
	if err != nil {
		return false, mapPgError(err, "failed to expire idempotency key")
	}
	return tag.RowsAffected() > 0, nil
}

// PurgeExpired deletes every record whose TTL has passed.
func (r *PgxIdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at <= $1;`, now)
	if err != nil {
		return 0, mapPgError(err, "failed to purge idempotency keys")
	}
	return tag.RowsAffected(), nil
}
