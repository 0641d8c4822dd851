package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ganges/ganges_backend/internal/core/domain"
)

// IdempotencyRepositoryFacade stores idempotency records keyed by scope.
type IdempotencyRepositoryFacade interface {
	// FindRecord returns apperrors.ErrNotFound when no record exists for scope.
	FindRecord(ctx context.Context, scope domain.IdempotencyScope) (*domain.IdempotencyRecord, error)

	// ReserveRecord inserts an IN_FLIGHT record. If one already exists for the
	// scope it returns apperrors.ErrDuplicate.
	ReserveRecord(ctx context.Context, record domain.IdempotencyRecord) error

	// CompleteRecord marks the record COMPLETED with result. A non-nil tx makes
	// completion commit or roll back together with the guarded operation.
	CompleteRecord(ctx context.Context, tx Tx, scope domain.IdempotencyScope, result json.RawMessage, now time.Time) error

	// DeleteInFlight removes the record only while it is still IN_FLIGHT.
	DeleteInFlight(ctx context.Context, scope domain.IdempotencyScope) error

	// DeleteIfExpired removes the record for scope when it expired at or before now.
	DeleteIfExpired(ctx context.Context, scope domain.IdempotencyScope, now time.Time) (bool, error)

	// PurgeExpired removes all records expired at or before now and reports how many.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
