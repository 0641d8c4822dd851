package services

import (
	"context"
	"encoding/json"

	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
)

// BeginOutcome is what Begin decided for a keyed request.
type BeginOutcome struct {
	// Replay is true when the operation already completed; Result holds its snapshot.
	Replay bool
	Result json.RawMessage
}

// IdempotencySvc guards keyed operations against duplicate execution.
type IdempotencySvc interface {
	// Begin reserves scope for a fresh run or returns the stored result.
	// An in-flight key yields apperrors.ErrOperationInProgress and a key reused
	// with a different requestHash yields apperrors.ErrConflict.
	Begin(ctx context.Context, scope domain.IdempotencyScope, requestHash string) (*BeginOutcome, error)

	// Complete stores result. With a non-nil tx it commits along with the operation.
	Complete(ctx context.Context, tx portsrepo.Tx, scope domain.IdempotencyScope, result any) error

	// Fail releases the in-flight marker so the client may retry.
	Fail(ctx context.Context, scope domain.IdempotencyScope) error

	// PurgeExpired drops expired records and reports how many went.
	PurgeExpired(ctx context.Context) (int64, error)
}
