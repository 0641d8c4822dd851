package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/platform/metrics"
)

const defaultIdempotencyTTL = 24 * time.Hour

type idempotencyService struct {
	BaseService
	repo portsrepo.IdempotencyRepositoryFacade
	ttl  time.Duration
}

// NewIdempotencyService creates the guard. A non-positive ttl uses 24h.
func NewIdempotencyService(repo portsrepo.IdempotencyRepositoryFacade, ttl time.Duration) portssvc.IdempotencySvc {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &idempotencyService{repo: repo, ttl: ttl}
}

var _ portssvc.IdempotencySvc = (*idempotencyService)(nil)

// RequestHash fingerprints a request payload. Callers clear the key field first
// so the same body under a new key hashes identically.
func RequestHash(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to hash request: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func (s *idempotencyService) Begin(ctx context.Context, scope domain.IdempotencyScope, requestHash string) (*portssvc.BeginOutcome, error) {
	if scope.Key == "" {
		return nil, fmt.Errorf("%w: idempotency key is required", apperrors.ErrValidation)
	}
	if scope.UserID == "" {
		return nil, fmt.Errorf("%w: idempotency scope has no user", apperrors.ErrUnauthorized)
	}
	op := string(scope.OperationType)
	now := s.Now()

	// Two rounds: a lost reservation race is resolved by re-reading the winner's record.
	for round := 0; round < 2; round++ {
		if _, err := s.repo.DeleteIfExpired(ctx, scope, now); err != nil {
			return nil, err
		}

		rec, err := s.repo.FindRecord(ctx, scope)
		switch {
		case err == nil:
			if rec.RequestHash != requestHash {
				metrics.IdempotencyOutcomesTotal.WithLabelValues(op, "conflict").Inc()
				err := fmt.Errorf("%w: key %q", apperrors.ErrConflict, scope.Key)
				s.LogWarn(ctx, err, "Idempotency key reused with a different payload", slog.String("operation", op))
				return nil, err
			}
			if rec.Status == domain.IdempotencyCompleted {
				metrics.IdempotencyOutcomesTotal.WithLabelValues(op, "replay").Inc()
				s.LogInfo(ctx, "Replaying completed operation", slog.String("operation", op), slog.String("idempotency_key", scope.Key))
				return &portssvc.BeginOutcome{Replay: true, Result: rec.Result}, nil
			}
			metrics.IdempotencyOutcomesTotal.WithLabelValues(op, "in_progress").Inc()
			return nil, fmt.Errorf("%w: key %q is still being processed", apperrors.ErrOperationInProgress, scope.Key)

		case errors.Is(err, apperrors.ErrNotFound):
			reserveErr := s.repo.ReserveRecord(ctx, domain.IdempotencyRecord{
				IdempotencyScope: scope,
				RequestHash:      requestHash,
				Status:           domain.IdempotencyInFlight,
				CreatedAt:        now,
				UpdatedAt:        now,
				ExpiresAt:        now.Add(s.ttl),
			})
			if errors.Is(reserveErr, apperrors.ErrDuplicate) {
				continue
			}
			if reserveErr != nil {
				return nil, reserveErr
			}
			metrics.IdempotencyOutcomesTotal.WithLabelValues(op, "fresh").Inc()
			return &portssvc.BeginOutcome{}, nil

		default:
			return nil, err
		}
	}

	metrics.IdempotencyOutcomesTotal.WithLabelValues(op, "in_progress").Inc()
	return nil, fmt.Errorf("%w: key %q is still being processed", apperrors.ErrOperationInProgress, scope.Key)
}

func (s *idempotencyService) Complete(ctx context.Context, tx portsrepo.Tx, scope domain.IdempotencyScope, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode idempotent result: %w", err)
	}
	return s.repo.CompleteRecord(ctx, tx, scope, raw, s.Now())
}

// Fail runs even when the request context is already cancelled.
func (s *idempotencyService) Fail(ctx context.Context, scope domain.IdempotencyScope) error {
	if err := s.repo.DeleteInFlight(context.WithoutCancel(ctx), scope); err != nil {
		s.LogError(ctx, err, "Failed to release idempotency key",
			slog.String("operation", string(scope.OperationType)),
			slog.String("idempotency_key", scope.Key))
		return err
	}
	return nil
}

func (s *idempotencyService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.PurgeExpired(ctx, s.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.IdempotencyPurgedTotal.Add(float64(n))
	}
	return n, nil
}
