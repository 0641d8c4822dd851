package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/platform/metrics"
)

// RetryPolicy bounds how often a transaction aborted by a lock or
// serialization conflict is replayed.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy matches the configuration defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond}
}

// Run calls fn until it succeeds, fails with anything but ErrTxConflict, or
// the attempts run out. The delay doubles after every conflict.
func (p RetryPolicy) Run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.BaseDelay

	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn(ctx)
		if err == nil || !errors.Is(err, apperrors.ErrTxConflict) {
			return err
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		metrics.TxConflictRetriesTotal.WithLabelValues(op).Inc()

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %s cancelled while retrying: %v", apperrors.ErrTransient, op, ctx.Err())
		case <-timer.C:
		}
		backoff *= 2
	}

	return fmt.Errorf("%w: %s gave up after %d attempts: %v", apperrors.ErrTransient, op, attempts, lastErr)
}
