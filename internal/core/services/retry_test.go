package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy(t *testing.T) {
	ctx := context.Background()
	policy := services.RetryPolicy{MaxAttempts: 4, BaseDelay: time.Millisecond}

	t.Run("succeeds after conflicts", func(t *testing.T) {
		calls := 0
		err := policy.Run(ctx, "test", func(context.Context) error {
			calls++
			if calls < 3 {
				return apperrors.ErrTxConflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up as transient", func(t *testing.T) {
		calls := 0
		err := policy.Run(ctx, "test", func(context.Context) error {
			calls++
			return apperrors.ErrTxConflict
		})
		assert.ErrorIs(t, err, apperrors.ErrTransient)
		assert.Equal(t, apperrors.KindTransient, apperrors.KindOf(err))
		assert.Equal(t, 4, calls)
	})

	t.Run("business errors are not retried", func(t *testing.T) {
		calls := 0
		err := policy.Run(ctx, "test", func(context.Context) error {
			calls++
			return apperrors.ErrInsufficientFunds
		})
		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		slow := services.RetryPolicy{MaxAttempts: 10, BaseDelay: time.Hour}
		err := slow.Run(cctx, "test", func(context.Context) error { return apperrors.ErrTxConflict })
		assert.ErrorIs(t, err, apperrors.ErrTransient)
	})
}
