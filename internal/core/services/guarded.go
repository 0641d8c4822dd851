package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// runIdempotent executes fn at most once per scope. fn must complete the key
// inside the same transaction that commits its effects; any error from fn
// releases the key so the client can retry.
func runIdempotent[T any](ctx context.Context, idem portssvc.IdempotencySvc, scope domain.IdempotencyScope, requestHash string, fn func(ctx context.Context) (*T, error)) (*T, bool, error) {
	outcome, err := idem.Begin(ctx, scope, requestHash)
	if err != nil {
		return nil, false, err
	}
	if outcome.Replay {
		var out T
		if err := json.Unmarshal(outcome.Result, &out); err != nil {
			return nil, false, apperrors.NewAppError(500, "stored idempotent result is unreadable", err)
		}
		return &out, true, nil
	}

	out, err := fn(ctx)
	if err != nil {
		_ = idem.Fail(ctx, scope)
		return nil, false, err
	}
	return out, false, nil
}

// validateMoney rejects zero, amounts finer than cents and magnitudes above domain.MaxAmount.
func validateMoney(amount decimal.Decimal, allowNegative bool) error {
	if amount.IsZero() || (!allowNegative && amount.IsNegative()) {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(domain.MoneyScale)) {
		return fmt.Errorf("%w: amount %s has more than two decimal places", apperrors.ErrInvalidAmount, amount.String())
	}
	if amount.Abs().GreaterThan(domain.MaxAmount) {
		return fmt.Errorf("%w: amount %s exceeds the %s limit", apperrors.ErrInvalidAmount, amount.String(), domain.MaxAmount.String())
	}
	return nil
}
