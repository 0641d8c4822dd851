package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeRequest describes money collected from the customer's payment method.
type ChargeRequest struct {
	AccountID      string
	EntryID        string
	Amount         decimal.Decimal
	CurrencyCode   string
	IdempotencyKey string
}

// PaymentGateway collects money from outside the system. The ledger is
// authoritative: a failed charge is reconciled later, never rolled back here.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (providerRef string, err error)
}

// TrackingNumberGenerator produces candidate tracking numbers. Uniqueness is
// enforced by storage; the caller regenerates on collision.
type TrackingNumberGenerator interface {
	Next() (string, error)
}
