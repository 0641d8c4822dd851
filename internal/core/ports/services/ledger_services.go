package services

import (
	"context"

	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// EntryOptions carries the optional references of a ledger entry.
type EntryOptions struct {
	ShipmentID     *string
	RelatedEntryID *string
	IdempotencyKey *string
	Note           string
	CreatedBy      string
}

// LedgerSvc appends entries and derives balances.
//
// Credit and Debit run inside tx when it is non-nil; the caller then owns the
// commit and must call InvalidateBalance afterwards. With a nil tx the call opens,
// retries and commits its own transaction.
type LedgerSvc interface {
	Credit(ctx context.Context, tx portsrepo.Tx, accountID string, amount decimal.Decimal, reason domain.EntryReason, opts EntryOptions) (*domain.LedgerEntry, error)
	Debit(ctx context.Context, tx portsrepo.Tx, accountID string, amount decimal.Decimal, reason domain.EntryReason, opts EntryOptions) (*domain.LedgerEntry, error)

	// BalanceOf returns the committed balance, served from cache when possible.
	BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error)

	// BalanceInTx folds entries as seen by tx. It never touches the cache.
	BalanceInTx(ctx context.Context, tx portsrepo.Tx, accountID string) (decimal.Decimal, error)

	InvalidateBalance(accountID string)
}
