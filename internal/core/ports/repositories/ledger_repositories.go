package repositories

import (
	"context"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over ledger entries
type LedgerReader interface {
	// SumByAccount folds the account's entries into its balance. With a nil tx it
	// reads the latest committed state; with a tx it also sees that tx's own writes.
	SumByAccount(ctx context.Context, tx Tx, accountID string) (decimal.Decimal, error)

	// LatestSeq returns the position of the account's newest committed entry, or 0.
	// It grows with every committed append to the account.
	LatestSeq(ctx context.Context, accountID string) (int64, error)

	// ListEntriesByAccount returns entries newest first using token-based pagination.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntriesByShipment returns every entry referencing the shipment, oldest first.
	FindEntriesByShipment(ctx context.Context, tx Tx, shipmentID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines the single write operation the ledger allows
type LedgerWriter interface {
	// InsertEntry appends an entry. Entries are never updated or deleted.
	InsertEntry(ctx context.Context, tx Tx, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
