package repositories

import (
	"context"

	"github.com/ganges/ganges_backend/internal/core/domain"
)

// WalletReader defines read operations for wallet accounts
type WalletReader interface {
	// FindAccountByID retrieves a wallet account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.WalletAccount, error)

	// FindAccountByOwner retrieves the owner's account in the given currency.
	FindAccountByOwner(ctx context.Context, ownerID, currencyCode string) (*domain.WalletAccount, error)
}

// WalletWriter defines write operations for wallet accounts
type WalletWriter interface {
	// SaveAccount persists a new account. One account per (owner, currency);
	// a second one fails with apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.WalletAccount) error
}

// WalletTransactionSupport defines operations that run inside a transaction
type WalletTransactionSupport interface {
	// LockAccount selects the account row FOR UPDATE. Every ledger write takes
	// this lock first, which is what serializes writers on one account.
	LockAccount(ctx context.Context, tx Tx, accountID string) (*domain.WalletAccount, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}
