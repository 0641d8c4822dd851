package services

import (
	"context"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations for wallets
type WalletReaderSvc interface {
	GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, decimal.Decimal, error)
	GetBalance(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, decimal.Decimal, error)
	ListEntries(ctx context.Context, actor domain.Actor, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// WalletWriterSvc defines money-moving operations for wallets
type WalletWriterSvc interface {
	// OpenAccount returns the caller's account in the currency, creating it if
	// needed. created reports whether a new account was made.
	OpenAccount(ctx context.Context, actor domain.Actor, req dto.OpenWalletRequest) (account *domain.WalletAccount, created bool, err error)

	AddFunds(ctx context.Context, actor domain.Actor, accountID string, req dto.AddFundsRequest) (*dto.AddFundsResponse, error)

	// Adjust posts an admin correction; negative amounts obey the balance floor.
	Adjust(ctx context.Context, actor domain.Actor, accountID string, req dto.AdjustmentRequest) (*dto.AdjustmentResponse, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
