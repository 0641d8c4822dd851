package dto

import (
	"time"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// OpenWalletRequest opens (or returns) the caller's wallet in a currency.
type OpenWalletRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"omitempty,currency_code"` // defaults to the service currency
}

// WalletResponse defines the data returned for a wallet account.
type WalletResponse struct {
	AccountID    string    `json:"accountID"`
	OwnerID      string    `json:"ownerID"`
	CurrencyCode string    `json:"currencyCode"`
	Balance      string    `json:"balance"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BalanceResponse is the derived balance of one account.
type BalanceResponse struct {
	AccountID    string `json:"accountID"`
	CurrencyCode string `json:"currencyCode"`
	Balance      string `json:"balance"`
}

// AddFundsRequest tops up a wallet. Amount accepts a JSON number or string.
type AddFundsRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotencyKey" binding:"omitempty,max=128"`
}

// AddFundsResponse is stored as the idempotent result of a top-up.
type AddFundsResponse struct {
	AccountID  string `json:"accountID"`
	EntryID    string `json:"entryID"`
	Amount     string `json:"amount"`
	NewBalance string `json:"newBalance"`
	Replayed   bool   `json:"-"`
}

// AdjustmentRequest posts a signed admin correction.
type AdjustmentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note" binding:"required,max=500"`
	IdempotencyKey string          `json:"idempotencyKey" binding:"omitempty,max=128"`
}

// AdjustmentResponse is stored as the idempotent result of an adjustment.
type AdjustmentResponse struct {
	AccountID  string `json:"accountID"`
	EntryID    string `json:"entryID"`
	Amount     string `json:"amount"`
	NewBalance string `json:"newBalance"`
	Replayed   bool   `json:"-"`
}

// ListEntriesParams defines the query parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID        string             `json:"entryID"`
	AccountID      string             `json:"accountID"`
	Amount         string             `json:"amount"`
	Reason         domain.EntryReason `json:"reason"`
	ShipmentID     *string            `json:"shipmentID,omitempty"`
	RelatedEntryID *string            `json:"relatedEntryID,omitempty"`
	Note           string             `json:"note,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
}

// ListEntriesResponse is one page of ledger entries, newest first.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToWalletResponse converts a wallet account and its balance to a response.
func ToWalletResponse(a *domain.WalletAccount, balance decimal.Decimal) WalletResponse {
	return WalletResponse{
		AccountID:    a.AccountID,
		OwnerID:      a.OwnerID,
		CurrencyCode: a.CurrencyCode,
		Balance:      utils.FormatMoney(balance),
		CreatedAt:    a.CreatedAt,
	}
}

// ToBalanceResponse converts a wallet account and its balance to a balance response.
func ToBalanceResponse(a *domain.WalletAccount, balance decimal.Decimal) BalanceResponse {
	return BalanceResponse{
		AccountID:    a.AccountID,
		CurrencyCode: a.CurrencyCode,
		Balance:      utils.FormatMoney(balance),
	}
}

// ToLedgerEntryResponse converts a domain entry to its response form.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		Amount:         utils.FormatMoney(e.Amount),
		Reason:         e.Reason,
		ShipmentID:     e.ShipmentID,
		RelatedEntryID: e.RelatedEntryID,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
