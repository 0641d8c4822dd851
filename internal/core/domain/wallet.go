package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletAccount is a user's balance-holding account in one currency.
// It has no balance field: the balance is always the sum of its ledger entries.
type WalletAccount struct {
	AccountID    string `json:"accountID"`
	OwnerID      string `json:"ownerID"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}

// MoneyScale is the number of decimal places money carries.
const MoneyScale int32 = 2

// MaxAmount is the largest magnitude a single entry may move. Ledger columns
// are NUMERIC(19, 2), so this leaves ample headroom.
var MaxAmount = decimal.NewFromInt(1_000_000_000)

// EntryReason is the closed set of reasons a ledger entry can exist for.
type EntryReason string

const (
	ReasonTopUp          EntryReason = "TOPUP"
	ReasonShipmentCharge EntryReason = "SHIPMENT_CHARGE"
	ReasonRefund         EntryReason = "REFUND"
	ReasonAdjustment     EntryReason = "ADJUSTMENT"
)

// IsValid reports whether r is one of the known reasons.
func (r EntryReason) IsValid() bool {
	switch r {
	case ReasonTopUp, ReasonShipmentCharge, ReasonRefund, ReasonAdjustment:
		return true
	}
	return false
}

// LedgerEntry is one immutable, signed change to a wallet balance.
// Credits are positive, debits negative.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         EntryReason     `json:"reason"`
	ShipmentID     *string         `json:"shipmentID,omitempty"`
	RelatedEntryID *string         `json:"relatedEntryID,omitempty"` // REFUND -> the SHIPMENT_CHARGE it offsets
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// IsCredit reports whether the entry increases the balance.
func (e LedgerEntry) IsCredit() bool { return e.Amount.IsPositive() }
