package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletAccount is a row of wallet_accounts.
type WalletAccount struct {
	AccountID    string `db:"account_id"`
	OwnerID      string `db:"owner_id"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}

// LedgerEntry is a row of ledger_entries.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"`
	Reason         string          `db:"reason"`
	ShipmentID     *string         `db:"shipment_id"`
	RelatedEntryID *string         `db:"related_entry_id"`
	IdempotencyKey *string         `db:"idempotency_key"`
	Note           string          `db:"note"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
