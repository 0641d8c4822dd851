package accounting

import (
	"fmt"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount turns a positive magnitude into the entry amount for its direction:
// credits stay positive, debits are negated.
func SignedAmount(magnitude decimal.Decimal, debit bool) (decimal.Decimal, error) {
	if !magnitude.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", magnitude.String())
	}
	if debit {
		return magnitude.Neg(), nil
	}
	return magnitude, nil
}

// Balance folds entries into a balance.
func Balance(entries []domain.LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// ValidateRunningBalance replays entries in order and fails at the first prefix
// whose balance is negative.
func ValidateRunningBalance(entries []domain.LedgerEntry) error {
	running := decimal.Zero
	for i, e := range entries {
		running = running.Add(e.Amount)
		if running.IsNegative() {
			return fmt.Errorf("balance negative (%s) after entry %d (%s)", running.String(), i, e.EntryID)
		}
	}
	return nil
}

// FindRefundable picks the SHIPMENT_CHARGE among a shipment's entries and reports
// whether a REFUND already offsets it.
func FindRefundable(entries []domain.LedgerEntry) (charge *domain.LedgerEntry, refunded bool) {
	for i := range entries {
		if entries[i].Reason == domain.ReasonShipmentCharge && charge == nil {
			charge = &entries[i]
		}
	}
	if charge == nil {
		return nil, false
	}
	for _, e := range entries {
		if e.Reason == domain.ReasonRefund && e.RelatedEntryID != nil && *e.RelatedEntryID == charge.EntryID {
			return charge, true
		}
	}
	return charge, false
}
