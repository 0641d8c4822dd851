package memory

import (
	"context"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/ganges/ganges_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const defaultEntriesPageSize = 20

type ledgerRepository struct {
	store *Store
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func (r *ledgerRepository) InsertEntry(_ context.Context, tx portsrepo.Tx, entry domain.LedgerEntry) error {
	t, err := requireTx(tx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.active(); err != nil {
		return err
	}
	if entry.Reason == domain.ReasonRefund && entry.RelatedEntryID != nil {
		if r.refundExists(t, *entry.RelatedEntryID) {
			return fmt.Errorf("%w: entry %s already refunded", apperrors.ErrDuplicate, *entry.RelatedEntryID)
		}
	}
	t.entries = append(t.entries, entry)
	return nil
}

// refundExists must be called with t.mu held.
func (r *ledgerRepository) refundExists(t *memTx, chargeID string) bool {
	isRefundOf := func(e domain.LedgerEntry) bool {
		return e.Reason == domain.ReasonRefund && e.RelatedEntryID != nil && *e.RelatedEntryID == chargeID
	}
	for _, e := range t.entries {
		if isRefundOf(e) {
			return true
		}
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.byShipment {
		for _, e := range list {
			if isRefundOf(e) {
				return true
			}
		}
	}
	return false
}

func (r *ledgerRepository) SumByAccount(_ context.Context, tx portsrepo.Tx, accountID string) (decimal.Decimal, error) {
	t, err := asTx(tx)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	if t != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		for _, e := range t.entries {
			if e.AccountID == accountID {
				sum = sum.Add(e.Amount)
			}
		}
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries[accountID] {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

// LatestSeq is the count of committed entries; the slice is append-only.
func (r *ledgerRepository) LatestSeq(_ context.Context, accountID string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.entries[accountID])), nil
}

// ListEntriesByAccount pages through entries newest first, in reverse commit order.
func (r *ledgerRepository) ListEntriesByAccount(_ context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.ClampLimit(limit, defaultEntriesPageSize, 100)

	s := r.store
	s.mu.Lock()
	committed := s.entries[accountID]
	all := make([]domain.LedgerEntry, len(committed))
	for i, e := range committed {
		all[len(committed)-1-i] = e
	}
	s.mu.Unlock()

	start := 0
	if nextToken != nil && *nextToken != "" {
		cur, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		start = -1
		for i, e := range all {
			if e.EntryID == cur.ID {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, nil, fmt.Errorf("%w: nextToken does not belong to this account", apperrors.ErrValidation)
		}
	}

	page := all[start:]
	var newNextToken *string
	if len(page) > limit {
		page = page[:limit]
		last := page[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newNextToken = &token
	}
	return append([]domain.LedgerEntry(nil), page...), newNextToken, nil
}

func (r *ledgerRepository) FindEntriesByShipment(_ context.Context, tx portsrepo.Tx, shipmentID string) ([]domain.LedgerEntry, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LedgerEntry, 0)

	if t != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
	}
	s := r.store
	s.mu.Lock()
	out = append(out, s.byShipment[shipmentID]...)
	s.mu.Unlock()

	if t != nil {
		for _, e := range t.entries {
			if e.ShipmentID != nil && *e.ShipmentID == shipmentID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}
