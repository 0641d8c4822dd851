// Package memory is an in-process implementation of the repository ports.
// It backs STORAGE_DRIVER=memory and the service tests. Row locks are held
// from LockAccount/LockShipment until the transaction ends, writes are staged
// on the transaction and become visible to other readers only at Commit.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
)

type ownerKey struct {
	ownerID  string
	currency string
}

type completion struct {
	scope  domain.IdempotencyScope
	record domain.IdempotencyRecord
}

// Store holds committed state. All fields are guarded by mu.
type Store struct {
	mu sync.Mutex

	accounts map[string]domain.WalletAccount
	owners   map[ownerKey]string

	entries    map[string][]domain.LedgerEntry // by account, append order
	byShipment map[string][]domain.LedgerEntry // by shipment, append order

	shipments map[string]domain.Shipment
	tracking  map[string]string // tracking number -> shipment id, reserved on insert
	history   map[string][]domain.StatusHistoryRecord

	idempotency map[domain.IdempotencyScope]domain.IdempotencyRecord

	rowLocks map[string]chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]domain.WalletAccount),
		owners:      make(map[ownerKey]string),
		entries:     make(map[string][]domain.LedgerEntry),
		byShipment:  make(map[string][]domain.LedgerEntry),
		shipments:   make(map[string]domain.Shipment),
		tracking:    make(map[string]string),
		history:     make(map[string][]domain.StatusHistoryRecord),
		idempotency: make(map[domain.IdempotencyScope]domain.IdempotencyRecord),
		rowLocks:    make(map[string]chan struct{}),
	}
}

// Begin opens a transaction on the store.
func (s *Store) Begin(_ context.Context) (portsrepo.Tx, error) {
	return &memTx{store: s, held: make(map[string]chan struct{}), updates: make(map[string]domain.Shipment)}, nil
}

func (s *Store) rowLock(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[key]
	if !ok {
		l = make(chan struct{}, 1)
		s.rowLocks[key] = l
	}
	return l
}

// memTx stages writes until Commit.
type memTx struct {
	store *Store

	mu       sync.Mutex
	done     bool
	held     map[string]chan struct{}
	entries  []domain.LedgerEntry
	inserted []domain.Shipment
	updates  map[string]domain.Shipment
	history  []domain.StatusHistoryRecord
	complete []completion
	reserved []string
}

var _ portsrepo.Tx = (*memTx)(nil)

// lock takes the named row lock for the rest of the transaction. It is
// reentrant within one transaction and gives up when ctx ends.
func (t *memTx) lock(ctx context.Context, key string) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return errTxDone
	}
	if _, ok := t.held[key]; ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	l := t.store.rowLock(key)
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for lock on %s: %v", apperrors.ErrTxConflict, key, ctx.Err())
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		<-l
		return errTxDone
	}
	t.held[key] = l
	return nil
}

func (t *memTx) active() error {
	if t.done {
		return errTxDone
	}
	return nil
}

func (t *memTx) Commit(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxDone
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	for _, e := range t.entries {
		s.entries[e.AccountID] = append(s.entries[e.AccountID], e)
		if e.ShipmentID != nil {
			s.byShipment[*e.ShipmentID] = append(s.byShipment[*e.ShipmentID], e)
		}
	}
	for _, sh := range t.inserted {
		s.shipments[sh.ShipmentID] = sh
	}
	for id, sh := range t.updates {
		s.shipments[id] = sh
	}
	for _, h := range t.history {
		s.history[h.ShipmentID] = append(s.history[h.ShipmentID], h)
	}
	for _, c := range t.complete {
		s.idempotency[c.scope] = c.record
	}
	s.mu.Unlock()

	t.releaseLocked()
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true

	if len(t.reserved) > 0 {
		s := t.store
		s.mu.Lock()
		for _, tn := range t.reserved {
			delete(s.tracking, tn)
		}
		s.mu.Unlock()
	}
	t.releaseLocked()
	return nil
}

func (t *memTx) releaseLocked() {
	for key, l := range t.held {
		<-l
		delete(t.held, key)
	}
}

var errTxDone = apperrors.NewAppError(500, "transaction already finished", nil)

// asTx unwraps a port transaction. A nil tx yields nil.
func asTx(tx portsrepo.Tx) (*memTx, error) {
	if tx == nil {
		return nil, nil
	}
	t, ok := tx.(*memTx)
	if !ok {
		return nil, apperrors.NewAppError(500, "transaction was not opened by the memory store", nil)
	}
	return t, nil
}

func requireTx(tx portsrepo.Tx) (*memTx, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NewAppError(500, "operation requires a transaction", nil)
	}
	return t, nil
}
