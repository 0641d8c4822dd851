package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
)

type idempotencyRepository struct {
	store *Store
}

var _ portsrepo.IdempotencyRepositoryFacade = (*idempotencyRepository)(nil)

func (r *idempotencyRepository) FindRecord(_ context.Context, scope domain.IdempotencyScope) (*domain.IdempotencyRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.idempotency[scope]
	if !ok {
		return nil, fmt.Errorf("%w: idempotency key %s", apperrors.ErrNotFound, scope.Key)
	}
	return &rec, nil
}

func (r *idempotencyRepository) ReserveRecord(_ context.Context, record domain.IdempotencyRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.idempotency[record.IdempotencyScope]; ok {
		return fmt.Errorf("%w: idempotency key %s", apperrors.ErrDuplicate, record.Key)
	}
	s.idempotency[record.IdempotencyScope] = record
	return nil
}

func (r *idempotencyRepository) CompleteRecord(_ context.Context, tx portsrepo.Tx, scope domain.IdempotencyScope, result json.RawMessage, now time.Time) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	if t != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		if err := t.active(); err != nil {
			return err
		}
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.idempotency[scope]
	if !ok {
		return fmt.Errorf("%w: idempotency key %s", apperrors.ErrNotFound, scope.Key)
	}
	rec.Status = domain.IdempotencyCompleted
	rec.Result = append(json.RawMessage(nil), result...)
	rec.UpdatedAt = now

	if t == nil {
		s.idempotency[scope] = rec
		return nil
	}
	t.complete = append(t.complete, completion{scope: scope, record: rec})
	return nil
}

func (r *idempotencyRepository) DeleteInFlight(_ context.Context, scope domain.IdempotencyScope) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.idempotency[scope]; ok && rec.Status == domain.IdempotencyInFlight {
		delete(s.idempotency, scope)
	}
	return nil
}

func (r *idempotencyRepository) DeleteIfExpired(_ context.Context, scope domain.IdempotencyScope, now time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.idempotency[scope]
	if !ok || !rec.IsExpired(now) {
		return false, nil
	}
	delete(s.idempotency, scope)
	return true, nil
}

func (r *idempotencyRepository) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for scope, rec := range s.idempotency {
		if rec.IsExpired(now) {
			delete(s.idempotency, scope)
			n++
		}
	}
	return n, nil
}
