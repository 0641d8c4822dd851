package memory

import (
	"context"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
)

type shipmentRepository struct {
	store *Store
}

var _ portsrepo.ShipmentRepositoryFacade = (*shipmentRepository)(nil)

func (r *shipmentRepository) FindShipmentByID(_ context.Context, shipmentID string) (*domain.Shipment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shipments[shipmentID]
	if !ok {
		return nil, fmt.Errorf("%w: shipment %s", apperrors.ErrNotFound, shipmentID)
	}
	return &sh, nil
}

func (r *shipmentRepository) FindShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	s := r.store
	s.mu.Lock()
	id, ok := s.tracking[trackingNumber]
	if ok {
		_, ok = s.shipments[id]
	}
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: shipment %s", apperrors.ErrNotFound, trackingNumber)
	}
	return r.FindShipmentByID(ctx, id)
}

func (r *shipmentRepository) LockShipment(ctx context.Context, tx portsrepo.Tx, shipmentID string) (*domain.Shipment, error) {
	t, err := requireTx(tx)
	if err != nil {
		return nil, err
	}
	if err := t.lock(ctx, "shipment:"+shipmentID); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if sh, ok := t.updates[shipmentID]; ok {
		return &sh, nil
	}
	for _, sh := range t.inserted {
		if sh.ShipmentID == shipmentID {
			return &sh, nil
		}
	}
	return r.FindShipmentByID(ctx, shipmentID)
}

func (r *shipmentRepository) InsertShipment(_ context.Context, tx portsrepo.Tx, shipment domain.Shipment) error {
	t, err := requireTx(tx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.active(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.tracking[shipment.TrackingNumber]; taken {
		return fmt.Errorf("%w: tracking number %s", apperrors.ErrDuplicate, shipment.TrackingNumber)
	}
	if _, taken := s.shipments[shipment.ShipmentID]; taken {
		return fmt.Errorf("%w: shipment %s", apperrors.ErrDuplicate, shipment.ShipmentID)
	}
	s.tracking[shipment.TrackingNumber] = shipment.ShipmentID
	t.reserved = append(t.reserved, shipment.TrackingNumber)
	t.inserted = append(t.inserted, shipment)
	return nil
}

func (r *shipmentRepository) UpdateShipmentStatus(ctx context.Context, tx portsrepo.Tx, shipment domain.Shipment) error {
	t, err := requireTx(tx)
	if err != nil {
		return err
	}
	current, err := r.LockShipment(ctx, tx, shipment.ShipmentID)
	if err != nil {
		return err
	}

	updated := *current
	updated.Status = shipment.Status
	updated.AssigneeID = shipment.AssigneeID
	updated.DeliveredAt = shipment.DeliveredAt
	updated.LastUpdatedAt = shipment.LastUpdatedAt
	updated.LastUpdatedBy = shipment.LastUpdatedBy

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.active(); err != nil {
		return err
	}
	t.updates[shipment.ShipmentID] = updated
	return nil
}

func (r *shipmentRepository) AppendHistory(_ context.Context, tx portsrepo.Tx, record domain.StatusHistoryRecord) error {
	t, err := requireTx(tx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.active(); err != nil {
		return err
	}
	t.history = append(t.history, record)
	return nil
}

func (r *shipmentRepository) ListHistory(_ context.Context, tx portsrepo.Tx, shipmentID string) ([]domain.StatusHistoryRecord, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StatusHistoryRecord, 0)
	if t != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
	}

	s := r.store
	s.mu.Lock()
	out = append(out, s.history[shipmentID]...)
	s.mu.Unlock()

	if t != nil {
		for _, h := range t.history {
			if h.ShipmentID == shipmentID {
				out = append(out, h)
			}
		}
	}
	return out, nil
}
