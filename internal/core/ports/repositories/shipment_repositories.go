package repositories

import (
	"context"

	"github.com/ganges/ganges_backend/internal/core/domain"
)

// ShipmentReader defines read operations for shipments
type ShipmentReader interface {
	FindShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error)
	FindShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)

	// ListHistory returns the status history oldest first. A nil tx reads committed state.
	ListHistory(ctx context.Context, tx Tx, shipmentID string) ([]domain.StatusHistoryRecord, error)
}

// ShipmentWriter defines write operations for shipments
type ShipmentWriter interface {
	// InsertShipment stores a new shipment. A tracking number that is already
	// taken yields apperrors.ErrDuplicate without aborting tx, so the caller can
	// regenerate and try again.
	InsertShipment(ctx context.Context, tx Tx, shipment domain.Shipment) error

	// UpdateShipmentStatus writes the mutable fields only: status, assignee,
	// delivered-at and last-updated audit fields.
	UpdateShipmentStatus(ctx context.Context, tx Tx, shipment domain.Shipment) error

	// AppendHistory stores one status history record.
	AppendHistory(ctx context.Context, tx Tx, record domain.StatusHistoryRecord) error
}

// ShipmentTransactionSupport defines operations that run inside a transaction
type ShipmentTransactionSupport interface {
	// LockShipment selects the shipment row FOR UPDATE.
	LockShipment(ctx context.Context, tx Tx, shipmentID string) (*domain.Shipment, error)
}

// ShipmentRepositoryFacade combines all shipment-related repository interfaces
type ShipmentRepositoryFacade interface {
	ShipmentReader
	ShipmentWriter
	ShipmentTransactionSupport
}
