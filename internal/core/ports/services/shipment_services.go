package services

import (
	"context"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/dto"
)

// ShipmentReaderSvc defines read operations for shipments
type ShipmentReaderSvc interface {
	GetShipment(ctx context.Context, actor domain.Actor, shipmentID string) (*dto.ShipmentDetailResponse, error)
	GetShipmentByTrackingNumber(ctx context.Context, actor domain.Actor, trackingNumber string) (*dto.ShipmentDetailResponse, error)
}

// ShipmentWriterSvc defines lifecycle operations for shipments
type ShipmentWriterSvc interface {
	// CreateShipment prices, stores and charges for a shipment as one idempotent unit.
	CreateShipment(ctx context.Context, actor domain.Actor, req dto.CreateShipmentRequest) (*dto.CreateShipmentResponse, error)

	// TransitionShipment moves the shipment along its lifecycle, refunding
	// the charge on cancellation.
	TransitionShipment(ctx context.Context, actor domain.Actor, shipmentID string, req dto.TransitionShipmentRequest) (*dto.TransitionShipmentResponse, error)
}

// QuoteSvc prices a parcel without side effects.
type QuoteSvc interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error)
}

// ShipmentSvcFacade combines all shipment-related service interfaces
type ShipmentSvcFacade interface {
	ShipmentReaderSvc
	ShipmentWriterSvc
	QuoteSvc
}
