package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/models"
)

// ToModelShipment converts a domain Shipment to a model Shipment
func ToModelShipment(d domain.Shipment) (models.Shipment, error) {
	pickup, err := json.Marshal(d.PickupAddress)
	if err != nil {
		return models.Shipment{}, fmt.Errorf("failed to encode pickup address: %w", err)
	}
	delivery, err := json.Marshal(d.DeliveryAddress)
	if err != nil {
		return models.Shipment{}, fmt.Errorf("failed to encode delivery address: %w", err)
	}
	return models.Shipment{
		ShipmentID:      d.ShipmentID,
		TrackingNumber:  d.TrackingNumber,
		CustomerID:      d.CustomerID,
		AccountID:       d.AccountID,
		AssigneeID:      d.AssigneeID,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		Weight:          d.Weight,
		Tier:            string(d.Tier),
		ServiceLevel:    string(d.ServiceLevel),
		BaseCost:        d.Cost.BaseCost,
		DistanceCost:    d.Cost.DistanceCost,
		Surcharge:       d.Cost.Surcharge,
		TotalCost:       d.Cost.TotalCost,
		Status:          string(d.Status),
		DeliveredAt:     d.DeliveredAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainShipment converts a model Shipment to a domain Shipment
func ToDomainShipment(m models.Shipment) (domain.Shipment, error) {
	var pickup, delivery domain.Address
	if err := json.Unmarshal(m.PickupAddress, &pickup); err != nil {
		return domain.Shipment{}, fmt.Errorf("failed to decode pickup address of shipment %s: %w", m.ShipmentID, err)
	}
	if err := json.Unmarshal(m.DeliveryAddress, &delivery); err != nil {
		return domain.Shipment{}, fmt.Errorf("failed to decode delivery address of shipment %s: %w", m.ShipmentID, err)
	}
	return domain.Shipment{
		ShipmentID:      m.ShipmentID,
		TrackingNumber:  m.TrackingNumber,
		CustomerID:      m.CustomerID,
		AccountID:       m.AccountID,
		AssigneeID:      m.AssigneeID,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		Weight:          m.Weight,
		Tier:            domain.DistanceTier(m.Tier),
		ServiceLevel:    domain.ServiceLevel(m.ServiceLevel),
		Cost: domain.CostBreakdown{
			BaseCost:     m.BaseCost,
			DistanceCost: m.DistanceCost,
			Surcharge:    m.Surcharge,
			TotalCost:    m.TotalCost,
		},
		Status:      domain.ShipmentStatus(m.Status),
		DeliveredAt: m.DeliveredAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelStatusHistory converts a domain StatusHistoryRecord to a model StatusHistory
func ToModelStatusHistory(d domain.StatusHistoryRecord) models.StatusHistory {
	return models.StatusHistory{
		HistoryID:  d.HistoryID,
		ShipmentID: d.ShipmentID,
		Status:     string(d.Status),
		Note:       d.Note,
		ChangedBy:  d.ChangedBy,
		ChangedAt:  d.ChangedAt,
	}
}

// ToDomainStatusHistory converts a model StatusHistory to a domain StatusHistoryRecord
func ToDomainStatusHistory(m models.StatusHistory) domain.StatusHistoryRecord {
	return domain.StatusHistoryRecord{
		HistoryID:  m.HistoryID,
		ShipmentID: m.ShipmentID,
		Status:     domain.ShipmentStatus(m.Status),
		Note:       m.Note,
		ChangedBy:  m.ChangedBy,
		ChangedAt:  m.ChangedAt,
	}
}
