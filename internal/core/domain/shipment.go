package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus is a position in the shipment lifecycle.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "PENDING"
	StatusAssigned  ShipmentStatus = "ASSIGNED"
	StatusInTransit ShipmentStatus = "IN_TRANSIT"
	StatusDelivered ShipmentStatus = "DELIVERED"
	StatusCancelled ShipmentStatus = "CANCELLED"
)

// ParseShipmentStatus accepts any casing and '-' or ' ' in place of '_'.
func ParseShipmentStatus(s string) (ShipmentStatus, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	st := ShipmentStatus(norm)
	switch st {
	case StatusPending, StatusAssigned, StatusInTransit, StatusDelivered, StatusCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are possible.
func (s ShipmentStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Address is a pickup or delivery location.
type Address struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode"`
}

// CostBreakdown is the priced result for a parcel. TotalCost is the only rounded field.
type CostBreakdown struct {
	BaseCost     decimal.Decimal `json:"baseCost"`
	DistanceCost decimal.Decimal `json:"distanceCost"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// Shipment is a parcel moving through the lifecycle. After creation only Status,
// AssigneeID, DeliveredAt and the audit timestamps change.
type Shipment struct {
	ShipmentID      string          `json:"shipmentID"`
	TrackingNumber  string          `json:"trackingNumber"`
	CustomerID      string          `json:"customerID"`
	AccountID       string          `json:"accountID"` // wallet charged for the shipment
	AssigneeID      *string         `json:"assigneeID,omitempty"`
	PickupAddress   Address         `json:"pickupAddress"`
	DeliveryAddress Address         `json:"deliveryAddress"`
	Weight          decimal.Decimal `json:"weight"`
	Tier            DistanceTier    `json:"tier"`
	ServiceLevel    ServiceLevel    `json:"serviceLevel"`
	Cost            CostBreakdown   `json:"cost"`
	Status          ShipmentStatus  `json:"status"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	AuditFields
}

// StatusHistoryRecord is one append-only entry in a shipment's audit trail.
type StatusHistoryRecord struct {
	HistoryID  string         `json:"historyID"`
	ShipmentID string         `json:"shipmentID"`
	Status     ShipmentStatus `json:"status"`
	Note       string         `json:"note,omitempty"`
	ChangedBy  string         `json:"changedBy"`
	ChangedAt  time.Time      `json:"changedAt"`
}
