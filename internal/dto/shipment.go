package dto

import (
	"time"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// AddressRequest is a pickup or delivery address as sent by clients.
type AddressRequest struct {
	Line1       string `json:"line1" binding:"required,max=200"`
	Line2       string `json:"line2" binding:"max=200"`
	City        string `json:"city" binding:"required,max=100"`
	PostalCode  string `json:"postalCode" binding:"max=20"`
	CountryCode string `json:"countryCode" binding:"required,iso3166_1_alpha2"`
}

// CreateShipmentRequest defines the data needed to create (and pay for) a shipment.
type CreateShipmentRequest struct {
	CustomerID      string          `json:"customerID"` // defaults to the caller; only admins may set another user
	PickupAddress   AddressRequest  `json:"pickupAddress"`
	DeliveryAddress AddressRequest  `json:"deliveryAddress"`
	Weight          decimal.Decimal `json:"weight"`
	ServiceLevel    string          `json:"serviceLevel" binding:"required"`
	Tier            string          `json:"tier"` // optional; derived from the addresses when empty
	IdempotencyKey  string          `json:"idempotencyKey" binding:"omitempty,max=128"`
}

// CostResponse is a cost breakdown with money formatted for display.
type CostResponse struct {
	BaseCost     string `json:"baseCost"`
	DistanceCost string `json:"distanceCost"`
	Surcharge    string `json:"surcharge"`
	TotalCost    string `json:"totalCost"`
}

// CreateShipmentResponse is stored as the idempotent result of a shipment creation.
type CreateShipmentResponse struct {
	ShipmentID     string                `json:"shipmentID"`
	TrackingNumber string                `json:"trackingNumber"`
	Status         domain.ShipmentStatus `json:"status"`
	TotalCost      string                `json:"totalCost"`
	ChargeEntryID  string                `json:"chargeEntryID"`
	Replayed       bool                  `json:"-"`
}

// TransitionShipmentRequest moves a shipment to ToStatus.
type TransitionShipmentRequest struct {
	ToStatus    string     `json:"toStatus" binding:"required"`
	AssigneeID  *string    `json:"assigneeID"`  // required for ASSIGNED
	DeliveredAt *time.Time `json:"deliveredAt"` // required for DELIVERED
	Note        string     `json:"note" binding:"max=500"`
}

// TransitionShipmentResponse reports the new status and the history size.
type TransitionShipmentResponse struct {
	ShipmentID    string                `json:"shipmentID"`
	Status        domain.ShipmentStatus `json:"status"`
	HistoryLength int                   `json:"historyLength"`
	RefundEntryID *string               `json:"refundEntryID,omitempty"`
}

// ShipmentResponse defines the data returned for a shipment.
type ShipmentResponse struct {
	ShipmentID      string                `json:"shipmentID"`
	TrackingNumber  string                `json:"trackingNumber"`
	CustomerID      string                `json:"customerID"`
	AccountID       string                `json:"accountID"`
	AssigneeID      *string               `json:"assigneeID,omitempty"`
	PickupAddress   domain.Address        `json:"pickupAddress"`
	DeliveryAddress domain.Address        `json:"deliveryAddress"`
	Weight          string                `json:"weight"`
	Tier            domain.DistanceTier   `json:"tier"`
	ServiceLevel    domain.ServiceLevel   `json:"serviceLevel"`
	Cost            CostResponse          `json:"cost"`
	Status          domain.ShipmentStatus `json:"status"`
	DeliveredAt     *time.Time            `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// StatusHistoryResponse is one status history record.
type StatusHistoryResponse struct {
	Status    domain.ShipmentStatus `json:"status"`
	Note      string                `json:"note,omitempty"`
	ChangedBy string                `json:"changedBy"`
	ChangedAt time.Time             `json:"changedAt"`
}

// ShipmentDetailResponse is a shipment with its full status history.
type ShipmentDetailResponse struct {
	Shipment      ShipmentResponse        `json:"shipment"`
	StatusHistory []StatusHistoryResponse `json:"statusHistory"`
}

// QuoteRequest prices a parcel. Either Tier or both addresses must be given.
type QuoteRequest struct {
	Weight          decimal.Decimal `json:"weight"`
	ServiceLevel    string          `json:"serviceLevel" binding:"required"`
	Tier            string          `json:"tier"`
	PickupAddress   *AddressRequest `json:"pickupAddress"`
	DeliveryAddress *AddressRequest `json:"deliveryAddress"`
}

// QuoteResponse is the priced breakdown for a QuoteRequest.
type QuoteResponse struct {
	Tier         domain.DistanceTier `json:"tier"`
	ServiceLevel domain.ServiceLevel `json:"serviceLevel"`
	CostResponse
}

// ToAddress converts a request address to the domain type.
func (a AddressRequest) ToAddress() domain.Address {
	return domain.Address{
		Line1:       a.Line1,
		Line2:       a.Line2,
		City:        a.City,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
	}
}

// ToCostResponse formats a cost breakdown. Components are shown rounded even
// though they are stored at full precision.
func ToCostResponse(c domain.CostBreakdown) CostResponse {
	return CostResponse{
		BaseCost:     utils.FormatMoney(c.BaseCost),
		DistanceCost: utils.FormatMoney(c.DistanceCost),
		Surcharge:    utils.FormatMoney(c.Surcharge),
		TotalCost:    utils.FormatMoney(c.TotalCost),
	}
}

// ToShipmentResponse converts a domain shipment to its response form.
func ToShipmentResponse(s *domain.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ShipmentID:      s.ShipmentID,
		TrackingNumber:  s.TrackingNumber,
		CustomerID:      s.CustomerID,
		AccountID:       s.AccountID,
		AssigneeID:      s.AssigneeID,
		PickupAddress:   s.PickupAddress,
		DeliveryAddress: s.DeliveryAddress,
		Weight:          s.Weight.String(),
		Tier:            s.Tier,
		ServiceLevel:    s.ServiceLevel,
		Cost:            ToCostResponse(s.Cost),
		Status:          s.Status,
		DeliveredAt:     s.DeliveredAt,
		CreatedAt:       s.CreatedAt,
		LastUpdatedAt:   s.LastUpdatedAt,
	}
}

// ToShipmentDetailResponse combines a shipment and its history.
func ToShipmentDetailResponse(s *domain.Shipment, history []domain.StatusHistoryRecord) ShipmentDetailResponse {
	records := make([]StatusHistoryResponse, len(history))
	for i, h := range history {
		records[i] = StatusHistoryResponse{
			Status:    h.Status,
			Note:      h.Note,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		}
	}
	return ShipmentDetailResponse{
		Shipment:      ToShipmentResponse(s),
		StatusHistory: records,
	}
}
