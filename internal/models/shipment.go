package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment is a row of shipments. Addresses are stored as JSONB documents.
type Shipment struct {
	ShipmentID      string          `db:"shipment_id"`
	TrackingNumber  string          `db:"tracking_number"`
	CustomerID      string          `db:"customer_id"`
	AccountID       string          `db:"account_id"`
	AssigneeID      *string         `db:"assignee_id"`
	PickupAddress   []byte          `db:"pickup_address"`
	DeliveryAddress []byte          `db:"delivery_address"`
	Weight          decimal.Decimal `db:"weight"`
	Tier            string          `db:"tier"`
	ServiceLevel    string          `db:"service_level"`
	BaseCost        decimal.Decimal `db:"base_cost"`
	DistanceCost    decimal.Decimal `db:"distance_cost"`
	Surcharge       decimal.Decimal `db:"surcharge"`
	TotalCost       decimal.Decimal `db:"total_cost"`
	Status          string          `db:"status"`
	DeliveredAt     *time.Time      `db:"delivered_at"`
	AuditFields
}

// StatusHistory is a row of shipment_status_history.
type StatusHistory struct {
	HistoryID  string    `db:"history_id"`
	ShipmentID string    `db:"shipment_id"`
	Status     string    `db:"status"`
	Note       string    `db:"note"`
	ChangedBy  string    `db:"changed_by"`
	ChangedAt  time.Time `db:"changed_at"`
}
