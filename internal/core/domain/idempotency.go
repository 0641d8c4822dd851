package domain

import (
	"encoding/json"
	"time"
)

// OperationType scopes idempotency keys together with the user id.
type OperationType string

const (
	OpCreateShipment OperationType = "CREATE_SHIPMENT"
	OpAddFunds       OperationType = "ADD_FUNDS"
	OpAdjustment     OperationType = "ADJUSTMENT"
)

// IdempotencyStatus tracks whether the keyed operation has finished.
type IdempotencyStatus string

const (
	IdempotencyInFlight  IdempotencyStatus = "IN_FLIGHT"
	IdempotencyCompleted IdempotencyStatus = "COMPLETED"
)

// IdempotencyScope identifies one key. Keys never collide across users or operations.
type IdempotencyScope struct {
	UserID        string
	OperationType OperationType
	Key           string
}

// IdempotencyRecord remembers a keyed operation and, once completed, its result.
type IdempotencyRecord struct {
	IdempotencyScope
	RequestHash string
	Status      IdempotencyStatus
	Result      json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ExpiresAt   time.Time
}

// IsExpired reports whether the record may be purged at now.
func (r IdempotencyRecord) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
