package models

import "time"

// IdempotencyKey is a row of idempotency_keys.
type IdempotencyKey struct {
	UserID        string    `db:"user_id"`
	OperationType string    `db:"operation_type"`
	Key           string    `db:"key"`
	RequestHash   string    `db:"request_hash"`
	Status        string    `db:"status"`
	Result        []byte    `db:"result"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	ExpiresAt     time.Time `db:"expires_at"`
}
