package mapping

import (
	"encoding/json"

	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/models"
)

// ToModelIdempotencyKey converts a domain IdempotencyRecord to a model IdempotencyKey
func ToModelIdempotencyKey(d domain.IdempotencyRecord) models.IdempotencyKey {
	return models.IdempotencyKey{
		UserID:        d.UserID,
		OperationType: string(d.OperationType),
		Key:           d.Key,
		RequestHash:   d.RequestHash,
		Status:        string(d.Status),
		Result:        []byte(d.Result),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		ExpiresAt:     d.ExpiresAt,
	}
}

// ToDomainIdempotencyRecord converts a model IdempotencyKey to a domain IdempotencyRecord
func ToDomainIdempotencyRecord(m models.IdempotencyKey) domain.IdempotencyRecord {
	var result json.RawMessage
	if len(m.Result) > 0 {
		result = json.RawMessage(m.Result)
	}
	return domain.IdempotencyRecord{
		IdempotencyScope: domain.IdempotencyScope{
			UserID:        m.UserID,
			OperationType: domain.OperationType(m.OperationType),
			Key:           m.Key,
		},
		RequestHash: m.RequestHash,
		Status:      domain.IdempotencyStatus(m.Status),
		Result:      result,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		ExpiresAt:   m.ExpiresAt,
	}
}
