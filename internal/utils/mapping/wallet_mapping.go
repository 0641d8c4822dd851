package mapping

import (
	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/models"
)

// ToModelWalletAccount converts a domain WalletAccount to a model WalletAccount
func ToModelWalletAccount(d domain.WalletAccount) models.WalletAccount {
	return models.WalletAccount{
		AccountID:    d.AccountID,
		OwnerID:      d.OwnerID,
		CurrencyCode: d.CurrencyCode,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWalletAccount converts a model WalletAccount to a domain WalletAccount
func ToDomainWalletAccount(m models.WalletAccount) domain.WalletAccount {
	return domain.WalletAccount{
		AccountID:    m.AccountID,
		OwnerID:      m.OwnerID,
		CurrencyCode: m.CurrencyCode,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		Amount:         d.Amount,
		Reason:         string(d.Reason),
		ShipmentID:     d.ShipmentID,
		RelatedEntryID: d.RelatedEntryID,
		IdempotencyKey: d.IdempotencyKey,
		Note:           d.Note,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		Amount:         m.Amount,
		Reason:         domain.EntryReason(m.Reason),
		ShipmentID:     m.ShipmentID,
		RelatedEntryID: m.RelatedEntryID,
		IdempotencyKey: m.IdempotencyKey,
		Note:           m.Note,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
