package memory

import (
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every memory repository onto store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       store,
		WalletRepo:      &walletRepository{store: store},
		LedgerRepo:      &ledgerRepository{store: store},
		ShipmentRepo:    &shipmentRepository{store: store},
		IdempotencyRepo: &idempotencyRepository{store: store},
	}
}
