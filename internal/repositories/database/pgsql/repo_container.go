package pgsql

import (
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every postgres repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:       &base,
		WalletRepo:      newPgxWalletRepository(base),
		LedgerRepo:      newPgxLedgerRepository(base),
		ShipmentRepo:    newPgxShipmentRepository(base),
		IdempotencyRepo: newPgxIdempotencyRepository(base),
	}
}
