package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/ganges/ganges_backend/internal/models"
	"github.com/ganges/ganges_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(base BaseRepository) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: base}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `account_id, owner_id, currency_code, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.WalletAccount, error) {
	var m models.WalletAccount
	err := row.Scan(
		&m.AccountID,
		&m.OwnerID,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainWalletAccount(m)
	return &d, nil
}

// SaveAccount inserts a new wallet account.
func (r *PgxWalletRepository) SaveAccount(ctx context.Context, account domain.WalletAccount) error {
	m := mapping.ToModelWalletAccount(account)
	query := `
		INSERT INTO wallet_accounts (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerID,
		m.CurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save wallet account %s", m.AccountID))
	}
	return nil
}

// FindAccountByID retrieves a wallet account by its ID.
func (r *PgxWalletRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.WalletAccount, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_accounts WHERE account_id = $1;`
	acc, err := scanWallet(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, mapPgError(err, "failed to find wallet account "+accountID)
	}
	return acc, nil
}

// FindAccountByOwner retrieves the owner's wallet in one currency.
func (r *PgxWalletRepository) FindAccountByOwner(ctx context.Context, ownerID, currencyCode string) (*domain.WalletAccount, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_accounts WHERE owner_id = $1 AND currency_code = $2;`
	acc, err := scanWallet(r.Pool.QueryRow(ctx, query, ownerID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no %s wallet for user %s", apperrors.ErrNotFound, currencyCode, ownerID)
		}
		return nil, mapPgError(err, "failed to find wallet account for owner "+ownerID)
	}
	return acc, nil
}

// LockAccount selects the wallet row FOR UPDATE within tx.
func (r *PgxWalletRepository) LockAccount(ctx context.Context, tx portsrepo.Tx, accountID string) (*domain.WalletAccount, error) {
	q, err := r.requireTx(tx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + walletColumns + ` FROM wallet_accounts WHERE account_id = $1 FOR UPDATE;`
	acc, err := scanWallet(q.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, mapPgError(err, "failed to lock wallet account "+accountID)
	}
	return acc, nil
}
