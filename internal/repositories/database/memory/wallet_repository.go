package memory

import (
	"context"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
)

type walletRepository struct {
	store *Store
}

var _ portsrepo.WalletRepositoryFacade = (*walletRepository)(nil)

func (r *walletRepository) SaveAccount(_ context.Context, account domain.WalletAccount) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: wallet account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	k := ownerKey{ownerID: account.OwnerID, currency: account.CurrencyCode}
	if _, ok := s.owners[k]; ok {
		return fmt.Errorf("%w: %s wallet for user %s", apperrors.ErrDuplicate, account.CurrencyCode, account.OwnerID)
	}
	s.accounts[account.AccountID] = account
	s.owners[k] = account.AccountID
	return nil
}

func (r *walletRepository) FindAccountByID(_ context.Context, accountID string) (*domain.WalletAccount, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: wallet account %s", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (r *walletRepository) FindAccountByOwner(_ context.Context, ownerID, currencyCode string) (*domain.WalletAccount, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.owners[ownerKey{ownerID: ownerID, currency: currencyCode}]
	if !ok {
		return nil, fmt.Errorf("%w: no %s wallet for user %s", apperrors.ErrNotFound, currencyCode, ownerID)
	}
	acc := s.accounts[id]
	return &acc, nil
}

func (r *walletRepository) LockAccount(ctx context.Context, tx portsrepo.Tx, accountID string) (*domain.WalletAccount, error) {
	t, err := requireTx(tx)
	if err != nil {
		return nil, err
	}
	if _, err := r.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	if err := t.lock(ctx, "account:"+accountID); err != nil {
		return nil, err
	}
	return r.FindAccountByID(ctx, accountID)
}
