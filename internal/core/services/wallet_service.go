package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/platform/metrics"
	"github.com/ganges/ganges_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "INR"

type walletService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	walletRepo      portsrepo.WalletRepositoryFacade
	ledgerRepo      portsrepo.LedgerReader
	ledger          portssvc.LedgerSvc
	idempotency     portssvc.IdempotencySvc
	gateway         portssvc.PaymentGateway
	retry           RetryPolicy
	defaultCurrency string
}

// WalletServiceOption is a functional option for configuring the wallet service
type WalletServiceOption func(*walletService)

// WithPaymentGateway sets the gateway charged after a top-up commits.
func WithPaymentGateway(g portssvc.PaymentGateway) WalletServiceOption {
	return func(s *walletService) {
		s.gateway = g
	}
}

// WithDefaultCurrency sets the currency of wallets opened without one.
func WithDefaultCurrency(code string) WalletServiceOption {
	return func(s *walletService) {
		if code != "" {
			s.defaultCurrency = strings.ToUpper(code)
		}
	}
}

// WithWalletRetryPolicy overrides the conflict retry policy.
func WithWalletRetryPolicy(p RetryPolicy) WalletServiceOption {
	return func(s *walletService) {
		s.retry = p
	}
}

// NewWalletService creates a new wallet service with the provided options
func NewWalletService(repos portsrepo.RepositoryProvider, ledger portssvc.LedgerSvc, idempotency portssvc.IdempotencySvc, options ...WalletServiceOption) portssvc.WalletSvcFacade {
	svc := &walletService{
		txManager:       repos.TxManager,
		walletRepo:      repos.WalletRepo,
		ledgerRepo:      repos.LedgerRepo,
		ledger:          ledger,
		idempotency:     idempotency,
		gateway:         NoopGateway{},
		retry:           DefaultRetryPolicy(),
		defaultCurrency: defaultCurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) loadOwned(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, error) {
	acc, err := s.walletRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, actor, acc.OwnerID, "wallet "+accountID); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *walletService) GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, decimal.Decimal, error) {
	acc, err := s.loadOwned(ctx, actor, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	balance, err := s.ledger.BalanceOf(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance", slog.String("account_id", accountID))
		return nil, decimal.Zero, err
	}
	return acc, balance, nil
}

func (s *walletService) GetBalance(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, decimal.Decimal, error) {
	return s.GetAccount(ctx, actor, accountID)
}

func (s *walletService) ListEntries(ctx context.Context, actor domain.Actor, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.loadOwned(ctx, actor, accountID); err != nil {
		return nil, err
	}
	entries, next, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list ledger entries", slog.String("account_id", accountID))
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: next,
	}, nil
}

func (s *walletService) OpenAccount(ctx context.Context, actor domain.Actor, req dto.OpenWalletRequest) (*domain.WalletAccount, bool, error) {
	if actor.UserID == "" {
		return nil, false, fmt.Errorf("%w: no user in request", apperrors.ErrUnauthorized)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = s.defaultCurrency
	}

	existing, err := s.walletRepo.FindAccountByOwner(ctx, actor.UserID, currency)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	now := s.Now()
	account := domain.WalletAccount{
		AccountID:    uuid.NewString(),
		OwnerID:      actor.UserID,
		CurrencyCode: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.walletRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent open; hand back the winner's account.
			existing, findErr := s.walletRepo.FindAccountByOwner(ctx, actor.UserID, currency)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		s.LogError(ctx, err, "Failed to open wallet", slog.String("user_id", actor.UserID))
		return nil, false, err
	}

	s.LogInfo(ctx, "Wallet opened",
		slog.String("account_id", account.AccountID),
		slog.String("currency_code", currency))
	return &account, true, nil
}

// AddFunds credits a TOPUP once per idempotency key, then asks the payment
// gateway to collect the money.
func (s *walletService) AddFunds(ctx context.Context, actor domain.Actor, accountID string, req dto.AddFundsRequest) (*dto.AddFundsResponse, error) {
	if err := validateMoney(req.Amount, false); err != nil {
		return nil, err
	}
	acc, err := s.loadOwned(ctx, actor, accountID)
	if err != nil {
		return nil, err
	}

	scope := domain.IdempotencyScope{UserID: actor.UserID, OperationType: domain.OpAddFunds, Key: req.IdempotencyKey}
	hash, err := RequestHash(struct {
		AccountID string `json:"accountID"`
		Amount    string `json:"amount"`
	}{accountID, req.Amount.StringFixed(2)})
	if err != nil {
		return nil, err
	}

	var entry *domain.LedgerEntry
	resp, replayed, err := runIdempotent(ctx, s.idempotency, scope, hash, func(ctx context.Context) (*dto.AddFundsResponse, error) {
		var out *dto.AddFundsResponse
		err := s.retry.Run(ctx, "wallet.add_funds", func(ctx context.Context) error {
			tx, err := s.txManager.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			key := req.IdempotencyKey
			e, err := s.ledger.Credit(ctx, tx, accountID, req.Amount, domain.ReasonTopUp, portssvc.EntryOptions{
				IdempotencyKey: &key,
				CreatedBy:      actor.UserID,
			})
			if err != nil {
				return err
			}
			balance, err := s.ledger.BalanceInTx(ctx, tx, accountID)
			if err != nil {
				return err
			}
			result := &dto.AddFundsResponse{
				AccountID:  accountID,
				EntryID:    e.EntryID,
				Amount:     utils.FormatMoney(e.Amount),
				NewBalance: utils.FormatMoney(balance),
			}
			if err := s.idempotency.Complete(ctx, tx, scope, result); err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return err
			}
			entry, out = e, result
			return nil
		})
		return out, err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Add funds failed", slog.String("account_id", accountID))
		return nil, err
	}
	if replayed {
		resp.Replayed = true
		return resp, nil
	}

	s.ledger.InvalidateBalance(accountID)
	recordCommitted(entry)
	s.LogInfo(ctx, "Funds added",
		slog.String("account_id", accountID),
		slog.String("entry_id", entry.EntryID),
		slog.String("new_balance", resp.NewBalance))

	s.settle(ctx, acc, entry, req.IdempotencyKey)
	return resp, nil
}

// settle charges the gateway for a committed top-up. The ledger is not touched
// on failure; the entry stays for reconciliation.
func (s *walletService) settle(ctx context.Context, acc *domain.WalletAccount, entry *domain.LedgerEntry, key string) {
	if s.gateway == nil {
		return
	}
	ref, err := s.gateway.Charge(ctx, portssvc.ChargeRequest{
		AccountID:      acc.AccountID,
		EntryID:        entry.EntryID,
		Amount:         entry.Amount,
		CurrencyCode:   acc.CurrencyCode,
		IdempotencyKey: key,
	})
	if err != nil {
		metrics.SettlementFailuresTotal.Inc()
		s.LogError(ctx, err, "Payment gateway charge failed, entry left for reconciliation",
			slog.String("account_id", acc.AccountID),
			slog.String("entry_id", entry.EntryID))
		return
	}
	s.LogDebug(ctx, "Payment gateway charge accepted", slog.String("entry_id", entry.EntryID), slog.String("provider_ref", ref))
}

// Adjust posts an admin correction. Negative amounts are debits and obey the balance floor.
func (s *walletService) Adjust(ctx context.Context, actor domain.Actor, accountID string, req dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if err := s.AuthorizeAdmin(ctx, actor, "wallet adjustment"); err != nil {
		return nil, err
	}
	if err := validateMoney(req.Amount, true); err != nil {
		return nil, err
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, fmt.Errorf("%w: an adjustment needs a note", apperrors.ErrValidation)
	}
	if _, err := s.walletRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	scope := domain.IdempotencyScope{UserID: actor.UserID, OperationType: domain.OpAdjustment, Key: req.IdempotencyKey}
	hash, err := RequestHash(struct {
		AccountID string `json:"accountID"`
		Amount    string `json:"amount"`
		Note      string `json:"note"`
	}{accountID, req.Amount.StringFixed(2), note})
	if err != nil {
		return nil, err
	}

	var entry *domain.LedgerEntry
	resp, replayed, err := runIdempotent(ctx, s.idempotency, scope, hash, func(ctx context.Context) (*dto.AdjustmentResponse, error) {
		var out *dto.AdjustmentResponse
		err := s.retry.Run(ctx, "wallet.adjust", func(ctx context.Context) error {
			tx, err := s.txManager.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			key := req.IdempotencyKey
			opts := portssvc.EntryOptions{IdempotencyKey: &key, Note: note, CreatedBy: actor.UserID}
			var e *domain.LedgerEntry
			if req.Amount.IsPositive() {
				e, err = s.ledger.Credit(ctx, tx, accountID, req.Amount, domain.ReasonAdjustment, opts)
			} else {
				e, err = s.ledger.Debit(ctx, tx, accountID, req.Amount.Abs(), domain.ReasonAdjustment, opts)
			}
			if err != nil {
				return err
			}
			balance, err := s.ledger.BalanceInTx(ctx, tx, accountID)
			if err != nil {
				return err
			}
			result := &dto.AdjustmentResponse{
				AccountID:  accountID,
				EntryID:    e.EntryID,
				Amount:     utils.FormatMoney(e.Amount),
				NewBalance: utils.FormatMoney(balance),
			}
			if err := s.idempotency.Complete(ctx, tx, scope, result); err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return err
			}
			entry, out = e, result
			return nil
		})
		return out, err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Adjustment failed", slog.String("account_id", accountID))
		return nil, err
	}
	if replayed {
		resp.Replayed = true
		return resp, nil
	}

	s.ledger.InvalidateBalance(accountID)
	recordCommitted(entry)
	s.LogInfo(ctx, "Adjustment posted",
		slog.String("account_id", accountID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", resp.Amount))
	return resp, nil
}
