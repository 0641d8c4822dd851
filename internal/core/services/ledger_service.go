package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/platform/metrics"
	"github.com/ganges/ganges_backend/internal/utils"
	"github.com/ganges/ganges_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService appends entries to wallet accounts. The balance is never stored;
// it is folded from the entries every time it is needed.
type ledgerService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	walletRepo portsrepo.WalletRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	retry      RetryPolicy
	cache      *balanceCache
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerRetryPolicy overrides the conflict retry policy.
func WithLedgerRetryPolicy(p RetryPolicy) LedgerServiceOption {
	return func(s *ledgerService) {
		s.retry = p
	}
}

// WithBalanceCacheSize enables the balance cache with room for size accounts.
// Zero disables it.
func WithBalanceCacheSize(size int) LedgerServiceOption {
	return func(s *ledgerService) {
		s.cache = newBalanceCache(size)
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(txManager portsrepo.TransactionManager, walletRepo portsrepo.WalletRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvc {
	svc := &ledgerService{
		txManager:  txManager,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		retry:      DefaultRetryPolicy(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) Credit(ctx context.Context, tx portsrepo.Tx, accountID string, amount decimal.Decimal, reason domain.EntryReason, opts portssvc.EntryOptions) (*domain.LedgerEntry, error) {
	return s.post(ctx, tx, accountID, amount, reason, opts, false)
}

func (s *ledgerService) Debit(ctx context.Context, tx portsrepo.Tx, accountID string, amount decimal.Decimal, reason domain.EntryReason, opts portssvc.EntryOptions) (*domain.LedgerEntry, error) {
	return s.post(ctx, tx, accountID, amount, reason, opts, true)
}

func (s *ledgerService) post(ctx context.Context, tx portsrepo.Tx, accountID string, amount decimal.Decimal, reason domain.EntryReason, opts portssvc.EntryOptions, debit bool) (*domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		metrics.LedgerRejectionsTotal.WithLabelValues(string(apperrors.KindInvalidAmount)).Inc()
		return nil, fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if amount.GreaterThan(domain.MaxAmount) {
		metrics.LedgerRejectionsTotal.WithLabelValues(string(apperrors.KindInvalidAmount)).Inc()
		return nil, fmt.Errorf("%w: amount %s exceeds the %s limit", apperrors.ErrInvalidAmount, amount.String(), domain.MaxAmount.String())
	}
	if !reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry reason %q", apperrors.ErrValidation, reason)
	}

	if tx != nil {
		return s.appendInTx(ctx, tx, accountID, amount, reason, opts, debit)
	}

	var entry *domain.LedgerEntry
	err := s.retry.Run(ctx, "ledger."+string(reason), func(ctx context.Context) error {
		own, err := s.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = own.Rollback(ctx) }()

		e, err := s.appendInTx(ctx, own, accountID, amount, reason, opts, debit)
		if err != nil {
			return err
		}
		if err := own.Commit(ctx); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateBalance(accountID)
	recordCommitted(entry)
	return entry, nil
}

// appendInTx locks the account, checks the balance floor for debits and
// inserts the entry. The lock is what makes check-then-insert safe.
func (s *ledgerService) appendInTx(ctx context.Context, tx portsrepo.Tx, accountID string, amount decimal.Decimal, reason domain.EntryReason, opts portssvc.EntryOptions, debit bool) (*domain.LedgerEntry, error) {
	if _, err := s.walletRepo.LockAccount(ctx, tx, accountID); err != nil {
		return nil, err
	}

	signed, err := accounting.SignedAmount(amount, debit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}

	if debit {
		balance, err := s.ledgerRepo.SumByAccount(ctx, tx, accountID)
		if err != nil {
			return nil, err
		}
		if balance.Sub(amount).IsNegative() {
			metrics.LedgerRejectionsTotal.WithLabelValues(string(apperrors.KindInsufficientFunds)).Inc()
			err := fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds,
				utils.FormatMoney(balance), utils.FormatMoney(amount))
			s.LogWarn(ctx, err, "Debit rejected",
				slog.String("account_id", accountID),
				slog.String("reason", string(reason)))
			return nil, err
		}
	}

	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		AccountID:      accountID,
		Amount:         signed,
		Reason:         reason,
		ShipmentID:     opts.ShipmentID,
		RelatedEntryID: opts.RelatedEntryID,
		IdempotencyKey: opts.IdempotencyKey,
		Note:           opts.Note,
		CreatedAt:      s.Now(),
		CreatedBy:      opts.CreatedBy,
	}
	if err := s.ledgerRepo.InsertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Ledger entry staged",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", accountID),
		slog.String("amount", entry.Amount.String()),
		slog.String("reason", string(reason)))
	return &entry, nil
}

func (s *ledgerService) BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if s.cache == nil {
		return s.ledgerRepo.SumByAccount(ctx, nil, accountID)
	}

	// The seq is read before the sum, so the sum covers at least that seq.
	// Per-account appends are serialized by the account lock.
	seq, err := s.ledgerRepo.LatestSeq(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if cached, ok := s.cache.get(accountID, seq); ok {
		return cached, nil
	}

	balance, err := s.ledgerRepo.SumByAccount(ctx, nil, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	s.cache.put(accountID, balance, seq)
	return balance, nil
}

func (s *ledgerService) BalanceInTx(ctx context.Context, tx portsrepo.Tx, accountID string) (decimal.Decimal, error) {
	return s.ledgerRepo.SumByAccount(ctx, tx, accountID)
}

func (s *ledgerService) InvalidateBalance(accountID string) {
	s.cache.invalidate(accountID)
}

// recordCommitted counts entries once their transaction has committed.
func recordCommitted(entries ...*domain.LedgerEntry) {
	for _, e := range entries {
		if e != nil {
			metrics.LedgerEntriesTotal.WithLabelValues(string(e.Reason)).Inc()
		}
	}
}
