package services_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/core/services"
	"github.com/ganges/ganges_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	h   *harness
	acc *domain.WalletAccount
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.h = newHarness()
	s.acc = s.h.fundedWallet(s.ctx, customer, "0")
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func (s *LedgerServiceTestSuite) TestCreditRejectsOutOfRangeAmounts() {
	for _, amt := range []string{"0", "-5", "1000000000.01"} {
		_, err := s.h.container.Ledger.Credit(s.ctx, nil, s.acc.AccountID, dec(amt), domain.ReasonTopUp, portssvc.EntryOptions{})
		s.ErrorIs(err, apperrors.ErrInvalidAmount, amt)
		_, err = s.h.container.Ledger.Debit(s.ctx, nil, s.acc.AccountID, dec(amt), domain.ReasonShipmentCharge, portssvc.EntryOptions{})
		s.ErrorIs(err, apperrors.ErrInvalidAmount, amt)
	}
	s.True(s.h.balance(s.ctx, s.acc.AccountID).IsZero())
}

func (s *LedgerServiceTestSuite) TestCreditAndDebitAdjustBalance() {
	ledger := s.h.container.Ledger

	credit, err := ledger.Credit(s.ctx, nil, s.acc.AccountID, dec("100"), domain.ReasonTopUp, portssvc.EntryOptions{CreatedBy: customer.UserID})
	s.Require().NoError(err)
	s.True(credit.Amount.Equal(dec("100")))
	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("100")))

	debit, err := ledger.Debit(s.ctx, nil, s.acc.AccountID, dec("40.50"), domain.ReasonShipmentCharge, portssvc.EntryOptions{})
	s.Require().NoError(err)
	s.True(debit.Amount.Equal(dec("-40.50")), "debits are stored negative")
	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("59.50")))
}

func (s *LedgerServiceTestSuite) TestDebitBeyondBalanceIsRejected() {
	ledger := s.h.container.Ledger
	_, err := ledger.Credit(s.ctx, nil, s.acc.AccountID, dec("10"), domain.ReasonTopUp, portssvc.EntryOptions{})
	s.Require().NoError(err)

	_, err = ledger.Debit(s.ctx, nil, s.acc.AccountID, dec("10.01"), domain.ReasonShipmentCharge, portssvc.EntryOptions{})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("10")))

	_, err = ledger.Debit(s.ctx, nil, s.acc.AccountID, dec("10"), domain.ReasonShipmentCharge, portssvc.EntryOptions{})
	s.NoError(err, "a debit down to exactly zero is allowed")
	s.True(s.h.balance(s.ctx, s.acc.AccountID).IsZero())
}

func (s *LedgerServiceTestSuite) TestConcurrentDebitsFittingOnlyOnce() {
	ledger := s.h.container.Ledger
	_, err := ledger.Credit(s.ctx, nil, s.acc.AccountID, dec("150"), domain.ReasonTopUp, portssvc.EntryOptions{})
	s.Require().NoError(err)

	amounts := []decimal.Decimal{dec("100"), dec("80")}
	errs := make([]error, len(amounts))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, amt := range amounts {
		wg.Add(1)
		go func(i int, amt decimal.Decimal) {
			defer wg.Done()
			<-start
			_, errs[i] = ledger.Debit(s.ctx, nil, s.acc.AccountID, amt, domain.ReasonShipmentCharge, portssvc.EntryOptions{})
		}(i, amt)
	}
	close(start)
	wg.Wait()

	succeeded := decimal.Zero
	successes := 0
	for i, err := range errs {
		if err == nil {
			successes++
			succeeded = succeeded.Add(amounts[i])
			continue
		}
		s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	}
	s.Equal(1, successes)
	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("150").Sub(succeeded)))
	s.False(s.h.balance(s.ctx, s.acc.AccountID).IsNegative())
}

func (s *LedgerServiceTestSuite) TestManyConcurrentWritersNeverGoNegative() {
	ledger := s.h.container.Ledger
	_, err := ledger.Credit(s.ctx, nil, s.acc.AccountID, dec("50"), domain.ReasonTopUp, portssvc.EntryOptions{})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				_, _ = ledger.Credit(s.ctx, nil, s.acc.AccountID, dec("5"), domain.ReasonTopUp, portssvc.EntryOptions{})
				return
			}
			_, err := ledger.Debit(s.ctx, nil, s.acc.AccountID, dec("7"), domain.ReasonShipmentCharge, portssvc.EntryOptions{})
			if err != nil && !errors.Is(err, apperrors.ErrInsufficientFunds) {
				s.Failf("unexpected error", "%v", err)
			}
		}(i)
	}
	wg.Wait()

	entries := s.allEntries()
	s.NoError(accounting.ValidateRunningBalance(entries))
	s.True(accounting.Balance(entries).Equal(s.h.balance(s.ctx, s.acc.AccountID)))
}

func (s *LedgerServiceTestSuite) TestBalanceIsTheFoldOfEntries() {
	ledger := s.h.container.Ledger
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 60; i++ {
		amt := decimal.New(int64(rng.Intn(5000)+1), -2)
		if rng.Intn(3) == 0 {
			_, _ = ledger.Debit(s.ctx, nil, s.acc.AccountID, amt, domain.ReasonShipmentCharge, portssvc.EntryOptions{})
		} else {
			_, err := ledger.Credit(s.ctx, nil, s.acc.AccountID, amt, domain.ReasonTopUp, portssvc.EntryOptions{})
			s.Require().NoError(err)
		}
		// read through the cache every round so stale values would show up
		_ = s.h.balance(s.ctx, s.acc.AccountID)
	}

	entries := s.allEntries()
	s.True(accounting.Balance(entries).Equal(s.h.balance(s.ctx, s.acc.AccountID)))
	s.NoError(accounting.ValidateRunningBalance(entries))
}

func (s *LedgerServiceTestSuite) TestWritesToDifferentAccountsDoNotBlock() {
	otherAcc := s.h.fundedWallet(s.ctx, other, "0")

	tx, err := s.h.repos.TxManager.Begin(s.ctx)
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(s.ctx) }()
	_, err = s.h.container.Ledger.Credit(s.ctx, tx, s.acc.AccountID, dec("1"), domain.ReasonTopUp, portssvc.EntryOptions{})
	s.Require().NoError(err, "tx now holds the first account")

	done := make(chan error, 1)
	go func() {
		_, err := s.h.container.Ledger.Credit(s.ctx, nil, otherAcc.AccountID, dec("5"), domain.ReasonTopUp, portssvc.EntryOptions{})
		done <- err
	}()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.FailNow("credit to an unrelated account blocked")
	}
}

func (s *LedgerServiceTestSuite) TestCachedBalanceSeesWritesFromAnotherInstance() {
	// a second container over the same store stands in for another replica
	replica := services.NewServiceContainer(testConfig(), s.h.repos)

	_, err := s.h.container.Ledger.Credit(s.ctx, nil, s.acc.AccountID, dec("100"), domain.ReasonTopUp, portssvc.EntryOptions{})
	s.Require().NoError(err)
	s.True(dec("100").Equal(s.h.balance(s.ctx, s.acc.AccountID)))

	_, err = replica.Ledger.Debit(s.ctx, nil, s.acc.AccountID, dec("60"), domain.ReasonShipmentCharge, portssvc.EntryOptions{})
	s.Require().NoError(err)

	s.True(dec("40").Equal(s.h.balance(s.ctx, s.acc.AccountID)), "balance must reflect the replica's debit")

	replicaBalance, err := replica.Ledger.BalanceOf(s.ctx, s.acc.AccountID)
	s.Require().NoError(err)
	s.True(dec("40").Equal(replicaBalance))
}

func (s *LedgerServiceTestSuite) TestUnknownAccount() {
	_, err := s.h.container.Ledger.Credit(s.ctx, nil, "missing", dec("1"), domain.ReasonTopUp, portssvc.EntryOptions{})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// allEntries returns the account's entries oldest first.
func (s *LedgerServiceTestSuite) allEntries() []domain.LedgerEntry {
	var newestFirst []domain.LedgerEntry
	var token *string
	for {
		page, next, err := s.h.repos.LedgerRepo.ListEntriesByAccount(s.ctx, s.acc.AccountID, 100, token)
		s.Require().NoError(err)
		newestFirst = append(newestFirst, page...)
		if next == nil {
			break
		}
		token = next
	}
	out := make([]domain.LedgerEntry, len(newestFirst))
	for i, e := range newestFirst {
		out[len(newestFirst)-1-i] = e
	}
	return out
}
