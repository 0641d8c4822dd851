package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/core/services"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	gateway *MockPaymentGateway
	h       *harness
	acc     *domain.WalletAccount
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.gateway = new(MockPaymentGateway)
	s.gateway.On("Charge", mock.Anything, mock.Anything).Return("ref-1", nil).Maybe()
	s.h = newHarness(services.WithContainerPaymentGateway(s.gateway))

	acc, created, err := s.h.container.Wallet.OpenAccount(s.ctx, customer, dto.OpenWalletRequest{})
	s.Require().NoError(err)
	s.True(created)
	s.acc = acc
}

func (s *WalletServiceTestSuite) addFunds(actor domain.Actor, key, amount string) (*dto.AddFundsResponse, error) {
	return s.h.container.Wallet.AddFunds(s.ctx, actor, s.acc.AccountID, dto.AddFundsRequest{Amount: dec(amount), IdempotencyKey: key})
}

func (s *WalletServiceTestSuite) TestOpenAccountReturnsExisting() {
	again, created, err := s.h.container.Wallet.OpenAccount(s.ctx, customer, dto.OpenWalletRequest{CurrencyCode: "inr"})
	s.Require().NoError(err)
	s.False(created)
	s.Equal(s.acc.AccountID, again.AccountID)
	s.Equal("INR", again.CurrencyCode)

	usd, created, err := s.h.container.Wallet.OpenAccount(s.ctx, customer, dto.OpenWalletRequest{CurrencyCode: "USD"})
	s.Require().NoError(err)
	s.True(created)
	s.NotEqual(s.acc.AccountID, usd.AccountID)
}

func (s *WalletServiceTestSuite) TestAddFundsCreditsOnce() {
	first, err := s.addFunds(customer, "topup-1", "100")
	s.Require().NoError(err)
	s.Equal("100.00", first.NewBalance)
	s.False(first.Replayed)

	second, err := s.addFunds(customer, "topup-1", "100.00")
	s.Require().NoError(err, "same amount written differently is the same request")
	s.True(second.Replayed)
	s.Equal(first.EntryID, second.EntryID)
	s.Equal(first.NewBalance, second.NewBalance)

	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("100")))
	s.gateway.AssertNumberOfCalls(s.T(), "Charge", 1)
}

func (s *WalletServiceTestSuite) TestAddFundsKeyReuseWithDifferentAmountConflicts() {
	_, err := s.addFunds(customer, "topup-1", "100")
	s.Require().NoError(err)

	_, err = s.addFunds(customer, "topup-1", "50")
	s.ErrorIs(err, apperrors.ErrConflict)
	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("100")))
}

func (s *WalletServiceTestSuite) TestConcurrentSameKeyCreditsOnce() {
	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.addFunds(customer, "burst", "25")
		}(i)
	}
	wg.Wait()

	for _, err := range results {
		if err != nil {
			s.ErrorIs(err, apperrors.ErrOperationInProgress)
		}
	}
	s.True(s.h.balance(s.ctx, s.acc.AccountID).Equal(dec("25")))

	replay, err := s.addFunds(customer, "burst", "25")
	s.Require().NoError(err)
	s.True(replay.Replayed)
}

func (s *WalletServiceTestSuite) TestInvalidAmountRejectedBeforeReservingKey() {
	for _, amt := range []string{"0", "-10", "1.005", "1000000000.01", "100000000000000000"} {
		_, err := s.addFunds(customer, "k", amt)
		s.ErrorIs(err, apperrors.ErrInvalidAmount, amt)
	}
	resp, err := s.addFunds(customer, "k", "10")
	s.Require().NoError(err, "the key was never reserved")
	s.False(resp.Replayed)
}

func (s *WalletServiceTestSuite) TestMissingKeyIsRejected() {
	_, err := s.addFunds(customer, "", "10")
	s.ErrorIs(err, apperrors.ErrValidation)
	s.True(s.h.balance(s.ctx, s.acc.AccountID).IsZero())
}

func (s *WalletServiceTestSuite) TestOtherCustomersCannotTouchWallet() {
	_, err := s.addFunds(other, "k", "10")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, _, err = s.h.container.Wallet.GetBalance(s.ctx, other, s.acc.AccountID)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, _, err = s.h.container.Wallet.GetBalance(s.ctx, admin, s.acc.AccountID)
	s.NoError(err, "admins can read any wallet")
}

func (s *WalletServiceTestSuite) TestGatewayFailureKeepsCredit() {
	failing := new(MockPaymentGateway)
	failing.On("Charge", mock.Anything, mock.MatchedBy(func(req portssvc.ChargeRequest) bool {
		return req.AccountID == s.acc.AccountID && req.Amount.Equal(dec("40")) && req.IdempotencyKey == "k"
	})).Return("", errors.New("provider down")).Once()

	s.h = newHarness(services.WithContainerPaymentGateway(failing))
	acc := s.h.fundedWallet(s.ctx, customer, "0")
	s.acc = acc

	resp, err := s.addFunds(customer, "k", "40")
	s.Require().NoError(err)
	s.Equal("40.00", resp.NewBalance)
	s.True(s.h.balance(s.ctx, acc.AccountID).Equal(dec("40")))
	failing.AssertExpectations(s.T())
}

func (s *WalletServiceTestSuite) TestAdjustments() {
	_, err := s.addFunds(customer, "seed", "30")
	s.Require().NoError(err)

	_, err = s.h.container.Wallet.Adjust(s.ctx, customer, s.acc.AccountID, dto.AdjustmentRequest{Amount: dec("5"), Note: "n", IdempotencyKey: "a1"})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.h.container.Wallet.Adjust(s.ctx, admin, s.acc.AccountID, dto.AdjustmentRequest{Amount: dec("-31"), Note: "clawback", IdempotencyKey: "a1"})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	resp, err := s.h.container.Wallet.Adjust(s.ctx, admin, s.acc.AccountID, dto.AdjustmentRequest{Amount: dec("-30"), Note: "clawback", IdempotencyKey: "a1"})
	s.Require().NoError(err, "the failed attempt released the key")
	s.Equal("-30.00", resp.Amount)
	s.Equal("0.00", resp.NewBalance)

	_, err = s.h.container.Wallet.Adjust(s.ctx, admin, s.acc.AccountID, dto.AdjustmentRequest{Amount: dec("5"), Note: " ", IdempotencyKey: "a2"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.h.container.Wallet.Adjust(s.ctx, admin, s.acc.AccountID, dto.AdjustmentRequest{Amount: dec("-100000000000000000"), Note: "too big", IdempotencyKey: "a3"})
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *WalletServiceTestSuite) TestListEntriesPages() {
	for _, k := range []string{"a", "b", "c"} {
		_, err := s.addFunds(customer, k, "1")
		s.Require().NoError(err)
	}
	page, err := s.h.container.Wallet.ListEntries(s.ctx, customer, s.acc.AccountID, dto.ListEntriesParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(page.Entries, 2)
	s.Require().NotNil(page.NextToken)

	rest, err := s.h.container.Wallet.ListEntries(s.ctx, customer, s.acc.AccountID, dto.ListEntriesParams{Limit: 2, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Len(rest.Entries, 1)
	s.Nil(rest.NextToken)
	s.Equal(domain.ReasonTopUp, rest.Entries[0].Reason)
}

func TestGetAccountUnknown(t *testing.T) {
	h := newHarness()
	_, _, err := h.container.Wallet.GetAccount(context.Background(), customer, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
