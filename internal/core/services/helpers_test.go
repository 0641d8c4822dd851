package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/core/services"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/platform/config"
	"github.com/ganges/ganges_backend/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var (
	customer = domain.Actor{UserID: "cust-1", Role: domain.RoleCustomer}
	other    = domain.Actor{UserID: "cust-2", Role: domain.RoleCustomer}
	driver   = domain.Actor{UserID: "driver-1", Role: domain.RoleDriver}
	admin    = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultCurrency:     "INR",
		IdempotencyTTL:      time.Hour,
		TxMaxRetries:        3,
		TxRetryBaseDelay:    time.Millisecond,
		BalanceCacheSize:    16,
		TrackingMaxAttempts: 8,
	}
}

// harness wires the real services onto a fresh memory store.
type harness struct {
	repos     portsrepo.RepositoryProvider
	container *portssvc.ServiceContainer
}

func newHarness(options ...services.ContainerOption) *harness {
	repos := memory.NewRepositoryProvider(memory.NewStore())
	return &harness{
		repos:     repos,
		container: services.NewServiceContainer(testConfig(), repos, options...),
	}
}

// fundedWallet opens the actor's wallet and tops it up when amount is positive.
func (h *harness) fundedWallet(ctx context.Context, actor domain.Actor, amount string) *domain.WalletAccount {
	acc, _, err := h.container.Wallet.OpenAccount(ctx, actor, dto.OpenWalletRequest{})
	if err != nil {
		panic(err)
	}
	if amt := decimal.RequireFromString(amount); amt.IsPositive() {
		_, err := h.container.Wallet.AddFunds(ctx, actor, acc.AccountID, dto.AddFundsRequest{
			Amount:         amt,
			IdempotencyKey: fmt.Sprintf("seed-%s-%s", actor.UserID, amount),
		})
		if err != nil {
			panic(err)
		}
	}
	return acc
}

func (h *harness) balance(ctx context.Context, accountID string) decimal.Decimal {
	b, err := h.container.Ledger.BalanceOf(ctx, accountID)
	if err != nil {
		panic(err)
	}
	return b
}

func domesticRequest(key string, weight string) dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		PickupAddress:   dto.AddressRequest{Line1: "1 MG Road", City: "Bengaluru", CountryCode: "IN"},
		DeliveryAddress: dto.AddressRequest{Line1: "7 Marine Drive", City: "Mumbai", CountryCode: "IN"},
		Weight:          decimal.RequireFromString(weight),
		ServiceLevel:    "STANDARD",
		IdempotencyKey:  key,
	}
}

// sequenceTracking hands out codes in order, then unique fallbacks.
type sequenceTracking struct {
	mu    sync.Mutex
	codes []string
	n     int
}

func (g *sequenceTracking) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	if len(g.codes) > 0 {
		c := g.codes[0]
		g.codes = g.codes[1:]
		return c, nil
	}
	return fmt.Sprintf("GNGSEQ%06d", g.n), nil
}

// MockPaymentGateway is a mock type for the PaymentGateway interface
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(ctx context.Context, req portssvc.ChargeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
