package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/ganges/ganges_backend/internal/core/domain"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "ganges-test"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, decimal.Decimal, error) {
	args := m.Called(ctx, actor, accountID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.WalletAccount), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWalletService) GetBalance(ctx context.Context, actor domain.Actor, accountID string) (*domain.WalletAccount, decimal.Decimal, error) {
	args := m.Called(ctx, actor, accountID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.WalletAccount), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWalletService) ListEntries(ctx context.Context, actor domain.Actor, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, actor, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockWalletService) OpenAccount(ctx context.Context, actor domain.Actor, req dto.OpenWalletRequest) (*domain.WalletAccount, bool, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.WalletAccount), args.Bool(1), args.Error(2)
}

func (m *MockWalletService) AddFunds(ctx context.Context, actor domain.Actor, accountID string, req dto.AddFundsRequest) (*dto.AddFundsResponse, error) {
	args := m.Called(ctx, actor, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AddFundsResponse), args.Error(1)
}

func (m *MockWalletService) Adjust(ctx context.Context, actor domain.Actor, accountID string, req dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	args := m.Called(ctx, actor, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdjustmentResponse), args.Error(1)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock ShipmentService ---
type MockShipmentService struct {
	mock.Mock
}

func (m *MockShipmentService) GetShipment(ctx context.Context, actor domain.Actor, shipmentID string) (*dto.ShipmentDetailResponse, error) {
	args := m.Called(ctx, actor, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ShipmentDetailResponse), args.Error(1)
}

func (m *MockShipmentService) GetShipmentByTrackingNumber(ctx context.Context, actor domain.Actor, trackingNumber string) (*dto.ShipmentDetailResponse, error) {
	args := m.Called(ctx, actor, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ShipmentDetailResponse), args.Error(1)
}

func (m *MockShipmentService) CreateShipment(ctx context.Context, actor domain.Actor, req dto.CreateShipmentRequest) (*dto.CreateShipmentResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateShipmentResponse), args.Error(1)
}

func (m *MockShipmentService) TransitionShipment(ctx context.Context, actor domain.Actor, shipmentID string, req dto.TransitionShipmentRequest) (*dto.TransitionShipmentResponse, error) {
	args := m.Called(ctx, actor, shipmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransitionShipmentResponse), args.Error(1)
}

func (m *MockShipmentService) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuoteResponse), args.Error(1)
}

var _ portssvc.ShipmentSvcFacade = (*MockShipmentService)(nil)

// testToken signs a token accepted by the test router.
func testToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), testSecret, time.Hour, testIssuer)
	if err != nil {
		panic(err)
	}
	return token
}

func newRequest(method, path, body, token string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func actorIs(userID string, role domain.Role) any {
	return mock.MatchedBy(func(a domain.Actor) bool {
		return a.UserID == userID && a.Role == role
	})
}
