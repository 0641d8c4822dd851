package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/handlers"
	"github.com/ganges/ganges_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const createBody = `{
	"pickupAddress": {"line1": "1 MG Road", "city": "Bengaluru", "countryCode": "IN"},
	"deliveryAddress": {"line1": "7 Marine Drive", "city": "Mumbai", "countryCode": "IN"},
	"weight": "5",
	"serviceLevel": "STANDARD",
	"idempotencyKey": "ship-1"
}`

type ShipmentHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockShipmentService *MockShipmentService
	customerToken       string
	driverToken         string
}

func TestShipmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(ShipmentHandlerTestSuite))
}

func (suite *ShipmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockShipmentService = new(MockShipmentService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	handlers.RegisterShipmentRoutes(v1, suite.mockShipmentService)

	suite.customerToken = testToken("cust-1", domain.RoleCustomer)
	suite.driverToken = testToken("driver-1", domain.RoleDriver)
}

func (suite *ShipmentHandlerTestSuite) TearDownTest() {
	suite.mockShipmentService.AssertExpectations(suite.T())
}

func (suite *ShipmentHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ShipmentHandlerTestSuite) errorKind(w *httptest.ResponseRecorder) string {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Kind
}

func (suite *ShipmentHandlerTestSuite) TestCreateShipment() {
	resp := &dto.CreateShipmentResponse{ShipmentID: "sh-1", TrackingNumber: "GNG0000000001", Status: domain.StatusPending, TotalCost: "25.00", ChargeEntryID: "e-1"}
	suite.mockShipmentService.On("CreateShipment", mock.Anything, mock.Anything,
		mock.MatchedBy(func(req dto.CreateShipmentRequest) bool {
			return req.IdempotencyKey == "ship-1" && req.Weight.Equal(decimal.NewFromInt(5)) && req.PickupAddress.City == "Bengaluru"
		})).Return(resp, nil).Once()

	w := suite.serve(newRequest(http.MethodPost, "/api/v1/shipments", createBody, suite.customerToken))
	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("/api/v1/shipments/sh-1", w.Header().Get("Location"))

	var got dto.CreateShipmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("GNG0000000001", got.TrackingNumber)
	suite.Equal("25.00", got.TotalCost)
	suite.Equal(domain.StatusPending, got.Status)
}

func (suite *ShipmentHandlerTestSuite) TestCreateShipmentReplay() {
	suite.mockShipmentService.On("CreateShipment", mock.Anything, mock.Anything, mock.Anything).
		Return(&dto.CreateShipmentResponse{ShipmentID: "sh-1", Replayed: true}, nil).Once()

	w := suite.serve(newRequest(http.MethodPost, "/api/v1/shipments", createBody, suite.customerToken))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("true", w.Header().Get(handlers.ReplayedHeader))
	suite.Empty(w.Header().Get("Location"))
}

func (suite *ShipmentHandlerTestSuite) TestCreateShipmentFailures() {
	testCases := []struct {
		name   string
		err    error
		status int
		kind   apperrors.Kind
	}{
		{"weight", fmt.Errorf("%w: weight must be positive", apperrors.ErrInvalidWeight), http.StatusBadRequest, apperrors.KindInvalidWeight},
		{"funds", apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, apperrors.KindInsufficientFunds},
		{"no wallet", apperrors.ErrNotFound, http.StatusNotFound, apperrors.KindNotFound},
		{"in progress", apperrors.ErrOperationInProgress, http.StatusConflict, apperrors.KindOperationInProgress},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockShipmentService.On("CreateShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err).Once()
			w := suite.serve(newRequest(http.MethodPost, "/api/v1/shipments", createBody, suite.customerToken))
			suite.Equal(tc.status, w.Code)
			suite.Equal(string(tc.kind), suite.errorKind(w))
		})
	}
}

func (suite *ShipmentHandlerTestSuite) TestCreateShipmentBindingErrors() {
	badCountry := `{
		"pickupAddress": {"line1": "a", "city": "Pune", "countryCode": "India"},
		"deliveryAddress": {"line1": "b", "city": "Delhi", "countryCode": "IN"},
		"weight": "1", "serviceLevel": "STANDARD", "idempotencyKey": "k"
	}`
	w := suite.serve(newRequest(http.MethodPost, "/api/v1/shipments", badCountry, suite.customerToken))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "2-letter country code")

	w = suite.serve(newRequest(http.MethodPost, "/api/v1/shipments", `{"weight": "1"`, suite.customerToken))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(string(apperrors.KindValidation), suite.errorKind(w))
}

func (suite *ShipmentHandlerTestSuite) TestGetAndTrackShipment() {
	detail := &dto.ShipmentDetailResponse{
		Shipment:      dto.ShipmentResponse{ShipmentID: "sh-1", TrackingNumber: "GNGABC", Status: domain.StatusAssigned},
		StatusHistory: []dto.StatusHistoryResponse{{Status: domain.StatusPending}, {Status: domain.StatusAssigned}},
	}
	suite.mockShipmentService.On("GetShipment", mock.Anything, actorIs("driver-1", domain.RoleDriver), "sh-1").Return(detail, nil).Once()
	suite.mockShipmentService.On("GetShipmentByTrackingNumber", mock.Anything, mock.Anything, "GNGABC").Return(detail, nil).Once()
	suite.mockShipmentService.On("GetShipmentByTrackingNumber", mock.Anything, mock.Anything, "GNGNOPE").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(newRequest(http.MethodGet, "/api/v1/shipments/sh-1", "", suite.driverToken))
	suite.Equal(http.StatusOK, w.Code)
	var got dto.ShipmentDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.StatusHistory, 2)

	w = suite.serve(newRequest(http.MethodGet, "/api/v1/tracking/GNGABC", "", suite.customerToken))
	suite.Equal(http.StatusOK, w.Code)

	w = suite.serve(newRequest(http.MethodGet, "/api/v1/tracking/GNGNOPE", "", suite.customerToken))
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ShipmentHandlerTestSuite) TestTransitionShipment() {
	suite.mockShipmentService.On("TransitionShipment", mock.Anything, actorIs("driver-1", domain.RoleDriver), "sh-1",
		mock.MatchedBy(func(req dto.TransitionShipmentRequest) bool { return req.ToStatus == "IN_TRANSIT" })).
		Return(&dto.TransitionShipmentResponse{ShipmentID: "sh-1", Status: domain.StatusInTransit, HistoryLength: 3}, nil).Once()

	w := suite.serve(newRequest(http.MethodPost, "/api/v1/shipments/sh-1/transitions", `{"toStatus":"IN_TRANSIT"}`, suite.driverToken))
	suite.Equal(http.StatusOK, w.Code)
	var got dto.TransitionShipmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(3, got.HistoryLength)
	suite.Nil(got.RefundEntryID)
}

func (suite *ShipmentHandlerTestSuite) TestTransitionShipmentErrors() {
	w := suite.serve(newRequest(http.MethodPost, "/api/v1/shipments/sh-1/transitions", `{"note":"x"}`, suite.customerToken))
	suite.Equal(http.StatusBadRequest, w.Code, "toStatus is required")

	suite.mockShipmentService.On("TransitionShipment", mock.Anything, mock.Anything, "sh-1", mock.Anything).
		Return(nil, fmt.Errorf("%w: cannot move shipment from DELIVERED to CANCELLED", apperrors.ErrInvalidTransition)).Once()
	w = suite.serve(newRequest(http.MethodPost, "/api/v1/shipments/sh-1/transitions", `{"toStatus":"CANCELLED"}`, suite.customerToken))
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(string(apperrors.KindInvalidTransition), suite.errorKind(w))
	suite.Contains(w.Body.String(), "DELIVERED to CANCELLED")
}

func (suite *ShipmentHandlerTestSuite) TestQuote() {
	suite.mockShipmentService.On("Quote", mock.Anything, mock.MatchedBy(func(req dto.QuoteRequest) bool { return req.Tier == "LOCAL" })).
		Return(&dto.QuoteResponse{Tier: domain.TierLocal, ServiceLevel: domain.ServiceStandard, CostResponse: dto.CostResponse{TotalCost: "7.50"}}, nil).Once()
	suite.mockShipmentService.On("Quote", mock.Anything, mock.MatchedBy(func(req dto.QuoteRequest) bool { return req.Tier == "" })).
		Return(nil, fmt.Errorf("%w: tier or both addresses are required", apperrors.ErrValidation)).Once()

	w := suite.serve(newRequest(http.MethodPost, "/api/v1/quotes", `{"weight":1,"serviceLevel":"STANDARD","tier":"LOCAL"}`, suite.customerToken))
	suite.Equal(http.StatusOK, w.Code)
	var got dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("7.50", got.TotalCost)

	w = suite.serve(newRequest(http.MethodPost, "/api/v1/quotes", `{"weight":1,"serviceLevel":"STANDARD"}`, suite.customerToken))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestMutatingRoutesAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := new(MockShipmentService)
	svc.On("CreateShipment", mock.Anything, mock.Anything, mock.Anything).
		Return(&dto.CreateShipmentResponse{ShipmentID: "sh-1"}, nil)
	svc.On("GetShipment", mock.Anything, mock.Anything, "sh-1").
		Return(&dto.ShipmentDetailResponse{}, nil)

	rl, err := middleware.NewRateLimiter("1-M")
	if err != nil {
		t.Fatal(err)
	}
	v1 := router.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	handlers.RegisterShipmentRoutes(v1, svc, middleware.RateLimit(rl))

	token := testToken("cust-1", domain.RoleCustomer)
	statuses := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/shipments", createBody, token))
		statuses = append(statuses, w.Code)
	}
	if statuses[0] != http.StatusCreated || statuses[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [201 429], got %v", statuses)
	}

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/shipments/sh-1", "", token))
		if w.Code != http.StatusOK {
			t.Fatalf("reads are not limited, got %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	other := testToken("cust-2", domain.RoleCustomer)
	router.ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/shipments", createBody, other))
	if w.Code != http.StatusCreated {
		t.Fatalf("limits are per user, got %d", w.Code)
	}
}
