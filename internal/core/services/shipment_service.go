package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/core/pricing"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/platform/metrics"
	"github.com/ganges/ganges_backend/internal/utils"
	"github.com/ganges/ganges_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultTrackingAttempts = 8

type shipmentService struct {
	BaseService
	txManager        portsrepo.TransactionManager
	walletRepo       portsrepo.WalletReader
	ledgerRepo       portsrepo.LedgerReader
	shipmentRepo     portsrepo.ShipmentRepositoryFacade
	ledger           portssvc.LedgerSvc
	idempotency      portssvc.IdempotencySvc
	tracking         portssvc.TrackingNumberGenerator
	rates            pricing.RateCard
	retry            RetryPolicy
	currency         string
	trackingAttempts int
}

// ShipmentServiceOption is a functional option for configuring the shipment service
type ShipmentServiceOption func(*shipmentService)

// WithTrackingNumberGenerator replaces the tracking number source.
func WithTrackingNumberGenerator(g portssvc.TrackingNumberGenerator) ShipmentServiceOption {
	return func(s *shipmentService) {
		s.tracking = g
	}
}

// WithTrackingMaxAttempts bounds tracking number regeneration per shipment.
func WithTrackingMaxAttempts(n int) ShipmentServiceOption {
	return func(s *shipmentService) {
		if n > 0 {
			s.trackingAttempts = n
		}
	}
}

// WithRateCard replaces the tariff.
func WithRateCard(card pricing.RateCard) ShipmentServiceOption {
	return func(s *shipmentService) {
		s.rates = card
	}
}

// WithShipmentRetryPolicy overrides the conflict retry policy.
func WithShipmentRetryPolicy(p RetryPolicy) ShipmentServiceOption {
	return func(s *shipmentService) {
		s.retry = p
	}
}

// WithChargeCurrency sets which of the customer's wallets pays for shipments.
func WithChargeCurrency(code string) ShipmentServiceOption {
	return func(s *shipmentService) {
		if code != "" {
			s.currency = code
		}
	}
}

// NewShipmentService creates a new shipment service with the provided options
func NewShipmentService(repos portsrepo.RepositoryProvider, ledger portssvc.LedgerSvc, idempotency portssvc.IdempotencySvc, options ...ShipmentServiceOption) portssvc.ShipmentSvcFacade {
	svc := &shipmentService{
		txManager:        repos.TxManager,
		walletRepo:       repos.WalletRepo,
		ledgerRepo:       repos.LedgerRepo,
		shipmentRepo:     repos.ShipmentRepo,
		ledger:           ledger,
		idempotency:      idempotency,
		tracking:         NewTrackingNumberGenerator(),
		rates:            pricing.DefaultRateCard(),
		retry:            DefaultRetryPolicy(),
		currency:         defaultCurrency,
		trackingAttempts: defaultTrackingAttempts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ShipmentSvcFacade = (*shipmentService)(nil)

// price resolves the tier and service level and runs the calculator.
func (s *shipmentService) price(weight decimal.Decimal, tierStr, levelStr string, pickup, delivery *domain.Address) (domain.DistanceTier, domain.ServiceLevel, domain.CostBreakdown, error) {
	level, ok := domain.ParseServiceLevel(levelStr)
	if !ok {
		return "", "", domain.CostBreakdown{}, fmt.Errorf("%w: unknown service level %q", apperrors.ErrValidation, levelStr)
	}

	var tier domain.DistanceTier
	switch {
	case tierStr != "":
		tier, ok = domain.ParseDistanceTier(tierStr)
		if !ok {
			return "", "", domain.CostBreakdown{}, fmt.Errorf("%w: unknown distance tier %q", apperrors.ErrValidation, tierStr)
		}
	case pickup != nil && delivery != nil:
		tier = domain.DeriveTier(*pickup, *delivery)
	default:
		return "", "", domain.CostBreakdown{}, fmt.Errorf("%w: tier or both addresses are required", apperrors.ErrValidation)
	}

	cost, err := s.rates.Calculate(weight, tier, level)
	if err != nil {
		return "", "", domain.CostBreakdown{}, err
	}
	return tier, level, cost, nil
}

func (s *shipmentService) Quote(_ context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	var pickup, delivery *domain.Address
	if req.PickupAddress != nil && req.DeliveryAddress != nil {
		p, d := req.PickupAddress.ToAddress(), req.DeliveryAddress.ToAddress()
		pickup, delivery = &p, &d
	}
	tier, level, cost, err := s.price(req.Weight, req.Tier, req.ServiceLevel, pickup, delivery)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{Tier: tier, ServiceLevel: level, CostResponse: dto.ToCostResponse(cost)}, nil
}

// canView allows the customer, the assigned driver and admins.
func (s *shipmentService) canView(ctx context.Context, actor domain.Actor, sh *domain.Shipment) error {
	if sh.AssigneeID != nil && *sh.AssigneeID == actor.UserID {
		return nil
	}
	return s.AuthorizeOwner(ctx, actor, sh.CustomerID, "shipment "+sh.ShipmentID)
}

// authorizeTransition applies the per-target role rules.
func (s *shipmentService) authorizeTransition(ctx context.Context, actor domain.Actor, sh *domain.Shipment, to domain.ShipmentStatus) error {
	if actor.IsAdmin() {
		return nil
	}
	switch to {
	case domain.StatusAssigned:
		return s.AuthorizeAdmin(ctx, actor, "assigning a driver")
	case domain.StatusInTransit, domain.StatusDelivered:
		if sh.AssigneeID != nil && *sh.AssigneeID == actor.UserID {
			return nil
		}
		return fmt.Errorf("%w: only the assigned driver may move shipment %s to %s", apperrors.ErrForbidden, sh.ShipmentID, to)
	case domain.StatusCancelled:
		return s.AuthorizeOwner(ctx, actor, sh.CustomerID, "shipment "+sh.ShipmentID)
	}
	return fmt.Errorf("%w: shipment %s cannot be moved to %s", apperrors.ErrForbidden, sh.ShipmentID, to)
}

func (s *shipmentService) detail(ctx context.Context, actor domain.Actor, sh *domain.Shipment) (*dto.ShipmentDetailResponse, error) {
	if err := s.canView(ctx, actor, sh); err != nil {
		return nil, err
	}
	history, err := s.shipmentRepo.ListHistory(ctx, nil, sh.ShipmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load shipment history", slog.String("shipment_id", sh.ShipmentID))
		return nil, err
	}
	resp := dto.ToShipmentDetailResponse(sh, history)
	return &resp, nil
}

func (s *shipmentService) GetShipment(ctx context.Context, actor domain.Actor, shipmentID string) (*dto.ShipmentDetailResponse, error) {
	sh, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, actor, sh)
}

func (s *shipmentService) GetShipmentByTrackingNumber(ctx context.Context, actor domain.Actor, trackingNumber string) (*dto.ShipmentDetailResponse, error) {
	sh, err := s.shipmentRepo.FindShipmentByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, actor, sh)
}

// CreateShipment prices the parcel, stores it PENDING with its first history
// record and debits the charge. All of it commits together with the
// idempotency record, or none of it does.
func (s *shipmentService) CreateShipment(ctx context.Context, actor domain.Actor, req dto.CreateShipmentRequest) (*dto.CreateShipmentResponse, error) {
	customerID := actor.UserID
	if req.CustomerID != "" && req.CustomerID != actor.UserID {
		if err := s.AuthorizeAdmin(ctx, actor, "creating a shipment for another customer"); err != nil {
			return nil, err
		}
		customerID = req.CustomerID
	}

	pickup, delivery := req.PickupAddress.ToAddress(), req.DeliveryAddress.ToAddress()
	tier, level, cost, err := s.price(req.Weight, req.Tier, req.ServiceLevel, &pickup, &delivery)
	if err != nil {
		s.LogWarn(ctx, err, "Shipment rejected before persistence")
		return nil, err
	}

	account, err := s.walletRepo.FindAccountByOwner(ctx, customerID, s.currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Customer has no wallet to charge", slog.String("customer_id", customerID))
		}
		return nil, err
	}

	scope := domain.IdempotencyScope{UserID: actor.UserID, OperationType: domain.OpCreateShipment, Key: req.IdempotencyKey}
	hash, err := RequestHash(struct {
		CustomerID string         `json:"customerID"`
		Pickup     domain.Address `json:"pickup"`
		Delivery   domain.Address `json:"delivery"`
		Weight     string         `json:"weight"`
		Tier       string         `json:"tier"`
		Level      string         `json:"serviceLevel"`
	}{customerID, pickup, delivery, req.Weight.String(), string(tier), string(level)})
	if err != nil {
		return nil, err
	}

	var charge *domain.LedgerEntry
	resp, replayed, err := runIdempotent(ctx, s.idempotency, scope, hash, func(ctx context.Context) (*dto.CreateShipmentResponse, error) {
		var out *dto.CreateShipmentResponse
		err := s.retry.Run(ctx, "shipment.create", func(ctx context.Context) error {
			tx, err := s.txManager.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			now := s.Now()
			shipment := domain.Shipment{
				ShipmentID:      uuid.NewString(),
				CustomerID:      customerID,
				AccountID:       account.AccountID,
				PickupAddress:   pickup,
				DeliveryAddress: delivery,
				Weight:          req.Weight,
				Tier:            tier,
				ServiceLevel:    level,
				Cost:            cost,
				Status:          domain.StatusPending,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     actor.UserID,
					LastUpdatedAt: now,
					LastUpdatedBy: actor.UserID,
				},
			}
			if err := s.insertWithTrackingNumber(ctx, tx, &shipment); err != nil {
				return err
			}

			if err := s.shipmentRepo.AppendHistory(ctx, tx, domain.StatusHistoryRecord{
				HistoryID:  uuid.NewString(),
				ShipmentID: shipment.ShipmentID,
				Status:     domain.StatusPending,
				Note:       "shipment created",
				ChangedBy:  actor.UserID,
				ChangedAt:  now,
			}); err != nil {
				return err
			}

			shipmentID, key := shipment.ShipmentID, req.IdempotencyKey
			entry, err := s.ledger.Debit(ctx, tx, account.AccountID, cost.TotalCost, domain.ReasonShipmentCharge, portssvc.EntryOptions{
				ShipmentID:     &shipmentID,
				IdempotencyKey: &key,
				CreatedBy:      actor.UserID,
			})
			if err != nil {
				return err
			}

			result := &dto.CreateShipmentResponse{
				ShipmentID:     shipment.ShipmentID,
				TrackingNumber: shipment.TrackingNumber,
				Status:         shipment.Status,
				TotalCost:      utils.FormatMoney(cost.TotalCost),
				ChargeEntryID:  entry.EntryID,
			}
			if err := s.idempotency.Complete(ctx, tx, scope, result); err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return err
			}
			charge, out = entry, result
			return nil
		})
		return out, err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Create shipment failed", slog.String("customer_id", customerID))
		return nil, err
	}
	if replayed {
		resp.Replayed = true
		return resp, nil
	}

	s.ledger.InvalidateBalance(account.AccountID)
	recordCommitted(charge)
	metrics.ShipmentTransitionsTotal.WithLabelValues(string(domain.StatusPending)).Inc()
	s.LogInfo(ctx, "Shipment created",
		slog.String("shipment_id", resp.ShipmentID),
		slog.String("tracking_number", resp.TrackingNumber),
		slog.String("total_cost", resp.TotalCost))
	return resp, nil
}

// insertWithTrackingNumber draws tracking numbers until one is free.
func (s *shipmentService) insertWithTrackingNumber(ctx context.Context, tx portsrepo.Tx, shipment *domain.Shipment) error {
	for attempt := 1; attempt <= s.trackingAttempts; attempt++ {
		tn, err := s.tracking.Next()
		if err != nil {
			return apperrors.NewAppError(500, "failed to generate tracking number", err)
		}
		shipment.TrackingNumber = tn

		err = s.shipmentRepo.InsertShipment(ctx, tx, *shipment)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
		s.LogDebug(ctx, "Tracking number collision, regenerating",
			slog.String("tracking_number", tn),
			slog.Int("attempt", attempt))
	}
	return apperrors.NewAppError(500, fmt.Sprintf("no free tracking number after %d attempts", s.trackingAttempts), nil)
}

// TransitionShipment locks the shipment, applies the transition and appends
// history in one transaction. Cancelling a charged shipment credits a REFUND
// for the charge in the same transaction.
func (s *shipmentService) TransitionShipment(ctx context.Context, actor domain.Actor, shipmentID string, req dto.TransitionShipmentRequest) (*dto.TransitionShipmentResponse, error) {
	to, ok := domain.ParseShipmentStatus(req.ToStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown shipment status %q", apperrors.ErrValidation, req.ToStatus)
	}

	var (
		resp   *dto.TransitionShipmentResponse
		refund *domain.LedgerEntry
	)
	err := s.retry.Run(ctx, "shipment.transition", func(ctx context.Context) error {
		resp, refund = nil, nil

		tx, err := s.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		sh, err := s.shipmentRepo.LockShipment(ctx, tx, shipmentID)
		if err != nil {
			return err
		}
		if err := s.canView(ctx, actor, sh); err != nil {
			return err
		}
		from := sh.Status
		if err := domain.ValidateTransition(from, to, domain.TransitionInput{AssigneeID: req.AssigneeID, DeliveredAt: req.DeliveredAt}); err != nil {
			return err
		}
		if err := s.authorizeTransition(ctx, actor, sh, to); err != nil {
			return err
		}

		record, err := sh.ApplyTransition(to, domain.TransitionInput{AssigneeID: req.AssigneeID, DeliveredAt: req.DeliveredAt},
			actor.UserID, req.Note, uuid.NewString(), s.Now())
		if err != nil {
			return err
		}
		if err := s.shipmentRepo.UpdateShipmentStatus(ctx, tx, *sh); err != nil {
			return err
		}
		if err := s.shipmentRepo.AppendHistory(ctx, tx, record); err != nil {
			return err
		}

		if to == domain.StatusCancelled {
			refund, err = s.refundCharge(ctx, tx, actor, sh)
			if err != nil {
				return err
			}
		}

		history, err := s.shipmentRepo.ListHistory(ctx, tx, shipmentID)
		if err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}

		resp = &dto.TransitionShipmentResponse{
			ShipmentID:    shipmentID,
			Status:        sh.Status,
			HistoryLength: len(history),
		}
		if refund != nil {
			resp.RefundEntryID = &refund.EntryID
		}
		s.LogInfo(ctx, "Shipment transitioned",
			slog.String("shipment_id", shipmentID),
			slog.String("from", string(from)),
			slog.String("to", string(to)))
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Shipment transition failed",
			slog.String("shipment_id", shipmentID),
			slog.String("to", string(to)))
		return nil, err
	}

	metrics.ShipmentTransitionsTotal.WithLabelValues(string(to)).Inc()
	if refund != nil {
		s.ledger.InvalidateBalance(refund.AccountID)
		recordCommitted(refund)
	}
	return resp, nil
}

// refundCharge credits back the shipment's charge unless it was already refunded.
func (s *shipmentService) refundCharge(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, sh *domain.Shipment) (*domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByShipment(ctx, tx, sh.ShipmentID)
	if err != nil {
		return nil, err
	}
	charge, refunded := accounting.FindRefundable(entries)
	if charge == nil || refunded {
		return nil, nil
	}

	shipmentID, chargeID := sh.ShipmentID, charge.EntryID
	return s.ledger.Credit(ctx, tx, charge.AccountID, charge.Amount.Abs(), domain.ReasonRefund, portssvc.EntryOptions{
		ShipmentID:     &shipmentID,
		RelatedEntryID: &chargeID,
		Note:           "refund for cancelled shipment " + sh.TrackingNumber,
		CreatedBy:      actor.UserID,
	})
}
