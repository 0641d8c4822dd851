package services

import (
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/platform/config"
)

// ContainerOption customises collaborators the container would otherwise default.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	gateway  portssvc.PaymentGateway
	tracking portssvc.TrackingNumberGenerator
}

// WithContainerPaymentGateway sets the gateway used after top-ups.
func WithContainerPaymentGateway(g portssvc.PaymentGateway) ContainerOption {
	return func(d *containerDeps) {
		d.gateway = g
	}
}

// WithContainerTrackingGenerator sets the tracking number source.
func WithContainerTrackingGenerator(g portssvc.TrackingNumberGenerator) ContainerOption {
	return func(d *containerDeps) {
		d.tracking = g
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	deps := containerDeps{
		gateway:  NoopGateway{},
		tracking: NewTrackingNumberGenerator(),
	}
	for _, option := range options {
		option(&deps)
	}

	retry := RetryPolicy{MaxAttempts: cfg.TxMaxRetries, BaseDelay: cfg.TxRetryBaseDelay}

	container := &portssvc.ServiceContainer{}

	// Ledger and idempotency first; the orchestrating services build on them.
	container.Ledger = NewLedgerService(
		repos.TxManager,
		repos.WalletRepo,
		repos.LedgerRepo,
		WithLedgerRetryPolicy(retry),
		WithBalanceCacheSize(cfg.BalanceCacheSize),
	)
	container.Idempotency = NewIdempotencyService(repos.IdempotencyRepo, cfg.IdempotencyTTL)

	container.Wallet = NewWalletService(
		repos,
		container.Ledger,
		container.Idempotency,
		WithPaymentGateway(deps.gateway),
		WithDefaultCurrency(cfg.DefaultCurrency),
		WithWalletRetryPolicy(retry),
	)

	container.Shipment = NewShipmentService(
		repos,
		container.Ledger,
		container.Idempotency,
		WithTrackingNumberGenerator(deps.tracking),
		WithTrackingMaxAttempts(cfg.TrackingMaxAttempts),
		WithShipmentRetryPolicy(retry),
		WithChargeCurrency(cfg.DefaultCurrency),
	)

	return container
}
