package services

import (
	"context"
	"log/slog"

	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/utils"
)

// TrackingNumberPrefix starts every tracking number.
const TrackingNumberPrefix = "GNG"

const trackingCodeLength = 10

type trackingNumberGenerator struct{}

// NewTrackingNumberGenerator returns a generator of "GNG" + 10 Crockford characters.
func NewTrackingNumberGenerator() portssvc.TrackingNumberGenerator {
	return trackingNumberGenerator{}
}

func (trackingNumberGenerator) Next() (string, error) {
	code, err := utils.GenerateSecureCode(trackingCodeLength)
	if err != nil {
		return "", err
	}
	return TrackingNumberPrefix + code, nil
}

// NoopGateway accepts every charge without contacting a provider.
type NoopGateway struct{}

var _ portssvc.PaymentGateway = NoopGateway{}

func (NoopGateway) Charge(ctx context.Context, req portssvc.ChargeRequest) (string, error) {
	slog.DebugContext(ctx, "Noop gateway charge",
		slog.String("account_id", req.AccountID),
		slog.String("entry_id", req.EntryID),
		slog.String("amount", utils.FormatMoney(req.Amount)))
	return "noop-" + req.EntryID, nil
}
