// Package pricing prices parcels. Everything here is pure: no I/O, no clock,
// identical inputs always give identical totals.
package pricing

import (
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateCard holds the tariff used by Calculate.
type RateCard struct {
	BaseFee            map[domain.ServiceLevel]decimal.Decimal
	PerKgRate          map[domain.DistanceTier]decimal.Decimal
	SpeedMultiplier    map[domain.ServiceLevel]decimal.Decimal
	HeavyThresholdKg   decimal.Decimal
	HeavySurcharge     decimal.Decimal
	MaxWeightKg        decimal.Decimal
	TotalDecimalPlaces int32
}

// DefaultRateCard is the tariff the service runs with.
func DefaultRateCard() RateCard {
	return RateCard{
		BaseFee: map[domain.ServiceLevel]decimal.Decimal{
			domain.ServiceStandard:  decimal.RequireFromString("5.00"),
			domain.ServiceExpress:   decimal.RequireFromString("10.00"),
			domain.ServiceOvernight: decimal.RequireFromString("20.00"),
		},
		PerKgRate: map[domain.DistanceTier]decimal.Decimal{
			domain.TierLocal:         decimal.RequireFromString("2.50"),
			domain.TierDomestic:      decimal.RequireFromString("4.00"),
			domain.TierInternational: decimal.RequireFromString("12.00"),
		},
		SpeedMultiplier: map[domain.ServiceLevel]decimal.Decimal{
			domain.ServiceStandard:  decimal.NewFromInt(1),
			domain.ServiceExpress:   decimal.RequireFromString("1.5"),
			domain.ServiceOvernight: decimal.RequireFromString("2.25"),
		},
		HeavyThresholdKg:   decimal.NewFromInt(30),
		HeavySurcharge:     decimal.RequireFromString("15.00"),
		MaxWeightKg:        decimal.NewFromInt(500),
		TotalDecimalPlaces: 2,
	}
}

var defaultCard = DefaultRateCard()

// Calculate prices a parcel with the default rate card.
func Calculate(weight decimal.Decimal, tier domain.DistanceTier, level domain.ServiceLevel) (domain.CostBreakdown, error) {
	return defaultCard.Calculate(weight, tier, level)
}

// Calculate returns base + distance + surcharge. Components keep full precision;
// only the total is rounded (half away from zero, which is half-up for positive money).
func (c RateCard) Calculate(weight decimal.Decimal, tier domain.DistanceTier, level domain.ServiceLevel) (domain.CostBreakdown, error) {
	if !weight.IsPositive() {
		return domain.CostBreakdown{}, fmt.Errorf("%w: weight must be positive, got %s", apperrors.ErrInvalidWeight, weight.String())
	}
	if !weight.Equal(weight.Round(domain.WeightScale)) {
		return domain.CostBreakdown{}, fmt.Errorf("%w: weight %s kg has more than %d decimal places", apperrors.ErrInvalidWeight, weight.String(), domain.WeightScale)
	}
	if !c.MaxWeightKg.IsZero() && weight.GreaterThan(c.MaxWeightKg) {
		return domain.CostBreakdown{}, fmt.Errorf("%w: weight %s kg exceeds the %s kg limit", apperrors.ErrInvalidWeight, weight.String(), c.MaxWeightKg.String())
	}
	base, ok := c.BaseFee[level]
	if !ok {
		return domain.CostBreakdown{}, fmt.Errorf("%w: unknown service level %q", apperrors.ErrValidation, level)
	}
	perKg, ok := c.PerKgRate[tier]
	if !ok {
		return domain.CostBreakdown{}, fmt.Errorf("%w: unknown distance tier %q", apperrors.ErrValidation, tier)
	}
	multiplier, ok := c.SpeedMultiplier[level]
	if !ok {
		multiplier = decimal.NewFromInt(1)
	}

	distance := weight.Mul(perKg).Mul(multiplier)
	surcharge := decimal.Zero
	if weight.GreaterThan(c.HeavyThresholdKg) {
		surcharge = c.HeavySurcharge
	}
	total := base.Add(distance).Add(surcharge).Round(c.TotalDecimalPlaces)

	return domain.CostBreakdown{
		BaseCost:     base,
		DistanceCost: distance,
		Surcharge:    surcharge,
		TotalCost:    total,
	}, nil
}
