package domain

import "strings"

// WeightScale is the number of decimal places stored for a parcel weight (kg).
const WeightScale int32 = 3

// DistanceTier buckets how far a parcel travels.
type DistanceTier string

const (
	TierLocal         DistanceTier = "LOCAL"
	TierDomestic      DistanceTier = "DOMESTIC"
	TierInternational DistanceTier = "INTERNATIONAL"
)

// ParseDistanceTier is case-insensitive.
func ParseDistanceTier(s string) (DistanceTier, bool) {
	t := DistanceTier(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TierLocal, TierDomestic, TierInternational:
		return t, true
	}
	return "", false
}

// ServiceLevel is the delivery speed the customer pays for.
type ServiceLevel string

const (
	ServiceStandard  ServiceLevel = "STANDARD"
	ServiceExpress   ServiceLevel = "EXPRESS"
	ServiceOvernight ServiceLevel = "OVERNIGHT"
)

// ParseServiceLevel is case-insensitive.
func ParseServiceLevel(s string) (ServiceLevel, bool) {
	l := ServiceLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case ServiceStandard, ServiceExpress, ServiceOvernight:
		return l, true
	}
	return "", false
}

// DeriveTier classifies a route: same city and country is LOCAL, same country
// is DOMESTIC, anything else INTERNATIONAL.
func DeriveTier(pickup, delivery Address) DistanceTier {
	sameCountry := strings.EqualFold(strings.TrimSpace(pickup.CountryCode), strings.TrimSpace(delivery.CountryCode))
	if !sameCountry {
		return TierInternational
	}
	if strings.EqualFold(strings.TrimSpace(pickup.City), strings.TrimSpace(delivery.City)) {
		return TierLocal
	}
	return TierDomestic
}
