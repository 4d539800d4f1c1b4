package domain

import (
	"context"
	"time"
)

// ShippingRule is a weight-tiered price row scoped to a destination zone and
// a service. Size limits are nil when unconstrained; EffectiveTo is nil for
// open-ended rows.
type ShippingRule struct {
	ID          int64      `json:"id"`
	ServiceID   int64      `json:"serviceId"`
	ZoneCode    string     `json:"zoneCode"`
	WeightFrom  float64    `json:"weightFrom"`
	WeightTo    float64    `json:"weightTo"`
	BasePrice   float64    `json:"basePrice"`
	PricePerKg  float64    `json:"pricePerKg"`
	MaxLengthCm *float64   `json:"maxLengthCm"`
	MaxWidthCm  *float64   `json:"maxWidthCm"`
	MaxHeightCm *float64   `json:"maxHeightCm"`
	MaxGirthCm  *float64   `json:"maxGirthCm"`
	EffectiveTo *time.Time `json:"effectiveTo"`
}

// CountryException overrides the base ruleset for one (service, country)
// pair. If any exception row exists for the pair, the base rules are dead for
// that destination; there is no fallback even when no exception row matches.
type CountryException struct {
	ID          int64      `json:"id"`
	ServiceID   int64      `json:"serviceId"`
	CountryCode string     `json:"countryCode"`
	IsAvailable bool       `json:"isAvailable"`
	WeightFrom  float64    `json:"weightFrom"`
	WeightTo    float64    `json:"weightTo"`
	BasePrice   float64    `json:"basePrice"`
	PricePerKg  float64    `json:"pricePerKg"`
	MaxLengthCm *float64   `json:"maxLengthCm"`
	MaxWidthCm  *float64   `json:"maxWidthCm"`
	MaxHeightCm *float64   `json:"maxHeightCm"`
	MaxGirthCm  *float64   `json:"maxGirthCm"`
	EffectiveTo *time.Time `json:"effectiveTo"`
}

// Surcharge is a time-versioned fuel surcharge rate. Only the newest row with
// EffectiveDate <= today applies.
type Surcharge struct {
	ID            int64     `json:"id"`
	ServiceID     int64     `json:"serviceId"`
	Rate          float64   `json:"rate"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

// Rule is the resolved price row for one candidate, after the
// exception-vs-base precedence has been applied.
type Rule struct {
	Source      string // "exception" or "base"
	WeightFrom  float64
	WeightTo    float64
	BasePrice   float64
	PricePerKg  float64
	MaxLengthCm *float64
	MaxWidthCm  *float64
	MaxHeightCm *float64
	MaxGirthCm  *float64
}

// RuleRepository is the read-only query surface over the rate reference data.
// Absence of data is a normal outcome: implementations return empty slices and
// zero rates, never a not-found error.
type RuleRepository interface {
	// FindCandidateServices returns active services that cover the destination
	// and chargeable weight, honoring the exception-excludes-base precedence.
	FindCandidateServices(ctx context.Context, country string, weightKg float64) ([]Candidate, error)

	// ExceptionsFor returns every exception row for the pair, matching or
	// not, expired or not. A non-empty result disables base rules.
	ExceptionsFor(ctx context.Context, serviceID int64, country string) ([]CountryException, error)

	// BaseRulesFor returns the currently effective base rows whose zone covers
	// the destination country.
	BaseRulesFor(ctx context.Context, serviceID int64, country string) ([]ShippingRule, error)

	// CurrentSurchargeRate returns the applicable fuel surcharge rate, or 0
	// when none is on file.
	CurrentSurchargeRate(ctx context.Context, serviceID int64) (float64, error)
}
