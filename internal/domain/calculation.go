package domain

import (
	"context"
	"time"
)

// ShippingCalculation is the write-once audit record of one resolution
// request. Results holds the ranked options serialized as JSON. Rows are never
// mutated or deleted by this service; retention is someone else's job.
type ShippingCalculation struct {
	ID                 string      `json:"id"`
	WeightKg           float64     `json:"weightKg"`
	PackedWeightKg     float64     `json:"packedWeightKg"`
	ChargeableWeightKg float64     `json:"chargeableWeightKg"`
	Dimensions         *Dimensions `json:"dimensions,omitempty"`
	PackedDimensions   *Dimensions `json:"packedDimensions,omitempty"`
	DestinationCountry string      `json:"destinationCountry"`
	Preference         string      `json:"preference"`
	Results            RawJSON     `json:"results"`
	SelectedServiceID  *int64      `json:"selectedServiceId"`
	SelectedCost       *float64    `json:"selectedCost"`
	CreatedAt          time.Time   `json:"createdAt"`
}

type CalculationFilter struct {
	Country string
	Limit   int
	Offset  int
}

type CalculationRepository interface {
	// InsertCalculation persists one audit row. Callers treat failure as
	// non-fatal; the computed result is already in hand.
	InsertCalculation(ctx context.Context, calc *ShippingCalculation) error

	GetCalculationByID(ctx context.Context, id string) (*ShippingCalculation, error)
	ListCalculations(ctx context.Context, filter CalculationFilter) ([]ShippingCalculation, int64, error)
}
