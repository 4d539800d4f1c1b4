package domain

import (
	"context"
	"time"
)

// Service types. "economy" services are cheap postal-style products,
// "courier" services are tracked express products.
const (
	ServiceTypeEconomy = "economy"
	ServiceTypeCourier = "courier"
)

type Carrier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"isActive"`
	Services  []Service `json:"services,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Service struct {
	ID              int64     `json:"id"`
	CarrierID       int64     `json:"carrierId"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Type            string    `json:"type"` // economy | courier
	HasTracking     bool      `json:"hasTracking"`
	HasInsurance    bool      `json:"hasInsurance"`
	DeliveryDaysMin int       `json:"deliveryDaysMin"`
	DeliveryDaysMax int       `json:"deliveryDaysMax"`
	MaxWeightKg     float64   `json:"maxWeightKg"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DeliveryDaysAvg is the midpoint of the promised delivery window,
// used by the speed score.
func (s Service) DeliveryDaysAvg() float64 {
	return float64(s.DeliveryDaysMin+s.DeliveryDaysMax) / 2
}

// Candidate is a service that passed the coverage query together with the
// carrier fields needed to present it. The winning rule still has to be
// resolved per candidate.
type Candidate struct {
	Service     Service
	CarrierName string
	CarrierCode string
}

type CarrierRepository interface {
	ListActiveCarriers(ctx context.Context) ([]Carrier, error)
}
