package usecase

import (
	"testing"

	"parcelrate-backend/internal/domain"
)

func TestComputeCostTiered(t *testing.T) {
	rule := &domain.Rule{WeightFrom: 0, WeightTo: 2, BasePrice: 100, PricePerKg: 50}

	b := ComputeCost(rule, 1.05, 0.12)
	if b.Base != 100 {
		t.Errorf("base = %v, want 100", b.Base)
	}
	if b.Weight != 52.5 {
		t.Errorf("weight cost = %v, want 52.5", b.Weight)
	}
	if b.Surcharge != 18.3 {
		t.Errorf("surcharge = %v, want 18.3", b.Surcharge)
	}
	if b.Total != 170.8 {
		t.Errorf("total = %v, want 170.8", b.Total)
	}
}

func TestComputeCostBelowTierFloor(t *testing.T) {
	// Chargeable weight below the tier floor never yields a negative
	// weight component.
	rule := &domain.Rule{WeightFrom: 2, WeightTo: 5, BasePrice: 200, PricePerKg: 80}

	b := ComputeCost(rule, 1.5, 0)
	if b.Weight != 0 {
		t.Errorf("weight cost = %v, want 0", b.Weight)
	}
	if b.Total != 200 {
		t.Errorf("total = %v, want 200", b.Total)
	}
}

func TestComputeCostNoSurcharge(t *testing.T) {
	rule := &domain.Rule{WeightFrom: 0, WeightTo: 5, BasePrice: 100, PricePerKg: 10}

	b := ComputeCost(rule, 3, 0)
	if b.Surcharge != 0 {
		t.Errorf("surcharge = %v, want 0", b.Surcharge)
	}
	if b.Total != 130 {
		t.Errorf("total = %v, want 130", b.Total)
	}
}

func TestToUSD(t *testing.T) {
	if got := ToUSD(220, FixedExchangeRate{Rate: 110}); got != 2 {
		t.Errorf("ToUSD = %v, want 2", got)
	}
	if got := ToUSD(100, FixedExchangeRate{Rate: 0}); got != 0 {
		t.Errorf("ToUSD with zero rate = %v, want 0", got)
	}
}
