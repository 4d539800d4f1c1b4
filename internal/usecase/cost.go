package usecase

import (
	"math"

	"parcelrate-backend/internal/domain"
)

// ExchangeRateProvider converts the local-currency total into USD for
// display. The engine does not own currency data; a fixed rate from config is
// the default and a live provider can be swapped in.
type ExchangeRateProvider interface {
	// LocalPerUSD returns how many units of local currency one USD buys.
	LocalPerUSD() float64
}

// FixedExchangeRate is the config-driven default provider.
type FixedExchangeRate struct {
	Rate float64
}

func (f FixedExchangeRate) LocalPerUSD() float64 { return f.Rate }

// ComputeCost prices one resolved rule at the chargeable weight. The per-kg
// component only charges the weight above the tier floor.
func ComputeCost(rule *domain.Rule, chargeableKg, surchargeRate float64) domain.CostBreakdown {
	weightCost := math.Max(0, chargeableKg-rule.WeightFrom) * rule.PricePerKg
	subtotal := rule.BasePrice + weightCost
	surcharge := subtotal * surchargeRate

	return domain.CostBreakdown{
		Base:      round2(rule.BasePrice),
		Weight:    round2(weightCost),
		Surcharge: round2(surcharge),
		Total:     round2(subtotal + surcharge),
	}
}

// ToUSD converts a local total using the provider rate. Returns 0 on a
// non-positive rate rather than dividing by zero.
func ToUSD(costLocal float64, provider ExchangeRateProvider) float64 {
	rate := provider.LocalPerUSD()
	if rate <= 0 {
		return 0
	}
	return round2(costLocal / rate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
