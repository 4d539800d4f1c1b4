package usecase

import (
	"fmt"
	"math"

	"parcelrate-backend/internal/domain"
)

// NormalizedInput is the request after packing correction. Chargeable weight
// drives every downstream lookup and price tier.
type NormalizedInput struct {
	PackedWeightKg     float64
	PackedDims         *domain.Dimensions
	VolumetricWeightKg float64
	ChargeableWeightKg float64
}

// Normalizer applies the packing correction factors and derives the
// chargeable weight. It is pure; the same request always normalizes the same
// way for a given configuration.
type Normalizer struct {
	weightFactor      float64
	sizeFactor        float64
	volumetricDivisor float64
}

func NewNormalizer(weightFactor, sizeFactor, volumetricDivisor float64) *Normalizer {
	return &Normalizer{
		weightFactor:      weightFactor,
		sizeFactor:        sizeFactor,
		volumetricDivisor: volumetricDivisor,
	}
}

// Normalize validates the raw request and computes packed weight, packed
// dimensions, volumetric weight and the chargeable weight.
//
// Volumetric weight is computed from the PACKED dimensions, so the packing
// allowance raises both sides of the max() consistently. Without dimensions
// the volumetric term is 0 and chargeable weight equals packed weight.
func (n *Normalizer) Normalize(req *domain.RateRequest) (*NormalizedInput, error) {
	if err := n.validate(req); err != nil {
		return nil, err
	}

	out := &NormalizedInput{
		PackedWeightKg: roundTo(req.WeightKg*n.weightFactor, 3),
	}

	if req.Dimensions != nil {
		out.PackedDims = &domain.Dimensions{
			LengthCm: roundTo(req.Dimensions.LengthCm*n.sizeFactor, 1),
			WidthCm:  roundTo(req.Dimensions.WidthCm*n.sizeFactor, 1),
			HeightCm: roundTo(req.Dimensions.HeightCm*n.sizeFactor, 1),
		}
		volume := out.PackedDims.LengthCm * out.PackedDims.WidthCm * out.PackedDims.HeightCm
		out.VolumetricWeightKg = roundTo(volume/n.volumetricDivisor, 3)
	}

	out.ChargeableWeightKg = math.Max(out.PackedWeightKg, out.VolumetricWeightKg)
	return out, nil
}

func (n *Normalizer) validate(req *domain.RateRequest) error {
	if req == nil {
		return domain.NewError(domain.ErrInvalidInput, "request body is required")
	}
	if req.WeightKg <= 0 {
		return domain.NewError(domain.ErrInvalidInput, "weight_kg must be positive")
	}
	if l := len(req.DestinationCountry); l < 2 || l > 3 || !isUpperAlpha(req.DestinationCountry) {
		return domain.NewError(domain.ErrInvalidInput, "destination_country must be a 2-3 letter ISO code")
	}
	if req.Dimensions != nil {
		d := req.Dimensions
		if d.LengthCm < 0 || d.WidthCm < 0 || d.HeightCm < 0 {
			return domain.NewError(domain.ErrInvalidInput, "dimensions must not be negative")
		}
	}
	switch req.Preference {
	case "", domain.PreferenceBalanced, domain.PreferenceEconomy, domain.PreferenceCourier:
	default:
		return domain.NewError(domain.ErrInvalidInput,
			fmt.Sprintf("unknown preference %q", req.Preference))
	}
	return nil
}

func isUpperAlpha(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
