package usecase

import (
	"math"
	"testing"

	"parcelrate-backend/internal/domain"
)

func TestNormalizeWeightOnly(t *testing.T) {
	n := NewNormalizer(1.05, 1.10, 5000)

	out, err := n.Normalize(&domain.RateRequest{
		WeightKg:           1.0,
		DestinationCountry: "DE",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PackedWeightKg != 1.05 {
		t.Errorf("packed weight = %v, want 1.05", out.PackedWeightKg)
	}
	if out.VolumetricWeightKg != 0 {
		t.Errorf("volumetric = %v, want 0 without dimensions", out.VolumetricWeightKg)
	}
	if out.ChargeableWeightKg != 1.05 {
		t.Errorf("chargeable = %v, want 1.05", out.ChargeableWeightKg)
	}
	if out.PackedDims != nil {
		t.Error("packed dims should be nil without dimensions")
	}
}

func TestNormalizeVolumetricDominates(t *testing.T) {
	n := NewNormalizer(1.05, 1.10, 5000)

	out, err := n.Normalize(&domain.RateRequest{
		WeightKg:           1.0,
		Dimensions:         &domain.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10},
		DestinationCountry: "DE",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 30/20/10 scaled by 1.10 -> 33/22/11; 33*22*11/5000 = 1.5972 -> 1.597
	if out.PackedDims == nil {
		t.Fatal("packed dims missing")
	}
	if out.PackedDims.LengthCm != 33 || out.PackedDims.WidthCm != 22 || out.PackedDims.HeightCm != 11 {
		t.Errorf("packed dims = %+v, want 33/22/11", out.PackedDims)
	}
	if math.Abs(out.VolumetricWeightKg-1.597) > 1e-9 {
		t.Errorf("volumetric = %v, want 1.597", out.VolumetricWeightKg)
	}
	if out.ChargeableWeightKg != out.VolumetricWeightKg {
		t.Errorf("chargeable = %v, want volumetric %v", out.ChargeableWeightKg, out.VolumetricWeightKg)
	}
}

func TestNormalizeIsIdempotentPerInput(t *testing.T) {
	n := NewNormalizer(1.05, 1.10, 5000)
	req := &domain.RateRequest{
		WeightKg:           2.5,
		Dimensions:         &domain.Dimensions{LengthCm: 40, WidthCm: 30, HeightCm: 20},
		DestinationCountry: "US",
	}

	first, err := n.Normalize(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := n.Normalize(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ChargeableWeightKg != second.ChargeableWeightKg ||
		first.PackedWeightKg != second.PackedWeightKg {
		t.Errorf("normalization not deterministic: %+v vs %+v", first, second)
	}
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	n := NewNormalizer(1.05, 1.10, 5000)

	cases := []struct {
		name string
		req  *domain.RateRequest
	}{
		{"zero weight", &domain.RateRequest{WeightKg: 0, DestinationCountry: "DE"}},
		{"negative weight", &domain.RateRequest{WeightKg: -1, DestinationCountry: "DE"}},
		{"bad country", &domain.RateRequest{WeightKg: 1, DestinationCountry: "Germany"}},
		{"lowercase country", &domain.RateRequest{WeightKg: 1, DestinationCountry: "de"}},
		{"one-letter country", &domain.RateRequest{WeightKg: 1, DestinationCountry: "D"}},
		{"four-letter country", &domain.RateRequest{WeightKg: 1, DestinationCountry: "DEUT"}},
		{"negative dimension", &domain.RateRequest{
			WeightKg:           1,
			DestinationCountry: "DE",
			Dimensions:         &domain.Dimensions{LengthCm: -1, WidthCm: 10, HeightCm: 10},
		}},
		{"unknown preference", &domain.RateRequest{
			WeightKg: 1, DestinationCountry: "DE", Preference: "fastest",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(tc.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if kind := domain.KindOf(err); kind != domain.ErrInvalidInput {
				t.Errorf("error kind = %s, want InvalidInput", kind)
			}
		})
	}
}

func TestNormalizeAcceptsAlpha3Country(t *testing.T) {
	n := NewNormalizer(1.05, 1.10, 5000)

	out, err := n.Normalize(&domain.RateRequest{
		WeightKg:           1.5,
		DestinationCountry: "USA",
	})
	if err != nil {
		t.Fatalf("alpha-3 code should be accepted: %v", err)
	}
	if out.ChargeableWeightKg != 1.575 {
		t.Errorf("chargeable = %v, want 1.575", out.ChargeableWeightKg)
	}
}

func TestNormalizeAllowsZeroDimensions(t *testing.T) {
	n := NewNormalizer(1.05, 1.10, 5000)

	out, err := n.Normalize(&domain.RateRequest{
		WeightKg:           1,
		DestinationCountry: "DE",
		Dimensions:         &domain.Dimensions{LengthCm: 0, WidthCm: 0, HeightCm: 0},
	})
	if err != nil {
		t.Fatalf("zero dimensions should be accepted: %v", err)
	}
	if out.VolumetricWeightKg != 0 {
		t.Errorf("volumetric = %v, want 0", out.VolumetricWeightKg)
	}
}
