package usecase

import (
	"testing"

	"parcelrate-backend/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestCheckSizeInclusiveBoundary(t *testing.T) {
	dims := &domain.Dimensions{LengthCm: 33, WidthCm: 22, HeightCm: 11}
	rule := &domain.Rule{
		MaxLengthCm: fptr(33),
		MaxWidthCm:  fptr(22),
		MaxHeightCm: fptr(11),
		MaxGirthCm:  fptr(99), // 33 + 2*22 + 2*11
	}

	ok, checked := CheckSize(dims, rule)
	if !ok || !checked {
		t.Errorf("exact limits should pass: ok=%v checked=%v", ok, checked)
	}
}

func TestCheckSizeGirthViolation(t *testing.T) {
	dims := &domain.Dimensions{LengthCm: 33, WidthCm: 22, HeightCm: 11}
	rule := &domain.Rule{MaxGirthCm: fptr(98.9)}

	ok, checked := CheckSize(dims, rule)
	if ok {
		t.Error("girth 99 over limit 98.9 should fail")
	}
	if !checked {
		t.Error("violation implies the check ran")
	}
}

func TestCheckSizeSingleDimensionViolation(t *testing.T) {
	dims := &domain.Dimensions{LengthCm: 50, WidthCm: 10, HeightCm: 10}
	rule := &domain.Rule{MaxLengthCm: fptr(40)}

	if ok, _ := CheckSize(dims, rule); ok {
		t.Error("length over limit should fail")
	}
}

func TestCheckSizeNoDimensions(t *testing.T) {
	rule := &domain.Rule{MaxLengthCm: fptr(10)}

	ok, checked := CheckSize(nil, rule)
	if !ok {
		t.Error("weight-only requests cannot fail size limits")
	}
	if checked {
		t.Error("nothing was verified, checked must be false")
	}
}

func TestCheckSizeUnconstrainedRule(t *testing.T) {
	dims := &domain.Dimensions{LengthCm: 500, WidthCm: 500, HeightCm: 500}

	ok, checked := CheckSize(dims, &domain.Rule{})
	if !ok || !checked {
		t.Errorf("nil limits never reject: ok=%v checked=%v", ok, checked)
	}
}
