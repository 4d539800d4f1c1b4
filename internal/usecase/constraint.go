package usecase

import "parcelrate-backend/internal/domain"

// CheckSize verifies the packed dimensions against a rule's limits.
// Limits are inclusive; a nil limit is unconstrained. With no dimensions on
// the request the constraints cannot be checked and count as satisfied,
// which CheckSize reports through checked=false.
func CheckSize(dims *domain.Dimensions, rule *domain.Rule) (ok, checked bool) {
	if dims == nil {
		return true, false
	}
	if rule.MaxLengthCm != nil && dims.LengthCm > *rule.MaxLengthCm {
		return false, true
	}
	if rule.MaxWidthCm != nil && dims.WidthCm > *rule.MaxWidthCm {
		return false, true
	}
	if rule.MaxHeightCm != nil && dims.HeightCm > *rule.MaxHeightCm {
		return false, true
	}
	if rule.MaxGirthCm != nil && dims.Girth() > *rule.MaxGirthCm {
		return false, true
	}
	return true, true
}
