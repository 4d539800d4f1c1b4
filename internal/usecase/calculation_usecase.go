package usecase

import (
	"context"

	"parcelrate-backend/internal/domain"
)

// CalculationUsecase exposes read access to the audit trail for admins.
type CalculationUsecase struct {
	repo domain.CalculationRepository
}

func NewCalculationUsecase(repo domain.CalculationRepository) *CalculationUsecase {
	return &CalculationUsecase{repo: repo}
}

func (u *CalculationUsecase) GetCalculation(ctx context.Context, id string) (*domain.ShippingCalculation, error) {
	if id == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "calculation id is required")
	}
	calc, err := u.repo.GetCalculationByID(ctx, id)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "calculation lookup failed", err)
	}
	return calc, nil
}

func (u *CalculationUsecase) ListCalculations(ctx context.Context, filter domain.CalculationFilter) ([]domain.ShippingCalculation, int64, error) {
	calcs, total, err := u.repo.ListCalculations(ctx, filter)
	if err != nil {
		return nil, 0, domain.WrapError(domain.ErrInternal, "calculation listing failed", err)
	}
	return calcs, total, nil
}
