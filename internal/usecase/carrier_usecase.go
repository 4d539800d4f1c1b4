package usecase

import (
	"context"
	"time"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/pkg/cache"
)

const carrierCacheKey = "carriers:active"

// CarrierUsecase serves the public carrier listing. Reference data changes
// out-of-band and rarely, so the list is cached whole.
type CarrierUsecase struct {
	repo  domain.CarrierRepository
	cache cache.CacheService
	ttl   time.Duration
}

func NewCarrierUsecase(repo domain.CarrierRepository, cache cache.CacheService, ttl time.Duration) *CarrierUsecase {
	return &CarrierUsecase{repo: repo, cache: cache, ttl: ttl}
}

func (u *CarrierUsecase) ListCarriers(ctx context.Context) ([]domain.Carrier, error) {
	if val, found := u.cache.Get(carrierCacheKey); found {
		return val.([]domain.Carrier), nil
	}

	carriers, err := u.repo.ListActiveCarriers(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "carrier listing failed", err)
	}

	u.cache.Set(carrierCacheKey, carriers, u.ttl)
	return carriers, nil
}
