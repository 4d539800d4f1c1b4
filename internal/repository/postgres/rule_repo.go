package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/pkg/cache"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ruleRepository struct {
	db           *pgxpool.Pool
	cache        cache.CacheService
	surchargeTTL time.Duration
}

func NewRuleRepository(db *pgxpool.Pool, cache cache.CacheService, surchargeTTL time.Duration) domain.RuleRepository {
	return &ruleRepository{
		db:           db,
		cache:        cache,
		surchargeTTL: surchargeTTL,
	}
}

// FindCandidateServices runs the coverage check as a single batched query
// instead of one round-trip per service. A service qualifies when either an
// available, effective exception row covers the weight, or no exception rows
// exist for the pair at all and an effective base rule covers the weight
// through the destination's zone.
func (r *ruleRepository) FindCandidateServices(ctx context.Context, country string, weightKg float64) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.carrier_id, s.name, s.code, s.type,
		       s.has_tracking, s.has_insurance,
		       s.delivery_days_min, s.delivery_days_max, s.max_weight_kg,
		       c.name, c.code
		FROM services s
		JOIN carriers c ON c.id = s.carrier_id AND c.is_active
		WHERE s.is_active
		  AND s.max_weight_kg >= $2
		  AND (
		    EXISTS (
		      SELECT 1 FROM country_exceptions ce
		      WHERE ce.service_id = s.id AND ce.country_code = $1
		        AND ce.is_available
		        AND ce.weight_from <= $2 AND ce.weight_to >= $2
		        AND (ce.effective_to IS NULL OR ce.effective_to >= now())
		    )
		    OR (
		      NOT EXISTS (
		        SELECT 1 FROM country_exceptions ce
		        WHERE ce.service_id = s.id AND ce.country_code = $1
		      )
		      AND EXISTS (
		        SELECT 1 FROM shipping_rules sr
		        JOIN zone_countries zc ON zc.zone_code = sr.zone_code
		        WHERE sr.service_id = s.id AND zc.country_code = $1
		          AND sr.weight_from <= $2 AND sr.weight_to >= $2
		          AND (sr.effective_to IS NULL OR sr.effective_to >= now())
		      )
		    )
		  )
		ORDER BY s.id
	`, country, weightKg)
	if err != nil {
		return nil, fmt.Errorf("find candidate services: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var cand domain.Candidate
		if err := rows.Scan(
			&cand.Service.ID,
			&cand.Service.CarrierID,
			&cand.Service.Name,
			&cand.Service.Code,
			&cand.Service.Type,
			&cand.Service.HasTracking,
			&cand.Service.HasInsurance,
			&cand.Service.DeliveryDaysMin,
			&cand.Service.DeliveryDaysMax,
			&cand.Service.MaxWeightKg,
			&cand.CarrierName,
			&cand.CarrierCode,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		cand.Service.IsActive = true
		candidates = append(candidates, cand)
	}
	return candidates, rows.Err()
}

// ExceptionsFor returns every exception row for the pair, effective or not.
// The presence of any row switches the pair into the exception regime, so
// expired rows still matter to the caller; per-row effectiveness is checked
// during resolution.
func (r *ruleRepository) ExceptionsFor(ctx context.Context, serviceID int64, country string) ([]domain.CountryException, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, service_id, country_code, is_available,
		       weight_from, weight_to, base_price, price_per_kg,
		       max_length_cm, max_width_cm, max_height_cm, max_girth_cm,
		       effective_to
		FROM country_exceptions
		WHERE service_id = $1 AND country_code = $2
		ORDER BY weight_from
	`, serviceID, country)
	if err != nil {
		return nil, fmt.Errorf("exceptions for service %d: %w", serviceID, err)
	}
	defer rows.Close()

	var exceptions []domain.CountryException
	for rows.Next() {
		var ex domain.CountryException
		if err := rows.Scan(
			&ex.ID, &ex.ServiceID, &ex.CountryCode, &ex.IsAvailable,
			&ex.WeightFrom, &ex.WeightTo, &ex.BasePrice, &ex.PricePerKg,
			&ex.MaxLengthCm, &ex.MaxWidthCm, &ex.MaxHeightCm, &ex.MaxGirthCm,
			&ex.EffectiveTo,
		); err != nil {
			return nil, fmt.Errorf("scan exception: %w", err)
		}
		exceptions = append(exceptions, ex)
	}
	return exceptions, rows.Err()
}

func (r *ruleRepository) BaseRulesFor(ctx context.Context, serviceID int64, country string) ([]domain.ShippingRule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sr.id, sr.service_id, sr.zone_code,
		       sr.weight_from, sr.weight_to, sr.base_price, sr.price_per_kg,
		       sr.max_length_cm, sr.max_width_cm, sr.max_height_cm, sr.max_girth_cm,
		       sr.effective_to
		FROM shipping_rules sr
		JOIN zone_countries zc ON zc.zone_code = sr.zone_code
		WHERE sr.service_id = $1 AND zc.country_code = $2
		  AND (sr.effective_to IS NULL OR sr.effective_to >= now())
		ORDER BY sr.weight_from
	`, serviceID, country)
	if err != nil {
		return nil, fmt.Errorf("base rules for service %d: %w", serviceID, err)
	}
	defer rows.Close()

	var rules []domain.ShippingRule
	for rows.Next() {
		var rule domain.ShippingRule
		if err := rows.Scan(
			&rule.ID, &rule.ServiceID, &rule.ZoneCode,
			&rule.WeightFrom, &rule.WeightTo, &rule.BasePrice, &rule.PricePerKg,
			&rule.MaxLengthCm, &rule.MaxWidthCm, &rule.MaxHeightCm, &rule.MaxGirthCm,
			&rule.EffectiveTo,
		); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// CurrentSurchargeRate returns the newest effective fuel surcharge, 0 when
// none is on file. Rates change rarely, so results are cached.
func (r *ruleRepository) CurrentSurchargeRate(ctx context.Context, serviceID int64) (float64, error) {
	cacheKey := fmt.Sprintf("surcharge:%d", serviceID)
	if val, found := r.cache.Get(cacheKey); found {
		return val.(float64), nil
	}

	var rate float64
	err := r.db.QueryRow(ctx, `
		SELECT rate FROM surcharges
		WHERE service_id = $1 AND effective_date <= now()
		ORDER BY effective_date DESC
		LIMIT 1
	`, serviceID).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.cache.Set(cacheKey, 0.0, r.surchargeTTL)
			return 0, nil
		}
		return 0, fmt.Errorf("surcharge for service %d: %w", serviceID, err)
	}

	r.cache.Set(cacheKey, rate, r.surchargeTTL)
	return rate, nil
}
