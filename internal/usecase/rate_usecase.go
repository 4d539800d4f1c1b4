package usecase

import (
	"context"
	"errors"
	"time"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// resolveConcurrency caps the per-candidate fan-out so one fat request cannot
// monopolize the pool.
const resolveConcurrency = 8

// CalculationArchiver mirrors audit records to object storage. Optional and
// best-effort.
type CalculationArchiver interface {
	Put(ctx context.Context, calculationID string, data []byte) (string, error)
}

type RateUsecase struct {
	ruleRepo   domain.RuleRepository
	calcRepo   domain.CalculationRepository
	normalizer *Normalizer
	ranker     *Ranker
	exchange   ExchangeRateProvider
	archive    CalculationArchiver // nil when not configured

	resolveTimeout time.Duration
	auditTimeout   time.Duration
}

func NewRateUsecase(
	ruleRepo domain.RuleRepository,
	calcRepo domain.CalculationRepository,
	normalizer *Normalizer,
	ranker *Ranker,
	exchange ExchangeRateProvider,
	archive CalculationArchiver,
	resolveTimeout, auditTimeout time.Duration,
) *RateUsecase {
	return &RateUsecase{
		ruleRepo:       ruleRepo,
		calcRepo:       calcRepo,
		normalizer:     normalizer,
		ranker:         ranker,
		exchange:       exchange,
		archive:        archive,
		resolveTimeout: resolveTimeout,
		auditTimeout:   auditTimeout,
	}
}

// Resolve runs the full pipeline: normalize, find candidates, resolve and
// price each one concurrently, filter on size, rank, record. The audit write
// is best-effort; its failure never fails the request.
func (u *RateUsecase) Resolve(ctx context.Context, req *domain.RateRequest) (*domain.RateResult, error) {
	start := time.Now()

	norm, err := u.normalizer.Normalize(req)
	if err != nil {
		return nil, err
	}

	preference := req.Preference
	if preference == "" {
		preference = domain.PreferenceBalanced
	}

	ctx, cancel := context.WithTimeout(ctx, u.resolveTimeout)
	defer cancel()

	candidates, err := u.ruleRepo.FindCandidateServices(ctx, req.DestinationCountry, norm.ChargeableWeightKg)
	if err != nil {
		return nil, classifyRepoError(ctx, err, "candidate lookup failed")
	}
	if len(candidates) == 0 {
		return nil, domain.NewError(domain.ErrNoServicesAvailable,
			"no services cover this destination and weight")
	}

	// One slot per candidate; nil means dropped (no matching rule, marked
	// unavailable, or over the size limits).
	resolved := make([]*domain.RateOption, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, cand := range candidates {
		g.Go(func() error {
			opt, err := u.resolveOne(gctx, cand, norm, req.DestinationCountry)
			if err != nil {
				return err
			}
			resolved[i] = opt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classifyRepoError(ctx, err, "rule resolution failed")
	}

	options := make([]domain.RateOption, 0, len(resolved))
	for _, opt := range resolved {
		if opt != nil {
			options = append(options, *opt)
		}
	}
	if len(options) == 0 {
		return nil, domain.NewError(domain.ErrNoViableCandidates,
			"all candidate services were filtered out")
	}

	options = u.ranker.Rank(options, preference)

	result := &domain.RateResult{
		CalculationID:       uuid.NewString(),
		ChargeableWeightKg:  norm.ChargeableWeightKg,
		CandidatesEvaluated: len(candidates),
		Options:             options,
	}

	u.record(ctx, req, norm, result)

	logger.RateResolved(result.CalculationID, req.DestinationCountry,
		len(candidates), len(options), time.Since(start))
	return result, nil
}

// resolveOne picks the winning rule for a candidate, prices it and checks the
// size limits. Returns (nil, nil) when the candidate drops out.
func (u *RateUsecase) resolveOne(ctx context.Context, cand domain.Candidate, norm *NormalizedInput, country string) (*domain.RateOption, error) {
	rule, err := u.resolveWinningRule(ctx, cand.Service.ID, country, norm.ChargeableWeightKg)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, nil
	}

	sizeOK, sizeChecked := CheckSize(norm.PackedDims, rule)
	if !sizeOK {
		return nil, nil
	}

	surchargeRate, err := u.ruleRepo.CurrentSurchargeRate(ctx, cand.Service.ID)
	if err != nil {
		return nil, err
	}
	breakdown := ComputeCost(rule, norm.ChargeableWeightKg, surchargeRate)

	opt := &domain.RateOption{
		Carrier:           cand.CarrierName,
		Service:           cand.Service.Name,
		ServiceType:       cand.Service.Type,
		CostLocal:         breakdown.Total,
		CostUSD:           ToUSD(breakdown.Total, u.exchange),
		Breakdown:         breakdown,
		DeliveryDaysRange: [2]int{cand.Service.DeliveryDaysMin, cand.Service.DeliveryDaysMax},
		Tracking:          cand.Service.HasTracking,
		Insurance:         cand.Service.HasInsurance,
		SizeOK:            sizeOK,
	}
	opt.SetInternal(cand.Service.ID, sizeChecked, cand.Service.DeliveryDaysAvg())
	return opt, nil
}

// resolveWinningRule applies the exception-before-base precedence. Any
// exception row for the pair, matching or not, shuts off the base rules for
// that destination. Returns nil with no error when nothing resolves.
func (u *RateUsecase) resolveWinningRule(ctx context.Context, serviceID int64, country string, weightKg float64) (*domain.Rule, error) {
	exceptions, err := u.ruleRepo.ExceptionsFor(ctx, serviceID, country)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if len(exceptions) > 0 {
		// Scan every covering effective row: an unavailable row only drops
		// the candidate when no available row covers the weight too. The
		// candidate query admits the service on the available row, so the
		// resolver must not let an unavailable sibling shadow it.
		for _, ex := range exceptions {
			if !covers(ex.WeightFrom, ex.WeightTo, weightKg) || !effective(ex.EffectiveTo, now) {
				continue
			}
			if !ex.IsAvailable {
				continue
			}
			return &domain.Rule{
				Source:      "exception",
				WeightFrom:  ex.WeightFrom,
				WeightTo:    ex.WeightTo,
				BasePrice:   ex.BasePrice,
				PricePerKg:  ex.PricePerKg,
				MaxLengthCm: ex.MaxLengthCm,
				MaxWidthCm:  ex.MaxWidthCm,
				MaxHeightCm: ex.MaxHeightCm,
				MaxGirthCm:  ex.MaxGirthCm,
			}, nil
		}
		return nil, nil
	}

	rules, err := u.ruleRepo.BaseRulesFor(ctx, serviceID, country)
	if err != nil {
		return nil, err
	}
	var winner *domain.ShippingRule
	for i := range rules {
		r := &rules[i]
		if !covers(r.WeightFrom, r.WeightTo, weightKg) || !effective(r.EffectiveTo, now) {
			continue
		}
		// Overlapping tiers should not exist, but if they do the narrower
		// one wins, then the cheaper base price.
		if winner == nil ||
			(r.WeightTo-r.WeightFrom) < (winner.WeightTo-winner.WeightFrom) ||
			((r.WeightTo-r.WeightFrom) == (winner.WeightTo-winner.WeightFrom) && r.BasePrice < winner.BasePrice) {
			winner = r
		}
	}
	if winner == nil {
		return nil, nil
	}
	return &domain.Rule{
		Source:      "base",
		WeightFrom:  winner.WeightFrom,
		WeightTo:    winner.WeightTo,
		BasePrice:   winner.BasePrice,
		PricePerKg:  winner.PricePerKg,
		MaxLengthCm: winner.MaxLengthCm,
		MaxWidthCm:  winner.MaxWidthCm,
		MaxHeightCm: winner.MaxHeightCm,
		MaxGirthCm:  winner.MaxGirthCm,
	}, nil
}

// record writes the audit row under its own bounded deadline, detached from
// the request deadline so a nearly expired request still gets its audit
// attempt. Failures are logged and swallowed.
func (u *RateUsecase) record(ctx context.Context, req *domain.RateRequest, norm *NormalizedInput, result *domain.RateResult) {
	serialized, err := json.Marshal(result.Options)
	if err != nil {
		logger.Error().Err(err).Msg("failed to serialize calculation results")
		return
	}

	recommended := result.Options[0]
	selectedID := recommended.ServiceID()
	selectedCost := recommended.CostLocal

	calc := &domain.ShippingCalculation{
		ID:                 result.CalculationID,
		WeightKg:           req.WeightKg,
		PackedWeightKg:     norm.PackedWeightKg,
		ChargeableWeightKg: norm.ChargeableWeightKg,
		Dimensions:         req.Dimensions,
		PackedDimensions:   norm.PackedDims,
		DestinationCountry: req.DestinationCountry,
		Preference:         req.Preference,
		Results:            domain.RawJSON(serialized),
		SelectedServiceID:  &selectedID,
		SelectedCost:       &selectedCost,
	}

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.auditTimeout)
	defer cancel()
	if err := u.calcRepo.InsertCalculation(auditCtx, calc); err != nil {
		wrapped := domain.WrapError(domain.ErrPersistenceFailure, "audit write failed", err)
		logger.Error().Err(wrapped).
			Str("calculation_id", result.CalculationID).
			Msg("calculation not persisted")
	}

	if u.archive != nil {
		go func() {
			archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()
			if _, err := u.archive.Put(archiveCtx, result.CalculationID, serialized); err != nil {
				logger.Error().Err(err).
					Str("calculation_id", result.CalculationID).
					Msg("calculation archive failed")
			}
		}()
	}
}

func covers(from, to, weight float64) bool {
	return weight >= from && weight <= to
}

func effective(until *time.Time, now time.Time) bool {
	return until == nil || !until.Before(now)
}

// classifyRepoError maps deadline expiry to Timeout and everything else to
// Internal.
func classifyRepoError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrTimeout, "rate resolution timed out", err)
	}
	return domain.WrapError(domain.ErrInternal, msg, err)
}
