package usecase

import (
	"math/rand"
	"sort"

	"parcelrate-backend/internal/domain"
)

// TieBreaker adds a per-candidate adjustment to the total score. The default
// adds nothing, so equal inputs rank identically across runs. SeededJitter
// reproduces the legacy random perturbation when parity with it matters.
type TieBreaker interface {
	Adjust(serviceID int64) float64
}

type NoTieBreak struct{}

func (NoTieBreak) Adjust(int64) float64 { return 0 }

// SeededJitter perturbs scores by a uniform value in [-magnitude, +magnitude].
// Seeding makes a run reproducible; distinct seeds give distinct rankings on
// near-ties.
type SeededJitter struct {
	rng       *rand.Rand
	magnitude float64
}

func NewSeededJitter(seed int64, magnitude float64) *SeededJitter {
	return &SeededJitter{
		rng:       rand.New(rand.NewSource(seed)),
		magnitude: magnitude,
	}
}

func (j *SeededJitter) Adjust(int64) float64 {
	return (j.rng.Float64()*2 - 1) * j.magnitude
}

// Ranker scores and orders surviving candidates.
type Ranker struct {
	maxOptions int
	tieBreaker TieBreaker
}

func NewRanker(maxOptions int, tb TieBreaker) *Ranker {
	if tb == nil {
		tb = NoTieBreak{}
	}
	if maxOptions <= 0 {
		maxOptions = 5
	}
	return &Ranker{maxOptions: maxOptions, tieBreaker: tb}
}

// Rank fills Scores on each option, sorts by total descending and returns at
// most maxOptions entries with the first marked recommended.
//
// Price and speed are min-max normalized across the surviving set, 50 when
// everything ties. Reliability starts at 50, +20 tracking, +20 insurance,
// +10 when the size limits were actually verified. The preference bonus is
// +15 on an economy/courier match, 0 for balanced.
func (r *Ranker) Rank(options []domain.RateOption, preference string) []domain.RateOption {
	if len(options) == 0 {
		return options
	}

	minCost, maxCost := options[0].CostLocal, options[0].CostLocal
	minDays, maxDays := options[0].DeliveryDaysAvg(), options[0].DeliveryDaysAvg()
	for _, o := range options[1:] {
		minCost = min(minCost, o.CostLocal)
		maxCost = max(maxCost, o.CostLocal)
		minDays = min(minDays, o.DeliveryDaysAvg())
		maxDays = max(maxDays, o.DeliveryDaysAvg())
	}

	for i := range options {
		o := &options[i]

		priceScore := 50.0
		if maxCost > minCost {
			priceScore = (maxCost - o.CostLocal) / (maxCost - minCost) * 100
		}
		speedScore := 50.0
		if maxDays > minDays {
			speedScore = (maxDays - o.DeliveryDaysAvg()) / (maxDays - minDays) * 100
		}

		reliability := 50.0
		if o.Tracking {
			reliability += 20
		}
		if o.Insurance {
			reliability += 20
		}
		if o.SizeChecked() && o.SizeOK {
			reliability += 10
		}

		bonus := 0.0
		if preference == o.ServiceType &&
			(preference == domain.PreferenceEconomy || preference == domain.PreferenceCourier) {
			bonus = 15
		}

		total := 0.4*priceScore + 0.3*speedScore + 0.2*reliability + bonus +
			r.tieBreaker.Adjust(o.ServiceID())

		o.Scores = domain.Scores{
			Price:       round2(priceScore),
			Speed:       round2(speedScore),
			Reliability: reliability,
			TypeBonus:   bonus,
			Total:       round2(total),
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Scores.Total != options[j].Scores.Total {
			return options[i].Scores.Total > options[j].Scores.Total
		}
		if options[i].CostLocal != options[j].CostLocal {
			return options[i].CostLocal < options[j].CostLocal
		}
		return options[i].ServiceID() < options[j].ServiceID()
	})

	if len(options) > r.maxOptions {
		options = options[:r.maxOptions]
	}
	options[0].Recommended = true
	return options
}
