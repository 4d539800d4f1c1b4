package domain

// User preference over the ranked shortlist.
const (
	PreferenceEconomy  = "economy"
	PreferenceCourier  = "courier"
	PreferenceBalanced = "balanced"
)

type Dimensions struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

// Girth is length + 2*width + 2*height, the usual carrier size constraint.
func (d Dimensions) Girth() float64 {
	return d.LengthCm + 2*d.WidthCm + 2*d.HeightCm
}

type RateRequest struct {
	WeightKg           float64     `json:"weight_kg"`
	Dimensions         *Dimensions `json:"dimensions,omitempty"`
	DestinationCountry string      `json:"destination_country"`
	Preference         string      `json:"preference,omitempty"`
}

type Scores struct {
	Price       float64 `json:"price"`
	Speed       float64 `json:"speed"`
	Reliability float64 `json:"reliability"`
	TypeBonus   float64 `json:"type_bonus"`
	Total       float64 `json:"total"`
}

type CostBreakdown struct {
	Base      float64 `json:"base"`
	Weight    float64 `json:"weight"`
	Surcharge float64 `json:"surcharge"`
	Total     float64 `json:"total"`
}

type RateOption struct {
	Carrier           string        `json:"carrier"`
	Service           string        `json:"service"`
	ServiceType       string        `json:"service_type"`
	CostLocal         float64       `json:"cost_local"`
	CostUSD           float64       `json:"cost_usd"`
	Breakdown         CostBreakdown `json:"breakdown"`
	DeliveryDaysRange [2]int        `json:"delivery_days_range"`
	Tracking          bool          `json:"tracking"`
	Insurance         bool          `json:"insurance"`
	SizeOK            bool          `json:"size_ok"`
	Scores            Scores        `json:"scores"`
	Recommended       bool          `json:"recommended"`

	serviceID   int64
	sizeChecked bool
	daysAvg     float64
}

// ServiceID identifies the underlying service; kept out of the JSON body so
// the public response only carries presentation fields.
func (o *RateOption) ServiceID() int64 { return o.serviceID }

// SizeChecked reports whether the size limits were actually verified, as
// opposed to vacuously satisfied on a weight-only request.
func (o *RateOption) SizeChecked() bool { return o.sizeChecked }

func (o *RateOption) DeliveryDaysAvg() float64 { return o.daysAvg }

// SetInternal fills the non-serialized ranking inputs.
func (o *RateOption) SetInternal(serviceID int64, sizeChecked bool, daysAvg float64) {
	o.serviceID = serviceID
	o.sizeChecked = sizeChecked
	o.daysAvg = daysAvg
}

type RateResult struct {
	CalculationID       string       `json:"calculation_id"`
	ChargeableWeightKg  float64      `json:"chargeable_weight_kg"`
	CandidatesEvaluated int          `json:"candidates_evaluated"`
	Options             []RateOption `json:"options"`
}
