package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/internal/usecase"

	"github.com/goccy/go-json"
)

type stubRuleRepo struct {
	candidates []domain.Candidate
	baseRules  map[int64][]domain.ShippingRule
}

func (s *stubRuleRepo) FindCandidateServices(ctx context.Context, country string, weightKg float64) ([]domain.Candidate, error) {
	return s.candidates, nil
}

func (s *stubRuleRepo) ExceptionsFor(ctx context.Context, serviceID int64, country string) ([]domain.CountryException, error) {
	return nil, nil
}

func (s *stubRuleRepo) BaseRulesFor(ctx context.Context, serviceID int64, country string) ([]domain.ShippingRule, error) {
	return s.baseRules[serviceID], nil
}

func (s *stubRuleRepo) CurrentSurchargeRate(ctx context.Context, serviceID int64) (float64, error) {
	return 0, nil
}

type stubCalcRepo struct{}

func (stubCalcRepo) InsertCalculation(ctx context.Context, calc *domain.ShippingCalculation) error {
	return nil
}

func (stubCalcRepo) GetCalculationByID(ctx context.Context, id string) (*domain.ShippingCalculation, error) {
	return nil, nil
}

func (stubCalcRepo) ListCalculations(ctx context.Context, filter domain.CalculationFilter) ([]domain.ShippingCalculation, int64, error) {
	return nil, 0, nil
}

func newTestHandler(ruleRepo domain.RuleRepository) *RateHandler {
	uc := usecase.NewRateUsecase(
		ruleRepo, stubCalcRepo{},
		usecase.NewNormalizer(1.05, 1.10, 5000),
		usecase.NewRanker(5, usecase.NoTieBreak{}),
		usecase.FixedExchangeRate{Rate: 110},
		nil,
		5*time.Second, 300*time.Millisecond,
	)
	return NewRateHandler(uc)
}

func postResolve(t *testing.T, h *RateHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rates/resolve", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)
	return rec
}

func TestResolveEndpointSuccess(t *testing.T) {
	h := newTestHandler(&stubRuleRepo{
		candidates: []domain.Candidate{{
			Service: domain.Service{
				ID: 1, Name: "Surface Mail", Type: domain.ServiceTypeEconomy,
				DeliveryDaysMin: 5, DeliveryDaysMax: 10, MaxWeightKg: 30, IsActive: true,
			},
			CarrierName: "National Post",
		}},
		baseRules: map[int64][]domain.ShippingRule{
			1: {{ServiceID: 1, WeightFrom: 0, WeightTo: 5, BasePrice: 100, PricePerKg: 50}},
		},
	})

	rec := postResolve(t, h, `{"weight_kg": 1, "destination_country": "DE"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var result domain.RateResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.CalculationID == "" {
		t.Error("calculation_id missing")
	}
	if len(result.Options) != 1 || !result.Options[0].Recommended {
		t.Errorf("unexpected options: %+v", result.Options)
	}
}

func TestResolveEndpointMalformedBody(t *testing.T) {
	h := newTestHandler(&stubRuleRepo{})

	rec := postResolve(t, h, `{"weight_kg": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestResolveEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{"invalid input", `{"weight_kg": -1, "destination_country": "DE"}`,
			http.StatusBadRequest, "InvalidInput"},
		{"no services", `{"weight_kg": 1, "destination_country": "AQ"}`,
			http.StatusNotFound, "NoServicesAvailable"},
	}

	h := newTestHandler(&stubRuleRepo{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postResolve(t, h, tc.body)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			var envelope map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("bad error body: %v", err)
			}
			if envelope["error_kind"] != tc.wantKind {
				t.Errorf("error_kind = %s, want %s", envelope["error_kind"], tc.wantKind)
			}
			if envelope["message"] == "" {
				t.Error("message missing from error envelope")
			}
		})
	}
}

func TestResolveEndpointNoViableCandidates(t *testing.T) {
	maxLen := 10.0
	h := newTestHandler(&stubRuleRepo{
		candidates: []domain.Candidate{{
			Service: domain.Service{
				ID: 1, Name: "Surface Mail", Type: domain.ServiceTypeEconomy,
				DeliveryDaysMin: 5, DeliveryDaysMax: 10, MaxWeightKg: 30, IsActive: true,
			},
			CarrierName: "National Post",
		}},
		baseRules: map[int64][]domain.ShippingRule{
			1: {{ServiceID: 1, WeightFrom: 0, WeightTo: 5, BasePrice: 100, PricePerKg: 50, MaxLengthCm: &maxLen}},
		},
	})

	rec := postResolve(t, h,
		`{"weight_kg": 1, "destination_country": "DE", "dimensions": {"length_cm": 40, "width_cm": 20, "height_cm": 10}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
	}
}
