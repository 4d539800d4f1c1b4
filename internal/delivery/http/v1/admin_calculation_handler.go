package v1

import (
	"net/http"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/internal/usecase"
	"parcelrate-backend/pkg/utils"
)

type AdminCalculationHandler struct {
	calcUC *usecase.CalculationUsecase
}

func NewAdminCalculationHandler(calcUC *usecase.CalculationUsecase) *AdminCalculationHandler {
	return &AdminCalculationHandler{calcUC: calcUC}
}

// GET /api/v1/admin/calculations?country=DE&limit=20&offset=0
func (h *AdminCalculationHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CalculationFilter{
		Country: q.Get("country"),
		Limit:   utils.ParseInt(q.Get("limit"), 20),
		Offset:  utils.ParseInt(q.Get("offset"), 0),
	}

	calcs, total, err := h.calcUC.ListCalculations(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"calculations": calcs,
		"total":        total,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})
}

// GET /api/v1/admin/calculations/{id}
func (h *AdminCalculationHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	calc, err := h.calcUC.GetCalculation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if calc == nil {
		utils.WriteError(w, http.StatusNotFound, "NotFound", "calculation not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, calc)
}
