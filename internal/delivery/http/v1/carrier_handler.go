package v1

import (
	"net/http"

	"parcelrate-backend/internal/usecase"
	"parcelrate-backend/pkg/utils"
)

type CarrierHandler struct {
	carrierUC *usecase.CarrierUsecase
}

func NewCarrierHandler(carrierUC *usecase.CarrierUsecase) *CarrierHandler {
	return &CarrierHandler{carrierUC: carrierUC}
}

// GET /api/v1/carriers
func (h *CarrierHandler) ListCarriers(w http.ResponseWriter, r *http.Request) {
	carriers, err := h.carrierUC.ListCarriers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"carriers": carriers,
	})
}
