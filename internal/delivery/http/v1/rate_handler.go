package v1

import (
	"errors"
	"net/http"

	"parcelrate-backend/internal/domain"
	"parcelrate-backend/internal/usecase"
	"parcelrate-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type RateHandler struct {
	rateUC *usecase.RateUsecase
}

func NewRateHandler(rateUC *usecase.RateUsecase) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// POST /api/v1/rates/resolve
func (h *RateHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req domain.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, string(domain.ErrInvalidInput), "malformed JSON body")
		return
	}

	result, err := h.rateUC.Resolve(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// writeDomainError maps error kinds onto HTTP statuses. PersistenceFailure
// never reaches here; the usecase swallows it.
func writeDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case domain.ErrInvalidInput:
		status = http.StatusBadRequest
	case domain.ErrNoServicesAvailable:
		status = http.StatusNotFound
	case domain.ErrNoViableCandidates:
		status = http.StatusUnprocessableEntity
	case domain.ErrTimeout:
		status = http.StatusGatewayTimeout
	}

	message := "internal error"
	var de *domain.Error
	if errors.As(err, &de) && status != http.StatusInternalServerError {
		message = de.Message
	}
	utils.WriteError(w, status, string(kind), message)
}
