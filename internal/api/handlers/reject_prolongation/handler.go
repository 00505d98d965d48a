package reject_prolongation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	rejectProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/reject_prolongation"
)

const (
	msgInvalidProlongationID = "identifiant de prolongation invalide"
	msgNotFound              = "prolongation introuvable"
	msgInvalidTransition     = "la prolongation n'est plus en attente"
)

type Handler struct {
	useCase RejectProlongationUseCase
	logger  Logger
}

func NewHandler(useCase RejectProlongationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/prolongations/{prolongationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	prolongationID, err := strconv.ParseInt(vars["prolongationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /prolongations/{id}/reject - Invalid prolongation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProlongationID)
		return
	}

	err = h.useCase.Execute(r.Context(), &rejectProlongation.Request{ProlongationID: prolongationID})
	if err != nil {
		switch {
		case errors.Is(err, rejectProlongation.ErrProlongationNotFound):
			h.logger.Warn("POST /prolongations/{id}/reject - Not found: prolongation_id=%d", prolongationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectProlongation.ErrInvalidTransition):
			h.logger.Warn("POST /prolongations/{id}/reject - Invalid transition: prolongation_id=%d", prolongationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, rejectProlongation.ErrInvalidInput):
			h.logger.Warn("POST /prolongations/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProlongationID)

		default:
			h.logger.Error("POST /prolongations/{id}/reject - Failed: prolongation_id=%d, error=%v", prolongationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /prolongations/{id}/reject - Prolongation rejected: prolongation_id=%d", prolongationID)
	handlers.RespondNoContent(w)
}
