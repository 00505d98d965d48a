package list_available_vehicles

import (
	"errors"
	"net/http"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	listVehicles "github.com/GBTour/GBT-ReservationService/internal/usecase/list_available_vehicles"
)

const msgInvalidDates = "période invalide : start et end sont requis au format 2006-01-02"

type Handler struct {
	useCase ListAvailableVehiclesUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailableVehiclesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &listVehicles.Request{
		StartDate: query.Get("start"),
		EndDate:   query.Get("end"),
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listVehicles.ErrInvalidDates):
			h.logger.Warn("GET /vehicles/available - Invalid dates: start=%q, end=%q", req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidDates)

		default:
			h.logger.Error("GET /vehicles/available - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Debug("GET /vehicles/available - %d vehicles available on [%s, %s]", resp.Total, req.StartDate, req.EndDate)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
