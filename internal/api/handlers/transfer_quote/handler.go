package transfer_quote

import (
	"errors"
	"net/http"
	"strings"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	"github.com/GBTour/GBT-ReservationService/internal/service/quotes"
	"github.com/GBTour/GBT-ReservationService/internal/service/quotes/models"
)

const (
	msgMissingCities = "les villes de départ et de destination sont requises"
	msgRouteNotFound = "aucun trajet entre ces deux villes"
	msgRouteTooShort = "destination à moins de 50 km, non sélectionnable en transfert"
	msgMissingDepart = "la ville de départ est requise"
)

type Handler struct {
	service QuotesService
	logger  Logger
}

func NewHandler(service QuotesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleQuote GET /api/v1/quotes/transfer
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.TransferQuoteRequest{
		Departure:   query.Get("departure"),
		Destination: query.Get("destination"),
		RoundTrip:   query.Get("roundTrip") == "true",
	}
	if langs := query.Get("languages"); langs != "" {
		req.Languages = strings.Split(langs, ",")
	}

	if req.Departure == "" || req.Destination == "" {
		handlers.RespondBadRequest(w, msgMissingCities)
		return
	}

	resp, err := h.service.TransferQuote(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrRouteNotFound):
			h.logger.Warn("GET /quotes/transfer - Route not found: %s -> %s", req.Departure, req.Destination)
			handlers.RespondNotFound(w, msgRouteNotFound)

		case errors.Is(err, quotes.ErrRouteTooShort):
			h.logger.Warn("GET /quotes/transfer - Route too short: %s -> %s", req.Departure, req.Destination)
			handlers.RespondBadRequest(w, msgRouteTooShort)

		case errors.Is(err, quotes.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /quotes/transfer - Failed: %s -> %s, error=%v", req.Departure, req.Destination, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleDestinations GET /api/v1/quotes/transfer/destinations
func (h *Handler) HandleDestinations(w http.ResponseWriter, r *http.Request) {
	departure := r.URL.Query().Get("departure")
	if departure == "" {
		handlers.RespondBadRequest(w, msgMissingDepart)
		return
	}

	resp, err := h.service.ListDestinations(r.Context(), departure)
	if err != nil {
		h.logger.Error("GET /quotes/transfer/destinations - Failed: departure=%s, error=%v", departure, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
