package excursion_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GBTour/GBT-ReservationService/internal/api/handlers"
	"github.com/GBTour/GBT-ReservationService/internal/service/quotes"
	"github.com/GBTour/GBT-ReservationService/internal/service/quotes/models"
)

const (
	msgInvalidExcursionID = "identifiant d'excursion invalide"
	msgInvalidHeadcount   = "nombre de participants invalide"
	msgExcursionNotFound  = "excursion introuvable"
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

// Handle GET /api/v1/quotes/excursion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	excursionID, err := strconv.ParseInt(query.Get("excursionId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	adults, errA := parseCount(query.Get("adults"))
	children, errC := parseCount(query.Get("children"))
	babies, errB := parseCount(query.Get("babies"))
	if errA != nil || errC != nil || errB != nil {
		handlers.RespondBadRequest(w, msgInvalidHeadcount)
		return
	}

	req := &models.ExcursionQuoteRequest{
		ExcursionID: excursionID,
		Adults:      adults,
		Children:    children,
		Babies:      babies,
		WithGuide:   query.Get("withGuide") == "true",
	}

	resp, err := h.service.ExcursionQuote(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrExcursionNotFound):
			h.logger.Warn("GET /quotes/excursion - Not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgExcursionNotFound)

		case errors.Is(err, quotes.ErrInvalidInput):
			h.logger.Warn("GET /quotes/excursion - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /quotes/excursion - Failed: excursion_id=%d, error=%v", excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// parseCount vide vaut zéro, sinon entier positif ou nul
func parseCount(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
