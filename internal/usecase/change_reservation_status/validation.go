package change_reservation_status

import (
	"fmt"
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// validateRequest contrôle la forme de la requête avant toute lecture BDD
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}
	if req.Status == nil && req.PickupDate == nil && req.DropoffDate == nil && req.Plate == nil {
		return fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}
	if req.Plate != nil && *req.Plate == "" {
		return fmt.Errorf("%w: plate must not be empty", ErrInvalidInput)
	}
	return nil
}

// parseTargetStatus convertit le statut cible demandé, s'il est fourni
func parseTargetStatus(req *Request) (*domain.ReservationStatus, error) {
	if req.Status == nil {
		return nil, nil
	}
	status := domain.ReservationStatus(*req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}
	return &status, nil
}

// parseDateEdit convertit une date de la requête, s'il y a lieu
func parseDateEdit(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	date, err := domain.ParseDate(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDates, *raw)
	}
	return &date, nil
}
