package accept_prolongation

import (
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	acceptProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/accept_prolongation"
)

// AcceptProlongationRequest HTTP request model
type AcceptProlongationRequest struct {
	PaymentMethod string `json:"paymentMethod"` // "en_agence" ou "par_carte"
}

// ProlongationResponse HTTP response model. payUrl et paymentExpiresAt
// ne sont présents que sur le chemin carte.
type ProlongationResponse struct {
	ID               int64   `json:"id"`
	ReservationID    int64   `json:"reservationId"`
	NewDropoffDate   string  `json:"newDropoffDate"`
	AdditionalDays   int     `json:"additionalDays"`
	ReductionPercent int     `json:"reductionPercent"`
	TotalPrice       float64 `json:"totalPrice"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	PayURL           *string `json:"payUrl,omitempty"`
	PaymentExpiresAt *string `json:"paymentExpiresAt,omitempty"`
}

// FromUseCaseResponse convertit la réponse du usecase en réponse HTTP
func FromUseCaseResponse(resp *acceptProlongation.Response) *ProlongationResponse {
	out := &ProlongationResponse{
		ID:               resp.ID,
		ReservationID:    resp.ReservationID,
		NewDropoffDate:   resp.NewDropoffDate.Format(domain.DateFormat),
		AdditionalDays:   resp.AdditionalDays,
		ReductionPercent: resp.ReductionPercent,
		TotalPrice:       resp.TotalPrice,
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		PayURL:           resp.PayURL,
	}
	if resp.PaymentExpiresAt != nil {
		expires := resp.PaymentExpiresAt.Format(time.RFC3339)
		out.PaymentExpiresAt = &expires
	}
	return out
}
