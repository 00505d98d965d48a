package create_prolongation

import (
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	createProlongation "github.com/GBTour/GBT-ReservationService/internal/usecase/create_prolongation"
)

// CreateProlongationRequest HTTP request model
type CreateProlongationRequest struct {
	NewDropoffDate string `json:"newDropoffDate"` // "2025-06-20"
	Reduction      *int   `json:"reduction,omitempty"`
}

// ProlongationResponse HTTP response model
type ProlongationResponse struct {
	ID               int64   `json:"id"`
	ReservationID    int64   `json:"reservationId"`
	NewDropoffDate   string  `json:"newDropoffDate"`
	AdditionalDays   int     `json:"additionalDays"`
	ReductionPercent int     `json:"reductionPercent"`
	TotalPrice       float64 `json:"totalPrice"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	CreatedAt        string  `json:"createdAt"`
}

// FromUseCaseResponse convertit la réponse du usecase en réponse HTTP
func FromUseCaseResponse(resp *createProlongation.Response) *ProlongationResponse {
	return &ProlongationResponse{
		ID:               resp.ID,
		ReservationID:    resp.ReservationID,
		NewDropoffDate:   resp.NewDropoffDate.Format(domain.DateFormat),
		AdditionalDays:   resp.AdditionalDays,
		ReductionPercent: resp.ReductionPercent,
		TotalPrice:       resp.TotalPrice,
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
