package confirm_reservation

import (
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	confirmReservation "github.com/GBTour/GBT-ReservationService/internal/usecase/confirm_reservation"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"userId"`
	VehicleID         int64   `json:"vehicleId"`
	Plate             string  `json:"plate"`
	PickupDate        string  `json:"pickupDate"`
	DropoffDate       string  `json:"dropoffDate"`
	Status            string  `json:"status"`
	PaymentPercentage int     `json:"paymentPercentage"`
	TotalPrice        float64 `json:"totalPrice"`
	AmountPaid        float64 `json:"amountPaid"`
	UpdatedAt         string  `json:"updatedAt"`
}

// FromUseCaseResponse convertit la réponse du usecase en réponse HTTP
func FromUseCaseResponse(resp *confirmReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                resp.ID,
		UserID:            resp.UserID,
		VehicleID:         resp.VehicleID,
		Plate:             resp.Plate,
		PickupDate:        resp.PickupDate.Format(domain.DateFormat),
		DropoffDate:       resp.DropoffDate.Format(domain.DateFormat),
		Status:            resp.Status,
		PaymentPercentage: resp.PaymentPercentage,
		TotalPrice:        resp.TotalPrice,
		AmountPaid:        resp.AmountPaid,
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
