package change_reservation_status

import (
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	changeStatus "github.com/GBTour/GBT-ReservationService/internal/usecase/change_reservation_status"
)

// ChangeStatusRequest HTTP request model. Tous les champs sont
// optionnels ; les dates et le matricule ne sont modifiables que sur
// une réservation non terminale.
type ChangeStatusRequest struct {
	Status      *string `json:"status,omitempty"`
	PickupDate  *string `json:"pickupDate,omitempty"`
	DropoffDate *string `json:"dropoffDate,omitempty"`
	Plate       *string `json:"plate,omitempty"`
}

// ToUseCaseRequest convertit la requête HTTP en requête usecase
func (r *ChangeStatusRequest) ToUseCaseRequest(reservationID int64) *changeStatus.Request {
	return &changeStatus.Request{
		ReservationID: reservationID,
		Status:        r.Status,
		PickupDate:    r.PickupDate,
		DropoffDate:   r.DropoffDate,
		Plate:         r.Plate,
	}
}

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
func FromUseCaseResponse(resp *changeStatus.Response) *ReservationResponse {
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
