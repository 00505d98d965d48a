package confirm_reservation

import "time"

// Request requête de confirmation d'une réservation
type Request struct {
	ReservationID int64 // ID de la réservation à confirmer
}

// Response réservation confirmée
type Response struct {
	ID                int64
	UserID            int64
	VehicleID         int64
	Plate             string
	PickupDate        time.Time
	DropoffDate       time.Time
	Status            string
	PaymentPercentage int
	TotalPrice        float64
	AmountPaid        float64
	UpdatedAt         time.Time
}
