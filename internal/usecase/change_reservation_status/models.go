package change_reservation_status

import "time"

// Request requête de mutation d'une réservation. Status, les dates et
// le matricule sont tous optionnels ; une modification de dates ou de
// matricule sur une réservation confirmée libère l'ancienne période et
// réapplique le contrôle complet sur la nouvelle, dans la même
// transaction.
type Request struct {
	ReservationID int64
	Status        *string // statut cible (optionnel)
	PickupDate    *string // "2025-06-01" (optionnel)
	DropoffDate   *string // "2025-06-05" (optionnel)
	Plate         *string // nouveau matricule (optionnel)
}

// Response réservation après mutation
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
