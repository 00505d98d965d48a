package accept_prolongation

import "time"

// Request requête d'acceptation d'une prolongation
type Request struct {
	ProlongationID int64
	PaymentMethod  string // "en_agence" ou "par_carte"
}

// Response état de la prolongation après acceptation. PayURL n'est
// renseigné que sur le chemin carte.
type Response struct {
	ID               int64
	ReservationID    int64
	NewDropoffDate   time.Time
	AdditionalDays   int
	ReductionPercent int
	TotalPrice       float64
	Status           string
	PaymentStatus    string
	PayURL           *string
	PaymentExpiresAt *time.Time
}
