package create_prolongation

import "time"

// Request requête de création d'une prolongation. Reduction est
// optionnelle : fournie, elle doit correspondre au palier dérivé du
// nombre de jours supplémentaires.
type Request struct {
	ReservationID  int64
	NewDropoffDate string // "2025-06-20"
	Reduction      *int   // 0, 5, 10 ou 15 (optionnel)
}

// Response prolongation créée en statut "pending"
type Response struct {
	ID               int64
	ReservationID    int64
	NewDropoffDate   time.Time
	AdditionalDays   int
	ReductionPercent int
	TotalPrice       float64
	Status           string
	PaymentStatus    string
	CreatedAt        time.Time
}
