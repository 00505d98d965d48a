package change_reservation_status

import "errors"

var (
	// ErrReservationNotFound renvoyé quand la réservation n'existe pas
	ErrReservationNotFound = errors.New("change_reservation_status: reservation not found")

	// ErrVehicleNotFound renvoyé quand le véhicule n'existe pas
	ErrVehicleNotFound = errors.New("change_reservation_status: vehicle not found")

	// ErrMatriculationNotFound renvoyé quand le matricule n'existe pas
	// sur le véhicule
	ErrMatriculationNotFound = errors.New("change_reservation_status: matriculation not found")

	// ErrMatriculationUnavailable renvoyé quand le matricule est en
	// maintenance
	ErrMatriculationUnavailable = errors.New("change_reservation_status: matriculation unavailable")

	// ErrDateConflict renvoyé quand le nouvel intervalle chevauche une
	// période existante
	ErrDateConflict = errors.New("change_reservation_status: date conflict")

	// ErrInvalidTransition renvoyé pour une transition de statut interdite
	ErrInvalidTransition = errors.New("change_reservation_status: invalid status transition")

	// ErrInvalidStatus renvoyé pour un statut inconnu
	ErrInvalidStatus = errors.New("change_reservation_status: invalid status")

	// ErrInvalidDates renvoyé quand pickup_date n'est pas strictement
	// avant dropoff_date
	ErrInvalidDates = errors.New("change_reservation_status: invalid dates")

	// ErrPaymentRequired renvoyé quand le pourcentage de paiement est nul
	// pour un statut qui l'exige
	ErrPaymentRequired = errors.New("change_reservation_status: payment percentage required")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("change_reservation_status: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("change_reservation_status: internal error")
)
