package reservations

import "errors"

var (
	// ErrReservationNotFound renvoyé quand la réservation n'existe pas
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrVehicleNotFound renvoyé quand le véhicule n'existe pas
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrMatriculationNotFound renvoyé quand le matricule n'existe pas
	// sur le véhicule
	ErrMatriculationNotFound = errors.New("matriculation not found")

	// ErrAccessDenied renvoyé quand l'utilisateur n'a pas accès à la
	// réservation
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDates renvoyé quand pickup_date n'est pas strictement
	// avant dropoff_date
	ErrInvalidDates = errors.New("invalid reservation dates")

	// ErrInternal renvoyé lors d'une erreur interne du service
	ErrInternal = errors.New("reservations.service: internal error")
)
