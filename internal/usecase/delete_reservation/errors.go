package delete_reservation

import "errors"

var (
	// ErrReservationNotFound renvoyé quand la réservation n'existe pas
	ErrReservationNotFound = errors.New("delete_reservation: reservation not found")

	// ErrMatriculationNotFound renvoyé quand le matricule de la
	// réservation n'existe plus sur le véhicule
	ErrMatriculationNotFound = errors.New("delete_reservation: matriculation not found")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("delete_reservation: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("delete_reservation: internal error")
)
