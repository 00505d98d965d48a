package create_prolongation

import "errors"

var (
	// ErrReservationNotFound renvoyé quand la réservation n'existe pas
	ErrReservationNotFound = errors.New("create_prolongation: reservation not found")

	// ErrVehicleNotFound renvoyé quand le véhicule n'existe pas
	ErrVehicleNotFound = errors.New("create_prolongation: vehicle not found")

	// ErrReservationNotProlongable renvoyé quand la réservation n'est
	// pas dans un statut prolongeable
	ErrReservationNotProlongable = errors.New("create_prolongation: reservation cannot be prolonged")

	// ErrInvalidNewDropoff renvoyé quand la nouvelle date de retour
	// n'est pas strictement après la date de retour courante
	ErrInvalidNewDropoff = errors.New("create_prolongation: new dropoff must be after current dropoff")

	// ErrInvalidReduction renvoyé quand la réduction demandée ne
	// correspond pas au barème long séjour
	ErrInvalidReduction = errors.New("create_prolongation: invalid reduction")

	// ErrAlreadyPending renvoyé quand une prolongation non réglée existe
	// déjà pour la réservation
	ErrAlreadyPending = errors.New("create_prolongation: a prolongation is already pending")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("create_prolongation: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("create_prolongation: internal error")
)
