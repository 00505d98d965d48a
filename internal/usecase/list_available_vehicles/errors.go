package list_available_vehicles

import "errors"

var (
	// ErrInvalidDates renvoyé quand les bornes de la période sont
	// absentes, mal formées ou inversées
	ErrInvalidDates = errors.New("list_available_vehicles: invalid date range")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("list_available_vehicles: internal error")
)
