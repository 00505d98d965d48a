package quotes

import "errors"

var (
	// ErrRouteNotFound renvoyé quand aucun trajet ne relie les deux villes
	ErrRouteNotFound = errors.New("transfer route not found")

	// ErrRouteTooShort renvoyé quand la destination est à moins de 50 km
	// et n'est pas sélectionnable en transfert
	ErrRouteTooShort = errors.New("transfer route below minimum distance")

	// ErrExcursionNotFound renvoyé quand l'excursion n'existe pas
	ErrExcursionNotFound = errors.New("excursion not found")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du service
	ErrInternal = errors.New("quotes.service: internal error")
)
