package reject_prolongation

import "errors"

var (
	// ErrProlongationNotFound renvoyé quand la prolongation n'existe pas
	ErrProlongationNotFound = errors.New("reject_prolongation: prolongation not found")

	// ErrInvalidTransition renvoyé quand la prolongation n'est pas en
	// statut "pending"
	ErrInvalidTransition = errors.New("reject_prolongation: invalid status transition")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("reject_prolongation: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("reject_prolongation: internal error")
)
