package confirm_reservation

import "errors"

var (
	// ErrReservationNotFound renvoyé quand la réservation n'existe pas
	ErrReservationNotFound = errors.New("confirm_reservation: reservation not found")

	// ErrMatriculationNotFound renvoyé quand le matricule n'existe pas
	// sur le véhicule
	ErrMatriculationNotFound = errors.New("confirm_reservation: matriculation not found")

	// ErrMatriculationUnavailable renvoyé quand le matricule est en
	// maintenance
	ErrMatriculationUnavailable = errors.New("confirm_reservation: matriculation unavailable")

	// ErrDateConflict renvoyé quand l'intervalle demandé chevauche une
	// période existante
	ErrDateConflict = errors.New("confirm_reservation: date conflict")

	// ErrInvalidTransition renvoyé quand la réservation ne peut pas
	// passer en "confirmed" depuis son statut courant
	ErrInvalidTransition = errors.New("confirm_reservation: invalid status transition")

	// ErrPaymentRequired renvoyé quand le pourcentage de paiement est nul
	ErrPaymentRequired = errors.New("confirm_reservation: payment percentage required")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)
