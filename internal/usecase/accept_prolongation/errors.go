package accept_prolongation

import "errors"

var (
	// ErrProlongationNotFound renvoyé quand la prolongation n'existe pas
	ErrProlongationNotFound = errors.New("accept_prolongation: prolongation not found")

	// ErrReservationNotFound renvoyé quand la réservation associée
	// n'existe pas
	ErrReservationNotFound = errors.New("accept_prolongation: reservation not found")

	// ErrInvalidTransition renvoyé quand la prolongation n'est plus en
	// statut "pending"
	ErrInvalidTransition = errors.New("accept_prolongation: invalid status transition")

	// ErrReservationNotConfirmed renvoyé quand la réservation a quitté
	// "confirmed" depuis la demande de prolongation et ne détient donc
	// plus de période au calendrier
	ErrReservationNotConfirmed = errors.New("accept_prolongation: reservation is no longer confirmed")

	// ErrInvalidPaymentMethod renvoyé pour un mode de paiement inconnu
	ErrInvalidPaymentMethod = errors.New("accept_prolongation: invalid payment method")

	// ErrDateConflict renvoyé quand l'intervalle prolongé chevauche une
	// période existante
	ErrDateConflict = errors.New("accept_prolongation: date conflict")

	// ErrMatriculationNotFound renvoyé quand le matricule de la
	// réservation n'existe plus sur le véhicule
	ErrMatriculationNotFound = errors.New("accept_prolongation: matriculation not found")

	// ErrGatewayUnavailable renvoyé quand la passerelle de paiement est
	// injoignable ; l'acceptation est annulée, aucun état n'est persisté
	ErrGatewayUnavailable = errors.New("accept_prolongation: payment gateway unavailable")

	// ErrGatewayAuth renvoyé sur un refus d'authentification de la
	// passerelle, non réessayable
	ErrGatewayAuth = errors.New("accept_prolongation: payment gateway authentication failed")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("accept_prolongation: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("accept_prolongation: internal error")
)
