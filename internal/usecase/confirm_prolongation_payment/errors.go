package confirm_prolongation_payment

import "errors"

var (
	// ErrProlongationNotFound renvoyé quand aucune prolongation ne
	// correspond au triplet (id, ordre, référence de paiement)
	ErrProlongationNotFound = errors.New("confirm_prolongation_payment: prolongation not found")

	// ErrReservationNotFound renvoyé quand la réservation associée
	// n'existe pas
	ErrReservationNotFound = errors.New("confirm_prolongation_payment: reservation not found")

	// ErrNotAwaitingPayment renvoyé quand la prolongation n'est pas en
	// "waiting_for_payment"
	ErrNotAwaitingPayment = errors.New("confirm_prolongation_payment: prolongation is not awaiting payment")

	// ErrPaymentExpired renvoyé quand le callback arrive après
	// l'expiration du lien de paiement
	ErrPaymentExpired = errors.New("confirm_prolongation_payment: payment link expired")

	// ErrPaymentNotCompleted renvoyé quand la passerelle ne confirme pas
	// le paiement
	ErrPaymentNotCompleted = errors.New("confirm_prolongation_payment: payment not completed")

	// ErrOrderIDMismatch renvoyé quand l'ordre renvoyé par la passerelle
	// ne correspond pas à celui enregistré
	ErrOrderIDMismatch = errors.New("confirm_prolongation_payment: order id mismatch")

	// ErrPaymentAmountMismatch renvoyé quand le montant encaissé (en
	// plus petite unité) diffère du coût attendu ; fatal, aucun état
	// n'est modifié
	ErrPaymentAmountMismatch = errors.New("confirm_prolongation_payment: payment amount mismatch")

	// ErrDateConflict renvoyé quand l'intervalle prolongé est entré en
	// conflit depuis l'envoi du lien ; fatal même après paiement, la
	// réconciliation est manuelle
	ErrDateConflict = errors.New("confirm_prolongation_payment: date conflict")

	// ErrReservationNotConfirmed renvoyé quand la réservation a quitté
	// "confirmed" entre l'envoi du lien et le callback ; fatal même
	// après paiement, la réconciliation est manuelle
	ErrReservationNotConfirmed = errors.New("confirm_prolongation_payment: reservation is no longer confirmed")

	// ErrMatriculationNotFound renvoyé quand le matricule de la
	// réservation n'existe plus sur le véhicule
	ErrMatriculationNotFound = errors.New("confirm_prolongation_payment: matriculation not found")

	// ErrGatewayUnavailable renvoyé quand la passerelle est injoignable
	ErrGatewayUnavailable = errors.New("confirm_prolongation_payment: payment gateway unavailable")

	// ErrGatewayAuth renvoyé sur un refus d'authentification de la
	// passerelle, non réessayable
	ErrGatewayAuth = errors.New("confirm_prolongation_payment: payment gateway authentication failed")

	// ErrInvalidInput renvoyé pour des données d'entrée invalides
	ErrInvalidInput = errors.New("confirm_prolongation_payment: invalid input data")

	// ErrInternal renvoyé lors d'une erreur interne du usecase
	ErrInternal = errors.New("confirm_prolongation_payment: internal error")
)
