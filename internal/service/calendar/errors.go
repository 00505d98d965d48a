package calendar

import "errors"

var (
	// ErrMatriculationNotFound renvoyé quand le matricule n'existe pas
	// sur le véhicule
	ErrMatriculationNotFound = errors.New("matriculation not found")

	// ErrMatriculationUnavailable renvoyé quand le matricule est en
	// maintenance et ne peut pas être réservé
	ErrMatriculationUnavailable = errors.New("matriculation unavailable")

	// ErrDateConflict renvoyé quand l'intervalle demandé chevauche une
	// période d'indisponibilité existante
	ErrDateConflict = errors.New("date conflict")

	// ErrPeriodNotHeld renvoyé quand la réservation ne détient aucune
	// période au calendrier alors que l'opération exige d'en remplacer une
	ErrPeriodNotHeld = errors.New("reservation holds no calendar period")

	// ErrInternal renvoyé lors d'une erreur interne du service
	ErrInternal = errors.New("calendar.service: internal error")
)
