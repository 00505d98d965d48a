package notifservice

import "errors"

var (
	// ErrServiceUnavailable le service de notifications est injoignable.
	// Les notifications sont non bloquantes : l'appelant journalise et continue.
	ErrServiceUnavailable = errors.New("notifservice: service unavailable")

	// ErrInvalidResponse réponse inattendue du service de notifications
	ErrInvalidResponse = errors.New("notifservice: invalid response")
)
