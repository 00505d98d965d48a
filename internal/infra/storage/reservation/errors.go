package reservation

import "errors"

var (
	// ErrReservationNotFound renvoyé quand la réservation n'existe pas
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrBuildQuery renvoyé quand la construction de la requête SQL échoue
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery renvoyé quand l'exécution de la requête SQL échoue
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow renvoyé quand le scan du résultat échoue
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
