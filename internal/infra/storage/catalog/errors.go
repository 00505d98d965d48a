package catalog

import "errors"

var (
	// ErrRouteNotFound renvoyé quand aucune liaison tarifée ne relie les
	// deux localités
	ErrRouteNotFound = errors.New("catalog.repository: transfer route not found")

	// ErrExcursionNotFound renvoyé quand l'excursion n'existe pas
	ErrExcursionNotFound = errors.New("catalog.repository: excursion not found")

	// ErrBuildQuery renvoyé quand la construction de la requête SQL échoue
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery renvoyé quand l'exécution de la requête SQL échoue
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow renvoyé quand le scan du résultat échoue
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
