package vehicle

import "errors"

var (
	// ErrVehicleNotFound renvoyé quand le véhicule n'existe pas
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrMatriculationNotFound renvoyé quand le matricule n'existe pas
	// sur le véhicule
	ErrMatriculationNotFound = errors.New("vehicle.repository: matriculation not found")

	// ErrPeriodNotFound renvoyé quand aucune période d'indisponibilité
	// ne correspond au couple (matricule, réservation)
	ErrPeriodNotFound = errors.New("vehicle.repository: unavailable period not found")

	// ErrBuildQuery renvoyé quand la construction de la requête SQL échoue
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery renvoyé quand l'exécution de la requête SQL échoue
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow renvoyé quand le scan du résultat échoue
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")
)
