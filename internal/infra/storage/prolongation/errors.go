package prolongation

import "errors"

var (
	// ErrProlongationNotFound renvoyé quand la demande de prolongation
	// n'existe pas
	ErrProlongationNotFound = errors.New("prolongation.repository: prolongation request not found")

	// ErrBuildQuery renvoyé quand la construction de la requête SQL échoue
	ErrBuildQuery = errors.New("prolongation.repository: failed to build query")

	// ErrExecQuery renvoyé quand l'exécution de la requête SQL échoue
	ErrExecQuery = errors.New("prolongation.repository: failed to execute query")

	// ErrScanRow renvoyé quand le scan du résultat échoue
	ErrScanRow = errors.New("prolongation.repository: failed to scan row")
)
