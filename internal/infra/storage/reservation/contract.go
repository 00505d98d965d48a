package reservation

import (
	"context"
	"database/sql"

	"github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"
)

// Interfaces d'accès BDD réutilisées depuis dbmetrics
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner interface d'ouverture de transactions.
// Implémentée par *sql.DB et *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
