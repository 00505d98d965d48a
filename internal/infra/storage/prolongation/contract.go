package prolongation

import "github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"

// Interfaces d'accès BDD réutilisées depuis dbmetrics
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
