package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"
)

// TransactionManager gestionnaire de transactions sans métriques,
// utilisé quand la collecte Prometheus est désactivée
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager crée un gestionnaire de transactions
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// sqlTx adapte *sql.Tx à l'interface dbmetrics.TxExecutor
type sqlTx struct {
	*sql.Tx
}

// DoSerializable exécute fn dans une transaction SERIALIZABLE.
// Mêmes garanties que txmanager.TransactionManager.DoSerializable.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, sqlTx{tx})); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}
