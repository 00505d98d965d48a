package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"
)

// TransactionManager gestionnaire de transactions sur une connexion
// instrumentée (*dbmetrics.DB)
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager crée un gestionnaire de transactions
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable exécute fn dans une transaction SERIALIZABLE.
// La transaction est attachée au contexte passé à fn : tout repository
// appelé avec ce contexte s'exécute dans la transaction. En cas d'erreur
// de fn ou de commit, la transaction est intégralement annulée. Les
// échecs de sérialisation ne sont pas rejoués ici, la politique de
// retry appartient à l'appelant.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}
