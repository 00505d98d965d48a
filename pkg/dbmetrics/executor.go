package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor interface minimale d'exécution de requêtes SQL.
// Implémentée par *sql.DB, *sql.Tx, *dbmetrics.DB et *dbmetrics.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor exécuteur lié à une transaction ouverte
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txCtxKey struct{}

// WithTx attache une transaction au contexte. Les repositories la
// récupèrent via GetExecutor, ce qui permet aux usecases de composer
// plusieurs appels repository dans une même transaction.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// GetExecutor renvoie la transaction portée par le contexte si elle
// existe, sinon l'exécuteur par défaut passé en paramètre.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txCtxKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction indique si le contexte porte une transaction active
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txCtxKey{}).(TxExecutor)
	return ok
}
