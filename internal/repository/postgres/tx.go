package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventhive/internal/domain"
)

type txCtxKey struct{}

// WithTx stores a SQL transaction in the context so repository calls made
// with that context join it.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// TxFrom extracts the SQL transaction from the context if present.
func TxFrom(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx)
	return tx, ok
}

// queryer is the subset of *sql.DB and *sql.Tx the repositories use.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// querier returns the transaction from ctx when one is in flight, db otherwise.
func querier(ctx context.Context, db *sql.DB) queryer {
	if tx, ok := TxFrom(ctx); ok {
		return tx
	}
	return db
}

type txManager struct {
	DB *sql.DB
}

// NewTxManager returns a TxManager backed by database/sql transactions.
func NewTxManager(db *sql.DB) domain.TxManager {
	return &txManager{DB: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
