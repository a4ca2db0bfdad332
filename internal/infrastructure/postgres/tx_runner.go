package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-count-api/internal/application/catalog"
	"github.com/jhoicas/inventory-count-api/internal/application/counting"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

var (
	_ counting.TxRunner = (*TxRunner)(nil)
	_ catalog.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCount abre una transacción con los repositorios de sesión y conteo atados a ella.
// Commit si fn no devuelve error, Rollback en cualquier otro caso.
func (r *TxRunner) RunCount(ctx context.Context, fn func(
	sessionRepo repository.SessionRepository,
	countRepo repository.CountRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewSessionRepository(q), NewCountRepository(q))
	})
}

// RunCatalog transacción para importaciones de catálogo y stock esperado.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	expectedRepo repository.ExpectedStockRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewExpectedStockRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
