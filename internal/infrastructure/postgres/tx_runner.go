package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cpr-api/internal/application/production"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. La finalización de una OF lo usa para escribir de
// forma atómica la transición de estado, los consumos del libro de almacén
// y el registro de producción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	movRepo repository.StockMovimientoRepository,
	produccionRepo repository.ProduccionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ordenRepo := NewOrdenRepository(tx)
	movRepo := NewStockMovimientoRepository(tx)
	produccionRepo := NewProduccionRepository(tx)

	if err := fn(ordenRepo, movRepo, produccionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
