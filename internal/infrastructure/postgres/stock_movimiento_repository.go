package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ repository.StockMovimientoRepository = (*StockMovimientoRepo)(nil)

// StockMovimientoRepo implementación del libro de almacén sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay UPDATE ni DELETE sobre la
// tabla, ni aquí ni en el puerto.
type StockMovimientoRepo struct {
	q Querier
}

// NewStockMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovimientoRepository(q Querier) *StockMovimientoRepo {
	return &StockMovimientoRepo{q: q}
}

// Create persiste un apunte del libro.
func (r *StockMovimientoRepo) Create(m *entity.StockMovimiento) error {
	query := `
		INSERT INTO stock_movimientos (id, tipo, articulo_id, orden_fabricacion_id, cantidad, valoracion, fecha, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Tipo, m.ArticuloID, nullIfEmpty(m.OrdenFabricacionID),
		m.Cantidad, m.Valoracion, m.Fecha, m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// List devuelve apuntes filtrados, más recientes primero.
func (r *StockMovimientoRepo) List(filter repository.MovimientoFilter) ([]*entity.StockMovimiento, error) {
	query := `
		SELECT id, tipo, articulo_id, orden_fabricacion_id, cantidad, valoracion, fecha, created_at, created_by
		FROM stock_movimientos WHERE 1=1`
	var args []any
	pos := 1
	if filter.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filter.Tipo)
		pos++
	}
	if filter.ArticuloID != "" {
		query += fmt.Sprintf(" AND articulo_id = $%d", pos)
		args = append(args, filter.ArticuloID)
		pos++
	}
	if filter.Desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *filter.Desde)
		pos++
	}
	if filter.Hasta != nil {
		query += fmt.Sprintf(" AND fecha < $%d", pos)
		args = append(args, *filter.Hasta)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovimiento
	for rows.Next() {
		var m entity.StockMovimiento
		var ordenID, createdBy *string
		if err := rows.Scan(&m.ID, &m.Tipo, &m.ArticuloID, &ordenID,
			&m.Cantidad, &m.Valoracion, &m.Fecha, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if ordenID != nil {
			m.OrdenFabricacionID = *ordenID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TotalCompras suma valoraciones de recepciones de compra con fecha en [desde, hasta).
func (r *StockMovimientoRepo) TotalCompras(desde, hasta time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(valoracion), 0)
		FROM stock_movimientos
		WHERE tipo = $1 AND fecha >= $2 AND fecha < $3`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, entity.MovimientoCompra, desde, hasta).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total compras: %w", err)
	}
	return total, nil
}

// TotalConsumoTrazado suma los valores absolutos de las valoraciones de los
// consumos de producción con fecha en [desde, hasta). Los consumos se
// guardan con signo negativo; el cierre los compara en positivo.
func (r *StockMovimientoRepo) TotalConsumoTrazado(desde, hasta time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(valoracion)), 0)
		FROM stock_movimientos
		WHERE tipo = $1 AND fecha >= $2 AND fecha < $3`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, entity.MovimientoConsumoProduccion, desde, hasta).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total consumo trazado: %w", err)
	}
	return total, nil
}
