package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo expone el stock teórico valorado sobre PostgreSQL (usable con
// pool o tx). La valoración cruza el stock por ubicación con el coste
// unitario vigente del catálogo de artículos.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ValoracionTotal devuelve Σ (stock × coste unitario) en una única consulta.
func (r *StockRepo) ValoracionTotal() (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.cantidad * a.coste_unitario), 0)
		FROM stock s
		JOIN articulos a ON a.id = s.articulo_id`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("valoracion total: %w", err)
	}
	return total, nil
}

// Snapshot devuelve la foto detallada por artículo y ubicación.
func (r *StockRepo) Snapshot() ([]entity.LineaSnapshot, error) {
	query := `
		SELECT s.articulo_id, a.nombre, s.ubicacion_id, u.nombre,
		       s.cantidad, a.unidad, s.cantidad * a.coste_unitario
		FROM stock s
		JOIN articulos a ON a.id = s.articulo_id
		JOIN ubicaciones u ON u.id = s.ubicacion_id
		ORDER BY u.nombre, a.nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("snapshot stock: %w", err)
	}
	defer rows.Close()
	var lineas []entity.LineaSnapshot
	for rows.Next() {
		var l entity.LineaSnapshot
		if err := rows.Scan(&l.ArticuloID, &l.NombreArticulo, &l.UbicacionID,
			&l.UbicacionNombre, &l.Stock, &l.Unidad, &l.Valoracion); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}
