package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

// StockRepository expone el stock teórico valorado por artículo y ubicación.
// El cierre mensual lo usa como foto viva: la valoración se evalúa en el
// momento del cierre, no se reconstruye históricamente.
type StockRepository interface {
	// ValoracionTotal devuelve Σ (stock teórico × coste unitario) sobre
	// todas las ubicaciones, en una única consulta (lectura consistente).
	ValoracionTotal() (decimal.Decimal, error)

	// Snapshot devuelve la foto detallada por artículo y ubicación que se
	// congela dentro del cierre.
	Snapshot() ([]entity.LineaSnapshot, error)
}
