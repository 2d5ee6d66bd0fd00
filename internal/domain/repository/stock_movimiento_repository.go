package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

// MovimientoFilter filtros para consultas del libro de almacén.
type MovimientoFilter struct {
	Tipo       string
	ArticuloID string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// StockMovimientoRepository define el puerto del libro de almacén.
// Deliberadamente no expone Update ni Delete: la inmutabilidad del libro
// se garantiza en la capa de almacenamiento, no en la estructura en memoria.
type StockMovimientoRepository interface {
	Create(movimiento *entity.StockMovimiento) error
	List(filter MovimientoFilter) ([]*entity.StockMovimiento, error)

	// TotalCompras suma las valoraciones de las recepciones de compra con
	// fecha en [desde, hasta).
	TotalCompras(desde, hasta time.Time) (decimal.Decimal, error)

	// TotalConsumoTrazado suma los valores absolutos de las valoraciones de
	// los consumos de producción con fecha en [desde, hasta).
	TotalConsumoTrazado(desde, hasta time.Time) (decimal.Decimal, error)
}
