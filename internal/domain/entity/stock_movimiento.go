package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de almacén.
const (
	MovimientoCompra            = "compra"             // recepción de compra
	MovimientoConsumoProduccion = "consumo_produccion" // consumo al finalizar una OF
	MovimientoOtro              = "otro"               // ajustes, regularizaciones
)

// StockMovimiento es una anotación append-only del libro de almacén con su
// valoración monetaria. Convención de signo: las compras se guardan con
// valoración positiva y los consumos con valoración negativa. Se escribe
// exactamente una vez; el repositorio no expone update ni delete.
type StockMovimiento struct {
	ID                 string
	Tipo               string
	ArticuloID         string
	OrdenFabricacionID string // vacía si el movimiento no nace de una OF
	Cantidad           decimal.Decimal
	Valoracion         decimal.Decimal // firmado
	Fecha              time.Time
	CreatedAt          time.Time
	CreatedBy          string
}
