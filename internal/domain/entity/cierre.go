package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaSnapshot es la foto de un artículo en una ubicación en el momento
// del cierre: stock teórico y su valoración a coste unitario vigente.
type LineaSnapshot struct {
	ArticuloID      string          `json:"articuloErpId"`
	NombreArticulo  string          `json:"nombreProducto"`
	UbicacionID     string          `json:"ubicacionId"`
	UbicacionNombre string          `json:"ubicacionNombre"`
	Stock           decimal.Decimal `json:"stock"`
	Unidad          string          `json:"unidad"`
	Valoracion      decimal.Decimal `json:"valoracion"`
}

// CierreInventario es el registro financiero mensual de un centro:
// inmutable una vez creado (registro de auditoría), como máximo uno por
// (centro, mes), y encadenado al mes anterior por el valor de apertura.
//
// Identidad contable: ValorMermaDesconocida =
// (Inicial + Compras − Final) − ConsumoTrazado. Puede ser negativa
// (ganancia no trazada, p.ej. corrección de datos) y nunca se recorta.
type CierreInventario struct {
	ID                     string
	CentroID               string
	Mes                    string // clave yyyy-MM
	FechaInicio            time.Time
	FechaCierre            time.Time
	ValorInventarioInicial decimal.Decimal
	ValorInventarioFinal   decimal.Decimal
	ValorCompras           decimal.Decimal
	ValorConsumoTrazado    decimal.Decimal
	ValorConsumoReal       decimal.Decimal // Inicial + Compras − Final
	ValorMermaDesconocida  decimal.Decimal
	Snapshot               []LineaSnapshot
}
