package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RealizarCierreRequest dispara el cierre de un mes (yyyy-MM).
type RealizarCierreRequest struct {
	Mes string `json:"mes"`
}

// LineaSnapshotDTO línea de la foto de inventario congelada en el cierre.
type LineaSnapshotDTO struct {
	ArticuloID      string          `json:"articulo_id"`
	NombreArticulo  string          `json:"nombre_articulo"`
	UbicacionID     string          `json:"ubicacion_id"`
	UbicacionNombre string          `json:"ubicacion_nombre"`
	Stock           decimal.Decimal `json:"stock"`
	Unidad          string          `json:"unidad"`
	Valoracion      decimal.Decimal `json:"valoracion"`
}

// CierreResponse representación HTTP de un cierre mensual.
type CierreResponse struct {
	ID                     string             `json:"id"`
	CentroID               string             `json:"centro_id"`
	Mes                    string             `json:"mes"`
	FechaInicio            time.Time          `json:"fecha_inicio"`
	FechaCierre            time.Time          `json:"fecha_cierre"`
	ValorInventarioInicial decimal.Decimal    `json:"valor_inventario_inicial"`
	ValorInventarioFinal   decimal.Decimal    `json:"valor_inventario_final"`
	ValorCompras           decimal.Decimal    `json:"valor_compras"`
	ValorConsumoTrazado    decimal.Decimal    `json:"valor_consumo_trazado"`
	ValorConsumoReal       decimal.Decimal    `json:"valor_consumo_real"`
	ValorMermaDesconocida  decimal.Decimal    `json:"valor_merma_desconocida"`
	Snapshot               []LineaSnapshotDTO `json:"snapshot,omitempty"`
}

// RegistrarMovimientoRequest anota una recepción de compra o un ajuste en
// el libro de almacén. Los consumos de producción no se registran por aquí:
// los escribe la finalización de la OF.
type RegistrarMovimientoRequest struct {
	Tipo       string          `json:"tipo"` // compra | otro
	ArticuloID string          `json:"articulo_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Valoracion decimal.Decimal `json:"valoracion"`
	Fecha      *time.Time      `json:"fecha,omitempty"` // por defecto, ahora
}

// MovimientoResponse representación HTTP de un apunte del libro.
type MovimientoResponse struct {
	ID                 string          `json:"id"`
	Tipo               string          `json:"tipo"`
	ArticuloID         string          `json:"articulo_id"`
	OrdenFabricacionID string          `json:"orden_fabricacion_id,omitempty"`
	Cantidad           decimal.Decimal `json:"cantidad"`
	Valoracion         decimal.Decimal `json:"valoracion"`
	Fecha              time.Time       `json:"fecha"`
	CreatedBy          string          `json:"created_by,omitempty"`
}
