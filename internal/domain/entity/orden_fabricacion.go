package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de fabricación.
// Pendiente → En Proceso → Finalizado → {Validado | Incidencia}.
// Validado e Incidencia son terminales; no hay transiciones hacia atrás.
const (
	EstadoPendiente  = "Pendiente"
	EstadoEnProceso  = "En Proceso"
	EstadoFinalizado = "Finalizado"
	EstadoValidado   = "Validado"
	EstadoIncidencia = "Incidencia"
)

// Partidas de producción del CPR.
const (
	PartidaFrio       = "FRIO"
	PartidaCaliente   = "CALIENTE"
	PartidaPasteleria = "PASTELERIA"
	PartidaExpedicion = "EXPEDICION"
)

// Tipos de expedición de una elaboración terminada.
const (
	ExpedicionRefrigerado = "REFRIGERADO"
	ExpedicionCongelado   = "CONGELADO"
	ExpedicionSeco        = "SECO"
)

// OrdenFabricacion representa un lote de producción de cocina con su propio
// ciclo de vida. Nunca se borra físicamente: las correcciones pasan por la
// vía de incidencia, no por rebobinar estado.
type OrdenFabricacion struct {
	ID                      string
	FechaCreacion           time.Time
	FechaProduccionPrevista time.Time
	FechaAsignacion         *time.Time
	FechaInicioProduccion   *time.Time
	FechaFinalizacion       *time.Time
	ElaboracionID           string
	ElaboracionNombre       string
	CantidadPlanificada     decimal.Decimal
	CantidadReal            *decimal.Decimal // solo a partir de Finalizado
	Unidad                  string
	PartidaAsignada         string
	TipoExpedicion          string
	Responsable             string
	Estado                  string
	OsIDs                   []string // órdenes de servicio que abastece
	Incidencia              bool
	IncidenciaObservaciones string
	OkCalidad               bool
	ResponsableCalidad      string
	FechaValidacionCalidad  *time.Time
}

// EsTerminal indica si la orden ya no admite más transiciones
// (validada por calidad o marcada con incidencia).
func (o *OrdenFabricacion) EsTerminal() bool {
	return o.OkCalidad || o.Incidencia
}

// EnColaCalidad indica si la orden está pendiente de revisión de calidad:
// finalizada, sin validar y sin incidencia. Es una vista derivada, nunca
// una tabla aparte.
func (o *OrdenFabricacion) EnColaCalidad() bool {
	return o.Estado == EstadoFinalizado && !o.OkCalidad && !o.Incidencia
}
