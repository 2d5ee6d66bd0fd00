package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearOrdenRequest alta de una OF planificada (estado Pendiente).
type CrearOrdenRequest struct {
	ElaboracionID           string          `json:"elaboracion_id"`
	CantidadPlanificada     decimal.Decimal `json:"cantidad_planificada"`
	FechaProduccionPrevista string          `json:"fecha_produccion_prevista"` // yyyy-MM-dd
	PartidaAsignada         string          `json:"partida_asignada"`
	OsIDs                   []string        `json:"os_ids"`
}

// AsignarOrdenRequest asignación y arranque de una OF.
type AsignarOrdenRequest struct {
	Responsable string `json:"responsable"`
}

// FinalizarOrdenRequest cierre de producción de una OF. CantidadReal nil
// significa "según lo planificado".
type FinalizarOrdenRequest struct {
	CantidadReal *decimal.Decimal `json:"cantidad_real"`
}

// IncidenciaRequest marca una OF finalizada con incidencia.
type IncidenciaRequest struct {
	CantidadCorregida decimal.Decimal `json:"cantidad_corregida"`
	Observaciones     string          `json:"observaciones"`
}

// ValidarCalidadRequest validación de calidad de una OF finalizada.
type ValidarCalidadRequest struct {
	ResponsableCalidad string `json:"responsable_calidad"`
}

// OrdenResponse representación HTTP de una orden de fabricación.
type OrdenResponse struct {
	ID                      string           `json:"id"`
	ElaboracionID           string           `json:"elaboracion_id"`
	ElaboracionNombre       string           `json:"elaboracion_nombre"`
	Estado                  string           `json:"estado"`
	CantidadPlanificada     decimal.Decimal  `json:"cantidad_planificada"`
	CantidadReal            *decimal.Decimal `json:"cantidad_real,omitempty"`
	Unidad                  string           `json:"unidad"`
	PartidaAsignada         string           `json:"partida_asignada"`
	TipoExpedicion          string           `json:"tipo_expedicion,omitempty"`
	Responsable             string           `json:"responsable,omitempty"`
	OsIDs                   []string         `json:"os_ids,omitempty"`
	FechaCreacion           time.Time        `json:"fecha_creacion"`
	FechaProduccionPrevista time.Time        `json:"fecha_produccion_prevista"`
	FechaAsignacion         *time.Time       `json:"fecha_asignacion,omitempty"`
	FechaInicioProduccion   *time.Time       `json:"fecha_inicio_produccion,omitempty"`
	FechaFinalizacion       *time.Time       `json:"fecha_finalizacion,omitempty"`
	Incidencia              bool             `json:"incidencia"`
	IncidenciaObservaciones string           `json:"incidencia_observaciones,omitempty"`
	OkCalidad               bool             `json:"ok_calidad"`
	ResponsableCalidad      string           `json:"responsable_calidad,omitempty"`
	FechaValidacionCalidad  *time.Time       `json:"fecha_validacion_calidad,omitempty"`
}

// ComponenteUtilizadoDTO línea de consumo dentro de una producción.
type ComponenteUtilizadoDTO struct {
	ComponenteID        string          `json:"componente_id"`
	Nombre              string          `json:"nombre"`
	CantidadPlanificada decimal.Decimal `json:"cantidad_planificada"`
	CantidadUtilizada   decimal.Decimal `json:"cantidad_utilizada"`
	Merma               decimal.Decimal `json:"merma"`
}

// RegistrarProduccionRequest alta manual de una producción en el histórico.
// FechaProduccion vacía equivale a ahora.
type RegistrarProduccionRequest struct {
	ElaboracionID         string                   `json:"elaboracion_id"`
	FechaProduccion       *time.Time               `json:"fecha_produccion,omitempty"`
	Responsable           string                   `json:"responsable"`
	CantidadPlanificada   decimal.Decimal          `json:"cantidad_planificada"`
	CantidadRealProducida decimal.Decimal          `json:"cantidad_real_producida"`
	ComponentesUtilizados []ComponenteUtilizadoDTO `json:"componentes_utilizados"`
	Observaciones         string                   `json:"observaciones"`
}

// ActualizarProduccionRequest corrección de una producción registrada.
// Los campos nil quedan como estaban.
type ActualizarProduccionRequest struct {
	CantidadRealProducida *decimal.Decimal         `json:"cantidad_real_producida,omitempty"`
	ComponentesUtilizados []ComponenteUtilizadoDTO `json:"componentes_utilizados,omitempty"`
	Observaciones         *string                  `json:"observaciones,omitempty"`
}

// ProduccionResponse representación HTTP de una producción registrada.
type ProduccionResponse struct {
	ID                    string                   `json:"id"`
	ElaboracionID         string                   `json:"elaboracion_id"`
	OrdenFabricacionID    string                   `json:"orden_fabricacion_id,omitempty"`
	FechaProduccion       time.Time                `json:"fecha_produccion"`
	Responsable           string                   `json:"responsable"`
	CantidadPlanificada   decimal.Decimal          `json:"cantidad_planificada"`
	CantidadRealProducida decimal.Decimal          `json:"cantidad_real_producida"`
	RatioProduccion       decimal.Decimal          `json:"ratio_produccion"`
	ComponentesUtilizados []ComponenteUtilizadoDTO `json:"componentes_utilizados"`
	Observaciones         string                   `json:"observaciones,omitempty"`
}

// AjusteComponenteDTO sugerencia de corrección de escandallo.
type AjusteComponenteDTO struct {
	ComponenteID           string          `json:"componente_id"`
	Nombre                 string          `json:"nombre"`
	CantidadActual         decimal.Decimal `json:"cantidad_actual"`
	CantidadSugerida       decimal.Decimal `json:"cantidad_sugerida"`
	AjusteAbsoluto         decimal.Decimal `json:"ajuste_absoluto"`
	AjustePorcent          decimal.Decimal `json:"ajuste_porcent"`
	ProduccionesAnalizadas int             `json:"producciones_analizadas"`
}

// EstadisticasResponse estadísticas de rendimiento de una elaboración.
// SinDatos true cuando la elaboración aún no tiene producciones: estado
// esperable, no error.
type EstadisticasResponse struct {
	ElaboracionID       string                `json:"elaboracion_id"`
	SinDatos            bool                  `json:"sin_datos"`
	TotalProducciones   int                   `json:"total_producciones"`
	RendimientoPromedio decimal.Decimal       `json:"rendimiento_promedio"`
	Variabilidad        float64               `json:"variabilidad"`
	Confianza           string                `json:"confianza"`
	Ajustes             []AjusteComponenteDTO `json:"ajustes"`
}

// AceptarAjustesRequest aplica ajustes sugeridos al escandallo del catálogo.
type AceptarAjustesRequest struct {
	ComponenteIDs []string `json:"componente_ids"`
}
