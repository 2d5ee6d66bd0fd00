package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponenteUtilizado registra el consumo real de un componente en una
// producción concreta, junto a lo que el escandallo planificaba.
type ComponenteUtilizado struct {
	ComponenteID        string          `json:"componenteId"`
	Nombre              string          `json:"nombre"`
	CantidadPlanificada decimal.Decimal `json:"cantidad_planificada"`
	CantidadUtilizada   decimal.Decimal `json:"cantidad_utilizada"`
	Merma               decimal.Decimal `json:"merma"`
}

// Produccion es el registro histórico de una tanda producida de una
// elaboración: cuánto se planificó, cuánto salió realmente y qué se
// consumió. Alimenta el motor de rendimiento; inmutable salvo edición o
// borrado explícito del operador, que fuerza recálculo completo de las
// estadísticas.
type Produccion struct {
	ID                    string
	ElaboracionID         string
	OrdenFabricacionID    string // vacío en registros manuales
	FechaProduccion       time.Time
	Responsable           string
	CantidadPlanificada   decimal.Decimal
	CantidadRealProducida decimal.Decimal
	RatioProduccion       decimal.Decimal // real / planificada
	ComponentesUtilizados []ComponenteUtilizado
	Observaciones         string
}
