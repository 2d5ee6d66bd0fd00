package entity

import "github.com/shopspring/decimal"

// ComponenteElaboracion es una línea del escandallo: cantidad nominal del
// componente por lote planificado y su coste unitario vigente según el
// catálogo de artículos.
type ComponenteElaboracion struct {
	ComponenteID  string
	Nombre        string
	Cantidad      decimal.Decimal // nominal por ProduccionTotal
	Unidad        string
	CosteUnitario decimal.Decimal
}

// Elaboracion es el modelo de lectura del catálogo de recetas (colaborador
// externo al motor): producción nominal, unidad y escandallo. El motor
// nunca la muta salvo por la aceptación explícita de ajustes sugeridos.
type Elaboracion struct {
	ID                string
	Nombre            string
	ProduccionTotal   decimal.Decimal // cantidad nominal de salida por lote
	UnidadProduccion  string
	PartidaProduccion string
	TipoExpedicion    string
	Componentes       []ComponenteElaboracion
}
