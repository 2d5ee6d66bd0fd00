package production

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

// Confianza de las estadísticas de rendimiento según número de
// producciones y variabilidad.
type Confianza string

const (
	ConfianzaBaja  Confianza = "baja"
	ConfianzaMedia Confianza = "media"
	ConfianzaAlta  Confianza = "alta"
)

// Umbrales de confianza: alta exige histórico amplio y estable.
const (
	minProduccionesAlta  = 5
	minProduccionesMedia = 2
	maxVariabilidadAlta  = 0.10
	maxVariabilidadMedia = 0.25
)

// AjusteComponente es la corrección de escandallo sugerida para un
// componente a partir de los consumos reales observados.
type AjusteComponente struct {
	ComponenteID           string
	Nombre                 string
	CantidadActual         decimal.Decimal
	CantidadSugerida       decimal.Decimal
	AjusteAbsoluto         decimal.Decimal
	AjustePorcent          decimal.Decimal
	ProduccionesAnalizadas int
}

// Estadisticas es el resultado derivado del motor de rendimiento. No se
// persiste nunca: se recalcula por completo sobre el histórico en cada
// lectura, de modo que editar o borrar una producción queda reflejado sin
// mantenimiento incremental de media/varianza.
type Estadisticas struct {
	ElaboracionID       string
	TotalProducciones   int
	RendimientoPromedio decimal.Decimal // media de real/planificada
	Variabilidad        float64         // coeficiente de variación del ratio
	Confianza           Confianza
	Ajustes             []AjusteComponente // todos; el umbral de presentación lo aplica el caso de uso
}

// Calcular deriva las estadísticas de rendimiento de una elaboración a
// partir de su histórico completo de producciones y su escandallo nominal.
// Devuelve domain.ErrNoProductions con histórico vacío: es el estado normal
// de una elaboración recién creada, no un fallo.
//
// Una producción con cantidad real cero o sin planificada válida no aporta
// tasas unitarias de componentes (la división es indefinida), pero sigue
// contando en TotalProducciones y, si su ratio es calculable, en la media.
func Calcular(elab *entity.Elaboracion, producciones []*entity.Produccion) (*Estadisticas, error) {
	if len(producciones) == 0 {
		return nil, domain.ErrNoProductions
	}

	est := &Estadisticas{
		ElaboracionID:     elab.ID,
		TotalProducciones: len(producciones),
	}

	// Ratio de rendimiento por producción: real / planificada. Si la
	// producción no registró planificada se usa la nominal del catálogo.
	var ratios []float64
	sumaRatios := decimal.Zero
	for _, p := range producciones {
		plan := p.CantidadPlanificada
		if !plan.IsPositive() {
			plan = elab.ProduccionTotal
		}
		if !plan.IsPositive() {
			continue
		}
		ratio := p.CantidadRealProducida.Div(plan)
		sumaRatios = sumaRatios.Add(ratio)
		ratios = append(ratios, ratio.InexactFloat64())
	}

	if len(ratios) > 0 {
		est.RendimientoPromedio = sumaRatios.Div(decimal.NewFromInt(int64(len(ratios))))
		est.Variabilidad = coeficienteVariacion(ratios)
	}
	est.Confianza = calcularConfianza(est.TotalProducciones, est.Variabilidad)
	est.Ajustes = calcularAjustes(elab, producciones)
	return est, nil
}

// calcularConfianza clasifica la fiabilidad del histórico.
func calcularConfianza(total int, variabilidad float64) Confianza {
	switch {
	case total >= minProduccionesAlta && variabilidad < maxVariabilidadAlta:
		return ConfianzaAlta
	case total >= minProduccionesMedia && variabilidad < maxVariabilidadMedia:
		return ConfianzaMedia
	default:
		return ConfianzaBaja
	}
}

// coeficienteVariacion: desviación típica muestral / media. 0 con menos de
// dos observaciones o media nula.
func coeficienteVariacion(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	var suma float64
	for _, x := range xs {
		suma += x
	}
	media := suma / float64(n)
	if media == 0 {
		return 0
	}
	var sq float64
	for _, x := range xs {
		d := x - media
		sq += d * d
	}
	desv := math.Sqrt(sq / float64(n-1))
	return math.Abs(desv / media)
}

// calcularAjustes promedia, por componente, la tasa unitaria observada
// (consumido / producido real) con peso igual por producción, y proyecta
// la cantidad sugerida sobre el lote nominal del escandallo.
func calcularAjustes(elab *entity.Elaboracion, producciones []*entity.Produccion) []AjusteComponente {
	if !elab.ProduccionTotal.IsPositive() {
		return nil
	}

	tasas := make(map[string][]decimal.Decimal)
	for _, p := range producciones {
		if !p.CantidadRealProducida.IsPositive() {
			continue // tasa unitaria indefinida
		}
		for _, c := range p.ComponentesUtilizados {
			tasas[c.ComponenteID] = append(tasas[c.ComponenteID], c.CantidadUtilizada.Div(p.CantidadRealProducida))
		}
	}

	cien := decimal.NewFromInt(100)
	var ajustes []AjusteComponente
	for _, comp := range elab.Componentes {
		obs := tasas[comp.ComponenteID]
		if len(obs) == 0 || !comp.Cantidad.IsPositive() {
			continue
		}
		suma := decimal.Zero
		for _, t := range obs {
			suma = suma.Add(t)
		}
		tasaMedia := suma.Div(decimal.NewFromInt(int64(len(obs))))
		sugerida := tasaMedia.Mul(elab.ProduccionTotal)
		delta := sugerida.Sub(comp.Cantidad)
		ajustes = append(ajustes, AjusteComponente{
			ComponenteID:           comp.ComponenteID,
			Nombre:                 comp.Nombre,
			CantidadActual:         comp.Cantidad,
			CantidadSugerida:       sugerida,
			AjusteAbsoluto:         delta,
			AjustePorcent:          delta.Div(comp.Cantidad).Mul(cien),
			ProduccionesAnalizadas: len(obs),
		})
	}

	// Los cambios más grandes primero, como los presenta la pantalla de
	// escandallos sugeridos.
	sort.SliceStable(ajustes, func(i, j int) bool {
		return ajustes[i].AjustePorcent.Abs().GreaterThan(ajustes[j].AjustePorcent.Abs())
	})
	return ajustes
}
