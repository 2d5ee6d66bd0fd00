package production_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/production"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// elaboración de referencia: lote nominal de 10 con un componente C de 2.
func elabReferencia() *entity.Elaboracion {
	return &entity.Elaboracion{
		ID:               "ELAB-1",
		Nombre:           "Crema de calabaza",
		ProduccionTotal:  dec("10"),
		UnidadProduccion: "kg",
		Componentes: []entity.ComponenteElaboracion{
			{ComponenteID: "C", Nombre: "Calabaza", Cantidad: dec("2"), Unidad: "kg", CosteUnitario: dec("1.50")},
		},
	}
}

func produccion(real, usadoC string) *entity.Produccion {
	return &entity.Produccion{
		ElaboracionID:         "ELAB-1",
		FechaProduccion:       time.Now(),
		CantidadPlanificada:   dec("10"),
		CantidadRealProducida: dec(real),
		ComponentesUtilizados: []entity.ComponenteUtilizado{
			{ComponenteID: "C", Nombre: "Calabaza", CantidadPlanificada: dec("2"), CantidadUtilizada: dec(usadoC)},
		},
	}
}

func TestCalcular_SinProducciones(t *testing.T) {
	_, err := production.Calcular(elabReferencia(), nil)
	assert.ErrorIs(t, err, domain.ErrNoProductions,
		"histórico vacío debe señalarse como sin datos, no como estadísticas en cero")
}

// Escenario de referencia: tres producciones de 9, 10 y 11 sobre lote de 10
// con consumos 2.0, 2.2 y 2.1 del componente C.
func TestCalcular_EscenarioTresProducciones(t *testing.T) {
	runs := []*entity.Produccion{
		produccion("9", "2.0"),
		produccion("10", "2.2"),
		produccion("11", "2.1"),
	}

	est, err := production.Calcular(elabReferencia(), runs)
	require.NoError(t, err)

	assert.Equal(t, 3, est.TotalProducciones)
	assert.True(t, est.RendimientoPromedio.Equal(dec("1")),
		"media de 0.9, 1.0 y 1.1 debe ser exactamente 1.0, fue %s", est.RendimientoPromedio)

	// Con solo 3 producciones la confianza no puede ser alta aunque la
	// variabilidad sea baja.
	assert.Equal(t, production.ConfianzaMedia, est.Confianza)

	// Tasa unitaria media: (2.0/9 + 2.2/10 + 2.1/11)/3 ≈ 0.203045;
	// sugerida ≈ 2.0305 sobre lote de 10.
	require.Len(t, est.Ajustes, 1)
	aj := est.Ajustes[0]
	assert.Equal(t, "C", aj.ComponenteID)
	assert.Equal(t, 3, aj.ProduccionesAnalizadas)
	sugerida, _ := aj.CantidadSugerida.Float64()
	assert.InDelta(t, 2.03045, sugerida, 0.0005)
	pct, _ := aj.AjustePorcent.Float64()
	assert.InDelta(t, 1.52, pct, 0.05)
}

func TestCalcular_VariabilidadCeroConUnaProduccion(t *testing.T) {
	est, err := production.Calcular(elabReferencia(), []*entity.Produccion{produccion("9.5", "2")})
	require.NoError(t, err)

	assert.Equal(t, 1, est.TotalProducciones)
	assert.Zero(t, est.Variabilidad, "con una sola producción la variabilidad es 0 por definición")
	assert.Equal(t, production.ConfianzaBaja, est.Confianza)
}

func TestCalcular_ConfianzaAlta(t *testing.T) {
	var runs []*entity.Produccion
	for i := 0; i < 5; i++ {
		runs = append(runs, produccion("10", "2.0"))
	}
	est, err := production.Calcular(elabReferencia(), runs)
	require.NoError(t, err)

	assert.Equal(t, production.ConfianzaAlta, est.Confianza)
	assert.Zero(t, est.Variabilidad)
}

// Añadir producciones estables nunca baja la confianza; una desviación
// fuerte sí puede bajarla.
func TestCalcular_MonotoniaConfianza(t *testing.T) {
	estable := produccion("10", "2.0")

	runs := []*entity.Produccion{estable, estable}
	niveles := map[production.Confianza]int{
		production.ConfianzaBaja:  0,
		production.ConfianzaMedia: 1,
		production.ConfianzaAlta:  2,
	}

	anterior := -1
	for i := 0; i < 6; i++ {
		est, err := production.Calcular(elabReferencia(), runs)
		require.NoError(t, err)
		nivel := niveles[est.Confianza]
		assert.GreaterOrEqual(t, nivel, anterior,
			"con %d producciones estables la confianza no puede bajar", len(runs))
		anterior = nivel
		runs = append(runs, estable)
	}

	// Ahora un lote muy desviado sobre un histórico pequeño.
	conDesviacion := []*entity.Produccion{estable, estable, produccion("4", "2.0")}
	est, err := production.Calcular(elabReferencia(), conDesviacion)
	require.NoError(t, err)
	assert.Equal(t, production.ConfianzaBaja, est.Confianza,
		"una producción con rendimiento 0.4 dispara la variabilidad por encima de 0.25")
}

// Una producción con cantidad real cero no aporta tasas unitarias pero sí
// cuenta en el total y en el ratio.
func TestCalcular_ProduccionConRealCero(t *testing.T) {
	runs := []*entity.Produccion{
		produccion("10", "2.0"),
		produccion("0", "1.0"),
	}
	est, err := production.Calcular(elabReferencia(), runs)
	require.NoError(t, err)

	assert.Equal(t, 2, est.TotalProducciones)
	assert.True(t, est.RendimientoPromedio.Equal(dec("0.5")),
		"el ratio 0 de la tanda fallida entra en la media: fue %s", est.RendimientoPromedio)
	require.Len(t, est.Ajustes, 1)
	assert.Equal(t, 1, est.Ajustes[0].ProduccionesAnalizadas,
		"la tanda con real 0 queda excluida de las tasas unitarias")
	assert.True(t, est.Ajustes[0].CantidadSugerida.Equal(dec("2")),
		"solo la tanda válida (2.0/10 × 10 = 2) alimenta la sugerencia")
}

// Componentes consumidos que no figuran en el escandallo no generan
// sugerencia (no hay cantidad nominal contra la que comparar).
func TestCalcular_ComponenteFueraDeEscandallo(t *testing.T) {
	run := produccion("10", "2.0")
	run.ComponentesUtilizados = append(run.ComponentesUtilizados, entity.ComponenteUtilizado{
		ComponenteID: "X", Nombre: "No catalogado", CantidadUtilizada: dec("5"),
	})

	est, err := production.Calcular(elabReferencia(), []*entity.Produccion{run})
	require.NoError(t, err)
	require.Len(t, est.Ajustes, 1)
	assert.Equal(t, "C", est.Ajustes[0].ComponenteID)
}

func TestCalcular_AjustesOrdenadosPorMagnitud(t *testing.T) {
	elab := elabReferencia()
	elab.Componentes = append(elab.Componentes, entity.ComponenteElaboracion{
		ComponenteID: "D", Nombre: "Nata", Cantidad: dec("1"), Unidad: "l", CosteUnitario: dec("2.10"),
	})
	run := &entity.Produccion{
		ElaboracionID:         elab.ID,
		CantidadPlanificada:   dec("10"),
		CantidadRealProducida: dec("10"),
		ComponentesUtilizados: []entity.ComponenteUtilizado{
			{ComponenteID: "C", CantidadUtilizada: dec("2.1")}, // +5%
			{ComponenteID: "D", CantidadUtilizada: dec("1.5")}, // +50%
		},
	}

	est, err := production.Calcular(elab, []*entity.Produccion{run})
	require.NoError(t, err)
	require.Len(t, est.Ajustes, 2)
	assert.Equal(t, "D", est.Ajustes[0].ComponenteID, "el mayor cambio porcentual va primero")
	assert.Equal(t, "C", est.Ajustes[1].ComponenteID)
}
