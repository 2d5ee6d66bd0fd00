package production_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cpr-api/internal/application/production"
	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

type produccionFixture struct {
	uc      *production.ProduccionUseCase
	prods   *fakeProduccionRepo
	catalog *fakeCatalog
}

func newProduccionFixture(umbral float64) *produccionFixture {
	base := newLifecycleFixture()
	return &produccionFixture{
		uc:      production.NewProduccionUseCase(base.prods, base.catalog, umbral),
		prods:   base.prods,
		catalog: base.catalog,
	}
}

// registra una producción de ELAB1 con salida real y consumos de C1/C2.
func (f *produccionFixture) registrar(t *testing.T, real, usadoC1, usadoC2 string) *entity.Produccion {
	t.Helper()
	p, err := f.uc.Registrar(production.RegistrarInput{
		ElaboracionID:         "ELAB1",
		FechaProduccion:       time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC),
		Responsable:           "María",
		CantidadRealProducida: dec(real),
		ComponentesUtilizados: []entity.ComponenteUtilizado{
			{ComponenteID: "C1", Nombre: "Calabaza", CantidadPlanificada: dec("8"), CantidadUtilizada: dec(usadoC1)},
			{ComponenteID: "C2", Nombre: "Nata", CantidadPlanificada: dec("2"), CantidadUtilizada: dec(usadoC2)},
		},
	})
	require.NoError(t, err)
	return p
}

func TestRegistrar_PlanificadaPorDefectoDelCatalogo(t *testing.T) {
	f := newProduccionFixture(2.0)
	p := f.registrar(t, "8", "6.4", "1.6")

	assert.True(t, p.CantidadPlanificada.Equal(dec("10")), "sin planificada explícita se usa la nominal")
	assert.True(t, p.RatioProduccion.Equal(dec("0.8")))
	assert.Empty(t, p.OrdenFabricacionID, "una producción manual no cuelga de ninguna orden")
}

func TestRegistrar_ElaboracionInexistente(t *testing.T) {
	f := newProduccionFixture(2.0)
	_, err := f.uc.Registrar(production.RegistrarInput{
		ElaboracionID:         "NO_EXISTE",
		CantidadRealProducida: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstadisticas_UmbralFiltraAjustesPequenos(t *testing.T) {
	f := newProduccionFixture(2.0)
	// Tres producciones idénticas: C1 consume un 10% más de lo nominal,
	// C2 solo un 1% más (por debajo del umbral de presentación).
	for i := 0; i < 3; i++ {
		f.registrar(t, "10", "8.8", "2.02")
	}

	est, err := f.uc.Estadisticas("ELAB1", false)
	require.NoError(t, err)

	assert.Equal(t, 3, est.TotalProducciones)
	require.Len(t, est.Ajustes, 1, "solo el ajuste que supera el umbral se presenta")
	assert.Equal(t, "C1", est.Ajustes[0].ComponenteID)
	assert.True(t, est.Ajustes[0].CantidadSugerida.Equal(dec("8.8")))

	// Con todos: aparece también el ajuste menor
	conTodos, err := f.uc.Estadisticas("ELAB1", true)
	require.NoError(t, err)
	assert.Len(t, conTodos.Ajustes, 2)
}

func TestEstadisticas_SinProducciones(t *testing.T) {
	f := newProduccionFixture(2.0)
	_, err := f.uc.Estadisticas("ELAB1", false)
	assert.ErrorIs(t, err, domain.ErrNoProductions)
}

func TestEstadisticas_RecalculaTrasEliminar(t *testing.T) {
	f := newProduccionFixture(2.0)
	p1 := f.registrar(t, "10", "8", "2")
	f.registrar(t, "5", "4", "1") // ratio 0.5 tira la media hacia abajo

	est, err := f.uc.Estadisticas("ELAB1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, est.TotalProducciones)
	assert.True(t, est.RendimientoPromedio.Equal(dec("0.75")))

	// borrar la primera deja solo la producción al 50%
	require.NoError(t, f.uc.Eliminar(p1.ID))

	est, err = f.uc.Estadisticas("ELAB1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, est.TotalProducciones)
	assert.True(t, est.RendimientoPromedio.Equal(dec("0.5")))
}

func TestActualizar_RecalculaRatio(t *testing.T) {
	f := newProduccionFixture(2.0)
	p := f.registrar(t, "10", "8", "2")

	nueva := dec("9")
	actualizada, err := f.uc.Actualizar(p.ID, production.ActualizarInput{
		CantidadRealProducida: &nueva,
	})
	require.NoError(t, err)
	assert.True(t, actualizada.RatioProduccion.Equal(dec("0.9")))
}

func TestEliminar_Inexistente(t *testing.T) {
	f := newProduccionFixture(2.0)
	assert.ErrorIs(t, f.uc.Eliminar("NO_EXISTE"), domain.ErrNotFound)
}

func TestAceptarAjustes_EscribeEnElCatalogo(t *testing.T) {
	f := newProduccionFixture(2.0)
	for i := 0; i < 3; i++ {
		f.registrar(t, "10", "8.8", "2.02")
	}

	elab, err := f.uc.AceptarAjustes("ELAB1", nil)
	require.NoError(t, err)

	// C1 pasa a la sugerida; C2 quedaba bajo el umbral y no se toca
	porID := map[string]entity.ComponenteElaboracion{}
	for _, c := range elab.Componentes {
		porID[c.ComponenteID] = c
	}
	assert.True(t, porID["C1"].Cantidad.Equal(dec("8.8")))
	assert.True(t, porID["C2"].Cantidad.Equal(dec("2")))
}

func TestAceptarAjustes_SeleccionVaciaSinAjustes(t *testing.T) {
	f := newProduccionFixture(2.0)
	// Producciones que consumen exactamente lo nominal: no hay ajustes
	for i := 0; i < 3; i++ {
		f.registrar(t, "10", "8", "2")
	}
	_, err := f.uc.AceptarAjustes("ELAB1", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
