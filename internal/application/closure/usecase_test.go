package closure

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCierreRepo struct {
	cierres map[string]*entity.CierreInventario // clave centro|mes
}

func newFakeCierreRepo() *fakeCierreRepo {
	return &fakeCierreRepo{cierres: make(map[string]*entity.CierreInventario)}
}

func (r *fakeCierreRepo) key(centroID, mes string) string { return centroID + "|" + mes }

func (r *fakeCierreRepo) Create(c *entity.CierreInventario) error {
	k := r.key(c.CentroID, c.Mes)
	if _, ok := r.cierres[k]; ok {
		return domain.ErrDuplicateClosure
	}
	cp := *c
	r.cierres[k] = &cp
	return nil
}

func (r *fakeCierreRepo) GetByMes(centroID, mes string) (*entity.CierreInventario, error) {
	c, ok := r.cierres[r.key(centroID, mes)]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCierreRepo) List(centroID string) ([]*entity.CierreInventario, error) {
	var out []*entity.CierreInventario
	for _, c := range r.cierres {
		if c.CentroID == centroID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovRepo struct {
	movimientos []*entity.StockMovimiento
}

func (r *fakeMovRepo) Create(m *entity.StockMovimiento) error {
	cp := *m
	r.movimientos = append(r.movimientos, &cp)
	return nil
}

func (r *fakeMovRepo) List(filter repository.MovimientoFilter) ([]*entity.StockMovimiento, error) {
	var out []*entity.StockMovimiento
	for _, m := range r.movimientos {
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		if filter.ArticuloID != "" && m.ArticuloID != filter.ArticuloID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovRepo) TotalCompras(desde, hasta time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movimientos {
		if m.Tipo == entity.MovimientoCompra && !m.Fecha.Before(desde) && m.Fecha.Before(hasta) {
			total = total.Add(m.Valoracion)
		}
	}
	return total, nil
}

func (r *fakeMovRepo) TotalConsumoTrazado(desde, hasta time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movimientos {
		if m.Tipo == entity.MovimientoConsumoProduccion && !m.Fecha.Before(desde) && m.Fecha.Before(hasta) {
			total = total.Add(m.Valoracion.Abs())
		}
	}
	return total, nil
}

// fakeStockRepo devuelve una foto fija modificable por el test: simula la
// lectura viva del stock en el momento del cierre.
type fakeStockRepo struct {
	valoracion decimal.Decimal
	snapshot   []entity.LineaSnapshot
}

func (r *fakeStockRepo) ValoracionTotal() (decimal.Decimal, error) {
	return r.valoracion, nil
}

func (r *fakeStockRepo) Snapshot() ([]entity.LineaSnapshot, error) {
	return append([]entity.LineaSnapshot(nil), r.snapshot...), nil
}

type fakeReportGenerator struct {
	generado *entity.CierreInventario
}

func (g *fakeReportGenerator) GenerarInformeCierre(c *entity.CierreInventario, _ []*entity.CierreInventario) ([]byte, error) {
	g.generado = c
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type closureFixture struct {
	uc       *UseCase
	cierres  *fakeCierreRepo
	movs     *fakeMovRepo
	stock    *fakeStockRepo
	reportes *fakeReportGenerator
}

// hoy: 15 de agosto de 2026. Julio está terminado; agosto no.
var hoy = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newClosureFixture() *closureFixture {
	f := &closureFixture{
		cierres:  newFakeCierreRepo(),
		movs:     &fakeMovRepo{},
		stock:    &fakeStockRepo{valoracion: decimal.Zero},
		reportes: &fakeReportGenerator{},
	}
	f.uc = NewUseCase(f.cierres, f.movs, f.stock, f.reportes, "CPR_MAD")
	f.uc.now = func() time.Time { return hoy }
	return f
}

func (f *closureFixture) compra(valoracion string, fecha time.Time) {
	f.movs.movimientos = append(f.movs.movimientos, &entity.StockMovimiento{
		ID: "m", Tipo: entity.MovimientoCompra, ArticuloID: "ART1",
		Valoracion: dec(valoracion), Fecha: fecha,
	})
}

func (f *closureFixture) consumo(valoracion string, fecha time.Time) {
	f.movs.movimientos = append(f.movs.movimientos, &entity.StockMovimiento{
		ID: "m", Tipo: entity.MovimientoConsumoProduccion, ArticuloID: "ART1",
		Valoracion: dec(valoracion), Fecha: fecha,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestRealizarCierre_PrimerMesSinCierreAnterior(t *testing.T) {
	f := newClosureFixture()
	julio := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	f.compra("500", julio)
	f.consumo("-300", julio)
	f.stock.valoracion = dec("900")
	f.stock.snapshot = []entity.LineaSnapshot{
		{ArticuloID: "ART1", NombreArticulo: "Harina", UbicacionID: "U1",
			UbicacionNombre: "Seco", Stock: dec("100"), Unidad: "kg", Valoracion: dec("900")},
	}

	cierre, err := f.uc.RealizarCierre("2026-07")
	require.NoError(t, err)

	assert.True(t, cierre.ValorInventarioInicial.Equal(dec("0")), "sin cierre anterior se abre a cero")
	assert.True(t, cierre.ValorCompras.Equal(dec("500")))
	assert.True(t, cierre.ValorInventarioFinal.Equal(dec("900")))
	// consumoReal = 0 + 500 − 900 = −400; trazado 300 → merma −700
	assert.True(t, cierre.ValorConsumoReal.Equal(dec("-400")))
	assert.True(t, cierre.ValorConsumoTrazado.Equal(dec("300")))
	assert.True(t, cierre.ValorMermaDesconocida.Equal(dec("-700")))
	require.Len(t, cierre.Snapshot, 1)
	assert.Equal(t, "Harina", cierre.Snapshot[0].NombreArticulo)
}

func TestRealizarCierre_EncadenaConElMesAnterior(t *testing.T) {
	f := newClosureFixture()
	junio := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	julio := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	f.compra("1000", junio)
	f.consumo("-400", junio)
	f.stock.valoracion = dec("800")
	cierreJunio, err := f.uc.RealizarCierre("2026-06")
	require.NoError(t, err)
	assert.True(t, cierreJunio.ValorInventarioFinal.Equal(dec("800")))

	// el stock evoluciona durante julio
	f.compra("500", julio)
	f.consumo("-700", julio)
	f.stock.valoracion = dec("600")

	cierreJulio, err := f.uc.RealizarCierre("2026-07")
	require.NoError(t, err)

	assert.True(t, cierreJulio.ValorInventarioInicial.Equal(dec("800")),
		"la apertura de julio es el cierre de junio")
	// consumoReal = 800 + 500 − 600 = 700; trazado 700 → merma 0
	assert.True(t, cierreJulio.ValorConsumoReal.Equal(dec("700")))
	assert.True(t, cierreJulio.ValorMermaDesconocida.Equal(dec("0")))
	// las compras de junio no cuentan en julio
	assert.True(t, cierreJulio.ValorCompras.Equal(dec("500")))
}

func TestRealizarCierre_MermaNegativaSePreserva(t *testing.T) {
	f := newClosureFixture()
	julio := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)
	f.compra("500", julio)
	f.consumo("-700", julio)
	f.stock.valoracion = dec("900")
	// cierre de junio previo con final 1000
	f.cierres.cierres["CPR_MAD|2026-06"] = &entity.CierreInventario{
		CentroID: "CPR_MAD", Mes: "2026-06", ValorInventarioFinal: dec("1000"),
	}

	cierre, err := f.uc.RealizarCierre("2026-07")
	require.NoError(t, err)

	// consumoReal = 1000 + 500 − 900 = 600; trazado 700 → merma −100
	assert.True(t, cierre.ValorConsumoReal.Equal(dec("600")))
	assert.True(t, cierre.ValorMermaDesconocida.Equal(dec("-100")),
		"una merma negativa señala datos incorrectos y se registra sin recortar")
}

func TestRealizarCierre_MesSinTerminarRechazado(t *testing.T) {
	f := newClosureFixture()
	_, err := f.uc.RealizarCierre("2026-08")
	assert.ErrorIs(t, err, domain.ErrValidation, "agosto aún no ha terminado el 15 de agosto")
}

func TestRealizarCierre_FormatoMesInvalido(t *testing.T) {
	f := newClosureFixture()
	for _, mes := range []string{"julio", "2026/07", "2026-13", ""} {
		_, err := f.uc.RealizarCierre(mes)
		assert.ErrorIs(t, err, domain.ErrValidation, "mes %q", mes)
	}
}

func TestRealizarCierre_MesDuplicado(t *testing.T) {
	f := newClosureFixture()
	_, err := f.uc.RealizarCierre("2026-07")
	require.NoError(t, err)

	_, err = f.uc.RealizarCierre("2026-07")
	assert.ErrorIs(t, err, domain.ErrDuplicateClosure)
}

func TestObtener_MesInexistente(t *testing.T) {
	f := newClosureFixture()
	_, err := f.uc.Obtener("2026-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInformePDF_UsaElCierreGuardado(t *testing.T) {
	f := newClosureFixture()
	_, err := f.uc.RealizarCierre("2026-07")
	require.NoError(t, err)

	pdfBytes, err := f.uc.InformePDF("2026-07")
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	require.NotNil(t, f.reportes.generado)
	assert.Equal(t, "2026-07", f.reportes.generado.Mes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarMovimiento_Compra(t *testing.T) {
	f := newClosureFixture()
	mov, err := f.uc.RegistrarMovimiento(entity.MovimientoCompra, "ART1", "user-1", dec("25"), dec("120.50"), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, entity.MovimientoCompra, mov.Tipo)
	assert.Equal(t, hoy, mov.Fecha, "sin fecha explícita se usa el momento del registro")
	assert.Equal(t, "user-1", mov.CreatedBy)
	require.Len(t, f.movs.movimientos, 1)
}

func TestRegistrarMovimiento_ConsumoProduccionRechazado(t *testing.T) {
	f := newClosureFixture()
	// los consumos de producción solo los escribe la finalización de la OF
	_, err := f.uc.RegistrarMovimiento(entity.MovimientoConsumoProduccion, "ART1", "user-1", dec("5"), dec("-10"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.movs.movimientos)
}

func TestRegistrarMovimiento_CompraConValoracionNegativa(t *testing.T) {
	f := newClosureFixture()
	_, err := f.uc.RegistrarMovimiento(entity.MovimientoCompra, "ART1", "user-1", dec("5"), dec("-10"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegistrarMovimiento_SinArticulo(t *testing.T) {
	f := newClosureFixture()
	_, err := f.uc.RegistrarMovimiento(entity.MovimientoOtro, "", "user-1", dec("5"), dec("10"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
