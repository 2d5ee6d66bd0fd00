package closure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

// formato de la clave de mes de un cierre.
const formatoMes = "2006-01"

// UseCase implementa el cierre mensual de inventario y el libro de almacén.
// El cierre congela una foto viva del stock valorado y concilia el consumo
// contable contra el consumo trazado por producción; el resultado es
// inmutable y se encadena al mes siguiente por el valor de apertura.
type UseCase struct {
	cierreRepo repository.CierreRepository
	movRepo    repository.StockMovimientoRepository
	stockRepo  repository.StockRepository
	reportes   ReportGenerator
	centroID   string
	now        func() time.Time
}

// NewUseCase construye el caso de uso para un centro de producción.
func NewUseCase(
	cierreRepo repository.CierreRepository,
	movRepo repository.StockMovimientoRepository,
	stockRepo repository.StockRepository,
	reportes ReportGenerator,
	centroID string,
) *UseCase {
	return &UseCase{
		cierreRepo: cierreRepo,
		movRepo:    movRepo,
		stockRepo:  stockRepo,
		reportes:   reportes,
		centroID:   centroID,
		now:        time.Now,
	}
}

// RealizarCierre cierra el mes indicado (yyyy-MM). Solo se admiten meses ya
// terminados. El valor de apertura es el valor final del cierre del mes
// anterior, o cero si aquel mes nunca se cerró. La unicidad por (centro,
// mes) la resuelve el constraint de base de datos: un segundo cierre del
// mismo mes devuelve domain.ErrDuplicateClosure.
//
// Identidad contable, sin recortes:
//
//	consumoReal      = inicial + compras − final
//	mermaDesconocida = consumoReal − consumoTrazado
//
// Una merma negativa (más consumo trazado que contable) es un resultado
// válido que señala datos de entrada incorrectos; se registra tal cual.
func (uc *UseCase) RealizarCierre(mes string) (*entity.CierreInventario, error) {
	inicio, err := time.Parse(formatoMes, mes)
	if err != nil {
		return nil, domain.ErrValidation
	}
	fin := inicio.AddDate(0, 1, 0)
	if fin.After(uc.now()) {
		// El mes aún no ha terminado: cerrarlo dejaría fuera movimientos.
		return nil, domain.ErrValidation
	}

	inicial := decimal.Zero
	mesAnterior := inicio.AddDate(0, -1, 0).Format(formatoMes)
	anterior, err := uc.cierreRepo.GetByMes(uc.centroID, mesAnterior)
	if err != nil {
		return nil, err
	}
	if anterior != nil {
		inicial = anterior.ValorInventarioFinal
	}

	compras, err := uc.movRepo.TotalCompras(inicio, fin)
	if err != nil {
		return nil, err
	}
	consumoTrazado, err := uc.movRepo.TotalConsumoTrazado(inicio, fin)
	if err != nil {
		return nil, err
	}
	final, err := uc.stockRepo.ValoracionTotal()
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.stockRepo.Snapshot()
	if err != nil {
		return nil, err
	}

	consumoReal := inicial.Add(compras).Sub(final)
	merma := consumoReal.Sub(consumoTrazado)

	cierre := &entity.CierreInventario{
		ID:                     uuid.New().String(),
		CentroID:               uc.centroID,
		Mes:                    mes,
		FechaInicio:            inicio,
		FechaCierre:            uc.now(),
		ValorInventarioInicial: inicial,
		ValorInventarioFinal:   final,
		ValorCompras:           compras,
		ValorConsumoTrazado:    consumoTrazado,
		ValorConsumoReal:       consumoReal,
		ValorMermaDesconocida:  merma,
		Snapshot:               snapshot,
	}
	if err := uc.cierreRepo.Create(cierre); err != nil {
		return nil, err
	}
	return cierre, nil
}

// Obtener devuelve el cierre de un mes concreto.
func (uc *UseCase) Obtener(mes string) (*entity.CierreInventario, error) {
	if _, err := time.Parse(formatoMes, mes); err != nil {
		return nil, domain.ErrValidation
	}
	cierre, err := uc.cierreRepo.GetByMes(uc.centroID, mes)
	if err != nil {
		return nil, err
	}
	if cierre == nil {
		return nil, domain.ErrNotFound
	}
	return cierre, nil
}

// Historial devuelve todos los cierres del centro, más recientes primero.
func (uc *UseCase) Historial() ([]*entity.CierreInventario, error) {
	return uc.cierreRepo.List(uc.centroID)
}

// InformePDF genera el informe imprimible de un cierre, con el histórico
// del centro como contexto de evolución.
func (uc *UseCase) InformePDF(mes string) ([]byte, error) {
	cierre, err := uc.Obtener(mes)
	if err != nil {
		return nil, err
	}
	historico, err := uc.cierreRepo.List(uc.centroID)
	if err != nil {
		return nil, err
	}
	return uc.reportes.GenerarInformeCierre(cierre, historico)
}

// RegistrarMovimiento anota una recepción de compra o un ajuste manual en
// el libro. Los consumos de producción no entran por aquí: los escribe la
// finalización de la orden de fabricación dentro de su transacción.
func (uc *UseCase) RegistrarMovimiento(tipo, articuloID, creadoPor string, cantidad, valoracion decimal.Decimal, fecha *time.Time) (*entity.StockMovimiento, error) {
	if tipo != entity.MovimientoCompra && tipo != entity.MovimientoOtro {
		return nil, domain.ErrValidation
	}
	if articuloID == "" {
		return nil, domain.ErrValidation
	}
	if tipo == entity.MovimientoCompra && valoracion.IsNegative() {
		return nil, domain.ErrValidation
	}
	now := uc.now()
	f := now
	if fecha != nil {
		f = *fecha
	}
	mov := &entity.StockMovimiento{
		ID:         uuid.New().String(),
		Tipo:       tipo,
		ArticuloID: articuloID,
		Cantidad:   cantidad,
		Valoracion: valoracion,
		Fecha:      f,
		CreatedAt:  now,
		CreatedBy:  creadoPor,
	}
	if err := uc.movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListarMovimientos devuelve apuntes del libro según filtro.
func (uc *UseCase) ListarMovimientos(filter repository.MovimientoFilter) ([]*entity.StockMovimiento, error) {
	return uc.movRepo.List(filter)
}
