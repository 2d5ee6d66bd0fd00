package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

// LifecycleUseCase gobierna el ciclo de vida de las órdenes de fabricación:
// Pendiente → En Proceso → Finalizado → {Validado | Incidencia}. Todas las
// transiciones se guardan con compare-and-swap sobre el estado actual para
// serializar peticiones concurrentes sobre la misma orden.
type LifecycleUseCase struct {
	txRunner  TxRunner
	ordenRepo repository.OrdenRepository
	catalogo  ElaboracionCatalog
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner TxRunner, ordenRepo repository.OrdenRepository, catalogo ElaboracionCatalog) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, ordenRepo: ordenRepo, catalogo: catalogo}
}

// CrearOrdenInput alta de una OF planificada.
type CrearOrdenInput struct {
	ElaboracionID           string
	CantidadPlanificada     decimal.Decimal
	FechaProduccionPrevista time.Time
	PartidaAsignada         string
	OsIDs                   []string
}

// CrearOrden crea una orden en estado Pendiente a partir de la
// planificación. La elaboración debe existir en el catálogo.
func (uc *LifecycleUseCase) CrearOrden(in CrearOrdenInput) (*entity.OrdenFabricacion, error) {
	if in.ElaboracionID == "" || !in.CantidadPlanificada.IsPositive() {
		return nil, domain.ErrValidation
	}
	elab, err := uc.catalogo.GetByID(in.ElaboracionID)
	if err != nil {
		return nil, err
	}
	if elab == nil {
		return nil, domain.ErrNotFound
	}
	partida := in.PartidaAsignada
	if partida == "" {
		partida = elab.PartidaProduccion
	}
	orden := &entity.OrdenFabricacion{
		ID:                      uuid.New().String(),
		FechaCreacion:           time.Now(),
		FechaProduccionPrevista: in.FechaProduccionPrevista,
		ElaboracionID:           elab.ID,
		ElaboracionNombre:       elab.Nombre,
		CantidadPlanificada:     in.CantidadPlanificada,
		Unidad:                  elab.UnidadProduccion,
		PartidaAsignada:         partida,
		TipoExpedicion:          elab.TipoExpedicion,
		Estado:                  entity.EstadoPendiente,
		OsIDs:                   in.OsIDs,
	}
	if err := uc.ordenRepo.Create(orden); err != nil {
		return nil, err
	}
	return orden, nil
}

// AsignarYEmpezar asigna un responsable y arranca la producción.
// Válido solo desde Pendiente.
func (uc *LifecycleUseCase) AsignarYEmpezar(ordenID, responsable string) (*entity.OrdenFabricacion, error) {
	if responsable == "" {
		return nil, domain.ErrValidation
	}
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.Estado != entity.EstadoPendiente {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	orden.Responsable = responsable
	orden.Estado = entity.EstadoEnProceso
	orden.FechaAsignacion = &now
	orden.FechaInicioProduccion = &now
	if err := uc.ordenRepo.UpdateTransition(orden, entity.EstadoPendiente); err != nil {
		return nil, err
	}
	return orden, nil
}

// Finalizar cierra la producción de una OF. Válido solo desde En Proceso.
// cantidadReal nil equivale a la cantidad planificada. Efectos dentro de la
// misma transacción: un apunte de consumo en el libro de almacén por cada
// componente del escandallo al coste unitario vigente, y un registro de
// producción para el motor de rendimiento.
func (uc *LifecycleUseCase) Finalizar(ctx context.Context, ordenID string, cantidadReal *decimal.Decimal) (*entity.OrdenFabricacion, error) {
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.Estado != entity.EstadoEnProceso {
		return nil, domain.ErrInvalidTransition
	}

	cantidad := orden.CantidadPlanificada
	if cantidadReal != nil {
		if cantidadReal.IsNegative() {
			return nil, domain.ErrValidation
		}
		cantidad = *cantidadReal
	}

	elab, err := uc.catalogo.GetByID(orden.ElaboracionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	orden.Estado = entity.EstadoFinalizado
	orden.CantidadReal = &cantidad
	orden.FechaFinalizacion = &now

	err = uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		movRepo repository.StockMovimientoRepository,
		produccionRepo repository.ProduccionRepository,
	) error {
		if err := ordenRepo.UpdateTransition(orden, entity.EstadoEnProceso); err != nil {
			return err
		}
		if elab == nil || !elab.ProduccionTotal.IsPositive() || len(elab.Componentes) == 0 {
			// Sin escandallo no hay consumos que trazar ni producción que
			// registrar; la orden queda finalizada igualmente.
			return nil
		}

		factorReal := cantidad.Div(elab.ProduccionTotal)
		factorPlan := orden.CantidadPlanificada.Div(elab.ProduccionTotal)

		componentes := make([]entity.ComponenteUtilizado, 0, len(elab.Componentes))
		for _, comp := range elab.Componentes {
			consumido := comp.Cantidad.Mul(factorReal)
			mov := &entity.StockMovimiento{
				ID:                 uuid.New().String(),
				Tipo:               entity.MovimientoConsumoProduccion,
				ArticuloID:         comp.ComponenteID,
				OrdenFabricacionID: orden.ID,
				Cantidad:           consumido,
				Valoracion:         consumido.Mul(comp.CosteUnitario).Neg(), // consumo: valoración negativa
				Fecha:              now,
				CreatedAt:          now,
				CreatedBy:          orden.Responsable,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			componentes = append(componentes, entity.ComponenteUtilizado{
				ComponenteID:        comp.ComponenteID,
				Nombre:              comp.Nombre,
				CantidadPlanificada: comp.Cantidad.Mul(factorPlan),
				CantidadUtilizada:   consumido,
			})
		}

		ratio := decimal.Zero
		if orden.CantidadPlanificada.IsPositive() {
			ratio = cantidad.Div(orden.CantidadPlanificada)
		}
		produccion := &entity.Produccion{
			ID:                    uuid.New().String(),
			ElaboracionID:         orden.ElaboracionID,
			OrdenFabricacionID:    orden.ID,
			FechaProduccion:       now,
			Responsable:           orden.Responsable,
			CantidadPlanificada:   orden.CantidadPlanificada,
			CantidadRealProducida: cantidad,
			RatioProduccion:       ratio,
			ComponentesUtilizados: componentes,
		}
		return produccionRepo.Create(produccion)
	})
	if err != nil {
		return nil, err
	}
	return orden, nil
}

// FlagIncidencia marca una OF finalizada con incidencia, corrigiendo la
// cantidad real. Estado terminal: la orden sale de la cola de calidad de
// forma permanente.
func (uc *LifecycleUseCase) FlagIncidencia(ordenID string, cantidadCorregida decimal.Decimal, observaciones string) (*entity.OrdenFabricacion, error) {
	if observaciones == "" || cantidadCorregida.IsNegative() {
		return nil, domain.ErrValidation
	}
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.EsTerminal() {
		return nil, domain.ErrInvalidState
	}
	if orden.Estado != entity.EstadoFinalizado {
		return nil, domain.ErrInvalidTransition
	}
	orden.Estado = entity.EstadoIncidencia
	orden.Incidencia = true
	orden.IncidenciaObservaciones = observaciones
	orden.CantidadReal = &cantidadCorregida
	if err := uc.ordenRepo.UpdateTransition(orden, entity.EstadoFinalizado); err != nil {
		return nil, err
	}
	return orden, nil
}

// ValidarCalidad aprueba una OF finalizada. Excluyente con la incidencia:
// una orden nunca puede ser a la vez buena y mala.
func (uc *LifecycleUseCase) ValidarCalidad(ordenID, responsableCalidad string) (*entity.OrdenFabricacion, error) {
	if responsableCalidad == "" {
		return nil, domain.ErrValidation
	}
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.EsTerminal() {
		return nil, domain.ErrInvalidState
	}
	if orden.Estado != entity.EstadoFinalizado {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	orden.Estado = entity.EstadoValidado
	orden.OkCalidad = true
	orden.ResponsableCalidad = responsableCalidad
	orden.FechaValidacionCalidad = &now
	if err := uc.ordenRepo.UpdateTransition(orden, entity.EstadoFinalizado); err != nil {
		return nil, err
	}
	return orden, nil
}

// Obtener devuelve una orden por id.
func (uc *LifecycleUseCase) Obtener(ordenID string) (*entity.OrdenFabricacion, error) {
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	return orden, nil
}

// Listar devuelve órdenes filtradas por estado, partida y rango de fechas.
func (uc *LifecycleUseCase) Listar(filter repository.OrdenFilter) ([]*entity.OrdenFabricacion, error) {
	return uc.ordenRepo.List(filter)
}

// ColaCalidad devuelve la vista derivada de órdenes pendientes de revisión:
// finalizadas, sin validar y sin incidencia.
func (uc *LifecycleUseCase) ColaCalidad() ([]*entity.OrdenFabricacion, error) {
	return uc.ordenRepo.ColaCalidad()
}
