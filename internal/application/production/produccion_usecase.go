package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	yield "github.com/jhoicas/cpr-api/internal/domain/production"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

// ProduccionUseCase gestiona el histórico de producciones y expone las
// estadísticas del motor de rendimiento. Las estadísticas nunca se
// persisten: cada lectura recalcula sobre el histórico completo.
type ProduccionUseCase struct {
	produccionRepo repository.ProduccionRepository
	catalogo       ElaboracionCatalog
	umbralAjuste   float64 // % mínimo de desviación para presentar un ajuste
}

// NewProduccionUseCase construye el caso de uso. umbralAjuste es el
// porcentaje mínimo de desviación de un componente para aparecer en los
// ajustes sugeridos (configurable por centro).
func NewProduccionUseCase(produccionRepo repository.ProduccionRepository, catalogo ElaboracionCatalog, umbralAjuste float64) *ProduccionUseCase {
	return &ProduccionUseCase{
		produccionRepo: produccionRepo,
		catalogo:       catalogo,
		umbralAjuste:   umbralAjuste,
	}
}

// RegistrarInput alta manual de una producción histórica, sin pasar por el
// ciclo de vida de órdenes (p. ej. producciones anteriores a la puesta en
// marcha del sistema).
type RegistrarInput struct {
	ElaboracionID         string
	FechaProduccion       time.Time
	Responsable           string
	CantidadPlanificada   decimal.Decimal
	CantidadRealProducida decimal.Decimal
	ComponentesUtilizados []entity.ComponenteUtilizado
	Observaciones         string
}

// Registrar crea una producción manual. La elaboración debe existir;
// la planificada vacía se rellena con la nominal del catálogo.
func (uc *ProduccionUseCase) Registrar(in RegistrarInput) (*entity.Produccion, error) {
	if in.ElaboracionID == "" || in.CantidadRealProducida.IsNegative() {
		return nil, domain.ErrValidation
	}
	elab, err := uc.catalogo.GetByID(in.ElaboracionID)
	if err != nil {
		return nil, err
	}
	if elab == nil {
		return nil, domain.ErrNotFound
	}
	plan := in.CantidadPlanificada
	if !plan.IsPositive() {
		plan = elab.ProduccionTotal
	}
	ratio := decimal.Zero
	if plan.IsPositive() {
		ratio = in.CantidadRealProducida.Div(plan)
	}
	fecha := in.FechaProduccion
	if fecha.IsZero() {
		fecha = time.Now()
	}
	p := &entity.Produccion{
		ID:                    uuid.New().String(),
		ElaboracionID:         in.ElaboracionID,
		FechaProduccion:       fecha,
		Responsable:           in.Responsable,
		CantidadPlanificada:   plan,
		CantidadRealProducida: in.CantidadRealProducida,
		RatioProduccion:       ratio,
		ComponentesUtilizados: in.ComponentesUtilizados,
		Observaciones:         in.Observaciones,
	}
	if err := uc.produccionRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ActualizarInput corrección de una producción ya registrada.
type ActualizarInput struct {
	CantidadRealProducida *decimal.Decimal
	ComponentesUtilizados []entity.ComponenteUtilizado
	Observaciones         *string
}

// Actualizar corrige cantidades o consumos de una producción. El siguiente
// cálculo de estadísticas reflejará la corrección sin más trabajo: no hay
// agregados incrementales que mantener.
func (uc *ProduccionUseCase) Actualizar(id string, in ActualizarInput) (*entity.Produccion, error) {
	p, err := uc.produccionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.CantidadRealProducida != nil {
		if in.CantidadRealProducida.IsNegative() {
			return nil, domain.ErrValidation
		}
		p.CantidadRealProducida = *in.CantidadRealProducida
		if p.CantidadPlanificada.IsPositive() {
			p.RatioProduccion = p.CantidadRealProducida.Div(p.CantidadPlanificada)
		}
	}
	if in.ComponentesUtilizados != nil {
		p.ComponentesUtilizados = in.ComponentesUtilizados
	}
	if in.Observaciones != nil {
		p.Observaciones = *in.Observaciones
	}
	if err := uc.produccionRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Eliminar borra una producción del histórico.
func (uc *ProduccionUseCase) Eliminar(id string) error {
	p, err := uc.produccionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.produccionRepo.Delete(id)
}

// Historial devuelve las producciones de una elaboración, más recientes
// primero.
func (uc *ProduccionUseCase) Historial(elaboracionID string) ([]*entity.Produccion, error) {
	return uc.produccionRepo.ListByElaboracion(elaboracionID)
}

// Estadisticas recalcula el rendimiento de una elaboración sobre su
// histórico completo. Con incluirTodos false, los ajustes cuya desviación
// no alcanza el umbral configurado se omiten de la respuesta.
// Devuelve domain.ErrNoProductions sin histórico; el handler lo presenta
// como respuesta vacía, no como error.
func (uc *ProduccionUseCase) Estadisticas(elaboracionID string, incluirTodos bool) (*yield.Estadisticas, error) {
	elab, err := uc.catalogo.GetByID(elaboracionID)
	if err != nil {
		return nil, err
	}
	if elab == nil {
		return nil, domain.ErrNotFound
	}
	producciones, err := uc.produccionRepo.ListByElaboracion(elaboracionID)
	if err != nil {
		return nil, err
	}
	est, err := yield.Calcular(elab, producciones)
	if err != nil {
		return nil, err
	}
	if !incluirTodos {
		umbral := decimal.NewFromFloat(uc.umbralAjuste)
		filtrados := est.Ajustes[:0]
		for _, a := range est.Ajustes {
			if a.AjustePorcent.Abs().GreaterThanOrEqual(umbral) {
				filtrados = append(filtrados, a)
			}
		}
		est.Ajustes = filtrados
	}
	return est, nil
}

// AceptarAjustes aplica al escandallo del catálogo las cantidades sugeridas
// de los componentes indicados. Con componenteIDs vacío se aplican todos los
// ajustes que superan el umbral. La escritura pasa por el puerto del
// catálogo: este motor no posee las recetas.
func (uc *ProduccionUseCase) AceptarAjustes(elaboracionID string, componenteIDs []string) (*entity.Elaboracion, error) {
	est, err := uc.Estadisticas(elaboracionID, false)
	if err != nil {
		return nil, err
	}
	seleccion := make(map[string]bool, len(componenteIDs))
	for _, id := range componenteIDs {
		seleccion[id] = true
	}
	cantidades := make(map[string]decimal.Decimal)
	for _, a := range est.Ajustes {
		if len(seleccion) > 0 && !seleccion[a.ComponenteID] {
			continue
		}
		cantidades[a.ComponenteID] = a.CantidadSugerida
	}
	if len(cantidades) == 0 {
		return nil, domain.ErrValidation
	}
	if err := uc.catalogo.UpdateComponentes(elaboracionID, cantidades); err != nil {
		return nil, err
	}
	return uc.catalogo.GetByID(elaboracionID)
}
