package repository

import (
	"time"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

// OrdenFilter filtros para el listado de órdenes de fabricación.
type OrdenFilter struct {
	Estado  string
	Partida string
	Desde   *time.Time
	Hasta   *time.Time
	Limit   int
	Offset  int
}

// OrdenRepository define el puerto de persistencia de órdenes de fabricación.
// Las órdenes nunca se borran: el histórico es el registro de auditoría.
type OrdenRepository interface {
	Create(orden *entity.OrdenFabricacion) error
	GetByID(id string) (*entity.OrdenFabricacion, error)
	List(filter OrdenFilter) ([]*entity.OrdenFabricacion, error)

	// UpdateTransition persiste la orden solo si su estado en base de datos
	// sigue siendo estadoEsperado (compare-and-swap sobre la columna estado).
	// Si otra petición ganó la carrera devuelve domain.ErrInvalidTransition
	// sin mutar nada.
	UpdateTransition(orden *entity.OrdenFabricacion, estadoEsperado string) error

	// ColaCalidad devuelve la vista derivada de la cola de calidad:
	// finalizadas, sin validar y sin incidencia.
	ColaCalidad() ([]*entity.OrdenFabricacion, error)
}
