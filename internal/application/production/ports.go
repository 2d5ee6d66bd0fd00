package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la transición de estado, los
// apuntes del libro de almacén y el registro de producción de una
// finalización se escriben de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ordenRepo repository.OrdenRepository,
		movRepo repository.StockMovimientoRepository,
		produccionRepo repository.ProduccionRepository,
	) error) error
}

// ElaboracionCatalog es el colaborador externo que aporta el escandallo:
// producción nominal, componentes y costes unitarios. Se inyecta como
// dependencia de lectura pura; la única escritura admitida es la aceptación
// explícita de ajustes sugeridos.
type ElaboracionCatalog interface {
	GetByID(id string) (*entity.Elaboracion, error)
	UpdateComponentes(elaboracionID string, cantidades map[string]decimal.Decimal) error
}
