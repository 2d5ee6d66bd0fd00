package repository

import "github.com/jhoicas/cpr-api/internal/domain/entity"

// ProduccionRepository define el puerto de persistencia del histórico de
// producciones. El orden de lectura es fecha_produccion DESC con desempate
// por id DESC (decisión documentada en DESIGN.md: el id es estable aunque
// dos producciones compartan timestamp).
type ProduccionRepository interface {
	Create(produccion *entity.Produccion) error
	GetByID(id string) (*entity.Produccion, error)
	ListByElaboracion(elaboracionID string) ([]*entity.Produccion, error)
	Update(produccion *entity.Produccion) error
	Delete(id string) error
}
