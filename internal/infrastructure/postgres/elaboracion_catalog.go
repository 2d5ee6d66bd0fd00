package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/application/production"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

var _ production.ElaboracionCatalog = (*ElaboracionCatalog)(nil)

// ElaboracionCatalog lee el catálogo de recetas desde PostgreSQL. El coste
// unitario de cada componente sale del catálogo de artículos en el momento
// de la lectura: las recetas no congelan costes.
type ElaboracionCatalog struct {
	q Querier
}

// NewElaboracionCatalog construye el adaptador. Pasar pool o tx (Querier).
func NewElaboracionCatalog(q Querier) *ElaboracionCatalog {
	return &ElaboracionCatalog{q: q}
}

// GetByID obtiene una elaboración con su escandallo. Devuelve nil sin error
// si no existe.
func (r *ElaboracionCatalog) GetByID(id string) (*entity.Elaboracion, error) {
	query := `
		SELECT id, nombre, produccion_total, unidad_produccion, partida_produccion, tipo_expedicion
		FROM elaboraciones WHERE id = $1`
	var e entity.Elaboracion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Nombre, &e.ProduccionTotal, &e.UnidadProduccion,
		&e.PartidaProduccion, &e.TipoExpedicion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get elaboracion: %w", err)
	}

	compQuery := `
		SELECT c.componente_id, a.nombre, c.cantidad, c.unidad, a.coste_unitario
		FROM elaboracion_componentes c
		JOIN articulos a ON a.id = c.componente_id
		WHERE c.elaboracion_id = $1
		ORDER BY a.nombre`
	rows, err := r.q.Query(context.Background(), compQuery, id)
	if err != nil {
		return nil, fmt.Errorf("componentes elaboracion: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.ComponenteElaboracion
		if err := rows.Scan(&c.ComponenteID, &c.Nombre, &c.Cantidad, &c.Unidad, &c.CosteUnitario); err != nil {
			return nil, fmt.Errorf("scan componente: %w", err)
		}
		e.Componentes = append(e.Componentes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateComponentes aplica nuevas cantidades nominales a los componentes
// indicados del escandallo. Componentes no mencionados quedan intactos.
func (r *ElaboracionCatalog) UpdateComponentes(elaboracionID string, cantidades map[string]decimal.Decimal) error {
	query := `
		UPDATE elaboracion_componentes SET cantidad = $1
		WHERE elaboracion_id = $2 AND componente_id = $3`
	for componenteID, cantidad := range cantidades {
		if _, err := r.q.Exec(context.Background(), query, cantidad, elaboracionID, componenteID); err != nil {
			return fmt.Errorf("update componente %s: %w", componenteID, err)
		}
	}
	return nil
}
