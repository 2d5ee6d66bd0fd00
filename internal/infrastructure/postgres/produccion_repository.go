package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ repository.ProduccionRepository = (*ProduccionRepo)(nil)

// ProduccionRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los componentes utilizados se guardan como JSONB: se leen y escriben
// siempre como documento completo, nunca por partes.
type ProduccionRepo struct {
	q Querier
}

// NewProduccionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProduccionRepository(q Querier) *ProduccionRepo {
	return &ProduccionRepo{q: q}
}

const produccionColumns = `
	id, elaboracion_id, orden_fabricacion_id, fecha_produccion, responsable,
	cantidad_planificada, cantidad_real_producida, ratio_produccion,
	componentes_utilizados, observaciones`

// Create persiste una producción.
func (r *ProduccionRepo) Create(p *entity.Produccion) error {
	componentes, err := json.Marshal(p.ComponentesUtilizados)
	if err != nil {
		return fmt.Errorf("marshal componentes: %w", err)
	}
	query := `
		INSERT INTO producciones (` + produccionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		p.ID, p.ElaboracionID, nullIfEmpty(p.OrdenFabricacionID), p.FechaProduccion,
		nullIfEmpty(p.Responsable), p.CantidadPlanificada, p.CantidadRealProducida,
		p.RatioProduccion, componentes, nullIfEmpty(p.Observaciones),
	)
	if err != nil {
		return fmt.Errorf("create produccion: %w", err)
	}
	return nil
}

// GetByID obtiene una producción por ID. Devuelve nil sin error si no existe.
func (r *ProduccionRepo) GetByID(id string) (*entity.Produccion, error) {
	query := `SELECT ` + produccionColumns + ` FROM producciones WHERE id = $1`
	p, err := scanProduccion(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produccion: %w", err)
	}
	return p, nil
}

// ListByElaboracion devuelve el histórico completo de una elaboración,
// más recientes primero con desempate estable por id.
func (r *ProduccionRepo) ListByElaboracion(elaboracionID string) ([]*entity.Produccion, error) {
	query := `SELECT ` + produccionColumns + `
		FROM producciones WHERE elaboracion_id = $1
		ORDER BY fecha_produccion DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, elaboracionID)
	if err != nil {
		return nil, fmt.Errorf("list producciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produccion
	for rows.Next() {
		p, err := scanProduccion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produccion: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reescribe una producción completa.
func (r *ProduccionRepo) Update(p *entity.Produccion) error {
	componentes, err := json.Marshal(p.ComponentesUtilizados)
	if err != nil {
		return fmt.Errorf("marshal componentes: %w", err)
	}
	query := `
		UPDATE producciones SET
			cantidad_planificada = $1, cantidad_real_producida = $2,
			ratio_produccion = $3, componentes_utilizados = $4, observaciones = $5
		WHERE id = $6`
	_, err = r.q.Exec(context.Background(), query,
		p.CantidadPlanificada, p.CantidadRealProducida, p.RatioProduccion,
		componentes, nullIfEmpty(p.Observaciones), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update produccion: %w", err)
	}
	return nil
}

// Delete borra una producción del histórico.
func (r *ProduccionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM producciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete produccion: %w", err)
	}
	return nil
}

func scanProduccion(row pgx.Row) (*entity.Produccion, error) {
	var p entity.Produccion
	var ordenID, responsable, observaciones *string
	var componentes []byte
	err := row.Scan(
		&p.ID, &p.ElaboracionID, &ordenID, &p.FechaProduccion, &responsable,
		&p.CantidadPlanificada, &p.CantidadRealProducida, &p.RatioProduccion,
		&componentes, &observaciones,
	)
	if err != nil {
		return nil, err
	}
	if ordenID != nil {
		p.OrdenFabricacionID = *ordenID
	}
	if responsable != nil {
		p.Responsable = *responsable
	}
	if observaciones != nil {
		p.Observaciones = *observaciones
	}
	if len(componentes) > 0 {
		if err := json.Unmarshal(componentes, &p.ComponentesUtilizados); err != nil {
			return nil, fmt.Errorf("unmarshal componentes: %w", err)
		}
	}
	return &p, nil
}
