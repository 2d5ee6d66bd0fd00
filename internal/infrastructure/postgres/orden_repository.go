package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ repository.OrdenRepository = (*OrdenRepo)(nil)

// OrdenRepo implementación de OrdenRepository sobre PostgreSQL (usable con pool o tx).
type OrdenRepo struct {
	q Querier
}

// NewOrdenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenRepository(q Querier) *OrdenRepo {
	return &OrdenRepo{q: q}
}

const ordenColumns = `
	id, fecha_creacion, fecha_produccion_prevista, fecha_asignacion,
	fecha_inicio_produccion, fecha_finalizacion, elaboracion_id,
	elaboracion_nombre, cantidad_planificada, cantidad_real, unidad,
	partida_asignada, tipo_expedicion, responsable, estado, os_ids,
	incidencia, incidencia_observaciones, ok_calidad, responsable_calidad,
	fecha_validacion_calidad`

// Create persiste una orden de fabricación.
func (r *OrdenRepo) Create(orden *entity.OrdenFabricacion) error {
	query := `
		INSERT INTO ordenes_fabricacion (` + ordenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.FechaCreacion, orden.FechaProduccionPrevista, orden.FechaAsignacion,
		orden.FechaInicioProduccion, orden.FechaFinalizacion, orden.ElaboracionID,
		orden.ElaboracionNombre, orden.CantidadPlanificada, orden.CantidadReal, orden.Unidad,
		orden.PartidaAsignada, orden.TipoExpedicion, nullIfEmpty(orden.Responsable), orden.Estado, orden.OsIDs,
		orden.Incidencia, nullIfEmpty(orden.IncidenciaObservaciones), orden.OkCalidad,
		nullIfEmpty(orden.ResponsableCalidad), orden.FechaValidacionCalidad,
	)
	if err != nil {
		return fmt.Errorf("create orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve nil sin error si no existe.
func (r *OrdenRepo) GetByID(id string) (*entity.OrdenFabricacion, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_fabricacion WHERE id = $1`
	orden, err := scanOrden(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	return orden, nil
}

// List devuelve órdenes filtradas, más recientes primero.
func (r *OrdenRepo) List(filter repository.OrdenFilter) ([]*entity.OrdenFabricacion, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_fabricacion WHERE 1=1`
	var args []any
	pos := 1
	if filter.Estado != "" {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, filter.Estado)
		pos++
	}
	if filter.Partida != "" {
		query += fmt.Sprintf(" AND partida_asignada = $%d", pos)
		args = append(args, filter.Partida)
		pos++
	}
	if filter.Desde != nil {
		query += fmt.Sprintf(" AND fecha_produccion_prevista >= $%d", pos)
		args = append(args, *filter.Desde)
		pos++
	}
	if filter.Hasta != nil {
		query += fmt.Sprintf(" AND fecha_produccion_prevista <= $%d", pos)
		args = append(args, *filter.Hasta)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY fecha_produccion_prevista DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	return collectOrdenes(rows)
}

// UpdateTransition persiste la orden solo si la fila sigue en
// estadoEsperado. Cero filas afectadas significa que otra petición ganó la
// carrera (o que la orden no existe): domain.ErrInvalidTransition.
func (r *OrdenRepo) UpdateTransition(orden *entity.OrdenFabricacion, estadoEsperado string) error {
	query := `
		UPDATE ordenes_fabricacion SET
			fecha_asignacion = $1, fecha_inicio_produccion = $2, fecha_finalizacion = $3,
			cantidad_real = $4, responsable = $5, estado = $6,
			incidencia = $7, incidencia_observaciones = $8,
			ok_calidad = $9, responsable_calidad = $10, fecha_validacion_calidad = $11
		WHERE id = $12 AND estado = $13`
	tag, err := r.q.Exec(context.Background(), query,
		orden.FechaAsignacion, orden.FechaInicioProduccion, orden.FechaFinalizacion,
		orden.CantidadReal, nullIfEmpty(orden.Responsable), orden.Estado,
		orden.Incidencia, nullIfEmpty(orden.IncidenciaObservaciones),
		orden.OkCalidad, nullIfEmpty(orden.ResponsableCalidad), orden.FechaValidacionCalidad,
		orden.ID, estadoEsperado,
	)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// ColaCalidad devuelve las órdenes pendientes de revisión: finalizadas sin
// validar y sin incidencia, más antiguas primero (orden de llegada).
func (r *OrdenRepo) ColaCalidad() ([]*entity.OrdenFabricacion, error) {
	query := `SELECT ` + ordenColumns + `
		FROM ordenes_fabricacion
		WHERE estado = $1 AND ok_calidad = false AND incidencia = false
		ORDER BY fecha_finalizacion ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, entity.EstadoFinalizado)
	if err != nil {
		return nil, fmt.Errorf("cola calidad: %w", err)
	}
	defer rows.Close()
	return collectOrdenes(rows)
}

func scanOrden(row pgx.Row) (*entity.OrdenFabricacion, error) {
	var o entity.OrdenFabricacion
	var responsable, observaciones, responsableCalidad *string
	err := row.Scan(
		&o.ID, &o.FechaCreacion, &o.FechaProduccionPrevista, &o.FechaAsignacion,
		&o.FechaInicioProduccion, &o.FechaFinalizacion, &o.ElaboracionID,
		&o.ElaboracionNombre, &o.CantidadPlanificada, &o.CantidadReal, &o.Unidad,
		&o.PartidaAsignada, &o.TipoExpedicion, &responsable, &o.Estado, &o.OsIDs,
		&o.Incidencia, &observaciones, &o.OkCalidad, &responsableCalidad,
		&o.FechaValidacionCalidad,
	)
	if err != nil {
		return nil, err
	}
	if responsable != nil {
		o.Responsable = *responsable
	}
	if observaciones != nil {
		o.IncidenciaObservaciones = *observaciones
	}
	if responsableCalidad != nil {
		o.ResponsableCalidad = *responsableCalidad
	}
	return &o, nil
}

func collectOrdenes(rows pgx.Rows) ([]*entity.OrdenFabricacion, error) {
	var list []*entity.OrdenFabricacion
	for rows.Next() {
		orden, err := scanOrden(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, orden)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
