package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ repository.CierreRepository = (*CierreRepo)(nil)

// CierreRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla cierres_inventario lleva UNIQUE (centro_id, mes); la foto de
// inventario se guarda como JSONB.
type CierreRepo struct {
	q Querier
}

// NewCierreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCierreRepository(q Querier) *CierreRepo {
	return &CierreRepo{q: q}
}

const cierreColumns = `
	id, centro_id, mes, fecha_inicio, fecha_cierre,
	valor_inventario_inicial, valor_inventario_final, valor_compras,
	valor_consumo_trazado, valor_consumo_real, valor_merma_desconocida, snapshot`

// Create persiste un cierre mensual. Un segundo cierre del mismo
// (centro, mes) choca con el constraint único y devuelve
// domain.ErrDuplicateClosure.
func (r *CierreRepo) Create(c *entity.CierreInventario) error {
	snapshot, err := json.Marshal(c.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `
		INSERT INTO cierres_inventario (` + cierreColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		c.ID, c.CentroID, c.Mes, c.FechaInicio, c.FechaCierre,
		c.ValorInventarioInicial, c.ValorInventarioFinal, c.ValorCompras,
		c.ValorConsumoTrazado, c.ValorConsumoReal, c.ValorMermaDesconocida, snapshot,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateClosure
		}
		return fmt.Errorf("create cierre: %w", err)
	}
	return nil
}

// GetByMes obtiene el cierre de un mes. Devuelve nil sin error si no existe.
func (r *CierreRepo) GetByMes(centroID, mes string) (*entity.CierreInventario, error) {
	query := `SELECT ` + cierreColumns + ` FROM cierres_inventario WHERE centro_id = $1 AND mes = $2`
	c, err := scanCierre(r.q.QueryRow(context.Background(), query, centroID, mes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cierre: %w", err)
	}
	return c, nil
}

// List devuelve todos los cierres de un centro, más recientes primero.
func (r *CierreRepo) List(centroID string) ([]*entity.CierreInventario, error) {
	query := `SELECT ` + cierreColumns + ` FROM cierres_inventario WHERE centro_id = $1 ORDER BY mes DESC`
	rows, err := r.q.Query(context.Background(), query, centroID)
	if err != nil {
		return nil, fmt.Errorf("list cierres: %w", err)
	}
	defer rows.Close()
	var list []*entity.CierreInventario
	for rows.Next() {
		c, err := scanCierre(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cierre: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCierre(row pgx.Row) (*entity.CierreInventario, error) {
	var c entity.CierreInventario
	var snapshot []byte
	err := row.Scan(
		&c.ID, &c.CentroID, &c.Mes, &c.FechaInicio, &c.FechaCierre,
		&c.ValorInventarioInicial, &c.ValorInventarioFinal, &c.ValorCompras,
		&c.ValorConsumoTrazado, &c.ValorConsumoReal, &c.ValorMermaDesconocida, &snapshot,
	)
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &c.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
	}
	return &c, nil
}
