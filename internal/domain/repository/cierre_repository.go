package repository

import "github.com/jhoicas/cpr-api/internal/domain/entity"

// CierreRepository define el puerto de persistencia de cierres mensuales.
// La unicidad por (centro_id, mes) la garantiza un constraint de base de
// datos, no un check-then-insert en aplicación: Create devuelve
// domain.ErrDuplicateClosure ante la violación. Un cierre nunca se muta.
type CierreRepository interface {
	Create(cierre *entity.CierreInventario) error
	GetByMes(centroID, mes string) (*entity.CierreInventario, error)
	List(centroID string) ([]*entity.CierreInventario, error)
}
