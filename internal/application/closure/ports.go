package closure

import "github.com/jhoicas/cpr-api/internal/domain/entity"

// ReportGenerator produce el informe imprimible de un cierre mensual.
type ReportGenerator interface {
	GenerarInformeCierre(cierre *entity.CierreInventario, historico []*entity.CierreInventario) ([]byte, error)
}
