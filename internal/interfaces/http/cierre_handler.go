package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cpr-api/internal/application/closure"
	"github.com/jhoicas/cpr-api/internal/application/dto"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

// CierreHandler maneja los cierres mensuales de inventario y el libro de
// almacén (protegido).
type CierreHandler struct {
	uc *closure.UseCase
}

// NewCierreHandler construye el handler.
func NewCierreHandler(uc *closure.UseCase) *CierreHandler {
	return &CierreHandler{uc: uc}
}

func toCierreResponse(c *entity.CierreInventario, conSnapshot bool) dto.CierreResponse {
	resp := dto.CierreResponse{
		ID:                     c.ID,
		CentroID:               c.CentroID,
		Mes:                    c.Mes,
		FechaInicio:            c.FechaInicio,
		FechaCierre:            c.FechaCierre,
		ValorInventarioInicial: c.ValorInventarioInicial,
		ValorInventarioFinal:   c.ValorInventarioFinal,
		ValorCompras:           c.ValorCompras,
		ValorConsumoTrazado:    c.ValorConsumoTrazado,
		ValorConsumoReal:       c.ValorConsumoReal,
		ValorMermaDesconocida:  c.ValorMermaDesconocida,
	}
	if conSnapshot {
		resp.Snapshot = make([]dto.LineaSnapshotDTO, 0, len(c.Snapshot))
		for _, l := range c.Snapshot {
			resp.Snapshot = append(resp.Snapshot, dto.LineaSnapshotDTO{
				ArticuloID:      l.ArticuloID,
				NombreArticulo:  l.NombreArticulo,
				UbicacionID:     l.UbicacionID,
				UbicacionNombre: l.UbicacionNombre,
				Stock:           l.Stock,
				Unidad:          l.Unidad,
				Valoracion:      l.Valoracion,
			})
		}
	}
	return resp
}

func toMovimientoResponse(m *entity.StockMovimiento) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:                 m.ID,
		Tipo:               m.Tipo,
		ArticuloID:         m.ArticuloID,
		OrdenFabricacionID: m.OrdenFabricacionID,
		Cantidad:           m.Cantidad,
		Valoracion:         m.Valoracion,
		Fecha:              m.Fecha,
		CreatedBy:          m.CreatedBy,
	}
}

// Realizar godoc
// @Summary      Cerrar un mes
// @Description  Concilia inventario, compras y consumo trazado del mes y
// @Description  congela el resultado. Solo meses ya terminados; un mes se
// @Description  cierra una sola vez por centro.
// @Tags         cierres
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RealizarCierreRequest  true  "mes (yyyy-MM)"
// @Success      201   {object}  dto.CierreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cpr/cierres [post]
func (h *CierreHandler) Realizar(c *fiber.Ctx) error {
	var in dto.RealizarCierreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cierre, err := h.uc.RealizarCierre(in.Mes)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCierreResponse(cierre, true))
}

// Historial godoc
// @Summary      Histórico de cierres del centro
// @Tags         cierres
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CierreResponse
// @Router       /api/cpr/cierres [get]
func (h *CierreHandler) Historial(c *fiber.Ctx) error {
	cierres, err := h.uc.Historial()
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for _, ci := range cierres {
		out = append(out, toCierreResponse(ci, false))
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Obtener cierre de un mes
// @Tags         cierres
// @Security     Bearer
// @Produce      json
// @Param        mes  path  string  true  "Mes (yyyy-MM)"
// @Success      200  {object}  dto.CierreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cpr/cierres/{mes} [get]
func (h *CierreHandler) Obtener(c *fiber.Ctx) error {
	cierre, err := h.uc.Obtener(c.Params("mes"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toCierreResponse(cierre, true))
}

// InformePDF godoc
// @Summary      Informe PDF de un cierre
// @Tags         cierres
// @Security     Bearer
// @Produce      application/pdf
// @Param        mes  path  string  true  "Mes (yyyy-MM)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cpr/cierres/{mes}/informe [get]
func (h *CierreHandler) InformePDF(c *fiber.Ctx) error {
	mes := c.Params("mes")
	pdfBytes, err := h.uc.InformePDF(mes)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cierre-`+mes+`.pdf"`)
	return c.Send(pdfBytes)
}

// RegistrarMovimiento godoc
// @Summary      Registrar apunte en el libro de almacén
// @Description  Recepciones de compra y ajustes manuales. Los consumos de
// @Description  producción los escribe la finalización de la OF.
// @Tags         almacen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarMovimientoRequest  true  "tipo (compra|otro), articulo_id, cantidad, valoracion"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cpr/almacen/movimientos [post]
func (h *CierreHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegistrarMovimiento(in.Tipo, in.ArticuloID, GetUserID(c), in.Cantidad, in.Valoracion, in.Fecha)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovimientoResponse(mov))
}

// ListarMovimientos godoc
// @Summary      Listar apuntes del libro de almacén
// @Tags         almacen
// @Security     Bearer
// @Produce      json
// @Param        tipo         query  string  false  "compra | consumo_produccion | otro"
// @Param        articulo_id  query  string  false  "Filtrar por artículo"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/cpr/almacen/movimientos [get]
func (h *CierreHandler) ListarMovimientos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movs, err := h.uc.ListarMovimientos(repository.MovimientoFilter{
		Tipo:       c.Query("tipo"),
		ArticuloID: c.Query("articulo_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoResponse(m))
	}
	return c.JSON(out)
}
