package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cpr-api/internal/application/dto"
	"github.com/jhoicas/cpr-api/internal/application/production"
	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	yield "github.com/jhoicas/cpr-api/internal/domain/production"
)

// ProduccionHandler maneja el histórico de producciones y las estadísticas
// de rendimiento de las elaboraciones (protegido).
type ProduccionHandler struct {
	uc *production.ProduccionUseCase
}

// NewProduccionHandler construye el handler.
func NewProduccionHandler(uc *production.ProduccionUseCase) *ProduccionHandler {
	return &ProduccionHandler{uc: uc}
}

func toComponentesDTO(componentes []entity.ComponenteUtilizado) []dto.ComponenteUtilizadoDTO {
	out := make([]dto.ComponenteUtilizadoDTO, 0, len(componentes))
	for _, c := range componentes {
		out = append(out, dto.ComponenteUtilizadoDTO{
			ComponenteID:        c.ComponenteID,
			Nombre:              c.Nombre,
			CantidadPlanificada: c.CantidadPlanificada,
			CantidadUtilizada:   c.CantidadUtilizada,
			Merma:               c.Merma,
		})
	}
	return out
}

func fromComponentesDTO(componentes []dto.ComponenteUtilizadoDTO) []entity.ComponenteUtilizado {
	out := make([]entity.ComponenteUtilizado, 0, len(componentes))
	for _, c := range componentes {
		out = append(out, entity.ComponenteUtilizado{
			ComponenteID:        c.ComponenteID,
			Nombre:              c.Nombre,
			CantidadPlanificada: c.CantidadPlanificada,
			CantidadUtilizada:   c.CantidadUtilizada,
			Merma:               c.Merma,
		})
	}
	return out
}

func toProduccionResponse(p *entity.Produccion) dto.ProduccionResponse {
	return dto.ProduccionResponse{
		ID:                    p.ID,
		ElaboracionID:         p.ElaboracionID,
		OrdenFabricacionID:    p.OrdenFabricacionID,
		FechaProduccion:       p.FechaProduccion,
		Responsable:           p.Responsable,
		CantidadPlanificada:   p.CantidadPlanificada,
		CantidadRealProducida: p.CantidadRealProducida,
		RatioProduccion:       p.RatioProduccion,
		ComponentesUtilizados: toComponentesDTO(p.ComponentesUtilizados),
		Observaciones:         p.Observaciones,
	}
}

func toEstadisticasResponse(est *yield.Estadisticas) dto.EstadisticasResponse {
	ajustes := make([]dto.AjusteComponenteDTO, 0, len(est.Ajustes))
	for _, a := range est.Ajustes {
		ajustes = append(ajustes, dto.AjusteComponenteDTO{
			ComponenteID:           a.ComponenteID,
			Nombre:                 a.Nombre,
			CantidadActual:         a.CantidadActual,
			CantidadSugerida:       a.CantidadSugerida,
			AjusteAbsoluto:         a.AjusteAbsoluto,
			AjustePorcent:          a.AjustePorcent,
			ProduccionesAnalizadas: a.ProduccionesAnalizadas,
		})
	}
	return dto.EstadisticasResponse{
		ElaboracionID:       est.ElaboracionID,
		TotalProducciones:   est.TotalProducciones,
		RendimientoPromedio: est.RendimientoPromedio,
		Variabilidad:        est.Variabilidad,
		Confianza:           string(est.Confianza),
		Ajustes:             ajustes,
	}
}

// Registrar godoc
// @Summary      Registrar producción manual
// @Description  Alta directa en el histórico, sin pasar por una orden de fabricación.
// @Tags         producciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarProduccionRequest  true  "elaboracion_id, cantidades, componentes utilizados"
// @Success      201   {object}  dto.ProduccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cpr/producciones [post]
func (h *ProduccionHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarProduccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := production.RegistrarInput{
		ElaboracionID:         in.ElaboracionID,
		Responsable:           in.Responsable,
		CantidadPlanificada:   in.CantidadPlanificada,
		CantidadRealProducida: in.CantidadRealProducida,
		ComponentesUtilizados: fromComponentesDTO(in.ComponentesUtilizados),
		Observaciones:         in.Observaciones,
	}
	if in.FechaProduccion != nil {
		input.FechaProduccion = *in.FechaProduccion
	}
	p, err := h.uc.Registrar(input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProduccionResponse(p))
}

// Actualizar godoc
// @Summary      Corregir producción
// @Tags         producciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la producción"
// @Param        body  body  dto.ActualizarProduccionRequest  true  "campos a corregir"
// @Success      200   {object}  dto.ProduccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cpr/producciones/{id} [put]
func (h *ProduccionHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarProduccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := production.ActualizarInput{
		CantidadRealProducida: in.CantidadRealProducida,
		Observaciones:         in.Observaciones,
	}
	if in.ComponentesUtilizados != nil {
		input.ComponentesUtilizados = fromComponentesDTO(in.ComponentesUtilizados)
	}
	p, err := h.uc.Actualizar(c.Params("id"), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toProduccionResponse(p))
}

// Eliminar godoc
// @Summary      Eliminar producción
// @Description  Borra el registro del histórico. Las estadísticas siguientes
// @Description  se recalculan sobre el histórico restante.
// @Tags         producciones
// @Security     Bearer
// @Param        id  path  string  true  "ID de la producción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cpr/producciones/{id} [delete]
func (h *ProduccionHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Historial godoc
// @Summary      Histórico de producciones de una elaboración
// @Tags         producciones
// @Security     Bearer
// @Produce      json
// @Param        elaboracionId  path  string  true  "ID de la elaboración"
// @Success      200  {array}  dto.ProduccionResponse
// @Router       /api/cpr/elaboraciones/{elaboracionId}/producciones [get]
func (h *ProduccionHandler) Historial(c *fiber.Ctx) error {
	producciones, err := h.uc.Historial(c.Params("elaboracionId"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ProduccionResponse, 0, len(producciones))
	for _, p := range producciones {
		out = append(out, toProduccionResponse(p))
	}
	return c.JSON(out)
}

// Estadisticas godoc
// @Summary      Estadísticas de rendimiento de una elaboración
// @Description  Recalcula sobre el histórico completo. Sin producciones
// @Description  devuelve sin_datos=true con valores a cero.
// @Tags         producciones
// @Security     Bearer
// @Produce      json
// @Param        elaboracionId  path   string  true   "ID de la elaboración"
// @Param        todos          query  bool    false  "Incluir ajustes por debajo del umbral"
// @Success      200  {object}  dto.EstadisticasResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cpr/elaboraciones/{elaboracionId}/estadisticas [get]
func (h *ProduccionHandler) Estadisticas(c *fiber.Ctx) error {
	elaboracionID := c.Params("elaboracionId")
	incluirTodos := c.QueryBool("todos")
	est, err := h.uc.Estadisticas(elaboracionID, incluirTodos)
	if err != nil {
		if errors.Is(err, domain.ErrNoProductions) {
			return c.JSON(dto.EstadisticasResponse{
				ElaboracionID: elaboracionID,
				SinDatos:      true,
				Ajustes:       []dto.AjusteComponenteDTO{},
			})
		}
		return mapDomainError(c, err)
	}
	return c.JSON(toEstadisticasResponse(est))
}

// AceptarAjustes godoc
// @Summary      Aplicar ajustes sugeridos al escandallo
// @Description  Escribe las cantidades sugeridas en el catálogo de recetas.
// @Description  Con componente_ids vacío aplica todos los ajustes que
// @Description  superan el umbral.
// @Tags         producciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        elaboracionId  path  string  true  "ID de la elaboración"
// @Param        body  body  dto.AceptarAjustesRequest  true  "componente_ids (opcional)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cpr/elaboraciones/{elaboracionId}/ajustes [post]
func (h *ProduccionHandler) AceptarAjustes(c *fiber.Ctx) error {
	var in dto.AceptarAjustesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.AceptarAjustes(c.Params("elaboracionId"), in.ComponenteIDs); err != nil {
		if errors.Is(err, domain.ErrNoProductions) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la elaboración no tiene producciones"})
		}
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "escandallo actualizado"})
}
