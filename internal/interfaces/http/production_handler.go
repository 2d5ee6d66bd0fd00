package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cpr-api/internal/application/dto"
	"github.com/jhoicas/cpr-api/internal/application/production"
	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

// ProductionHandler maneja las peticiones HTTP del ciclo de vida de órdenes
// de fabricación (protegido).
type ProductionHandler struct {
	uc *production.LifecycleUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.LifecycleUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// mapDomainError traduce errores sentinel del dominio a respuestas HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "la orden no admite esta transición desde su estado actual"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TERMINAL_STATE", Message: "la orden ya está en un estado terminal"})
	case errors.Is(err, domain.ErrDuplicateClosure):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CLOSURE", Message: "el mes ya está cerrado para este centro"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toOrdenResponse(o *entity.OrdenFabricacion) dto.OrdenResponse {
	return dto.OrdenResponse{
		ID:                      o.ID,
		ElaboracionID:           o.ElaboracionID,
		ElaboracionNombre:       o.ElaboracionNombre,
		Estado:                  o.Estado,
		CantidadPlanificada:     o.CantidadPlanificada,
		CantidadReal:            o.CantidadReal,
		Unidad:                  o.Unidad,
		PartidaAsignada:         o.PartidaAsignada,
		TipoExpedicion:          o.TipoExpedicion,
		Responsable:             o.Responsable,
		OsIDs:                   o.OsIDs,
		FechaCreacion:           o.FechaCreacion,
		FechaProduccionPrevista: o.FechaProduccionPrevista,
		FechaAsignacion:         o.FechaAsignacion,
		FechaInicioProduccion:   o.FechaInicioProduccion,
		FechaFinalizacion:       o.FechaFinalizacion,
		Incidencia:              o.Incidencia,
		IncidenciaObservaciones: o.IncidenciaObservaciones,
		OkCalidad:               o.OkCalidad,
		ResponsableCalidad:      o.ResponsableCalidad,
		FechaValidacionCalidad:  o.FechaValidacionCalidad,
	}
}

func toOrdenResponses(ordenes []*entity.OrdenFabricacion) []dto.OrdenResponse {
	out := make([]dto.OrdenResponse, 0, len(ordenes))
	for _, o := range ordenes {
		out = append(out, toOrdenResponse(o))
	}
	return out
}

// Create godoc
// @Summary      Crear orden de fabricación
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearOrdenRequest  true  "elaboracion_id, cantidad_planificada, fecha_produccion_prevista (yyyy-MM-dd)"
// @Success      201   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cpr/ordenes [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fecha, err := time.Parse("2006-01-02", in.FechaProduccionPrevista)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_produccion_prevista inválida (yyyy-MM-dd)"})
	}
	orden, err := h.uc.CrearOrden(production.CrearOrdenInput{
		ElaboracionID:           in.ElaboracionID,
		CantidadPlanificada:     in.CantidadPlanificada,
		FechaProduccionPrevista: fecha,
		PartidaAsignada:         in.PartidaAsignada,
		OsIDs:                   in.OsIDs,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrdenResponse(orden))
}

// List godoc
// @Summary      Listar órdenes de fabricación
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        estado   query  string  false  "Pendiente | En Proceso | Finalizado | Validado | Incidencia"
// @Param        partida  query  string  false  "FRIO | CALIENTE | PASTELERIA | EXPEDICION"
// @Param        desde    query  string  false  "yyyy-MM-dd"
// @Param        hasta    query  string  false  "yyyy-MM-dd"
// @Success      200  {array}  dto.OrdenResponse
// @Router       /api/cpr/ordenes [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.OrdenFilter{
		Estado:  c.Query("estado"),
		Partida: c.Query("partida"),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
	if raw := c.Query("desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde inválida (yyyy-MM-dd)"})
		}
		filter.Desde = &t
	}
	if raw := c.Query("hasta"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta inválida (yyyy-MM-dd)"})
		}
		filter.Hasta = &t
	}
	ordenes, err := h.uc.Listar(filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponses(ordenes))
}

// GetByID godoc
// @Summary      Obtener orden de fabricación
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cpr/ordenes/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	orden, err := h.uc.Obtener(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponse(orden))
}

// Asignar godoc
// @Summary      Asignar responsable y arrancar producción
// @Description  Transición Pendiente → En Proceso. Estampa fecha de asignación y de inicio.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AsignarOrdenRequest  true  "responsable"
// @Success      200   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cpr/ordenes/{id}/asignar [post]
func (h *ProductionHandler) Asignar(c *fiber.Ctx) error {
	var in dto.AsignarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.AsignarYEmpezar(c.Params("id"), in.Responsable)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponse(orden))
}

// Finalizar godoc
// @Summary      Finalizar producción de una orden
// @Description  Transición En Proceso → Finalizado. Escribe los consumos del
// @Description  escandallo en el libro de almacén y registra la producción,
// @Description  todo en la misma transacción.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.FinalizarOrdenRequest  true  "cantidad_real (opcional; por defecto la planificada)"
// @Success      200   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cpr/ordenes/{id}/finalizar [post]
func (h *ProductionHandler) Finalizar(c *fiber.Ctx) error {
	var in dto.FinalizarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.Finalizar(c.Context(), c.Params("id"), in.CantidadReal)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponse(orden))
}

// Incidencia godoc
// @Summary      Marcar incidencia de calidad
// @Description  Transición Finalizado → Incidencia (terminal). Exige
// @Description  observaciones y corrige la cantidad real.
// @Tags         calidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.IncidenciaRequest  true  "cantidad_corregida, observaciones"
// @Success      200   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cpr/ordenes/{id}/incidencia [post]
func (h *ProductionHandler) Incidencia(c *fiber.Ctx) error {
	var in dto.IncidenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.FlagIncidencia(c.Params("id"), in.CantidadCorregida, in.Observaciones)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponse(orden))
}

// ValidarCalidad godoc
// @Summary      Validar calidad de una orden
// @Description  Transición Finalizado → Validado (terminal).
// @Tags         calidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ValidarCalidadRequest  true  "responsable_calidad"
// @Success      200   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cpr/ordenes/{id}/validar [post]
func (h *ProductionHandler) ValidarCalidad(c *fiber.Ctx) error {
	var in dto.ValidarCalidadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.ValidarCalidad(c.Params("id"), in.ResponsableCalidad)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponse(orden))
}

// ColaCalidad godoc
// @Summary      Cola de calidad
// @Description  Órdenes finalizadas pendientes de revisión, en orden de llegada.
// @Tags         calidad
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrdenResponse
// @Router       /api/cpr/calidad/cola [get]
func (h *ProductionHandler) ColaCalidad(c *fiber.Ctx) error {
	ordenes, err := h.uc.ColaCalidad()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrdenResponses(ordenes))
}
