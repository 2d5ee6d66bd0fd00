package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cpr-api/internal/application/auth"
	"github.com/jhoicas/cpr-api/internal/application/dto"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

// AuthHandler maneja registro y login de operadores (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
	}
}

// Register godoc
// @Summary      Registrar operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password (min 8), nombre, rol (admin|cocina|calidad)"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Register(in.Email, in.Password, in.Nombre, in.Rol)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// Login godoc
// @Summary      Login de operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, user, err := h.uc.Login(in.Email, in.Password)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, User: toUserResponse(user)})
}
