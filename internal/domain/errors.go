package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrValidation         = errors.New("entrada inválida")

	// Ciclo de vida de órdenes de fabricación.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrInvalidState      = errors.New("la orden no admite esta acción en su estado actual")

	// Cierres mensuales.
	ErrDuplicateClosure = errors.New("ya existe un cierre para ese centro y mes")

	// Motor de rendimiento: estado esperable para elaboraciones nuevas,
	// el caso de uso lo traduce a una respuesta "sin datos", no a un fallo.
	ErrNoProductions = errors.New("sin producciones registradas para la elaboración")
)
