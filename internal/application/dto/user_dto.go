package dto

import "time"

// RegisterRequest alta de operador.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"` // admin | cocina | calidad
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse operador sin campos sensibles.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Rol       string    `json:"rol"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token JWT más el operador autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
