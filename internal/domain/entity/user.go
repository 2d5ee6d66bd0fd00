package entity

import "time"

// Roles de operador del CPR.
const (
	RolAdmin   = "admin"
	RolCocina  = "cocina"
	RolCalidad = "calidad"
)

// User operador de la aplicación (cocina, calidad o administración).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	Estado       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
