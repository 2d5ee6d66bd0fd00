package repository

import "github.com/jhoicas/cpr-api/internal/domain/entity"

// UserRepository define el puerto de persistencia de operadores.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
