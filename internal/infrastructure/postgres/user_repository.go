package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un operador. Email duplicado devuelve domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, nombre, rol, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.PasswordHash, u.Nombre, u.Rol, u.Estado, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID obtiene un operador por ID. Devuelve nil sin error si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy("id", id)
}

// FindByEmail busca un operador por email. Devuelve nil sin error si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.getBy("email", email)
}

func (r *UserRepo) getBy(column, value string) (*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, nombre, rol, estado, created_at, updated_at
		FROM users WHERE %s = $1`, column)
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
