package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cpr-api/internal/domain"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
	"github.com/jhoicas/cpr-api/internal/domain/repository"
	"github.com/jhoicas/cpr-api/pkg/jwt"
)

// UseCase autenticación de operadores: registro con hash bcrypt y login
// con emisión de JWT.
type UseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	jwtExpMins int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, jwtExpMins int) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtExpMins: jwtExpMins,
	}
}

func rolValido(rol string) bool {
	switch rol {
	case entity.RolAdmin, entity.RolCocina, entity.RolCalidad:
		return true
	}
	return false
}

// Register da de alta un operador. El email es único; la contraseña se
// guarda solo como hash bcrypt.
func (uc *UseCase) Register(email, password, nombre, rol string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 || nombre == "" || !rolValido(rol) {
		return nil, domain.ErrValidation
	}
	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          rol,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login valida credenciales y devuelve un JWT con el rol del operador.
// Credenciales incorrectas y usuario inexistente devuelven el mismo error.
func (uc *UseCase) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.Estado != "active" {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Rol, uc.jwtIssuer, uc.jwtExpMins)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
