package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/jwt"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, alta del primer administrador y chequeo.
type AuthUseCase struct {
	userRepo repository.UserRepository
	users    *usecase.UserUseCase
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, users: usecase.NewUserUseCase(userRepo), jwtCfg: jwtCfg}
}

// Login verifica username o email + password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	login := strings.TrimSpace(in.UsernameOrEmail)
	user, err := uc.userRepo.FindByUsernameOrEmail(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Mismo coste de bcrypt que con un usuario existente.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.FromUser(user),
	}, nil
}

// Setup crea el primer administrador. ErrAdminExists si ya hay uno.
func (uc *AuthUseCase) Setup(ctx context.Context, in dto.SetupRequest) (*dto.UserResponse, error) {
	exists, err := uc.adminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAdminExists
	}
	return uc.users.Create(ctx, dto.CreateUserRequest{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     entity.RoleAdmin,
	})
}

// CheckAdmin informa si ya existe al menos un administrador.
func (uc *AuthUseCase) CheckAdmin(ctx context.Context) (*dto.CheckAdminResponse, error) {
	exists, err := uc.adminExists(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CheckAdminResponse{AdminExists: exists}, nil
}

func (uc *AuthUseCase) adminExists(ctx context.Context) (bool, error) {
	n, err := uc.userRepo.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("stockflow"), bcrypt.DefaultCost)
