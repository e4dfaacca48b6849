package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByUsernameOrEmail busca por username o email (login).
	FindByUsernameOrEmail(ctx context.Context, login string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
	Delete(ctx context.Context, id string) error
}
