package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/stockflow-api/pkg/jwt"
)

const secret = "test-secret"

type memUsers struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByUsernameOrEmail(_ context.Context, login string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) List(context.Context) ([]*entity.User, error) { return r.users, nil }

func (r *memUsers) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memUsers) Delete(context.Context, string) error { return nil }

func newAuth() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), repo
}

func TestSetupYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	check, err := uc.CheckAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, check.AdminExists)

	admin, err := uc.Setup(ctx, dto.SetupRequest{Name: "Admin", Username: "admin", Email: "admin@dcat.fr", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	check, err = uc.CheckAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, check.AdminExists)

	for _, login := range []string{"admin", "admin@dcat.fr"} {
		out, err := uc.Login(ctx, dto.LoginRequest{UsernameOrEmail: login, Password: "password1"})
		require.NoError(t, err, login)
		claims, err := pkgjwt.Parse(secret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.UserID)
		assert.Equal(t, entity.RoleAdmin, claims.Role)
	}
}

func TestSetup_SegundoAdminRechazado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	in := dto.SetupRequest{Name: "Admin", Username: "admin", Email: "admin@dcat.fr", Password: "password1"}

	_, err := uc.Setup(ctx, in)
	require.NoError(t, err)
	_, err = uc.Setup(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAdminExists)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.Setup(ctx, dto.SetupRequest{Name: "Admin", Username: "admin", Email: "admin@dcat.fr", Password: "password1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{UsernameOrEmail: "admin", Password: "mauvais"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{UsernameOrEmail: "inconnu", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
