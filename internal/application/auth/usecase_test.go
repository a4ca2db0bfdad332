package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-count-api/internal/application/apptest"
	"github.com/jhoicas/inventory-count-api/internal/application/auth"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(s *apptest.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(&apptest.UserRepo{S: s}, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, zerolog.Nop())
}

func addUser(t *testing.T, s *apptest.Store, email, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s.Users["u-"+email] = entity.User{ID: "u-" + email, Name: "Usuario", Email: email, PasswordHash: string(hash), Role: role}
}

func TestLogin_OK(t *testing.T) {
	s := apptest.NewStore()
	addUser(t, s, "ana@x.com", "clave", "counter")

	out, err := newUseCase(s).Login(context.Background(), dto.LoginRequest{Email: "ANA@X.com", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, "COUNTER", out.User.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-ana@x.com", claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "COUNTER", claims.Role)
}

func TestLogin_Rechazos(t *testing.T) {
	s := apptest.NewStore()
	addUser(t, s, "ana@x.com", "clave", entity.RoleCounter)
	uc := newUseCase(s)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeedAdmin(t *testing.T) {
	s := apptest.NewStore()
	uc := newUseCase(s)

	created, err := uc.SeedAdmin(context.Background(), "Admin@Inventory.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, s.Users, 1)
	for _, u := range s.Users {
		assert.Equal(t, "admin@inventory.com", u.Email)
		assert.Equal(t, entity.RoleAdmin, u.Role)
		assert.Equal(t, auth.AdminName, u.Name)
	}

	// con usuarios existentes no hace nada
	created, err = uc.SeedAdmin(context.Background(), "otro@x.com", "x")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, s.Users, 1)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "admin@inventory.com", Password: "admin123"})
	assert.NoError(t, err)
}
