package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-count-api/internal/application/apptest"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/usecase"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestUserUseCase_Create(t *testing.T) {
	s := apptest.NewStore()
	teamID := uuid.NewString()
	s.Teams[teamID] = entity.Team{ID: teamID, Name: "Equipo A"}
	uc := usecase.NewUserUseCase(&apptest.UserRepo{S: s}, &apptest.TeamRepo{S: s})

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: " Ana@X.com ", Password: "secreto", TeamID: &teamID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", out.Email)
	assert.Equal(t, entity.RoleCounter, out.Role, "rol por defecto")
	require.NotNil(t, out.TeamID)

	stored := s.Users[out.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto")))

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Name: "Otra", Email: "ANA@x.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_CreateValidacion(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewUserUseCase(&apptest.UserRepo{S: s}, &apptest.TeamRepo{S: s})
	tests := []struct {
		name string
		in   dto.CreateUserRequest
	}{
		{"sin email", dto.CreateUserRequest{Name: "A", Password: "x"}},
		{"sin password", dto.CreateUserRequest{Name: "A", Email: "a@x.com"}},
		{"rol desconocido", dto.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "x", Role: "ROOT"}},
		{"equipo inexistente", dto.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "x", TeamID: strPtr(uuid.NewString())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.Users)
}

func TestUserUseCase_Update(t *testing.T) {
	s := apptest.NewStore()
	id := uuid.NewString()
	s.Users[id] = entity.User{ID: id, Name: "Ana", Email: "ana@x.com", Role: entity.RoleCounter}
	uc := usecase.NewUserUseCase(&apptest.UserRepo{S: s}, &apptest.TeamRepo{S: s})

	out, err := uc.Update(context.Background(), id, dto.UpdateUserRequest{ID: id, Name: "Ana M.", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", out.Role)
	assert.Equal(t, "Ana M.", s.Users[id].Name)

	_, err = uc.Update(context.Background(), id, dto.UpdateUserRequest{ID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), uuid.NewString(), dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_ListSinHash(t *testing.T) {
	s := apptest.NewStore()
	s.Users["1"] = entity.User{ID: "1", Name: "A", Email: "a@x.com", PasswordHash: "hash"}
	uc := usecase.NewUserUseCase(&apptest.UserRepo{S: s}, &apptest.TeamRepo{S: s})

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a@x.com", list[0].Email)
}

func TestTeamUseCase_CRUD(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewTeamUseCase(&apptest.TeamRepo{S: s})
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.TeamRequest{Name: " Equipo Norte ", Description: strPtr("turno mañana")})
	require.NoError(t, err)
	assert.Equal(t, "Equipo Norte", created.Name)

	updated, err := uc.Update(ctx, created.ID, dto.TeamRequest{Name: "Equipo Sur"})
	require.NoError(t, err)
	assert.Equal(t, "Equipo Sur", updated.Name)
	assert.Nil(t, updated.Description)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.TeamRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocationUseCase(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewLocationUseCase(&apptest.LocationRepo{S: s})
	ctx := context.Background()

	loc, err := uc.Create(ctx, dto.LocationRequest{Barcode: strPtr("LOC-001"), Description: strPtr("Pasillo 1")})
	require.NoError(t, err)
	assert.NotEmpty(t, loc.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, loc.ID))
	assert.ErrorIs(t, uc.Delete(ctx, loc.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "x"), domain.ErrNotFound)
}
