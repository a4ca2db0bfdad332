package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	teamRepo repository.TeamRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, teamRepo repository.TeamRepository) *UserUseCase {
	return &UserUseCase{repo: repo, teamRepo: teamRepo}
}

// List todos los usuarios, sin hash de password.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario. Email en minúsculas y único; rol por defecto COUNTER.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}
	teamID, err := uc.resolveTeam(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		TeamID:       teamID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update cambia nombre, rol y equipo. El email y la contraseña no se editan aquí.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.ID != "" && in.ID != id {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if in.Role != "" {
		role, err := normalizeRole(in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	teamID, err := uc.resolveTeam(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}
	user.TeamID = teamID
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// resolveTeam valida que el equipo exista. Vacío o uuid nulo significa sin equipo.
func (uc *UserUseCase) resolveTeam(ctx context.Context, teamID *string) (*string, error) {
	if teamID == nil || strings.TrimSpace(*teamID) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*teamID))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if id == uuid.Nil {
		return nil, nil
	}
	team, err := uc.teamRepo.GetByID(ctx, id.String())
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrInvalidInput
	}
	s := id.String()
	return &s, nil
}

func normalizeRole(role string) (string, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		return entity.RoleCounter, nil
	}
	if !entity.ValidRole(role) {
		return "", domain.ErrInvalidInput
	}
	return role, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		TeamID: u.TeamID,
	}
}
