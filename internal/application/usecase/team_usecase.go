package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// TeamUseCase CRUD de equipos de contadores.
type TeamUseCase struct {
	repo repository.TeamRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(repo repository.TeamRepository) *TeamUseCase {
	return &TeamUseCase{repo: repo}
}

func (uc *TeamUseCase) List(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	return out, nil
}

func (uc *TeamUseCase) Create(ctx context.Context, in dto.TeamRequest) (*dto.TeamResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	team := &entity.Team{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, team); err != nil {
		return nil, err
	}
	resp := toTeamResponse(team)
	return &resp, nil
}

// Update cambia nombre y descripción.
func (uc *TeamUseCase) Update(ctx context.Context, id string, in dto.TeamRequest) (*dto.TeamResponse, error) {
	team, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	team.Name = name
	team.Description = in.Description
	if err := uc.repo.Update(ctx, team); err != nil {
		return nil, err
	}
	resp := toTeamResponse(team)
	return &resp, nil
}

// Delete elimina el equipo; usuarios y sesiones quedan sin equipo.
func (uc *TeamUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *TeamUseCase) get(ctx context.Context, id string) (*entity.Team, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	team, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	return team, nil
}

func toTeamResponse(t *entity.Team) dto.TeamResponse {
	return dto.TeamResponse{ID: t.ID, Name: t.Name, Description: t.Description, CreatedAt: t.CreatedAt}
}
