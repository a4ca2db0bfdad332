// Package session contiene los casos de uso de administración de sesiones de
// inventario: alta, listado, avance, cambio de estado y edición.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// UseCase orquesta las operaciones del almacén de sesiones.
type UseCase struct {
	sessionRepo repository.SessionRepository
	countRepo   repository.CountRepository
	userRepo    repository.UserRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sessionRepo repository.SessionRepository,
	countRepo repository.CountRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		countRepo:   countRepo,
		userRepo:    userRepo,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create abre una sesión nueva en estado Open. Sin fecha de inicio usa ahora.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	teamID, err := normalizeID(in.TeamID)
	if err != nil {
		return nil, err
	}
	start := in.StartDate
	if start.IsZero() {
		start = uc.now()
	}
	s := &entity.InventorySession{
		ID:         uuid.New().String(),
		ClientName: name,
		TeamID:     teamID,
		StartDate:  start.UTC(),
		EndDate:    in.EndDate,
		Status:     entity.SessionOpen,
	}
	if err := uc.sessionRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

// List devuelve todas las sesiones (más recientes primero) con sus acumulados.
func (uc *UseCase) List(ctx context.Context) ([]dto.SessionListItem, error) {
	list, err := uc.sessionRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionListItem, 0, len(list))
	for i := range list {
		out = append(out, dto.SessionListItem{
			SessionResponse:    *toResponse(&list[i].InventorySession),
			TotalItemsCounted:  list[i].TotalItemsCounted,
			UniqueItemsCounted: list[i].UniqueItemsCounted,
		})
	}
	return out, nil
}

// GetProgress número de conteos, EAN distintos y estado de la sesión.
func (uc *UseCase) GetProgress(ctx context.Context, id string) (*dto.SessionProgressResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := uc.countRepo.Progress(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SessionProgressResponse{
		TotalCounts:    p.TotalCounts,
		UniqueProducts: p.UniqueProducts,
		Status:         string(s.Status),
	}, nil
}

// UpdateStatus aplica un cambio de estado administrativo. Cerrar sella la fecha de fin.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, status string) (*dto.SessionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	change, err := inventory.PlanStatusChange(s, entity.SessionStatus(strings.TrimSpace(status)), uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.sessionRepo.UpdateStatus(ctx, id, change.Status, change.EndDate); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", id).
		Str("from", string(s.Status)).
		Str("to", string(change.Status)).
		Msg("estado de sesión actualizado")

	s.Status = change.Status
	s.EndDate = change.EndDate
	return toResponse(s), nil
}

// UpdateDetails edita cliente, equipo y fechas. StartDate en cero conserva la actual.
func (uc *UseCase) UpdateDetails(ctx context.Context, id string, in dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	teamID, err := normalizeID(in.TeamID)
	if err != nil {
		return nil, err
	}
	s.ClientName = name
	s.TeamID = teamID
	if !in.StartDate.IsZero() {
		s.StartDate = in.StartDate.UTC()
	}
	s.EndDate = in.EndDate
	if err := uc.sessionRepo.UpdateDetails(ctx, s); err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

// GetActiveForUser última sesión Open/InProgress del equipo del usuario.
// domain.ErrNotFound si el usuario no tiene equipo o no hay sesión activa.
func (uc *UseCase) GetActiveForUser(ctx context.Context, userID string) (*dto.ActiveSessionResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.TeamID == nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.sessionRepo.FindActiveByTeam(ctx, *u.TeamID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ActiveSessionResponse{ID: s.ID, ClientName: s.ClientName, Status: string(s.Status)}, nil
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.InventorySession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func normalizeID(id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*id))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	s := parsed.String()
	return &s, nil
}

func toResponse(s *entity.InventorySession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:         s.ID,
		ClientName: s.ClientName,
		Status:     string(s.Status),
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		TeamID:     s.TeamID,
	}
}
