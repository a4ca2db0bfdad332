package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para InventorySession (DIP).
type SessionRepository interface {
	Create(ctx context.Context, session *entity.InventorySession) error
	// GetByID devuelve nil, nil si la sesión no existe.
	GetByID(ctx context.Context, id string) (*entity.InventorySession, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventorySession, error)
	Exists(ctx context.Context, id string) (bool, error)
	// ListSummaries lista sesiones (start_date desc) con total de ítems y EAN distintos.
	ListSummaries(ctx context.Context) ([]entity.SessionSummary, error)
	// FindActiveByTeam última sesión Open/InProgress del equipo, nil si no hay.
	FindActiveByTeam(ctx context.Context, teamID string) (*entity.InventorySession, error)
	UpdateStatus(ctx context.Context, id string, status entity.SessionStatus, endDate *time.Time) error
	UpdateDetails(ctx context.Context, session *entity.InventorySession) error
}
