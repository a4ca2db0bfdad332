package repository

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// CountProgress totales de conteo de una sesión.
type CountProgress struct {
	TotalCounts    int
	UniqueProducts int
}

// CountRepository puerto de persistencia para InventoryCount. Solo inserta: las filas son inmutables.
type CountRepository interface {
	Create(ctx context.Context, count *entity.InventoryCount) error
	// MaxVersion devuelve la mayor versión para (sesión, EAN) o 0 si no hay conteos.
	MaxVersion(ctx context.Context, sessionID, ean string) (int, error)
	// ListBySession devuelve todas las filas ordenadas por counted_at y versión.
	ListBySession(ctx context.Context, sessionID string) ([]entity.InventoryCount, error)
	Progress(ctx context.Context, sessionID string) (CountProgress, error)
}
