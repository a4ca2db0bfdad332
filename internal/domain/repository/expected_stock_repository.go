package repository

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// ExpectedStockRepository puerto para el stock esperado importado por sesión.
type ExpectedStockRepository interface {
	CreateBatch(ctx context.Context, items []entity.ExpectedStock) error
	ListBySession(ctx context.Context, sessionID string) ([]entity.ExpectedStock, error)
}
