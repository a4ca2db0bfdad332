package repository

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// TeamRepository define el puerto de persistencia para Team.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	List(ctx context.Context) ([]*entity.Team, error)
	Update(ctx context.Context, team *entity.Team) error
	Delete(ctx context.Context, id string) error
}
