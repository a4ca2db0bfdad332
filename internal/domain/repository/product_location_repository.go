package repository

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// ProductLocationRepository define el puerto de persistencia para ubicaciones.
type ProductLocationRepository interface {
	Create(ctx context.Context, location *entity.ProductLocation) error
	GetByID(ctx context.Context, id string) (*entity.ProductLocation, error)
	List(ctx context.Context) ([]*entity.ProductLocation, error)
	Delete(ctx context.Context, id string) error
}
