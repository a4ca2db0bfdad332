package repository

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	// GetByEAN devuelve nil, nil si no existe.
	GetByEAN(ctx context.Context, ean string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	// UpdateDetails actualiza nombre, categoría y precio; no toca el stock.
	UpdateDetails(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	// ListByEANs devuelve los productos de los EAN dados (los inexistentes se omiten).
	ListByEANs(ctx context.Context, eans []string) ([]*entity.Product, error)
}
