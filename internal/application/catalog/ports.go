package catalog

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// TxRunner ejecuta una importación completa en una sola transacción.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		expectedRepo repository.ExpectedStockRepository,
	) error) error
}
