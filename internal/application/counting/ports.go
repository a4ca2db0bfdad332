package counting

import (
	"context"

	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con los repositorios de
// sesión y conteo atados a ella. El cambio de estado de la sesión y la fila de
// conteo se confirman juntos o no se confirman.
type TxRunner interface {
	RunCount(ctx context.Context, fn func(
		sessionRepo repository.SessionRepository,
		countRepo repository.CountRepository,
	) error) error
}
