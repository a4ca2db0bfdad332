package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

var _ repository.ExpectedStockRepository = (*ExpectedStockRepo)(nil)

// ExpectedStockRepo adaptador de expected_stocks.
type ExpectedStockRepo struct {
	q Querier
}

// NewExpectedStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpectedStockRepository(q Querier) *ExpectedStockRepo {
	return &ExpectedStockRepo{q: q}
}

// CreateBatch inserta todas las filas en un solo batch de pgx.
func (r *ExpectedStockRepo) CreateBatch(ctx context.Context, items []entity.ExpectedStock) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(
			`INSERT INTO expected_stocks (id, session_id, ean, expected_quantity) VALUES ($1, $2, $3, $4)`,
			it.ID, it.SessionID, it.EAN, it.ExpectedQuantity,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return translateExpectedErr(err)
		}
	}
	return nil
}

func translateExpectedErr(err error) error {
	if isForeignKeyViolation(err) {
		return domain.ErrSessionNotFound
	}
	return fmt.Errorf("insert expected stock: %w", err)
}

// ListBySession stock esperado de la sesión en orden de importación.
func (r *ExpectedStockRepo) ListBySession(ctx context.Context, sessionID string) ([]entity.ExpectedStock, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, session_id, ean, expected_quantity FROM expected_stocks WHERE session_id = $1 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expected stock: %w", err)
	}
	defer rows.Close()

	var list []entity.ExpectedStock
	for rows.Next() {
		var e entity.ExpectedStock
		if err := rows.Scan(&e.ID, &e.SessionID, &e.EAN, &e.ExpectedQuantity); err != nil {
			return nil, fmt.Errorf("scan expected stock: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
