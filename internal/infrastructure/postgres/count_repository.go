package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

var _ repository.CountRepository = (*CountRepo)(nil)

// CountRepo adaptador de inventory_counts. No expone UPDATE ni DELETE.
type CountRepo struct {
	q Querier
}

// NewCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountRepository(q Querier) *CountRepo {
	return &CountRepo{q: q}
}

// Create inserta una fila de conteo. Una versión repetida para (sesión, EAN)
// devuelve ErrVersionConflict; una ubicación inexistente, ErrInvalidInput.
func (r *CountRepo) Create(ctx context.Context, c *entity.InventoryCount) error {
	query := `
		INSERT INTO inventory_counts
			(id, session_id, ean, product_location_id, quantity, user_id, counted_at, count_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.SessionID, c.EAN, c.ProductLocationID, c.Quantity, c.UserID, c.CountedAt, c.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert count: %w", err)
	}
	return nil
}

// MaxVersion mayor versión registrada para (sesión, EAN); 0 si no hay filas.
func (r *CountRepo) MaxVersion(ctx context.Context, sessionID, ean string) (int, error) {
	var v int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(count_version), 0) FROM inventory_counts WHERE session_id = $1 AND ean = $2`,
		sessionID, ean,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("max count version: %w", err)
	}
	return v, nil
}

// ListBySession todas las filas de la sesión, ordenadas por fecha y versión.
func (r *CountRepo) ListBySession(ctx context.Context, sessionID string) ([]entity.InventoryCount, error) {
	query := `
		SELECT id, session_id, ean, product_location_id, quantity, user_id, counted_at, count_version
		FROM inventory_counts
		WHERE session_id = $1
		ORDER BY counted_at, count_version`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list counts: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryCount
	for rows.Next() {
		var c entity.InventoryCount
		if err := rows.Scan(&c.ID, &c.SessionID, &c.EAN, &c.ProductLocationID, &c.Quantity,
			&c.UserID, &c.CountedAt, &c.Version); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Progress número de filas y de EAN distintos de la sesión.
func (r *CountRepo) Progress(ctx context.Context, sessionID string) (repository.CountProgress, error) {
	var p repository.CountProgress
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT ean) FROM inventory_counts WHERE session_id = $1`,
		sessionID,
	).Scan(&p.TotalCounts, &p.UniqueProducts)
	if err != nil {
		return p, fmt.Errorf("count progress: %w", err)
	}
	return p, nil
}
