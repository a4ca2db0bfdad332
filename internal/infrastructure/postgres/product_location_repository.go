package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

var _ repository.ProductLocationRepository = (*ProductLocationRepo)(nil)

// ProductLocationRepo adaptador de product_locations.
type ProductLocationRepo struct {
	q Querier
}

// NewProductLocationRepository construye el adaptador.
func NewProductLocationRepository(q Querier) *ProductLocationRepo {
	return &ProductLocationRepo{q: q}
}

// Create persiste una ubicación.
func (r *ProductLocationRepo) Create(ctx context.Context, l *entity.ProductLocation) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_locations (id, barcode, description) VALUES ($1, $2, $3)`,
		l.ID, l.Barcode, l.Description,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *ProductLocationRepo) GetByID(ctx context.Context, id string) (*entity.ProductLocation, error) {
	var l entity.ProductLocation
	err := r.q.QueryRow(ctx,
		`SELECT id, barcode, description FROM product_locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Barcode, &l.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List todas las ubicaciones.
func (r *ProductLocationRepo) List(ctx context.Context) ([]*entity.ProductLocation, error) {
	rows, err := r.q.Query(ctx, `SELECT id, barcode, description FROM product_locations ORDER BY description NULLS LAST, id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductLocation
	for rows.Next() {
		var l entity.ProductLocation
		if err := rows.Scan(&l.ID, &l.Barcode, &l.Description); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación; los conteos conservan la fila con ubicación nula.
func (r *ProductLocationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
