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

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación del puerto TeamRepository sobre PostgreSQL.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador de persistencia para equipos.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste un nuevo equipo.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO teams (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.Description, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// List lista todos los equipos.
func (r *TeamRepo) List(ctx context.Context) ([]*entity.Team, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *TeamRepo) Update(ctx context.Context, t *entity.Team) error {
	cmd, err := r.q.Exec(ctx, `UPDATE teams SET name = $2, description = $3 WHERE id = $1`, t.ID, t.Name, t.Description)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un equipo; usuarios y sesiones quedan sin equipo (ON DELETE SET NULL).
func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
