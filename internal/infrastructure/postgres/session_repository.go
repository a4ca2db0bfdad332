package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL (usable con pool o tx).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador de sesiones. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `id, client_name, team_id, start_date, end_date, status`

func scanSession(row pgx.Row) (*entity.InventorySession, error) {
	var s entity.InventorySession
	var status string
	if err := row.Scan(&s.ID, &s.ClientName, &s.TeamID, &s.StartDate, &s.EndDate, &status); err != nil {
		return nil, err
	}
	s.Status = entity.SessionStatus(status)
	return &s, nil
}

// Create persiste una nueva sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.InventorySession) error {
	query := `
		INSERT INTO inventory_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.ClientName, s.TeamID, s.StartDate, s.EndDate, string(s.Status))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE id = $1`
	s, err := scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la sesión y bloquea la fila (SELECT FOR UPDATE).
// Serializa los conteos concurrentes de una misma sesión.
func (r *SessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE id = $1 FOR UPDATE`
	s, err := scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session for update: %w", err)
	}
	return s, nil
}

// Exists indica si la sesión existe.
func (r *SessionRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_sessions WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("session exists: %w", err)
	}
	return ok, nil
}

// ListSummaries lista todas las sesiones con acumulados de conteo.
func (r *SessionRepo) ListSummaries(ctx context.Context) ([]entity.SessionSummary, error) {
	query := `
		SELECT s.id, s.client_name, s.team_id, s.start_date, s.end_date, s.status,
		       COALESCE(SUM(c.quantity), 0)  AS total_items,
		       COUNT(DISTINCT c.ean)         AS unique_items
		FROM inventory_sessions s
		LEFT JOIN inventory_counts c ON c.session_id = s.id
		GROUP BY s.id
		ORDER BY s.start_date DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var list []entity.SessionSummary
	for rows.Next() {
		var s entity.SessionSummary
		var status string
		if err := rows.Scan(&s.ID, &s.ClientName, &s.TeamID, &s.StartDate, &s.EndDate, &status,
			&s.TotalItemsCounted, &s.UniqueItemsCounted); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Status = entity.SessionStatus(status)
		list = append(list, s)
	}
	return list, rows.Err()
}

// FindActiveByTeam última sesión abierta o en curso del equipo.
func (r *SessionRepo) FindActiveByTeam(ctx context.Context, teamID string) (*entity.InventorySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM inventory_sessions
		WHERE team_id = $1 AND status IN ('Open', 'InProgress')
		ORDER BY start_date DESC
		LIMIT 1`
	s, err := scanSession(r.q.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active session: %w", err)
	}
	return s, nil
}

// UpdateStatus cambia el estado (y la fecha de fin) de la sesión.
func (r *SessionRepo) UpdateStatus(ctx context.Context, id string, status entity.SessionStatus, endDate *time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_sessions SET status = $2, end_date = $3 WHERE id = $1`,
		id, string(status), endDate,
	)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// UpdateDetails actualiza cliente, equipo y fechas.
func (r *SessionRepo) UpdateDetails(ctx context.Context, s *entity.InventorySession) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory_sessions
		SET client_name = $2, team_id = $3, start_date = $4, end_date = $5
		WHERE id = $1`,
		s.ID, s.ClientName, s.TeamID, s.StartDate, s.EndDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
