// Package apptest provee repositorios en memoria para los tests de los casos de uso.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	Sessions  map[string]entity.InventorySession
	Counts    []entity.InventoryCount
	Expected  []entity.ExpectedStock
	Products  map[string]entity.Product // por EAN
	Users     map[string]entity.User
	Teams     map[string]entity.Team
	Locations map[string]entity.ProductLocation

	// Err si no es nil lo devuelven todas las operaciones.
	Err error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Sessions:  map[string]entity.InventorySession{},
		Products:  map[string]entity.Product{},
		Users:     map[string]entity.User{},
		Teams:     map[string]entity.Team{},
		Locations: map[string]entity.ProductLocation{},
	}
}

var (
	_ repository.SessionRepository         = (*SessionRepo)(nil)
	_ repository.CountRepository           = (*CountRepo)(nil)
	_ repository.ExpectedStockRepository   = (*ExpectedRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.UserRepository            = (*UserRepo)(nil)
	_ repository.TeamRepository            = (*TeamRepo)(nil)
	_ repository.ProductLocationRepository = (*LocationRepo)(nil)
)

// ── Sesiones ─────────────────────────────────────────────────────────────────

type SessionRepo struct{ S *Store }

func (r *SessionRepo) Create(_ context.Context, s *entity.InventorySession) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	r.S.Sessions[s.ID] = *s
	return nil
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.InventorySession, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	s, ok := r.S.Sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventorySession, error) {
	return r.GetByID(ctx, id)
}

func (r *SessionRepo) Exists(ctx context.Context, id string) (bool, error) {
	s, err := r.GetByID(ctx, id)
	return s != nil, err
}

func (r *SessionRepo) ListSummaries(_ context.Context) ([]entity.SessionSummary, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	out := make([]entity.SessionSummary, 0, len(r.S.Sessions))
	for _, s := range r.S.Sessions {
		sum := entity.SessionSummary{InventorySession: s}
		eans := map[string]struct{}{}
		for _, c := range r.S.Counts {
			if c.SessionID == s.ID {
				sum.TotalItemsCounted += c.Quantity
				eans[c.EAN] = struct{}{}
			}
		}
		sum.UniqueItemsCounted = len(eans)
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *SessionRepo) FindActiveByTeam(_ context.Context, teamID string) (*entity.InventorySession, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	var found *entity.InventorySession
	for _, s := range r.S.Sessions {
		if s.TeamID == nil || *s.TeamID != teamID || !s.IsActive() {
			continue
		}
		if found == nil || s.StartDate.After(found.StartDate) {
			s := s
			found = &s
		}
	}
	return found, nil
}

func (r *SessionRepo) UpdateStatus(_ context.Context, id string, status entity.SessionStatus, end *time.Time) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	s, ok := r.S.Sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Status = status
	s.EndDate = end
	r.S.Sessions[id] = s
	return nil
}

func (r *SessionRepo) UpdateDetails(_ context.Context, in *entity.InventorySession) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	s, ok := r.S.Sessions[in.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ClientName = in.ClientName
	s.TeamID = in.TeamID
	s.StartDate = in.StartDate
	s.EndDate = in.EndDate
	r.S.Sessions[in.ID] = s
	return nil
}

// ── Conteos ──────────────────────────────────────────────────────────────────

type CountRepo struct{ S *Store }

func (r *CountRepo) Create(_ context.Context, c *entity.InventoryCount) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	for _, e := range r.S.Counts {
		if e.SessionID == c.SessionID && e.EAN == c.EAN && e.Version == c.Version {
			return domain.ErrVersionConflict
		}
	}
	r.S.Counts = append(r.S.Counts, *c)
	return nil
}

func (r *CountRepo) MaxVersion(_ context.Context, sessionID, ean string) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	maxV := 0
	for _, c := range r.S.Counts {
		if c.SessionID == sessionID && c.EAN == ean && c.Version > maxV {
			maxV = c.Version
		}
	}
	return maxV, r.S.Err
}

func (r *CountRepo) ListBySession(_ context.Context, sessionID string) ([]entity.InventoryCount, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	var out []entity.InventoryCount
	for _, c := range r.S.Counts {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CountRepo) Progress(ctx context.Context, sessionID string) (repository.CountProgress, error) {
	counts, err := r.ListBySession(ctx, sessionID)
	if err != nil {
		return repository.CountProgress{}, err
	}
	eans := map[string]struct{}{}
	for _, c := range counts {
		eans[c.EAN] = struct{}{}
	}
	return repository.CountProgress{TotalCounts: len(counts), UniqueProducts: len(eans)}, nil
}

// ── Stock esperado ───────────────────────────────────────────────────────────

type ExpectedRepo struct{ S *Store }

func (r *ExpectedRepo) CreateBatch(_ context.Context, items []entity.ExpectedStock) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	r.S.Expected = append(r.S.Expected, items...)
	return nil
}

func (r *ExpectedRepo) ListBySession(_ context.Context, sessionID string) ([]entity.ExpectedStock, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	var out []entity.ExpectedStock
	for _, e := range r.S.Expected {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type ProductRepo struct{ S *Store }

func (r *ProductRepo) GetByEAN(_ context.Context, ean string) (*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	p, ok := r.S.Products[ean]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	if _, ok := r.S.Products[p.EAN]; ok {
		return domain.ErrDuplicate
	}
	r.S.Products[p.EAN] = *p
	return nil
}

func (r *ProductRepo) UpdateDetails(_ context.Context, p *entity.Product) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	cur, ok := r.S.Products[p.EAN]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.Category, cur.Price = p.Name, p.Category, p.Price
	r.S.Products[p.EAN] = cur
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	out := make([]*entity.Product, 0, len(r.S.Products))
	for _, p := range r.S.Products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EAN < out[j].EAN })
	return out, nil
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return len(r.S.Products), r.S.Err
}

func (r *ProductRepo) ListByEANs(_ context.Context, eans []string) ([]*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	var out []*entity.Product
	for _, e := range eans {
		if p, ok := r.S.Products[e]; ok {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type UserRepo struct{ S *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	for _, e := range r.S.Users {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.S.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	u, ok := r.S.Users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	for _, u := range r.S.Users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	out := make([]*entity.User, 0, len(r.S.Users))
	for _, u := range r.S.Users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	if _, ok := r.S.Users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.S.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return len(r.S.Users), r.S.Err
}

// ── Equipos ──────────────────────────────────────────────────────────────────

type TeamRepo struct{ S *Store }

func (r *TeamRepo) Create(_ context.Context, t *entity.Team) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	r.S.Teams[t.ID] = *t
	return nil
}

func (r *TeamRepo) GetByID(_ context.Context, id string) (*entity.Team, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	t, ok := r.S.Teams[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TeamRepo) List(_ context.Context) ([]*entity.Team, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	out := make([]*entity.Team, 0, len(r.S.Teams))
	for _, t := range r.S.Teams {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TeamRepo) Update(_ context.Context, t *entity.Team) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	if _, ok := r.S.Teams[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Teams[t.ID] = *t
	return nil
}

func (r *TeamRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	if _, ok := r.S.Teams[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Teams, id)
	return nil
}

// ── Ubicaciones ──────────────────────────────────────────────────────────────

type LocationRepo struct{ S *Store }

func (r *LocationRepo) Create(_ context.Context, l *entity.ProductLocation) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	r.S.Locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.ProductLocation, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	l, ok := r.S.Locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.ProductLocation, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return nil, r.S.Err
	}
	out := make([]*entity.ProductLocation, 0, len(r.S.Locations))
	for _, l := range r.S.Locations {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LocationRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Err != nil {
		return r.S.Err
	}
	if _, ok := r.S.Locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Locations, id)
	return nil
}

// ── Transacciones ────────────────────────────────────────────────────────────

// TxRunner ejecuta los callbacks sobre el mismo store; sin rollback.
type TxRunner struct {
	S  *Store
	mu sync.Mutex
}

func (t *TxRunner) RunCount(ctx context.Context, fn func(repository.SessionRepository, repository.CountRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(&SessionRepo{S: t.S}, &CountRepo{S: t.S})
}

func (t *TxRunner) RunCatalog(ctx context.Context, fn func(repository.ProductRepository, repository.ExpectedStockRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(&ProductRepo{S: t.S}, &ExpectedRepo{S: t.S})
}
