// Package dashboard contiene el caso de uso del tablero de avance de una
// sesión de inventario. El snapshot se recalcula completo en cada llamada.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// UseCase arma el dashboard de una sesión.
type UseCase struct {
	sessionRepo  repository.SessionRepository
	countRepo    repository.CountRepository
	expectedRepo repository.ExpectedStockRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sessionRepo repository.SessionRepository,
	countRepo repository.CountRepository,
	expectedRepo repository.ExpectedStockRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		countRepo:    countRepo,
		expectedRepo: expectedRepo,
		productRepo:  productRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Load lee en paralelo los datos crudos de la sesión:
//  1. sesión
//  2. conteos (todas las versiones)
//  3. stock esperado
//  4. tamaño del catálogo
//
// y después los productos de los EAN contados. Lo usan también los reportes.
func (uc *UseCase) Load(ctx context.Context, sessionID string) (inventory.DashboardInput, error) {
	var in inventory.DashboardInput
	if _, err := uuid.Parse(sessionID); err != nil {
		return in, domain.ErrSessionNotFound
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.sessionRepo.GetByID(gctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrSessionNotFound
		}
		in.Session = s
		return nil
	})
	g.Go(func() error {
		counts, err := uc.countRepo.ListBySession(gctx, sessionID)
		in.Counts = counts
		return err
	})
	g.Go(func() error {
		expected, err := uc.expectedRepo.ListBySession(gctx, sessionID)
		in.Expected = expected
		return err
	})
	g.Go(func() error {
		n, err := uc.productRepo.Count(gctx)
		in.CatalogSize = n
		return err
	})
	if err := g.Wait(); err != nil {
		return inventory.DashboardInput{}, err
	}

	_, eans := inventory.SumByEAN(in.Counts)
	in.Catalog = make(map[string]entity.Product, len(eans))
	if len(eans) > 0 {
		products, err := uc.productRepo.ListByEANs(ctx, eans)
		if err != nil {
			return inventory.DashboardInput{}, err
		}
		for _, p := range products {
			in.Catalog[p.EAN] = *p
		}
	}
	in.Now = uc.now()
	return in, nil
}

// GetDashboard devuelve el snapshot de la sesión o domain.ErrSessionNotFound.
func (uc *UseCase) GetDashboard(ctx context.Context, sessionID string) (*dto.DashboardDTO, error) {
	in, err := uc.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ToDTO(inventory.BuildSnapshot(in)), nil
}

// ToDTO convierte el snapshot de dominio al contrato JSON.
func ToDTO(s inventory.Snapshot) *dto.DashboardDTO {
	out := &dto.DashboardDTO{
		ClientName:     s.ClientName,
		Status:         string(s.Status),
		Progress:       s.Progress,
		TotalSKUs:      s.TotalSKUs,
		CountedSKUs:    s.CountedSKUs,
		TotalItems:     s.TotalItems,
		Divergences:    s.Divergences,
		ActiveCounters: s.ActiveCounters,
		RecentCounts:   make([]dto.RecentCountDTO, 0, len(s.RecentCounts)),
		Sectors:        make([]dto.SectorDTO, 0, len(s.Sectors)),
	}
	for _, r := range s.RecentCounts {
		out.RecentCounts = append(out.RecentCounts, dto.RecentCountDTO{
			EAN:             r.EAN,
			ProductName:     r.ProductName,
			ProductLocation: r.ProductLocation,
			Quantity:        r.Quantity,
			CountedAt:       r.CountedAt,
		})
	}
	for _, sec := range s.Sectors {
		out.Sectors = append(out.Sectors, dto.SectorDTO{Name: sec.Name, Percent: sec.Percent})
	}
	return out
}
