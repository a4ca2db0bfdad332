package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/inventory-count-api/internal/application/apptest"
	"github.com/jhoicas/inventory-count-api/internal/application/dashboard"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newUseCase(s *apptest.Store) *dashboard.UseCase {
	return dashboard.NewUseCase(
		&apptest.SessionRepo{S: s},
		&apptest.CountRepo{S: s},
		&apptest.ExpectedRepo{S: s},
		&apptest.ProductRepo{S: s},
	)
}

func seed(t *testing.T) (*apptest.Store, string) {
	t.Helper()
	s := apptest.NewStore()
	id := uuid.NewString()
	s.Sessions[id] = entity.InventorySession{ID: id, ClientName: "Supermercado Norte", Status: entity.SessionInProgress, StartDate: time.Now()}
	s.Products["111"] = entity.Product{ID: uuid.NewString(), EAN: "111", Name: "Arroz 1kg", Price: decimal.NewFromInt(3), StockQuantity: 10}
	s.Products["222"] = entity.Product{ID: uuid.NewString(), EAN: "222", Name: "Aceite", StockQuantity: 4}
	return s, id
}

func TestGetDashboard_SesionInexistente(t *testing.T) {
	s := apptest.NewStore()
	_, err := newUseCase(s).GetDashboard(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetDashboard_IDNoUUIDEsSesionInexistente(t *testing.T) {
	s := apptest.NewStore()
	// El repositorio no debe consultarse: en PostgreSQL fallaría al codificar el UUID.
	s.Err = errors.New("no se puede codificar \"abc\" como uuid")
	_, err := newUseCase(s).GetDashboard(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetDashboard_SumaVersionesYDivergencias(t *testing.T) {
	s, id := seed(t)
	now := time.Now().UTC()
	loc := "abcdef12-0000-0000-0000-000000000000"
	s.Counts = []entity.InventoryCount{
		{ID: "c1", SessionID: id, EAN: "111", Quantity: 3, UserID: "u1", Version: 1, CountedAt: now.Add(-3 * time.Minute), ProductLocationID: &loc},
		{ID: "c2", SessionID: id, EAN: "111", Quantity: 5, UserID: "u2", Version: 2, CountedAt: now.Add(-2 * time.Minute), ProductLocationID: &loc},
		{ID: "c3", SessionID: id, EAN: "999", Quantity: 2, UserID: "u1", Version: 1, CountedAt: now.Add(-time.Minute)},
	}
	s.Expected = []entity.ExpectedStock{
		{SessionID: id, EAN: "111", ExpectedQuantity: 8},
		{SessionID: id, EAN: "222", ExpectedQuantity: 4},
	}

	got, err := newUseCase(s).GetDashboard(context.Background(), id)
	require.NoError(t, err)

	want := &dto.DashboardDTO{
		ClientName:     "Supermercado Norte",
		Status:         "InProgress",
		Progress:       100, // 2 EAN contados de 2 esperados
		TotalSKUs:      2,
		CountedSKUs:    2,
		TotalItems:     10,
		Divergences:    1, // 111 coincide (3+5=8); 999 no tiene esperado
		ActiveCounters: 2,
		RecentCounts: []dto.RecentCountDTO{
			{EAN: "999", ProductName: "Producto desconocido", ProductLocation: "", Quantity: 2, CountedAt: s.Counts[2].CountedAt},
			{EAN: "111", ProductName: "Arroz 1kg", ProductLocation: loc, Quantity: 5, CountedAt: s.Counts[1].CountedAt},
			{EAN: "111", ProductName: "Arroz 1kg", ProductLocation: loc, Quantity: 3, CountedAt: s.Counts[0].CountedAt},
		},
		Sectors: []dto.SectorDTO{
			{Name: "ABCDEF12", Percent: 80},
			{Name: "SIN UBICACION", Percent: 20},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard (-want +got):\n%s", diff)
	}
}

func TestGetDashboard_SinEsperadoUsaCatalogo(t *testing.T) {
	s, id := seed(t)
	s.Counts = []entity.InventoryCount{
		{SessionID: id, EAN: "111", Quantity: 10, UserID: "u1", Version: 1, CountedAt: time.Now().Add(-2 * time.Hour)},
	}

	got, err := newUseCase(s).GetDashboard(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalSKUs, "sin stock esperado el total es el catálogo")
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 0, got.Divergences)
	assert.Equal(t, 0, got.ActiveCounters, "conteo fuera de la ventana de una hora")
}

func TestGetDashboard_SesionVacia(t *testing.T) {
	s, id := seed(t)
	got, err := newUseCase(s).GetDashboard(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, 0, got.TotalItems)
	assert.NotNil(t, got.RecentCounts)
	assert.Empty(t, got.RecentCounts)
	assert.Empty(t, got.Sectors)
}

func TestGetDashboard_PropagaError(t *testing.T) {
	s, id := seed(t)
	boom := errors.New("db caída")
	s.Err = boom
	_, err := newUseCase(s).GetDashboard(context.Background(), id)
	assert.ErrorIs(t, err, boom)
}
