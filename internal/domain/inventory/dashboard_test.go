package inventory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func loc(id string) *string { return &id }

func count(ean string, qty int, user string, at time.Time, location *string) entity.InventoryCount {
	return entity.InventoryCount{EAN: ean, Quantity: qty, UserID: user, CountedAt: at, ProductLocationID: location}
}

func TestBuildSnapshot_ReconteoSeSuma(t *testing.T) {
	counts := []entity.InventoryCount{
		count("111", 3, "u1", baseTime.Add(-10*time.Minute), nil),
		count("111", 5, "u1", baseTime.Add(-5*time.Minute), nil),
	}
	snap := inventory.BuildSnapshot(inventory.DashboardInput{
		Session: &entity.InventorySession{ClientName: "Cliente", Status: entity.SessionInProgress},
		Counts:  counts,
		Now:     baseTime,
	})
	assert.Equal(t, 8, snap.TotalItems)
	assert.Equal(t, 1, snap.CountedSKUs)
	assert.Equal(t, "Cliente", snap.ClientName)
	assert.Equal(t, entity.SessionInProgress, snap.Status)
}

func TestBuildSnapshot_Divergencias(t *testing.T) {
	expected := []entity.ExpectedStock{{EAN: "111", ExpectedQuantity: 10}}
	tests := []struct {
		name   string
		counts []entity.InventoryCount
		want   int
	}{
		{
			name: "faltante",
			counts: []entity.InventoryCount{
				count("111", 4, "u1", baseTime, nil),
				count("111", 3, "u1", baseTime, nil),
			},
			want: 1,
		},
		{
			name: "coincide",
			counts: []entity.InventoryCount{
				count("111", 6, "u1", baseTime, nil),
				count("111", 4, "u2", baseTime, nil),
			},
			want: 0,
		},
		{
			name: "EAN fuera del stock esperado cuenta contra cero",
			counts: []entity.InventoryCount{
				count("111", 10, "u1", baseTime, nil),
				count("999", 1, "u1", baseTime, nil),
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := inventory.BuildSnapshot(inventory.DashboardInput{Counts: tt.counts, Expected: expected, Now: baseTime})
			assert.Equal(t, tt.want, snap.Divergences)
		})
	}
}

func TestBuildSnapshot_DivergenciasContraCatalogo(t *testing.T) {
	catalog := map[string]entity.Product{
		"111": {EAN: "111", Name: "Arroz", StockQuantity: 5},
		"222": {EAN: "222", Name: "Frijol", StockQuantity: 2},
	}
	counts := []entity.InventoryCount{
		count("111", 5, "u1", baseTime, nil),
		count("222", 1, "u1", baseTime, nil),
		count("333", 0, "u1", baseTime, nil), // no está en catálogo: esperado 0
	}
	snap := inventory.BuildSnapshot(inventory.DashboardInput{Counts: counts, Catalog: catalog, CatalogSize: 40, Now: baseTime})
	assert.Equal(t, 1, snap.Divergences)
	assert.Equal(t, 40, snap.TotalSKUs)
	assert.Equal(t, 8, snap.Progress) // 3/40 = 7.5 -> 8 (al par)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		counted, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 12}, // 12.5 -> 12
		{3, 8, 38}, // 37.5 -> 38
		{12, 10, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_de_%d", tt.counted, tt.total), func(t *testing.T) {
			got := inventory.Progress(tt.counted, tt.total)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestActiveCounters_VentanaDeUnaHora(t *testing.T) {
	counts := []entity.InventoryCount{
		count("1", 1, "u1", baseTime.Add(-5*time.Minute), nil),
		count("2", 1, "u1", baseTime.Add(-6*time.Minute), nil),
		count("3", 1, "u2", baseTime.Add(-59*time.Minute), nil),
		count("4", 1, "u3", baseTime.Add(-61*time.Minute), nil),
	}
	assert.Equal(t, 2, inventory.ActiveCounters(counts, baseTime))
}

func TestBuildSnapshot_RecientesOrdenadosYLimitados(t *testing.T) {
	catalog := map[string]entity.Product{"E3": {EAN: "E3", Name: "Producto 3"}}
	var counts []entity.InventoryCount
	for i := 0; i < 8; i++ {
		counts = append(counts, count(fmt.Sprintf("E%d", i), 1, "u1", baseTime.Add(time.Duration(i)*time.Minute), loc("a1b2c3d4-0000")))
	}
	snap := inventory.BuildSnapshot(inventory.DashboardInput{Counts: counts, Catalog: catalog, Now: baseTime})

	assert.Len(t, snap.RecentCounts, inventory.RecentCountsLimit)
	assert.Equal(t, "E7", snap.RecentCounts[0].EAN)
	for i := 1; i < len(snap.RecentCounts); i++ {
		assert.False(t, snap.RecentCounts[i].CountedAt.After(snap.RecentCounts[i-1].CountedAt))
	}
	assert.Equal(t, "Producto 3", snap.RecentCounts[4].ProductName)
	assert.Equal(t, inventory.UnknownProductName, snap.RecentCounts[0].ProductName)
	assert.Equal(t, "a1b2c3d4-0000", snap.RecentCounts[0].ProductLocation)
}

func TestBuildSnapshot_RecientesEmpateDeHoraPorVersion(t *testing.T) {
	v1 := count("111", 3, "u1", baseTime, nil)
	v1.Version = 1
	v2 := count("111", 5, "u1", baseTime, nil)
	v2.Version = 2
	snap := inventory.BuildSnapshot(inventory.DashboardInput{Counts: []entity.InventoryCount{v1, v2}, Now: baseTime})

	require.Len(t, snap.RecentCounts, 2)
	assert.Equal(t, 5, snap.RecentCounts[0].Quantity)
	assert.Equal(t, 3, snap.RecentCounts[1].Quantity)
}

func TestSectors(t *testing.T) {
	counts := []entity.InventoryCount{
		count("1", 10, "u1", baseTime, loc("aaaaaaaa-1111-2222-3333-444444444444")),
		count("2", 30, "u1", baseTime, loc("bbbbbbbb-1111-2222-3333-444444444444")),
		count("3", 20, "u1", baseTime, loc("cccccccc-1111")),
		count("4", 5, "u1", baseTime, loc("dddddddd-1111")),
		count("5", 15, "u1", baseTime, loc("eeeeeeee-1111")),
		count("6", 17, "u1", baseTime, loc("ffffffff-1111")),
		count("7", 3, "u1", baseTime, nil),
	}
	total := inventory.TotalItems(counts)
	got := inventory.Sectors(counts, total)

	want := []inventory.Sector{
		{Name: "BBBBBBBB", Percent: 30},
		{Name: "CCCCCCCC", Percent: 20},
		{Name: "FFFFFFFF", Percent: 17},
		{Name: "EEEEEEEE", Percent: 15},
		{Name: "AAAAAAAA", Percent: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sectores (-want +got):\n%s", diff)
	}
}

func TestSectors_PorcentajesSumanHastaCien(t *testing.T) {
	counts := []entity.InventoryCount{
		count("1", 1, "u1", baseTime, loc("aaaaaaaa")),
		count("2", 1, "u1", baseTime, loc("bbbbbbbb")),
		count("3", 1, "u1", baseTime, loc("cccccccc")),
	}
	sectors := inventory.Sectors(counts, inventory.TotalItems(counts))
	sum := 0.0
	for i, s := range sectors {
		assert.InDelta(t, 33.33, s.Percent, 0.001)
		if i > 0 {
			assert.LessOrEqual(t, s.Percent, sectors[i-1].Percent)
		}
		sum += s.Percent
	}
	assert.LessOrEqual(t, sum, 100.0+0.01)
}

func TestSectors_SinItems(t *testing.T) {
	counts := []entity.InventoryCount{count("1", 0, "u1", baseTime, loc("aaaaaaaa"))}
	sectors := inventory.Sectors(counts, 0)
	assert.Equal(t, []inventory.Sector{{Name: "AAAAAAAA", Percent: 0}}, sectors)
}

func TestSectorLabel(t *testing.T) {
	assert.Equal(t, "3FA85F64", inventory.SectorLabel("3fa85f64-5717-4562-b3fc-2c963f66afa6"))
	assert.Equal(t, "AB", inventory.SectorLabel("ab"))
	assert.Equal(t, inventory.NoLocationLabel, inventory.SectorLabel(""))
}

func TestBuildSnapshot_SesionVacia(t *testing.T) {
	snap := inventory.BuildSnapshot(inventory.DashboardInput{
		Session: &entity.InventorySession{ClientName: "X", Status: entity.SessionOpen},
		Now:     baseTime,
	})
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, 0, snap.TotalItems)
	assert.Empty(t, snap.RecentCounts)
	assert.Empty(t, snap.Sectors)
}

func TestEANTotals(t *testing.T) {
	in := inventory.DashboardInput{
		Counts: []entity.InventoryCount{
			{EAN: "222", Quantity: 1},
			{EAN: "111", Quantity: 3},
			{EAN: "111", Quantity: 5},
		},
		Expected: []entity.ExpectedStock{{EAN: "111", ExpectedQuantity: 10}},
		Catalog:  map[string]entity.Product{"111": {EAN: "111", Name: "Arroz"}},
	}
	got := inventory.EANTotals(in)
	want := []inventory.EANTotal{
		{EAN: "111", ProductName: "Arroz", Counted: 8, Expected: 10},
		{EAN: "222", ProductName: inventory.UnknownProductName, Counted: 1, Expected: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EANTotals (-want +got):\n%s", diff)
	}
	assert.Equal(t, -2, got[0].Difference())
}
