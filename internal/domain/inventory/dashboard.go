package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

const (
	RecentCountsLimit   = 5
	SectorsLimit        = 5
	ActiveCounterWindow = time.Hour

	// UnknownProductName se muestra cuando el EAN no existe en el catálogo.
	UnknownProductName = "Producto desconocido"
	// NoLocationLabel etiqueta del sector para conteos sin ubicación.
	NoLocationLabel = "SIN UBICACION"

	sectorLabelLen = 8
)

// DashboardInput datos crudos de una sesión a partir de los cuales se deriva el snapshot.
type DashboardInput struct {
	Session     *entity.InventorySession
	Counts      []entity.InventoryCount
	Expected    []entity.ExpectedStock
	CatalogSize int                       // total de productos del catálogo (global)
	Catalog     map[string]entity.Product // por EAN; basta con los EAN contados
	Now         time.Time
}

// RecentCount conteo reciente con el nombre del producto resuelto.
type RecentCount struct {
	EAN             string
	ProductName     string
	ProductLocation string
	Quantity        int
	CountedAt       time.Time
}

// Sector participación de una ubicación en el total de ítems contados.
type Sector struct {
	Name    string
	Percent float64
}

// Snapshot foto del avance de una sesión en un instante.
type Snapshot struct {
	ClientName     string
	Status         entity.SessionStatus
	Progress       int
	TotalSKUs      int
	CountedSKUs    int
	TotalItems     int
	Divergences    int
	ActiveCounters int
	RecentCounts   []RecentCount
	Sectors        []Sector
}

// BuildSnapshot deriva el dashboard completo. Las cantidades se SUMAN a través
// de todas las versiones de un EAN: un reconteo se acumula, no reemplaza.
func BuildSnapshot(in DashboardInput) Snapshot {
	var snap Snapshot
	if in.Session != nil {
		snap.ClientName = in.Session.ClientName
		snap.Status = in.Session.Status
	}

	snap.TotalSKUs = len(in.Expected)
	if snap.TotalSKUs == 0 {
		snap.TotalSKUs = in.CatalogSize
	}

	perEAN, eanOrder := SumByEAN(in.Counts)
	snap.CountedSKUs = len(eanOrder)
	snap.TotalItems = TotalItems(in.Counts)
	snap.Progress = Progress(snap.CountedSKUs, snap.TotalSKUs)
	snap.Divergences = countDivergences(perEAN, eanOrder, in.Expected, in.Catalog)
	snap.ActiveCounters = ActiveCounters(in.Counts, in.Now)
	snap.RecentCounts = recentCounts(in.Counts, in.Catalog)
	snap.Sectors = Sectors(in.Counts, snap.TotalItems)
	return snap
}

// TotalItems suma la cantidad de todas las filas de conteo.
func TotalItems(counts []entity.InventoryCount) int {
	total := 0
	for _, c := range counts {
		total += c.Quantity
	}
	return total
}

// SumByEAN agrupa por EAN sumando cantidades. Devuelve también los EAN en orden
// de primera aparición.
func SumByEAN(counts []entity.InventoryCount) (map[string]int, []string) {
	sums := make(map[string]int)
	var order []string
	for _, c := range counts {
		if _, ok := sums[c.EAN]; !ok {
			order = append(order, c.EAN)
		}
		sums[c.EAN] += c.Quantity
	}
	return sums, order
}

// Progress round(counted/total*100) con tope 100; 0 si no hay SKUs esperados.
// Redondeo al par más cercano.
func Progress(counted, total int) int {
	if total <= 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(counted)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		RoundBank(0).
		IntPart()
	if p > 100 {
		p = 100
	}
	return int(p)
}

// baseline cantidad de referencia por EAN: stock esperado de la sesión si existe
// alguna fila (la primera por EAN gana); si no, stock del catálogo.
func baseline(expected []entity.ExpectedStock, catalog map[string]entity.Product) map[string]int {
	base := make(map[string]int, len(expected))
	if len(expected) > 0 {
		for _, e := range expected {
			if _, ok := base[e.EAN]; !ok {
				base[e.EAN] = e.ExpectedQuantity
			}
		}
		return base
	}
	for ean, p := range catalog {
		base[ean] = p.StockQuantity
	}
	return base
}

// countDivergences +1 por cada EAN contado cuya suma difiere de la base.
func countDivergences(
	perEAN map[string]int,
	eans []string,
	expected []entity.ExpectedStock,
	catalog map[string]entity.Product,
) int {
	base := baseline(expected, catalog)
	divergences := 0
	for _, ean := range eans {
		if perEAN[ean] != base[ean] {
			divergences++
		}
	}
	return divergences
}

// EANTotal total contado de un EAN frente a su base.
type EANTotal struct {
	EAN         string
	ProductName string
	Counted     int
	Expected    int
}

// Difference contado menos esperado.
func (t EANTotal) Difference() int { return t.Counted - t.Expected }

// EANTotals un renglón por EAN contado, ordenado por EAN. Usado por el reporte.
func EANTotals(in DashboardInput) []EANTotal {
	perEAN, eans := SumByEAN(in.Counts)
	base := baseline(in.Expected, in.Catalog)
	out := make([]EANTotal, 0, len(eans))
	for _, ean := range eans {
		name := UnknownProductName
		if p, ok := in.Catalog[ean]; ok {
			name = p.Name
		}
		out = append(out, EANTotal{EAN: ean, ProductName: name, Counted: perEAN[ean], Expected: base[ean]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EAN < out[j].EAN })
	return out
}

// ActiveCounters usuarios distintos con al menos un conteo en la última hora.
func ActiveCounters(counts []entity.InventoryCount, now time.Time) int {
	since := now.Add(-ActiveCounterWindow)
	users := make(map[string]struct{})
	for _, c := range counts {
		if !c.CountedAt.Before(since) {
			users[c.UserID] = struct{}{}
		}
	}
	return len(users)
}

func recentCounts(counts []entity.InventoryCount, catalog map[string]entity.Product) []RecentCount {
	sorted := make([]entity.InventoryCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CountedAt.Equal(sorted[j].CountedAt) {
			return sorted[i].CountedAt.After(sorted[j].CountedAt)
		}
		return sorted[i].Version > sorted[j].Version
	})
	if len(sorted) > RecentCountsLimit {
		sorted = sorted[:RecentCountsLimit]
	}

	out := make([]RecentCount, 0, len(sorted))
	for _, c := range sorted {
		name := UnknownProductName
		if p, ok := catalog[c.EAN]; ok {
			name = p.Name
		}
		out = append(out, RecentCount{
			EAN:             c.EAN,
			ProductName:     name,
			ProductLocation: c.LocationKey(),
			Quantity:        c.Quantity,
			CountedAt:       c.CountedAt,
		})
	}
	return out
}

// Sectors agrupa por ubicación, calcula el porcentaje sobre totalItems (2 decimales)
// y devuelve los 5 mayores en orden descendente.
func Sectors(counts []entity.InventoryCount, totalItems int) []Sector {
	sums := make(map[string]int)
	var order []string
	for _, c := range counts {
		key := c.LocationKey()
		if _, ok := sums[key]; !ok {
			order = append(order, key)
		}
		sums[key] += c.Quantity
	}

	sectors := make([]Sector, 0, len(order))
	for _, key := range order {
		percent := 0.0
		if totalItems > 0 {
			percent, _ = decimal.NewFromInt(int64(sums[key])).
				Div(decimal.NewFromInt(int64(totalItems))).
				Mul(decimal.NewFromInt(100)).
				RoundBank(2).
				Float64()
		}
		sectors = append(sectors, Sector{Name: SectorLabel(key), Percent: percent})
	}
	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].Percent > sectors[j].Percent
	})
	if len(sectors) > SectorsLimit {
		sectors = sectors[:SectorsLimit]
	}
	return sectors
}

// SectorLabel primeros 8 caracteres del id de ubicación en mayúsculas.
func SectorLabel(locationID string) string {
	if locationID == "" {
		return NoLocationLabel
	}
	if len(locationID) > sectorLabelLen {
		locationID = locationID[:sectorLabelLen]
	}
	return strings.ToUpper(locationID)
}
