package dto

import "time"

// DashboardDTO respuesta de GET /api/inventorysession/:id/dashboard.
// Se recalcula completo en cada llamada.
type DashboardDTO struct {
	ClientName     string           `json:"clientName"`
	Status         string           `json:"status"`
	Progress       int              `json:"progress"`    // 0..100
	TotalSKUs      int              `json:"totalSKUs"`   // stock esperado o catálogo completo
	CountedSKUs    int              `json:"countedSKUs"` // EAN distintos contados
	TotalItems     int              `json:"totalItems"`  // suma de todas las versiones
	Divergences    int              `json:"divergences"`
	ActiveCounters int              `json:"activeCounters"` // última hora
	RecentCounts   []RecentCountDTO `json:"recentCounts"`
	Sectors        []SectorDTO      `json:"sectors"`
}

// RecentCountDTO uno de los 5 conteos más recientes.
type RecentCountDTO struct {
	EAN             string    `json:"ean"`
	ProductName     string    `json:"productName"`
	ProductLocation string    `json:"productLocation"`
	Quantity        int       `json:"quantity"`
	CountedAt       time.Time `json:"countedAt"`
}

// SectorDTO participación de un sector en el total contado.
type SectorDTO struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}
