package export

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
)

// SessionReport datos del reporte PDF de una sesión.
type SessionReport struct {
	Session     dto.SessionResponse
	Dashboard   dto.DashboardDTO
	Totals      []inventory.EANTotal
	GeneratedAt time.Time
}

// PDFGenerator puerto de salida para documentos imprimibles.
type PDFGenerator interface {
	SessionReportPDF(ctx context.Context, report *SessionReport) ([]byte, error)
	LocationLabelsPDF(ctx context.Context, locations []*entity.ProductLocation) ([]byte, error)
}

// RawEncoder serializa las filas crudas de conteo en un formato de archivo.
type RawEncoder interface {
	ContentType() string
	Extension() string
	Encode(rows []dto.RawCountDTO) ([]byte, error)
}
