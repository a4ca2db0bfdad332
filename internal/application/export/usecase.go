// Package export contiene la exportación de datos crudos de conteo y la
// generación de documentos PDF (reporte de sesión y etiquetas de ubicación).
package export

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-count-api/internal/application/dashboard"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// File archivo generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UseCase exportaciones de una sesión.
type UseCase struct {
	dashboard    *dashboard.UseCase
	sessionRepo  repository.SessionRepository
	countRepo    repository.CountRepository
	locationRepo repository.ProductLocationRepository
	pdf          PDFGenerator
	encoders     map[string]RawEncoder
	now          func() time.Time
}

// NewUseCase construye el caso de uso. encoders indexa por formato (csv, xml).
func NewUseCase(
	dashboardUC *dashboard.UseCase,
	sessionRepo repository.SessionRepository,
	countRepo repository.CountRepository,
	locationRepo repository.ProductLocationRepository,
	pdf PDFGenerator,
	encoders map[string]RawEncoder,
) *UseCase {
	return &UseCase{
		dashboard:    dashboardUC,
		sessionRepo:  sessionRepo,
		countRepo:    countRepo,
		locationRepo: locationRepo,
		pdf:          pdf,
		encoders:     encoders,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RawData todas las filas de conteo de la sesión, en el orden en que se registraron.
func (uc *UseCase) RawData(ctx context.Context, sessionID string) ([]dto.RawCountDTO, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	exists, err := uc.sessionRepo.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrSessionNotFound
	}
	counts, err := uc.countRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.RawCountDTO, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, dto.RawCountDTO{
			ProductLocationID: c.ProductLocationID,
			EAN:               c.EAN,
			Quantity:          c.Quantity,
			CountedAt:         c.CountedAt,
			UserID:            c.UserID,
			CountVersion:      c.Version,
		})
	}
	return rows, nil
}

// RawFile serializa los datos crudos en el formato pedido (csv o xml).
// domain.ErrInvalidInput si el formato no está soportado.
func (uc *UseCase) RawFile(ctx context.Context, sessionID, format string) (*File, error) {
	enc, ok := uc.encoders[strings.ToLower(format)]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.RawData(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := enc.Encode(rows)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        "conteos-" + sessionID + enc.Extension(),
		ContentType: enc.ContentType(),
		Data:        data,
	}, nil
}

// SessionReportPDF reporte imprimible con KPIs, sectores y totales por EAN.
func (uc *UseCase) SessionReportPDF(ctx context.Context, sessionID string) (*File, error) {
	in, err := uc.dashboard.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s := in.Session
	report := &SessionReport{
		Session: dto.SessionResponse{
			ID:         s.ID,
			ClientName: s.ClientName,
			Status:     string(s.Status),
			StartDate:  s.StartDate,
			EndDate:    s.EndDate,
			TeamID:     s.TeamID,
		},
		Dashboard:   *dashboard.ToDTO(inventory.BuildSnapshot(in)),
		Totals:      inventory.EANTotals(in),
		GeneratedAt: uc.now(),
	}
	data, err := uc.pdf.SessionReportPDF(ctx, report)
	if err != nil {
		return nil, err
	}
	return &File{Name: "reporte-" + sessionID + ".pdf", ContentType: "application/pdf", Data: data}, nil
}

// LocationLabelsPDF etiquetas con código de barras de todas las ubicaciones.
func (uc *UseCase) LocationLabelsPDF(ctx context.Context) (*File, error) {
	locations, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.LocationLabelsPDF(ctx, locations)
	if err != nil {
		return nil, err
	}
	return &File{Name: "etiquetas-ubicaciones.pdf", ContentType: "application/pdf", Data: data}, nil
}
