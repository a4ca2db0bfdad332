// Package pdf genera los documentos imprimibles del inventario con Maroto v2.
//
// Reporte de sesión (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + Estado    │  Fechas inicio / fin         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Avance | SKUs | Ítems | Divergencias | Contadores    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECTORES: Sector | % del total                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: EAN | Producto | Contado | Esperado | Diferencia    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                │
//	└─────────────────────────────────────────────────────────────┘
//
// Etiquetas de ubicación: grilla de 3 columnas con código de barras Code128.
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventory-count-api/internal/application/export"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

const (
	dateLayout     = "02/01/2006 15:04"
	labelsPerRow   = 3
	labelRowHeight = 32
)

var _ export.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa export.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador; appName firma los documentos.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.appName, true).
		Build()
	return maroto.New(cfg)
}

// SessionReportPDF genera el reporte de cierre de una sesión.
func (g *MarotoPDFGenerator) SessionReportPDF(_ context.Context, r *export.SessionReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	m := g.newDocument("Reporte de inventario - " + r.Session.ClientName)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("SECTORES"))
	m.AddRows(sectorRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("TOTALES POR EAN"))
	m.AddRows(totalsHeaderRow())
	m.AddRows(totalsRows(r.Totals)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+r.GeneratedAt.Format(dateLayout)+" UTC", props.Text{
			Size: 7, Color: colorGray, Top: 1, Align: align.Right,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// LocationLabelsPDF genera una etiqueta por ubicación con su código de barras.
// Sin código de barras propio se imprime el id de la ubicación.
func (g *MarotoPDFGenerator) LocationLabelsPDF(_ context.Context, locations []*entity.ProductLocation) ([]byte, error) {
	m := g.newDocument("Etiquetas de ubicaciones")
	m.AddRows(sectionTitle("ETIQUETAS DE UBICACIONES"))

	if len(locations) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay ubicaciones registradas.", props.Text{Size: 9, Color: colorGray, Top: 2}),
		)))
	}
	for start := 0; start < len(locations); start += labelsPerRow {
		end := min(start+labelsPerRow, len(locations))
		cols := make([]core.Col, 0, labelsPerRow)
		for _, l := range locations[start:end] {
			cols = append(cols, labelCol(l))
		}
		for len(cols) < labelsPerRow {
			cols = append(cols, col.New(12/labelsPerRow))
		}
		m.AddRows(row.New(labelRowHeight).Add(cols...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: cliente + estado (izq) y fechas (der).
func headerRow(r *export.SessionReport) core.Row {
	end := "-"
	if r.Session.EndDate != nil {
		end = r.Session.EndDate.Format(dateLayout)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Session.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+r.Session.Status, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Inicio: "+r.Session.StartDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fin: "+end, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// kpiRow: una columna por indicador del dashboard.
func kpiRow(r *export.SessionReport) core.Row {
	d := r.Dashboard
	kpi := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		kpi("Avance", strconv.Itoa(d.Progress)+"%"),
		kpi("SKUs contados", fmt.Sprintf("%d / %d", d.CountedSKUs, d.TotalSKUs)),
		kpi("Ítems", strconv.Itoa(d.TotalItems)),
		kpi("Divergencias", strconv.Itoa(d.Divergences)),
		kpi("Contadores activos", strconv.Itoa(d.ActiveCounters)),
		kpi("Conteos recientes", strconv.Itoa(len(d.RecentCounts))),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func sectorRows(r *export.SessionReport) []core.Row {
	if len(r.Dashboard.Sectors) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin conteos registrados.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(r.Dashboard.Sectors))
	for _, s := range r.Dashboard.Sectors {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(strconv.FormatFloat(s.Percent, 'f', 2, 64)+"%", props.Text{
				Size: 8, Top: 1, Align: align.Right, Right: 1,
			})),
		))
	}
	return rows
}

func totalsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("EAN", 3, align.Left),
		h("Producto", 4, align.Left),
		h("Contado", 2, align.Right),
		h("Esperado", 2, align.Right),
		h("Dif.", 1, align.Right),
	)
}

// totalsRows: una fila por EAN; las diferencias se resaltan.
func totalsRows(totals []inventory.EANTotal) []core.Row {
	result := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		diffProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if t.Difference() != 0 {
			diffProps.Color = colorAlert
			diffProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(t.EAN, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(t.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(t.Counted), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(t.Expected), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(signed(t.Difference()), diffProps)),
		))
	}
	return result
}

// labelCol: descripción arriba y código de barras debajo.
func labelCol(l *entity.ProductLocation) core.Col {
	value := l.ID
	if l.Barcode != nil && *l.Barcode != "" {
		value = *l.Barcode
	}
	desc := nonEmpty(l.Description, value)
	return col.New(12/labelsPerRow).Add(
		text.New(desc, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1}),
		code.NewBar(value, props.Barcode{Top: 6, Percent: 70, Center: true}),
		text.New(value, props.Text{Size: 6, Align: align.Center, Top: 27, Color: colorGray}),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
