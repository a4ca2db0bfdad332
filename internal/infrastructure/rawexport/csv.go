package rawexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
)

var _ export.RawEncoder = (*CSVEncoder)(nil)

var csvHeader = []string{"productLocationId", "ean", "quantity", "countedAt", "userId", "countVersion"}

// CSVEncoder genera CSV separado por comas con encabezado.
type CSVEncoder struct{}

func NewCSVEncoder() *CSVEncoder { return &CSVEncoder{} }

func (e *CSVEncoder) ContentType() string { return "text/csv; charset=utf-8" }
func (e *CSVEncoder) Extension() string   { return ".csv" }

func (e *CSVEncoder) Encode(rows []dto.RawCountDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("rawexport: csv: %w", err)
	}
	for _, r := range rows {
		loc := ""
		if r.ProductLocationID != nil {
			loc = *r.ProductLocationID
		}
		record := []string{
			loc,
			r.EAN,
			strconv.Itoa(r.Quantity),
			r.CountedAt.UTC().Format(time.RFC3339Nano),
			r.UserID,
			strconv.Itoa(r.CountVersion),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("rawexport: csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("rawexport: csv: %w", err)
	}
	return buf.Bytes(), nil
}
