// Package rawexport serializa las filas crudas de conteo de una sesión a
// archivos descargables (CSV y XML).
package rawexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
)

var _ export.RawEncoder = (*XMLEncoder)(nil)

// XMLEncoder genera <inventoryCounts><count>...</count></inventoryCounts>.
type XMLEncoder struct{}

func NewXMLEncoder() *XMLEncoder { return &XMLEncoder{} }

func (e *XMLEncoder) ContentType() string { return "application/xml" }
func (e *XMLEncoder) Extension() string   { return ".xml" }

func (e *XMLEncoder) Encode(rows []dto.RawCountDTO) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("inventoryCounts")
	root.CreateAttr("total", strconv.Itoa(len(rows)))

	for _, r := range rows {
		c := root.CreateElement("count")
		c.CreateElement("ean").SetText(r.EAN)
		loc := c.CreateElement("productLocationId")
		if r.ProductLocationID != nil {
			loc.SetText(*r.ProductLocationID)
		}
		c.CreateElement("quantity").SetText(strconv.Itoa(r.Quantity))
		c.CreateElement("countedAt").SetText(r.CountedAt.UTC().Format(time.RFC3339Nano))
		c.CreateElement("userId").SetText(r.UserID)
		c.CreateElement("countVersion").SetText(strconv.Itoa(r.CountVersion))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("rawexport: xml: %w", err)
	}
	return out, nil
}
