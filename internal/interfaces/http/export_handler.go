package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-count-api/internal/application/export"
)

// ExportHandler exporta los datos crudos de conteo (protegido).
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// RawData godoc
// @Summary      Exportar conteos crudos
// @Description  Todas las versiones registradas. format=json (por defecto), csv o xml.
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Produce      text/csv
// @Produce      application/xml
// @Param        sessionId  path   string  true   "ID de la sesión"
// @Param        format     query  string  false  "json | csv | xml"
// @Success      200  {array}   dto.RawCountDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/raw-data/{sessionId} [get]
func (h *ExportHandler) RawData(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	format := strings.ToLower(c.Query("format", "json"))
	if format == "json" {
		rows, err := h.uc.RawData(c.Context(), sessionID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(rows)
	}
	f, err := h.uc.RawFile(c.Context(), sessionID, format)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f, false)
}
