package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-count-api/internal/application/catalog"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/csvimport"
)

const uploadField = "file"

var errFileTooLarge = errors.New("archivo demasiado grande")

// ImportHandler importa catálogo y stock esperado en JSON o CSV (protegido).
type ImportHandler struct {
	uc       *catalog.UseCase
	maxBytes int64
}

// NewImportHandler construye el handler. maxBytes limita el tamaño del archivo subido.
func NewImportHandler(uc *catalog.UseCase, maxBytes int64) *ImportHandler {
	return &ImportHandler{uc: uc, maxBytes: maxBytes}
}

// ImportProducts godoc
// @Summary      Importar catálogo (JSON)
// @Description  Inserta productos nuevos y actualiza los existentes por EAN.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.ProductImportItem  true  "Productos"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/products [post]
func (h *ImportHandler) ImportProducts(c *fiber.Ctx) error {
	var items []dto.ProductImportItem
	if err := c.BodyParser(&items); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ImportProducts(c.Context(), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportProductsCSV godoc
// @Summary      Importar catálogo (CSV)
// @Description  Separador coma o punto y coma; UTF-8 o Windows-1252.
// @Tags         import
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Planilla CSV"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/import/products/csv [post]
func (h *ImportHandler) ImportProductsCSV(c *fiber.Ctx) error {
	f, err := h.openUpload(c)
	if err != nil {
		return h.uploadError(c, err)
	}
	defer f.Close()
	items, err := csvimport.ReadProducts(f)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ImportProducts(c.Context(), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportExpectedStock godoc
// @Summary      Importar stock esperado del cliente (JSON)
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sessionId  path  string                         true  "ID de la sesión"
// @Param        body       body  []dto.ExpectedStockImportItem  true  "ean, expectedQuantity"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/import/expected-stock/{sessionId} [post]
func (h *ImportHandler) ImportExpectedStock(c *fiber.Ctx) error {
	var items []dto.ExpectedStockImportItem
	if err := c.BodyParser(&items); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ImportExpectedStock(c.Context(), c.Params("sessionId"), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportExpectedStockCSV godoc
// @Summary      Importar stock esperado del cliente (CSV)
// @Tags         import
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        sessionId  path      string  true  "ID de la sesión"
// @Param        file       formData  file    true  "Planilla CSV"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/import/expected-stock/{sessionId}/csv [post]
func (h *ImportHandler) ImportExpectedStockCSV(c *fiber.Ctx) error {
	f, err := h.openUpload(c)
	if err != nil {
		return h.uploadError(c, err)
	}
	defer f.Close()
	items, err := csvimport.ReadExpectedStock(f)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ImportExpectedStock(c.Context(), c.Params("sessionId"), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// openUpload abre el archivo del campo "file" respetando el límite de tamaño.
func (h *ImportHandler) openUpload(c *fiber.Ctx) (io.ReadCloser, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("campo %q requerido: %w", uploadField, domain.ErrInvalidInput)
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return nil, errFileTooLarge
	}
	return fh.Open()
}

func (h *ImportHandler) uploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errFileTooLarge) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera %d bytes", h.maxBytes),
		})
	}
	return writeError(c, err)
}
