package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
	"github.com/jhoicas/inventory-count-api/internal/application/usecase"
)

// LocationHandler ubicaciones de productos y sus etiquetas (protegido).
type LocationHandler struct {
	uc     *usecase.LocationUseCase
	export *export.UseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase, exportUC *export.UseCase) *LocationHandler {
	return &LocationHandler{uc: uc, export: exportUC}
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         productlocation
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/productlocation [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         productlocation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "barcode, description"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productlocation [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar ubicación
// @Description  Los conteos que la referencian quedan sin ubicación.
// @Tags         productlocation
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productlocation/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Labels godoc
// @Summary      Etiquetas PDF de ubicaciones
// @Description  Una etiqueta con código de barras por ubicación.
// @Tags         productlocation
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/productlocation/labels.pdf [get]
func (h *LocationHandler) Labels(c *fiber.Ctx) error {
	f, err := h.export.LocationLabelsPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f, true)
}
