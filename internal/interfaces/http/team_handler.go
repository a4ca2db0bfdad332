package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/usecase"
)

// TeamHandler CRUD de equipos de conteo (protegido).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// List godoc
// @Summary      Listar equipos
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamResponse
// @Router       /api/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear equipo
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TeamRequest  true  "name, description"
// @Success      201   {object}  dto.TeamResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.TeamRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar equipo
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del equipo"
// @Param        body  body  dto.TeamRequest  true  "name, description"
// @Success      200   {object}  dto.TeamResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/team/{id} [put]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var in dto.TeamRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar equipo
// @Description  Usuarios y sesiones del equipo quedan sin equipo.
// @Tags         team
// @Security     Bearer
// @Param        id  path  string  true  "ID del equipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
