package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-count-api/internal/application/counting"
	"github.com/jhoicas/inventory-count-api/internal/application/dashboard"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
	"github.com/jhoicas/inventory-count-api/internal/application/session"
)

// SessionHandler maneja sesiones de inventario, conteos y el dashboard (protegido).
type SessionHandler struct {
	sessions  *session.UseCase
	counts    *counting.RegisterCountUseCase
	dashboard *dashboard.UseCase
	export    *export.UseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(
	sessions *session.UseCase,
	counts *counting.RegisterCountUseCase,
	dashboardUC *dashboard.UseCase,
	exportUC *export.UseCase,
) *SessionHandler {
	return &SessionHandler{sessions: sessions, counts: counts, dashboard: dashboardUC, export: exportUC}
}

// List godoc
// @Summary      Listar sesiones de inventario
// @Description  Incluye total de ítems y EAN distintos contados por sesión.
// @Tags         inventorysession
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SessionListItem
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventorysession [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	out, err := h.sessions.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear sesión de inventario
// @Tags         inventorysession
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "clientName, startDate, endDate, teamId"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventorysession [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sessions.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Active godoc
// @Summary      Sesión activa del equipo del usuario
// @Tags         inventorysession
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActiveSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventorysession/active [get]
func (h *SessionHandler) Active(c *fiber.Ctx) error {
	out, err := h.sessions.GetActiveForUser(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Progress godoc
// @Summary      Progreso de una sesión
// @Tags         inventorysession
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionProgressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventorysession/{id}/progress [get]
func (h *SessionHandler) Progress(c *fiber.Ctx) error {
	out, err := h.sessions.GetProgress(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la sesión
// @Description  Open, InProgress o Closed. Cerrar fija la fecha de fin.
// @Tags         inventorysession
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventorysession/{id}/status [put]
func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sessions.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Estado actualizado.", Status: out.Status})
}

// Update godoc
// @Summary      Editar sesión
// @Tags         inventorysession
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la sesión"
// @Param        body  body  dto.UpdateSessionRequest  true  "clientName, teamId, startDate, endDate"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventorysession/{id} [put]
func (h *SessionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sessions.UpdateDetails(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterCount godoc
// @Summary      Registrar un conteo
// @Description  Cada lectura crea una fila nueva con la versión siguiente para el EAN.
// @Description  El primer conteo mueve la sesión de Open a InProgress.
// @Tags         inventorysession
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la sesión"
// @Param        body  body  dto.RegisterCountRequest  true  "ean, productLocationId, quantity"
// @Success      200   {object}  dto.RegisterCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventorysession/{id}/count [post]
func (h *SessionHandler) RegisterCount(c *fiber.Ctx) error {
	var in dto.RegisterCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.counts.RegisterCount(c.Context(), counting.CountInput{
		SessionID:         c.Params("id"),
		UserID:            GetUserID(c),
		EAN:               in.EAN,
		ProductLocationID: in.ProductLocationID,
		Quantity:          in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Dashboard de la sesión
// @Description  Progreso, divergencias, contadores activos, últimos conteos y sectores.
// @Tags         inventorysession
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la sesión"
// @Success      200  {object}  dto.DashboardDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventorysession/{id}/dashboard [get]
func (h *SessionHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetDashboard(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF de la sesión
// @Tags         inventorysession
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventorysession/{id}/report.pdf [get]
func (h *SessionHandler) ReportPDF(c *fiber.Ctx) error {
	f, err := h.export.SessionReportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f, true)
}

func sendFile(c *fiber.Ctx, f *export.File, inline bool) error {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, disposition+`; filename="`+f.Name+`"`)
	return c.Send(f.Data)
}
