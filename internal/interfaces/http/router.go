package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-count-api/internal/application/auth"
	"github.com/jhoicas/inventory-count-api/internal/application/catalog"
	"github.com/jhoicas/inventory-count-api/internal/application/counting"
	"github.com/jhoicas/inventory-count-api/internal/application/dashboard"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
	"github.com/jhoicas/inventory-count-api/internal/application/session"
	"github.com/jhoicas/inventory-count-api/internal/application/usecase"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SessionUC      *session.UseCase
	RegisterCount  *counting.RegisterCountUseCase
	DashboardUC    *dashboard.UseCase
	CatalogUC      *catalog.UseCase
	ExportUC       *export.UseCase
	TeamUC         *usecase.TeamUseCase
	UserUC         *usecase.UserUseCase
	LocationUC     *usecase.LocationUseCase
	JWTSecret      string
	MaxUploadBytes int64
	ServiceName    string
}

var (
	managers = []string{entity.RoleAdmin, entity.RoleManager}
	everyone = []string{entity.RoleAdmin, entity.RoleManager, entity.RoleCounter}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manage := RequireRole(managers...)
	count := RequireRole(everyone...)

	// Sesiones, conteos y dashboard
	sessions := protected.Group("/inventorysession")
	sessionHandler := NewSessionHandler(deps.SessionUC, deps.RegisterCount, deps.DashboardUC, deps.ExportUC)
	sessions.Get("/", manage, sessionHandler.List)
	sessions.Post("/", manage, sessionHandler.Create)
	sessions.Get("/active", count, sessionHandler.Active)
	sessions.Get("/:id/dashboard", count, sessionHandler.Dashboard)
	sessions.Get("/:id/progress", manage, sessionHandler.Progress)
	sessions.Post("/:id/count", count, sessionHandler.RegisterCount)
	sessions.Put("/:id/status", manage, sessionHandler.UpdateStatus)
	sessions.Get("/:id/report.pdf", manage, sessionHandler.ReportPDF)
	sessions.Put("/:id", manage, sessionHandler.Update)

	// Importación de catálogo y stock esperado
	imports := protected.Group("/import", manage)
	importHandler := NewImportHandler(deps.CatalogUC, deps.MaxUploadBytes)
	imports.Post("/products", importHandler.ImportProducts)
	imports.Post("/products/csv", importHandler.ImportProductsCSV)
	imports.Post("/expected-stock/:sessionId", importHandler.ImportExpectedStock)
	imports.Post("/expected-stock/:sessionId/csv", importHandler.ImportExpectedStockCSV)

	// Exportación
	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/export/raw-data/:sessionId", manage, exportHandler.RawData)

	// Catálogo
	productHandler := NewProductHandler(deps.CatalogUC)
	protected.Get("/products", manage, productHandler.List)

	// Equipos
	teams := protected.Group("/team", manage)
	teamHandler := NewTeamHandler(deps.TeamUC)
	teams.Get("/", teamHandler.List)
	teams.Post("/", teamHandler.Create)
	teams.Put("/:id", teamHandler.Update)
	teams.Delete("/:id", teamHandler.Delete)

	// Usuarios
	users := protected.Group("/user", manage)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)

	// Ubicaciones (cualquier usuario autenticado)
	locations := protected.Group("/productlocation")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.ExportUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Get("/labels.pdf", locationHandler.Labels)
	locations.Delete("/:id", locationHandler.Delete)
}
