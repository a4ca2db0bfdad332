package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/inventory-count-api/docs"
	"github.com/jhoicas/inventory-count-api/internal/application/auth"
	"github.com/jhoicas/inventory-count-api/internal/application/catalog"
	"github.com/jhoicas/inventory-count-api/internal/application/counting"
	"github.com/jhoicas/inventory-count-api/internal/application/dashboard"
	"github.com/jhoicas/inventory-count-api/internal/application/export"
	"github.com/jhoicas/inventory-count-api/internal/application/session"
	"github.com/jhoicas/inventory-count-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventory-count-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/rawexport"
	httpRouter "github.com/jhoicas/inventory-count-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-count-api/pkg/config"
	"github.com/jhoicas/inventory-count-api/pkg/logger"
)

// @title                       Inventory Count API
// @version                     1.0
// @description                 Sesiones de inventario, conteo por EAN y dashboard en vivo.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	sessionRepo := postgres.NewSessionRepository(pool)
	countRepo := postgres.NewCountRepository(pool)
	expectedRepo := postgres.NewExpectedStockRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	locationRepo := postgres.NewProductLocationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD vacío: no se crea administrador inicial")
	} else if _, err := authUC.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	sessionUC := session.NewUseCase(sessionRepo, countRepo, userRepo, log.Component("session"))
	registerCountUC := counting.NewRegisterCountUseCase(txRunner, log.Component("counting"))
	dashboardUC := dashboard.NewUseCase(sessionRepo, countRepo, expectedRepo, productRepo)
	catalogUC := catalog.NewUseCase(txRunner, sessionRepo, productRepo, log.Component("catalog"))

	// PDF: reporte de sesión y etiquetas de ubicación
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	exportUC := export.NewUseCase(dashboardUC, sessionRepo, countRepo, locationRepo, pdfGenerator, map[string]export.RawEncoder{
		"csv": rawexport.NewCSVEncoder(),
		"xml": rawexport.NewXMLEncoder(),
	})

	maxUpload := cfg.Import.MaxUploadBytes()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    maxUpload + 1024*1024, // margen para el envoltorio multipart
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SessionUC:      sessionUC,
		RegisterCount:  registerCountUC,
		DashboardUC:    dashboardUC,
		CatalogUC:      catalogUC,
		ExportUC:       exportUC,
		TeamUC:         usecase.NewTeamUseCase(teamRepo),
		UserUC:         usecase.NewUserUseCase(userRepo, teamRepo),
		LocationUC:     usecase.NewLocationUseCase(locationRepo),
		JWTSecret:      cfg.JWT.Secret,
		MaxUploadBytes: int64(maxUpload),
		ServiceName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
