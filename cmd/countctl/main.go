// Command countctl tareas de operación sobre la base de conteo: migraciones,
// administrador inicial e importación de planillas CSV sin pasar por la API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventory-count-api/internal/application/auth"
	"github.com/jhoicas/inventory-count-api/internal/application/catalog"
	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-count-api/pkg/config"
	"github.com/jhoicas/inventory-count-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env recursos compartidos por los subcomandos; se abre en PersistentPreRunE.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "countctl",
		Short:        "Operación de la base de conteo de inventario",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.pool != nil {
				e.pool.Close()
			}
		},
	}
	root.AddCommand(newMigrateCmd(e), newSeedAdminCmd(e), newImportCmd(e))
	return root
}

func (e *env) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	e.cfg = cfg
	e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "countctl", Out: os.Stderr})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	e.pool = pool
	return nil
}

func (e *env) catalog() *catalog.UseCase {
	return catalog.NewUseCase(
		postgres.NewTxRunner(e.pool),
		postgres.NewSessionRepository(e.pool),
		postgres.NewProductRepository(e.pool),
		e.log.Component("catalog"),
	)
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postgres.Migrate(cmd.Context(), e.pool, e.log.Component("migrate"))
		},
	}
}

func newSeedAdminCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea el administrador si no hay usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = e.cfg.Admin.Email
			}
			if password == "" {
				password = e.cfg.Admin.Password
			}
			uc := auth.NewAuthUseCase(postgres.NewUserRepository(e.pool), auth.JWTConfig{}, e.log.Component("auth"))
			created, err := uc.SeedAdmin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "ya existen usuarios; no se creó administrador")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrador %s creado\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador (por defecto ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "password del administrador (por defecto ADMIN_PASSWORD)")
	return cmd
}

func newImportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa planillas CSV",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "products <archivo.csv>",
			Short: "Inserta o actualiza el catálogo por EAN",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := readCSV(args[0], csvimport.ReadProducts)
				if err != nil {
					return err
				}
				out, err := e.catalog().ImportProducts(cmd.Context(), items)
				return printResult(cmd, out, err)
			},
		},
		&cobra.Command{
			Use:   "expected <sessionId> <archivo.csv>",
			Short: "Carga el stock esperado del cliente para una sesión",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := readCSV(args[1], csvimport.ReadExpectedStock)
				if err != nil {
					return err
				}
				out, err := e.catalog().ImportExpectedStock(cmd.Context(), args[0], items)
				return printResult(cmd, out, err)
			},
		},
	)
	return cmd
}

func readCSV[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}

func printResult(cmd *cobra.Command, out *dto.ImportResponse, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (creados: %d, actualizados: %d)\n", out.Message, out.Created, out.Updated)
	return nil
}
