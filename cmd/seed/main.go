// seed registra tenants con su primer usuario a partir de un CSV (name,email,password).
//
// Uso: go run ./cmd/seed [--latin1] [--schema] tenants.csv
// La conexión se toma de la misma configuración que la API (DATABASE_URL, DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Multitenant-api/internal/application/auth"
	"github.com/jhoicas/Multitenant-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Multitenant-api/pkg/config"
	"github.com/jhoicas/Multitenant-api/pkg/logger"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var latin1, applySchema bool

	cmd := &cobra.Command{
		Use:   "seed [flags] archivo.csv",
		Short: "Registra tenants y usuarios iniciales desde un CSV",
		Long: `Cada fila name,email,password crea un tenant nuevo con su primer usuario, igual que
POST /register. La primera fila se ignora si es el encabezado "name,email,password".
Las filas con email ya registrado se informan y se omiten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			rows, err := readRows(f, latin1)
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if applySchema {
				if err := postgres.ApplySchema(ctx, pool); err != nil {
					return err
				}
			}

			uc := auth.NewAuthUseCase(postgres.NewTxRunner(pool), postgres.NewCredentialRepository(pool), auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			}, cfg.Tenant.DomainSuffix)

			res := seed(ctx, uc, rows, log)
			log.Info().Int("creados", res.created).Int("omitidos", res.skipped).Msg("seed terminado")
			if res.failed > 0 {
				return fmt.Errorf("%d filas fallaron", res.failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&latin1, "latin1", false, "el CSV está codificado en ISO-8859-1")
	cmd.Flags().BoolVar(&applySchema, "schema", false, "crear las tablas si no existen antes de cargar")
	return cmd
}
