// Comando de operación: migraciones de esquema y tokens de desarrollo.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/activos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/activos-api/pkg/config"
	"github.com/jhoicas/activos-api/pkg/jwt"
	"github.com/jhoicas/activos-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "activosctl",
		Short:         "Operación del servicio de activos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newTokenCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL (embebidas en el binario)",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *postgres.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *postgres.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *postgres.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
					return nil
				})
			},
		},
	)
	return migrateCmd
}

func withMigrator(fn func(m *postgres.Migrator) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("migrate")

	m, err := postgres.NewMigrator(cfg.DB.MigrateURL(), log)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, m.Close()) }()
	return fn(m)
}

// newTokenCmd emite un JWT firmado con JWT_SECRET. Solo para desarrollo: en producción los
// tokens los emite el proveedor de identidad.
func newTokenCmd() *cobra.Command {
	var (
		userID string
		name   string
		role   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un token de desarrollo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if cfg.App.Env == "production" {
				return errors.New("token: no disponible en producción")
			}
			if cfg.JWT.Secret == "" {
				return errors.New("token: JWT_SECRET vacío")
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{UserID: userID, Name: name, Role: role}, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "dev", "id del usuario")
	cmd.Flags().StringVar(&name, "name", "", "nombre para mostrar (técnico por defecto)")
	cmd.Flags().StringVar(&role, "role", "admin", "rol: admin, bodeguero o tecnico")
	return cmd
}
