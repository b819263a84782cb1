// tienda es la CLI de operación: tareas administrativas directas contra la base.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/tienda/internal/config"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
	"github.com/dropDatabas3/tienda/internal/security/password"
	"github.com/dropDatabas3/tienda/internal/store/pg"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "tienda",
		Short:         "CLI de operación del backend de tiendas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.example.yaml", "Path al YAML de configuración")

	openStore := func(ctx context.Context) (*pg.Store, *config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("config load: %w", err)
		}
		store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MinIdleConns:    cfg.Storage.Postgres.MinIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return store, cfg, nil
	}

	var (
		adminUsername string
		adminEmail    string
		adminPassword string
	)
	seedAdmin := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea un usuario admin (con su tienda) directamente en la base",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, cfg, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			username := strings.ToLower(strings.TrimSpace(adminUsername))
			mail := strings.ToLower(strings.TrimSpace(adminEmail))
			if username == "" || mail == "" || adminPassword == "" {
				return fmt.Errorf("--username, --email y --password son obligatorios")
			}

			hash, err := password.Hash(cfg.Hashing.Cost, adminPassword)
			if err != nil {
				return err
			}

			users := pg.NewUserRepo(store.Pool())
			user, err := users.CreateWithStore(ctx, repository.CreateUserInput{
				ID:           uuid.NewString(),
				Username:     username,
				Email:        mail,
				PasswordHash: hash,
				Role:         repository.RoleAdmin,
			}, uuid.NewString())
			if err != nil {
				return err
			}

			fmt.Printf("admin creado: id=%s username=%s\n", user.ID, user.Username)
			return nil
		},
	}
	seedAdmin.Flags().StringVar(&adminUsername, "username", "", "Username del admin")
	seedAdmin.Flags().StringVar(&adminEmail, "email", "", "Email del admin")
	seedAdmin.Flags().StringVar(&adminPassword, "password", "", "Password del admin")

	purgeSessions := &cobra.Command{
		Use:   "purge-sessions",
		Short: "Elimina de la base las sesiones ya expiradas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sessions := pg.NewSessionRepo(store.Pool())
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("sesiones expiradas eliminadas: %d\n", n)
			return nil
		},
	}

	deleteUser := &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Soft-elimina un usuario (sus sesiones dejan de resolver)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			users := pg.NewUserRepo(store.Pool())
			if err := users.SoftDelete(ctx, args[0]); err != nil {
				return err
			}

			fmt.Printf("usuario %s eliminado (soft)\n", args[0])
			return nil
		},
	}

	root.AddCommand(seedAdmin, purgeSessions, deleteUser)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
