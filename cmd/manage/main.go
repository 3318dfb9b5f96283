// Comando manage: tareas administrativas (migraciones, superusuario, contraseñas, secciones).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/warehouse-pos/internal/application/auth"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/storage"
	"github.com/jhoicas/warehouse-pos/pkg/config"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env configuración y logger compartidos por los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "manage",
		Short:        "Tareas administrativas de warehouse-pos",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
	}
	root.AddCommand(
		newMigrateCmd(e),
		newCreateSuperuserCmd(e),
		newResetPasswordCmd(e),
		newSetupSectionsCmd(e),
	)
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, e.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			applied, err := postgres.Migrate(ctx, pool, e.log)
			if err != nil {
				return err
			}
			cmd.Printf("migraciones aplicadas: %d\n", len(applied))
			return nil
		},
	}
}

func newCreateSuperuserCmd(e *env) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Crea un usuario con acceso total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withAuth(cmd.Context(), func(uc *auth.AuthUseCase) error {
				u, err := uc.CreateSuperuser(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				cmd.Printf("superusuario %s creado (%s)\n", u.Username, u.ID)
				return nil
			})
		},
	}
	credentialFlags(cmd, &username, &password)
	return cmd
}

func newResetPasswordCmd(e *env) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Cambia la contraseña de un usuario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withAuth(cmd.Context(), func(uc *auth.AuthUseCase) error {
				if err := uc.ResetPassword(cmd.Context(), username, password); err != nil {
					return err
				}
				cmd.Printf("contraseña de %s actualizada\n", username)
				return nil
			})
		},
	}
	credentialFlags(cmd, &username, &password)
	return cmd
}

func newSetupSectionsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-sections",
		Short: "Siembra el catálogo de secciones de acceso",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()
			n, err := usecase.NewSectionService(b.Sections).Setup(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("secciones sincronizadas: %d\n", n)
			return nil
		},
	}
}

// credentialFlags --username y --password; la contraseña también puede venir de MANAGE_PASSWORD.
func credentialFlags(cmd *cobra.Command, username, password *string) {
	cmd.Flags().StringVarP(username, "username", "u", "", "nombre de usuario")
	cmd.Flags().StringVarP(password, "password", "p", os.Getenv("MANAGE_PASSWORD"), "contraseña (o MANAGE_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	cmd.PreRunE = func(*cobra.Command, []string) error {
		if *password == "" {
			return errors.New("--password o MANAGE_PASSWORD es obligatorio")
		}
		return nil
	}
}

// open abre el almacenamiento configurado; la memoria no persiste, así que se rechaza.
func (e *env) open(ctx context.Context) (*storage.Backend, error) {
	if e.cfg.App.InMemory() {
		return nil, errors.New("manage requiere APP_STORAGE=postgres")
	}
	return storage.Open(ctx, e.cfg, e.log)
}

func (e *env) withAuth(ctx context.Context, fn func(*auth.AuthUseCase) error) error {
	b, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer b.Close()
	uc := auth.NewAuthUseCase(b.Repos.Users, b.Repos.Employees, b.Blocklist, auth.JWTConfig{
		Secret:     e.cfg.JWT.Secret,
		ExpMinutes: e.cfg.JWT.Expiration,
		Issuer:     e.cfg.JWT.Issuer,
	})
	return fn(uc)
}
