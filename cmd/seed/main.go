package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"propertyhub/internal/auth"
	"propertyhub/internal/config"
	"propertyhub/internal/db"
	"propertyhub/internal/errors"
	"propertyhub/internal/logging"
	"propertyhub/internal/repository"
	"propertyhub/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seed the property management database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(adminCmd(), demoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func adminCmd() *cobra.Command {
	var input service.SignupInput
	var role string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an account with an explicit role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connect()
			if err != nil {
				return err
			}

			jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
			authService := service.NewAuthService(repository.NewUserRepository(gormDB), jwtService, cfg.BcryptCost)

			user, err := authService.CreateUser(cmd.Context(), input, role)
			if errors.Is(err, errors.ErrEmailTaken) {
				slog.Info("account already exists", "email", input.Email)
				return nil
			}
			if err != nil {
				return fmt.Errorf("create account: %w", err)
			}
			slog.Info("account created", "id", user.ID, "email", user.Email, "role", user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "admin@example.com", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "admin123", "account password")
	cmd.Flags().StringVar(&input.Username, "username", "admin", "account username")
	cmd.Flags().StringVar(&input.FullName, "name", "Administrator", "full name")
	cmd.Flags().StringVar(&role, "role", "admin", "role stored on the account")
	return cmd
}

func demoCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Insert sample properties and utility bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connect()
			if err != nil {
				return err
			}

			properties, bills, err := seedDemo(cmd.Context(), gormDB, force)
			if err != nil {
				return err
			}
			slog.Info("demo data seeded", "properties", properties, "bills", bills)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "seed even when properties already exist")
	return cmd
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	gormDB, err := db.Open(db.OptionsFromConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return cfg, gormDB, nil
}
