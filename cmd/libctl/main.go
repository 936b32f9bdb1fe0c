// Command libctl runs maintenance tasks against the library database.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maximiza-sistemas/edu-backend/config"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/database"
	applogger "github.com/maximiza-sistemas/edu-backend/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "libctl",
	Short:         "libctl - library backend maintenance",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (defaults to ./config/config.yaml)")
	rootCmd.AddCommand(newMigrateCmd(), newResetAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ── migrate ──

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSQL(func(db *sql.DB, logger *zap.Logger) error {
				return database.RunMigrations(db, logger)
			})
		},
	}
	cmd.AddCommand(newMigrateDownCmd(), newMigrateStatusCmd())
	return cmd
}

func newMigrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSQL(func(db *sql.DB, logger *zap.Logger) error {
				return database.RollbackMigrations(db, steps, logger)
			})
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")
	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the applied and latest schema versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSQL(func(db *sql.DB, _ *zap.Logger) error {
				st, err := database.Status(db)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "current: %d\nlatest:  %d\n", st.Current, st.Latest)
				switch {
				case st.Dirty:
					fmt.Fprintln(out, "state:   dirty")
				case st.Pending():
					fmt.Fprintln(out, "state:   pending")
				default:
					fmt.Fprintln(out, "state:   up to date")
				}
				return nil
			})
		},
	}
}

// ── reset-admin ──

func newResetAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "reset-admin",
		Short: "Create the admin account or reset its password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error {
				users := service.NewUserService(repository.NewRepository(db), cfg.Auth.BcryptCost, logger)

				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()

				user, created, err := users.EnsureAdmin(ctx, name, email, password)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if created {
					fmt.Fprintf(out, "admin created: %s\n", user.Email)
				} else {
					fmt.Fprintf(out, "admin password reset: %s\n", user.Email)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrador", "display name for a new admin")
	cmd.Flags().StringVar(&email, "email", "admin@maxieducacao.com", "admin email")
	cmd.Flags().StringVar(&password, "password", "admin123", "new password")
	return cmd
}

// withDB loads config, connects, runs fn and closes the pool.
func withDB(fn func(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(cfg, db, logger)
}

// withSQL is withDB for tasks that need the raw pool.
func withSQL(fn func(db *sql.DB, logger *zap.Logger) error) error {
	return withDB(func(_ *config.Config, db *gorm.DB, logger *zap.Logger) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return fn(sqlDB, logger)
	})
}
