package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"clinic-services/cmd/bootstrap"
	"clinic-services/config"
	"clinic-services/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic",
		Short:        "Clinic services: account, hospital, timetable and document",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(reindexCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serviceArg(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("service name required: %s", strings.Join(config.Services, ", "))
	}
	if !config.IsKnownService(args[0]) {
		return fmt.Errorf("unknown service %q, want one of: %s", args[0], strings.Join(config.Services, ", "))
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve <service>",
		Short: "Start the HTTP server of one service",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), serviceArg),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New(args[0])
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Run the application
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <service> [up|down]",
		Short: "Apply or revert the database migrations of one service",
		Args: cobra.MatchAll(cobra.RangeArgs(1, 2), serviceArg, func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 && args[1] != "up" && args[1] != "down" {
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			up := len(args) < 2 || args[1] == "up"
			if err := database.Migrate(cfg.DB, args[0], up); err != nil {
				return err
			}
			logrus.Infof("Migrations for %s applied (up=%v)", args[0], up)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin, manager, doctor and user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.Open(config.ServiceAccount)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			n, err := app.Seed(ctx)
			if err != nil {
				return err
			}
			app.Log.Infof("Seeded %d accounts", n)
			return nil
		},
	}
}

func reindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Push documents whose index write failed to the search index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.Open(config.ServiceDocument)
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			app.Log.Infof("Reindexed %d documents", n)
			return nil
		},
	}
}
