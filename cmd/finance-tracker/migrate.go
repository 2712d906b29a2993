package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var flagMigrationsPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|version]",
	Short: "Apply, roll back or inspect SQL migrations",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&flagMigrationsPath, "path", "", "Migrations directory (default from MIGRATIONS_PATH or db/migrations)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	action := "up"
	if len(args) > 0 {
		action = args[0]
	}

	path := flagMigrationsPath
	if path == "" {
		path = cfg.Database.MigrationsPath
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db, path)
	if err := runner.WaitForDatabase(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch action {
	case "up":
		return runner.RunMigrations()
	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		return runner.Rollback(steps)
	case "version":
		version, dirty, err := runner.GetMigrationStatus()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "No migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Version: %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate action %q, want up, down or version", action)
	}
}
