package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/db"
	"github.com/hearthhq/hearth/pkg/logging"
	"github.com/hearthhq/hearth/pkg/migrations"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending database migrations in order to bring the
schema up to date. Each migration and its bookkeeping record are applied
in a single transaction.

Example:
  hearthctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := newMigrationRunner()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := runner.ApplyAll(); err != nil {
			fmt.Fprintln(os.Stderr, "Migration failed:", err)
			os.Exit(1)
		}

		fmt.Println("Migrations complete")
	},
}

// dbRollbackCmd represents the db rollback command
var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the most recent migration",
	Long: `Roll back the most recently applied migration.

Running this when no migrations have been applied is a no-op.

Example:
  hearthctl db rollback`,
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := newMigrationRunner()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := runner.RollbackLast(); err != nil {
			fmt.Fprintln(os.Stderr, "Rollback failed:", err)
			os.Exit(1)
		}

		fmt.Println("Rollback complete")
	},
}

// dbStatusCmd represents the db status command
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of each migration",
	Long:  `Show each registered migration and whether it has been applied.`,
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := newMigrationRunner()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		statuses, err := runner.Status()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to get status:", err)
			os.Exit(1)
		}

		for _, status := range statuses {
			state := "pending"
			if status.Applied {
				state = "applied"
			}
			fmt.Printf("%-40s %s\n", status.Name, state)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbRollbackCmd)
	dbCmd.AddCommand(dbStatusCmd)
}

func newMigrationRunner() (*migrations.Runner, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}

	log := logging.New(os.Getenv("HEARTH_ENV"))
	runner := migrations.NewRunner(database, log)
	if err := runner.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize migration bookkeeping: %w", err)
	}
	return runner, nil
}
