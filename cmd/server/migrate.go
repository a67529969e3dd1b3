package main

import (
	"fmt"
	"strconv"

	"github.com/blog-cms-api/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run the embedded database migrations.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back the last migration
  to N    - Migrate up or down to version N`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error { return db.RunMigrations() })
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error { return db.MigrateDown() })
	},
}

var migrateToCmd = &cobra.Command{
	Use:   "to VERSION",
	Short: "Migrate to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withDB(func(db *database.DB) error { return db.MigrateToVersion(uint(version)) })
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateToCmd)
	rootCmd.AddCommand(migrateCmd)
}

// withDB opens the configured database for the duration of fn
func withDB(fn func(db *database.DB) error) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
