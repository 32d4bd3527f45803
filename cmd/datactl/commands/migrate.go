package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/sqlstore"
)

// migrateCmd applies or inspects schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage schema migrations",
	Long: `Apply, roll back or inspect the embedded schema migrations.

Examples:
  datactl migrate up          # Apply pending migrations
  datactl migrate down        # Roll back every migration
  datactl migrate version     # Show the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqlstore.RunMigrations(db); err != nil {
			return err
		}
		return printVersion(cmd, db)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqlstore.MigrateDown(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		return printVersion(cmd, db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func printVersion(cmd *cobra.Command, db *sqlstore.DB) error {
	version, dirty, err := sqlstore.MigrationVersion(db)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s schema version %d", db.Dialect, version)
	if dirty {
		fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
