package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/sqlstore"
)

var (
	// Global flags
	dbURL  string
	dbPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "datactl",
	Short: "Administer the records datastore",
	Long: `datactl applies schema migrations and runs maintenance jobs against the
records datastore used by the data backend.

It connects to Postgres when --db (or DATABASE_URL) is set and to the
SQLite file at --db-path (or DB_PATH) otherwise.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", envOr("DB_PATH", "data-backend.db"), "SQLite database file, used when --db is empty")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDB connects to the configured datastore.
func openDB(ctx context.Context) (*sqlstore.DB, error) {
	db, err := sqlstore.Open(ctx, dbURL, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
