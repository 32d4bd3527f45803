package sqlstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the database's dialect.
// It is safe to call on every startup; already-applied migrations are skipped.
func RunMigrations(db *DB) error {
	m, done, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer done()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// MigrateDown rolls back every applied migration.
func MigrateDown(db *DB) error {
	m, done, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer done()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}

	return nil
}

// MigrationVersion reports the current schema version and whether the last
// migration failed half way.
func MigrationVersion(db *DB) (uint, bool, error) {
	m, done, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}
	defer done()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}

	return version, dirty, nil
}

// newMigrator builds a migrator for db. The Postgres driver pins a connection
// for its advisory lock and closes its pool on Close, so it gets a pool of its
// own; done releases it. SQLite migrates through the writer, which may be an
// in-memory database that only exists on that pool.
func newMigrator(db *DB) (*migrate.Migrate, func(), error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+db.Dialect.String())
	if err != nil {
		return nil, nil, fmt.Errorf("create migration source: %w", err)
	}

	var dbDriver database.Driver
	switch {
	case db.Dialect == DialectPostgres && db.url != "":
		pool, err := sql.Open("pgx", db.url)
		if err != nil {
			return nil, nil, fmt.Errorf("open migration pool: %w", err)
		}
		dbDriver, err = migratepgx.WithInstance(pool, &migratepgx.Config{})
		if err != nil {
			_ = pool.Close()
			return nil, nil, fmt.Errorf("create migration db driver: %w", err)
		}
	case db.Dialect == DialectPostgres:
		dbDriver, err = migratepgx.WithInstance(db.Writer, &migratepgx.Config{})
	default:
		dbDriver, err = migratesqlite.WithInstance(db.Writer, &migratesqlite.Config{})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, db.Dialect.String(), dbDriver)
	if err != nil {
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}

	done := func() {}
	if db.Dialect == DialectPostgres && db.url != "" {
		done = func() {
			if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
				slog.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
			}
		}
	}

	return m, done, nil
}
