package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/uptrace/bun"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/logger"
)

//go:embed postgres/*.sql sqlite/*.sql mysql/*.sql
var files embed.FS

// Runner applies the embedded schema migrations for one dialect.
type Runner struct {
	bunDB    *bun.DB
	driver   string
	log      *logger.Logger
	migrator *migrate.Migrate
	src      source.Driver
	conn     *sql.Conn
}

// NewRunner creates a runner for bunDB. driver is one of the config.Driver*
// values and selects the migration directory.
func NewRunner(bunDB *bun.DB, driver string, log *logger.Logger) *Runner {
	return &Runner{
		bunDB:  bunDB,
		driver: driver,
		log:    log,
	}
}

// Initialize prepares the migration system
func (r *Runner) Initialize(ctx context.Context) error {
	src, err := iofs.New(files, r.driver)
	if err != nil {
		return fmt.Errorf("failed to open %s migrations: %w", r.driver, err)
	}

	dbDriver, err := r.databaseDriver(ctx)
	if err != nil {
		src.Close()
		return err
	}

	migrator, err := migrate.NewWithInstance("iofs", src, r.driver, dbDriver)
	if err != nil {
		src.Close()
		r.closeConn()
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	r.src = src
	r.migrator = migrator
	return nil
}

// databaseDriver borrows a dedicated connection for the server dialects.
// SQLite shares the handle, since an in-memory database lives on its only
// connection.
func (r *Runner) databaseDriver(ctx context.Context) (database.Driver, error) {
	switch r.driver {
	case config.DriverPostgres:
		conn, err := r.bunDB.DB.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
		}
		drv, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
		}
		r.conn = conn
		return drv, nil
	case config.DriverMySQL:
		conn, err := r.bunDB.DB.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
		}
		drv, err := mysql.WithConnection(ctx, conn, &mysql.Config{})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create mysql migration driver: %w", err)
		}
		r.conn = conn
		return drv, nil
	case config.DriverSQLite:
		drv, err := sqlite.WithInstance(r.bunDB.DB, &sqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite migration driver: %w", err)
		}
		return drv, nil
	default:
		return nil, fmt.Errorf("no migrations for driver %q", r.driver)
	}
}

// MigrateUp runs all pending migrations
func (r *Runner) MigrateUp(ctx context.Context) error {
	if r.migrator == nil {
		if err := r.Initialize(ctx); err != nil {
			return err
		}
	}

	version, dirty, err := r.migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		r.log.Warn("MIGRATION", fmt.Sprintf("Detected dirty migration at version %d, forcing it clean", version))
		if err := r.migrator.Force(int(version)); err != nil {
			return fmt.Errorf("failed to fix dirty migration: %w", err)
		}
	}

	if err := r.migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, _, err = r.migrator.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	r.log.LogDatabase("MIGRATE", r.driver, fmt.Sprintf("Current schema version: %d", version))
	return nil
}

// MigrateDown rolls back all migrations
func (r *Runner) MigrateDown(ctx context.Context) error {
	if r.migrator == nil {
		if err := r.Initialize(ctx); err != nil {
			return err
		}
	}

	if err := r.migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// MigrateTo migrates up or down to a specific version
func (r *Runner) MigrateTo(ctx context.Context, version uint) error {
	if r.migrator == nil {
		if err := r.Initialize(ctx); err != nil {
			return err
		}
	}

	if err := r.migrator.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	return nil
}

// Version reports the applied schema version; zero means none.
func (r *Runner) Version(ctx context.Context) (uint, error) {
	if r.migrator == nil {
		if err := r.Initialize(ctx); err != nil {
			return 0, err
		}
	}

	version, _, err := r.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return version, err
}

// Close releases the migration source and the borrowed connection. The shared
// *sql.DB stays open; migrate.Migrate.Close would close it for SQLite.
func (r *Runner) Close() error {
	var err error
	if r.src != nil {
		if srcErr := r.src.Close(); srcErr != nil {
			err = fmt.Errorf("error closing migrator source: %w", srcErr)
		}
		r.src = nil
	}
	r.closeConn()
	r.migrator = nil
	return err
}

func (r *Runner) closeConn() {
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

// Up opens a runner, applies every pending migration and closes it.
func Up(ctx context.Context, bunDB *bun.DB, driver string, log *logger.Logger) error {
	runner := NewRunner(bunDB, driver, log)
	defer runner.Close()
	return runner.MigrateUp(ctx)
}
