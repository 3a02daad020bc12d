package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/logger"
)

const (
	maxRetries = 5
	retryDelay = 2 * time.Second
)

// Open connects to the configured store and returns a bun handle for it.
// The connection is pinged with retries so the service can start before the
// database container is ready.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	dsn, err := cfg.ConnString()
	if err != nil {
		return nil, err
	}

	var sqldb *sql.DB
	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to %s (attempt %d/%d)", cfg.Driver, i+1, maxRetries))
		sqldb, err = openSQL(cfg.Driver, dsn)
		if err == nil {
			err = sqldb.PingContext(ctx)
			if err == nil {
				break
			}
			sqldb.Close()
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to %s: %v", cfg.Driver, err))
		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.Driver, maxRetries, err)
	}

	bunDB, err := wrap(cfg, sqldb)
	if err != nil {
		sqldb.Close()
		return nil, err
	}
	if cfg.LogQueries {
		bunDB.AddQueryHook(NewQueryHook(log))
	}

	log.Info("DATABASE", fmt.Sprintf("✅ %s connection successful", cfg.Driver))
	return bunDB, nil
}

// OpenSQLiteMemory returns an empty private in-memory database. Each call
// gets its own database.
func OpenSQLiteMemory() (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	if err != nil {
		return nil, err
	}
	return wrap(config.DatabaseConfig{Driver: config.DriverSQLite}, sqldb)
}

func openSQL(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case config.DriverPostgres:
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), nil
	case config.DriverSQLite:
		return sql.Open(sqliteshim.ShimName, dsn)
	case config.DriverMySQL:
		return sql.Open("mysql", dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func wrap(cfg config.DatabaseConfig, sqldb *sql.DB) (*bun.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		applyPool(cfg, sqldb)
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case config.DriverMySQL:
		applyPool(cfg, sqldb)
		return bun.NewDB(sqldb, mysqldialect.New()), nil
	case config.DriverSQLite:
		// A single connection keeps in-memory databases alive and serializes
		// writers, which SQLite requires anyway.
		sqldb.SetMaxOpenConns(1)
		sqldb.SetMaxIdleConns(1)
		sqldb.SetConnMaxLifetime(0)
		if _, err := sqldb.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func applyPool(cfg config.DatabaseConfig, sqldb *sql.DB) {
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	}
}
