package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/gastroglobe/internal/client/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// RunMigrations brings the kv table of db up to date for dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect.Name); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, migrations.Dir(dialect.Name))
}

// Open connects to the backend named by driver and returns the repository
// with its closer. For badger an empty dsn or ":memory:" opens an in-memory
// store.
func Open(ctx context.Context, driver, dsn string) (Repository, func() error, error) {
	switch driver {
	case DriverSQLite, "":
		return openSQL(ctx, "sqlite", dsn, SQLite)
	case DriverPostgres:
		return openSQL(ctx, "pgx", dsn, Postgres)
	case DriverBadger:
		opts := badger.DefaultOptions(dsn).WithLogger(nil)
		if dsn == "" || dsn == ":memory:" {
			opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
		}
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open badger at %q: %w", dsn, err)
		}
		return NewBadgerRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func openSQL(ctx context.Context, driverName, dsn string, dialect Dialect) (Repository, func() error, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", dialect.Name, err)
	}
	if dialect.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate %s: %w", dialect.Name, err)
	}

	return NewSQLRepository(db, dialect), db.Close, nil
}
