// backend/src/database/database.go
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/strscout/backend/src/logger"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed migrations
var migrationsFS embed.FS

// DB is the shared connection pool. Dialect is the driver it was opened with.
var (
	DB      *sql.DB
	Dialect = DriverSQLite
)

// Open connects to SQLite (dsn is a file path, or ":memory:") or PostgreSQL
// (dsn is a connection URL).
func Open(driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch driver {
	case DriverSQLite, "":
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database at %s: %w", dsn, err)
		}
		// Limit open connections to 1 for SQLite to avoid locking issues
		db.SetMaxOpenConns(1)
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		db.SetMaxOpenConns(10)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return ":memory:?_pragma=foreign_keys(on)"
	}
	return fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", path)
}

// InitDB opens the shared pool and applies pending migrations.
func InitDB(driver, dsn string) error {
	db, err := Open(driver, dsn)
	if err != nil {
		return err
	}
	if driver == "" {
		driver = DriverSQLite
	}
	if err := RunMigrations(db, driver); err != nil {
		db.Close()
		return err
	}
	DB = db
	Dialect = driver
	logger.L.Info("Database connection established", "driver", driver)
	return nil
}

// RunMigrations applies the embedded migrations for driver.
func RunMigrations(db *sql.DB, driver string) error {
	var m *migrate.Migrate

	switch driver {
	case DriverSQLite, "":
		src, err := iofs.New(migrationsFS, "migrations/sqlite")
		if err != nil {
			return fmt.Errorf("could not load sqlite migrations: %w", err)
		}
		dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", dbDriver)
		if err != nil {
			return fmt.Errorf("migration instance creation failed: %w", err)
		}
	case DriverPostgres:
		src, err := iofs.New(migrationsFS, "migrations/postgres")
		if err != nil {
			return fmt.Errorf("could not load postgres migrations: %w", err)
		}
		dbDriver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
		if err != nil {
			return fmt.Errorf("could not create postgres migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", dbDriver)
		if err != nil {
			return fmt.Errorf("migration instance creation failed: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	logger.L.Info("Applying database migrations...", "driver", driver)
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.L.Info("No new database migrations to apply.")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.L.Info("Database migrations applied successfully.")
	return nil
}

// Rebind rewrites ? placeholders to $n when the pool is PostgreSQL.
func Rebind(query string) string {
	if Dialect != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Ping reports whether the shared pool is reachable.
func Ping() error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Ping()
}
