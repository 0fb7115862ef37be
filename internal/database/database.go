package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jengzang/studyspots-backend-go/internal/logger"
)

var (
	db   *sqlx.DB
	once sync.Once
)

func init() {
	// modernc registers itself as "sqlite"; make sure sqlx rebinds it with ?
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Config holds database configuration
type Config struct {
	Driver string // sqlite | postgres
	Path   string // sqlite file, ":memory:" for tests
	URL    string // postgres DSN
}

// Open connects to the configured database and applies connection settings.
// Callers own the returned handle.
func Open(cfg Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return openSQLite(cfg.Path)
	case "postgres":
		if cfg.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		conn, err := sqlx.Connect("postgres", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openSQLite(path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// sqliteDSN carries the connection pragmas in the DSN so the driver applies
// them to every pooled connection, not only the first one
func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	// Enable WAL mode for better concurrency
	pragmas += "&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	return "file:" + path + "?" + pragmas
}

// Init opens the process-wide database and runs pending migrations
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		db, err = Open(cfg)
		if err != nil {
			return
		}
		if err = NewMigrationManager(db).RunMigrations(); err != nil {
			return
		}
		logger.L().Info("database initialized", zap.String("driver", db.DriverName()), zap.String("path", cfg.Path))
	})

	return err
}

// GetDB returns the database instance
func GetDB() *sqlx.DB {
	if db == nil {
		logger.L().Fatal("database not initialized, call Init() first")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Transaction executes a function within a database transaction
func Transaction(conn *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := conn.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
