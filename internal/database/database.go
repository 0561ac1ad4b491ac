package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose has no exported constant for libSQL; it speaks the SQLite dialect.
const dialectTurso goose.Dialect = "turso"

// DBTX is satisfied by both *sql.DB and *sql.Tx so stores can run inside a
// caller-owned transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// InitDB opens the database and ensures the schema is up to date.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, func(), error) {
	// For local-only databases, dbPath is the filename.
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", localDSN(dbPath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
		if err = migrate(db, goose.DialectSQLite3); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate local db: %w", err)
		}
		return db, teardown(db), nil
	}

	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open db %s: %s", primaryUrl, err)
		return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err = migrate(db, dialectTurso); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate remote db: %w", err)
	}
	return db, teardown(db), nil
}

// localDSN enables foreign keys and a busy timeout on every pooled connection.
// _txlock=immediate makes BEGIN take the write lock up front so a
// read-modify-write inside a transaction cannot lose an update.
func localDSN(dbPath string) string {
	params := "_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	if dbPath == ":memory:" {
		return "file::memory:?" + params
	}
	return "file:" + dbPath + "?" + params + "&_journal_mode=WAL"
}

func teardown(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn("Error closing database connection", "error", err)
		}
	}
}

func migrate(db *sql.DB, dialect goose.Dialect) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(log.Default())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	log.Info("Database initialized successfully")
	return nil
}
