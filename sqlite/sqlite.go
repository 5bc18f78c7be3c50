// Package sqlite provides SQLite-based storage implementations for catalogo services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string

	// Target schema version. Zero means the latest one. Lowering it is
	// only useful to build databases in an older layout.
	SchemaVersion int
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and migrates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	// This also keeps an in-memory database alive for the lifetime of DB.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.migrate(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Version returns the schema version recorded in the database file.
func (db *DB) Version(ctx context.Context) (int, error) {
	var v int
	err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}

// migrations holds the schema history. Entry i upgrades a database from
// version i to version i+1. Migrations only ever add to the schema.
var migrations = []string{
	// 1: catalog table with type, item name and code segment indexes.
	`
	CREATE TABLE IF NOT EXISTS catalog (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tipo_bien TEXT NOT NULL,
		grupo_bien TEXT NOT NULL,
		clase_bien TEXT NOT NULL,
		familia_bien TEXT NOT NULL,
		item_bien TEXT NOT NULL,
		nombre_item TEXT NOT NULL DEFAULT '',
		nombre_grupo TEXT NOT NULL DEFAULT '',
		nombre_clase TEXT NOT NULL DEFAULT '',
		nombre_familia TEXT NOT NULL DEFAULT '',
		nombre_unidad_medida TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_catalog_tipo_bien ON catalog(tipo_bien);
	CREATE INDEX IF NOT EXISTS idx_catalog_nombre_item ON catalog(nombre_item);
	CREATE INDEX IF NOT EXISTS idx_catalog_grupo_bien ON catalog(grupo_bien);
	CREATE INDEX IF NOT EXISTS idx_catalog_clase_bien ON catalog(clase_bien);
	CREATE INDEX IF NOT EXISTS idx_catalog_familia_bien ON catalog(familia_bien);
	CREATE INDEX IF NOT EXISTS idx_catalog_item_bien ON catalog(item_bien);
	`,

	// 2: hierarchy label indexes used to populate the filter options.
	`
	CREATE INDEX IF NOT EXISTS idx_catalog_nombre_grupo ON catalog(nombre_grupo);
	CREATE INDEX IF NOT EXISTS idx_catalog_nombre_clase ON catalog(nombre_clase);
	CREATE INDEX IF NOT EXISTS idx_catalog_nombre_familia ON catalog(nombre_familia);
	`,

	// 3: derived category and SIGA code as first-class columns, sync tracking.
	`
	ALTER TABLE catalog ADD COLUMN categoria TEXT NOT NULL DEFAULT '';
	ALTER TABLE catalog ADD COLUMN siga_code TEXT NOT NULL DEFAULT '';

	UPDATE catalog SET
		categoria = CASE WHEN nombre_unidad_medida = 'OBRA' THEN 'O' ELSE tipo_bien END,
		siga_code = grupo_bien || clase_bien || familia_bien || item_bien;

	CREATE INDEX IF NOT EXISTS idx_catalog_categoria ON catalog(categoria);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_catalog_siga_code ON catalog(siga_code);

	CREATE TABLE IF NOT EXISTS sync_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		run_id TEXT NOT NULL,
		status TEXT NOT NULL,
		inserted INTEGER NOT NULL DEFAULT 0,
		feed_hash TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL DEFAULT ''
	);
	`,
}

// LatestVersion is the schema version created by Open.
var LatestVersion = len(migrations)

// migrate applies every pending migration, each in its own transaction.
func (db *DB) migrate() error {
	ctx := context.Background()

	target := LatestVersion
	if db.SchemaVersion > 0 && db.SchemaVersion < target {
		target = db.SchemaVersion
	}

	current, err := db.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > LatestVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, LatestVersion)
	}

	for v := current; v < target; v++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
	}

	return nil
}
