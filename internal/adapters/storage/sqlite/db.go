// Package sqlite es el backend de archivo único (modernc, sin cgo),
// pensado para correr local sin Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pet-notes/internal/adapters/storage/sqlstore"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultPath = "pet-notes.db"

// Open abre el archivo con foreign_keys activado en cada conexión.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", withPragmas(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// un solo writer; evita SQLITE_BUSY entre conexiones del pool
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// NewStore abre, aplica el schema y devuelve los repos.
func NewStore(ctx context.Context, path string) (*sqlstore.Store, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sqlstore.New(db, sqlstore.SQLite), nil
}

// Fechas como TEXT YYYY-MM-DD (ordenan bien lexicográficamente),
// timestamps como TEXT UTC de ancho fijo (ver sqlstore.Dialect).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS pets (
		id               TEXT PRIMARY KEY,
		owner_user_id    TEXT NOT NULL,
		name             TEXT NOT NULL,
		species          TEXT NOT NULL,
		breed            TEXT NOT NULL DEFAULT '',
		sex              TEXT NOT NULL DEFAULT '',
		color_markings   TEXT NOT NULL DEFAULT '',
		microchip_number TEXT NOT NULL DEFAULT '',
		neutered         INTEGER NULL,
		birth_date       TEXT NULL,
		adoption_date    TEXT NULL,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_owner_user_id ON pets (owner_user_id)`,
	`CREATE TABLE IF NOT EXISTS notes (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		pet_id     TEXT NOT NULL REFERENCES pets (id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		note_date  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_pet_id_order ON notes (pet_id, note_date DESC, seq DESC)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}
