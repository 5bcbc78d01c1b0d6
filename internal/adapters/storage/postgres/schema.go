package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema es idempotente. owner_user_id es el id del proveedor de identidad
// (no hay tabla users local).
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
		neutered         BOOLEAN NULL,
		birth_date       DATE NULL,
		adoption_date    DATE NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_owner_user_id ON pets (owner_user_id)`,
	`CREATE TABLE IF NOT EXISTS notes (
		seq        BIGSERIAL,
		id         TEXT PRIMARY KEY,
		pet_id     TEXT NOT NULL REFERENCES pets (id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		note_date  DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_pet_id_order ON notes (pet_id, note_date DESC, seq DESC)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply postgres schema: %w", err)
		}
	}
	return nil
}
