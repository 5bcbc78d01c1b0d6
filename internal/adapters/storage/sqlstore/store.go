// Package sqlstore implementa los repos de mascotas y notas sobre database/sql.
// Lo comparten los adapters postgres (pgx) y sqlite (modernc).
package sqlstore

import (
	"database/sql"

	"pet-notes/internal/domain/notes"
	"pet-notes/internal/domain/pets"
)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Pets() pets.Repository {
	return &PetsRepo{db: s.db, d: s.dialect}
}

func (s *Store) Notes() notes.Repository {
	return &NotesRepo{db: s.db, d: s.dialect}
}
