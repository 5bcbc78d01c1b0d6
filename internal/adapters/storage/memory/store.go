package memory

import (
	"sync"

	"pet-notes/internal/domain/notes"
	"pet-notes/internal/domain/pets"
)

// Store guarda mascotas y notas bajo un único mutex, así el borrado en
// cascada es atómico (nadie ve la mascota borrada con notas vivas).
type Store struct {
	mu sync.RWMutex

	pets  map[string]pets.Pet
	notes map[string]storedNote

	nextSeq int64
}

// storedNote agrega el orden de inserción (desempate de note_date).
type storedNote struct {
	note notes.Note
	seq  int64
}

func NewStore() *Store {
	return &Store{
		pets:  make(map[string]pets.Pet),
		notes: make(map[string]storedNote),
	}
}

func (s *Store) Pets() pets.Repository {
	return &petRepo{s: s}
}

func (s *Store) Notes() notes.Repository {
	return &noteRepo{s: s}
}
