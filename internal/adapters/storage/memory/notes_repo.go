package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pet-notes/internal/domain/notes"
	"pet-notes/internal/domain/pets"
)

type noteRepo struct {
	s *Store
}

func (r *noteRepo) Create(ctx context.Context, n notes.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		return errors.New("note id required")
	}
	if _, exists := r.s.notes[n.ID]; exists {
		return errors.New("note already exists")
	}
	// igual que la FK en SQL: no hay notas huérfanas
	if _, ok := r.s.pets[n.PetID]; !ok {
		return fmt.Errorf("create note: %w", pets.ErrNotFound)
	}

	r.s.nextSeq++
	r.s.notes[n.ID] = storedNote{note: n, seq: r.s.nextSeq}
	return nil
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (notes.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sn, ok := r.s.notes[id]
	if !ok {
		return notes.Note{}, notes.ErrNotFound
	}
	return sn.note, nil
}

func (r *noteRepo) ListByPet(ctx context.Context, petID string) ([]notes.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]storedNote, 0)
	for _, sn := range r.s.notes {
		if sn.note.PetID == petID {
			matched = append(matched, sn)
		}
	}

	// note_date desc; misma fecha => la insertada después va primero
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.note.NoteDate.Equal(b.note.NoteDate) {
			return a.note.NoteDate.After(b.note.NoteDate)
		}
		return a.seq > b.seq
	})

	out := make([]notes.Note, 0, len(matched))
	for _, sn := range matched {
		out = append(out, sn.note)
	}
	return out, nil
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notes[id]; !ok {
		return notes.ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}
