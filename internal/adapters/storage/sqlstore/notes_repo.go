package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-notes/internal/domain/notes"
)

type NotesRepo struct {
	db *sql.DB
	d  Dialect
}

func (r *NotesRepo) Create(ctx context.Context, n notes.Note) error {
	// seq lo asigna la base (BIGSERIAL / AUTOINCREMENT)
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO notes (id, pet_id, content, note_date, created_at)
		VALUES (?,?,?,?,?)
	`),
		n.ID,
		n.PetID,
		n.Content,
		dateArg(&n.NoteDate),
		r.d.timeArg(n.CreatedAt),
	)
	return err
}

func (r *NotesRepo) GetByID(ctx context.Context, id string) (notes.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notes.Note{}, notes.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, r.d.Rebind(`
		SELECT id, pet_id, content, note_date, created_at
		FROM notes
		WHERE id = ?
	`), id)

	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return notes.Note{}, notes.ErrNotFound
	}
	return n, err
}

func (r *NotesRepo) ListByPet(ctx context.Context, petID string) ([]notes.Note, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(`
		SELECT id, pet_id, content, note_date, created_at
		FROM notes
		WHERE pet_id = ?
		ORDER BY note_date DESC, seq DESC
	`), petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notes.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notes.ErrNotFound
	}
	return nil
}

func scanNote(row rowScanner) (notes.Note, error) {
	var (
		n       notes.Note
		d       dateValue
		created timeValue
	)
	if err := row.Scan(&n.ID, &n.PetID, &n.Content, &d, &created); err != nil {
		return notes.Note{}, err
	}
	n.NoteDate = d.Time
	n.CreatedAt = created.Time
	return n, nil
}
