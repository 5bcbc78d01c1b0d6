package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-notes/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
	d  Dialect
}

const petColumns = `
	id, owner_user_id,
	name, species, breed, sex,
	color_markings, microchip_number, neutered,
	birth_date, adoption_date,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO pets (`+petColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
	`),
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.ColorMarkings,
		p.MicrochipNumber,
		boolArg(p.Neutered),
		dateArg(p.BirthDate),
		dateArg(p.AdoptionDate),
		r.d.timeArg(p.CreatedAt),
		r.d.timeArg(p.UpdatedAt),
	)
	return err
}

// Update nunca toca owner_user_id ni created_at.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`
		UPDATE pets
		SET
			name = ?,
			species = ?,
			breed = ?,
			sex = ?,
			color_markings = ?,
			microchip_number = ?,
			neutered = ?,
			birth_date = ?,
			adoption_date = ?,
			updated_at = ?
		WHERE id = ?
	`),
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.ColorMarkings,
		p.MicrochipNumber,
		boolArg(p.Neutered),
		dateArg(p.BirthDate),
		dateArg(p.AdoptionDate),
		r.d.timeArg(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, r.d.Rebind(`
		SELECT`+petColumns+`
		FROM pets
		WHERE id = ?
	`), id)

	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(`
		SELECT`+petColumns+`
		FROM pets
		WHERE owner_user_id = ?
		ORDER BY created_at ASC, id ASC
	`), ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra notas y mascota en una transacción. La FK tiene ON DELETE
// CASCADE, pero el DELETE explícito de notas da la cuenta exacta.
func (r *PetsRepo) Delete(ctx context.Context, id string) (n int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, r.d.Rebind(`DELETE FROM notes WHERE pet_id = ?`), id)
	if err != nil {
		return 0, err
	}
	removed, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, r.d.Rebind(`DELETE FROM pets WHERE id = ?`), id)
	if err != nil {
		return 0, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return 0, pets.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return int(removed), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p        pets.Pet
		neutered sql.NullBool
		bd, ad   dateValue
		created  timeValue
		updated  timeValue
	)
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&p.ColorMarkings,
		&p.MicrochipNumber,
		&neutered,
		&bd,
		&ad,
		&created,
		&updated,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Neutered = boolPtr(neutered)
	p.BirthDate = bd.ptr()
	p.AdoptionDate = ad.ptr()
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	return p, nil
}
