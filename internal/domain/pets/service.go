package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-notes/internal/platform/validation"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("pet not found")
	ErrNotAuthorized = errors.New("not authorized")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name            string
	Species         string
	Breed           string
	Sex             string
	ColorMarkings   string
	MicrochipNumber string
	Neutered        *bool
	BirthDate       *time.Time
	AdoptionDate    *time.Time

	// Invalid trae fallos detectados al decodificar (fechas mal formadas);
	// se reportan junto con los del modelo.
	Invalid *validation.Error
}

// DatePatch distingue "no enviado" de "enviado como null" en un PATCH.
type DatePatch struct {
	Present bool
	Value   *time.Time
}

// BoolPatch es lo mismo para neutered (null = volver a "desconocido").
type BoolPatch struct {
	Present bool
	Value   *bool
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name            *string
	Species         *string
	Breed           *string
	Sex             *string
	ColorMarkings   *string
	MicrochipNumber *string
	Neutered        BoolPatch
	BirthDate       DatePatch
	AdoptionDate    DatePatch

	Invalid *validation.Error
}

// Create arma una mascota del caller. Si falla la validación no se persiste nada
// y el error es *validation.Error.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:              uuid.NewString(),
		OwnerUserID:     ownerUserID,
		Name:            strings.TrimSpace(in.Name),
		Species:         strings.TrimSpace(in.Species),
		Breed:           strings.TrimSpace(in.Breed),
		Sex:             strings.TrimSpace(in.Sex),
		ColorMarkings:   strings.TrimSpace(in.ColorMarkings),
		MicrochipNumber: strings.TrimSpace(in.MicrochipNumber),
		Neutered:        in.Neutered,
		BirthDate:       toDate(in.BirthDate),
		AdoptionDate:    toDate(in.AdoptionDate),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := validate(p, in.Invalid); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// New devuelve una mascota en blanco del caller (contexto de formulario, no persiste).
func (s *Service) New(ownerUserID string) Pet {
	return Pet{OwnerUserID: ownerUserID}
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Update aplica un PATCH sobre current. Si la validación falla, devuelve current
// sin cambios junto con el *validation.Error; nada se persiste.
func (s *Service) Update(ctx context.Context, current Pet, in UpdateInput) (Pet, error) {
	next := current

	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		next.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		next.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		next.Sex = strings.TrimSpace(*in.Sex)
	}
	if in.ColorMarkings != nil {
		next.ColorMarkings = strings.TrimSpace(*in.ColorMarkings)
	}
	if in.MicrochipNumber != nil {
		next.MicrochipNumber = strings.TrimSpace(*in.MicrochipNumber)
	}
	if in.Neutered.Present {
		next.Neutered = nil
		if in.Neutered.Value != nil {
			v := *in.Neutered.Value
			next.Neutered = &v
		}
	}
	if in.BirthDate.Present {
		next.BirthDate = toDate(in.BirthDate.Value)
	}
	if in.AdoptionDate.Present {
		next.AdoptionDate = toDate(in.AdoptionDate.Value)
	}

	if err := validate(next, in.Invalid); err != nil {
		return current, err
	}

	next.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

// Delete borra la mascota y, atómicamente, todas sus notas.
func (s *Service) Delete(ctx context.Context, p Pet) (int, error) {
	if strings.TrimSpace(p.ID) == "" {
		return 0, ErrNotFound
	}
	return s.repo.Delete(ctx, p.ID)
}

func validate(p Pet, decoded *validation.Error) error {
	v := validation.New()
	v.Merge(decoded)
	v.Required("name", p.Name)
	v.Required("species", p.Species)
	return v.Err()
}

// toDate trunca a fecha de calendario (UTC, medianoche).
func toDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	out := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &out
}
