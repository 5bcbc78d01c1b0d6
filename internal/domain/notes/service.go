package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-notes/internal/domain/pets"
	"pet-notes/internal/platform/validation"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrNotFound = errors.New("note not found")
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
	Content  string
	NoteDate *time.Time
}

// Create agrega una nota a p. p ya tiene que estar autorizada (pets.Authorize).
func (s *Service) Create(ctx context.Context, p pets.Pet, in CreateInput) (Note, error) {
	if strings.TrimSpace(p.ID) == "" {
		return Note{}, pets.ErrNotFound
	}

	v := validation.New()
	v.Required("content", in.Content)
	if in.NoteDate == nil || in.NoteDate.IsZero() {
		v.Add("note_date", validation.MsgBlank)
	}
	if err := v.Err(); err != nil {
		return Note{}, err
	}

	y, m, d := in.NoteDate.Date()
	n := Note{
		ID:        uuid.NewString(),
		PetID:     p.ID,
		Content:   strings.TrimSpace(in.Content),
		NoteDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// GetForPet resuelve una nota dentro de p. Si la nota existe pero es de otra
// mascota, es ErrNotFound (nunca se reasigna).
func (s *Service) GetForPet(ctx context.Context, p pets.Pet, noteID string) (Note, error) {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return Note{}, ErrNotFound
	}
	n, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return Note{}, err
	}
	if n.PetID != p.ID {
		return Note{}, ErrNotFound
	}
	return n, nil
}

func (s *Service) ListForPet(ctx context.Context, p pets.Pet) ([]Note, error) {
	return s.repo.ListByPet(ctx, p.ID)
}

func (s *Service) Delete(ctx context.Context, n Note) error {
	if strings.TrimSpace(n.ID) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, n.ID)
}

// SummariesForPet implementa pets.NoteLister (perfil de mascota con sus notas).
func (s *Service) SummariesForPet(ctx context.Context, petID string) ([]pets.NoteSummary, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(n Note, _ int) pets.NoteSummary {
		return pets.NoteSummary{
			ID:        n.ID,
			Content:   n.Content,
			NoteDate:  n.NoteDate,
			CreatedAt: n.CreatedAt,
		}
	}), nil
}
