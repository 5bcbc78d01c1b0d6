package notes

import "context"

type Repository interface {
	Create(ctx context.Context, n Note) error
	GetByID(ctx context.Context, id string) (Note, error)

	// ListByPet devuelve las notas ordenadas por note_date desc;
	// empates: la insertada más recientemente primero.
	ListByPet(ctx context.Context, petID string) ([]Note, error)

	// Delete borra exactamente una nota (sin cascada).
	Delete(ctx context.Context, id string) error
}
