package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// Delete borra la mascota y todas sus notas en una sola transacción.
	// Devuelve cuántas notas se borraron. ErrNotFound si la mascota no existe.
	Delete(ctx context.Context, id string) (int, error)
}
