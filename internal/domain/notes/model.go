package notes

import "time"

// Note es una entrada del log de una mascota. Se escribe una vez:
// no hay update, solo alta y baja.
// No tiene dueño propio; el acceso se decide por la mascota.
type Note struct {
	ID    string
	PetID string // inmutable

	Content  string
	NoteDate time.Time // fecha de calendario, UTC medianoche

	CreatedAt time.Time
}
