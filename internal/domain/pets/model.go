package pets

import "time"

// DateLayout es el formato de las fechas de calendario (birth_date, adoption_date).
const DateLayout = "2006-01-02"

// Pet representa el perfil de una mascota. Siempre tiene exactamente un dueño.
type Pet struct {
	ID          string
	OwnerUserID string // inmutable después de crear

	Name    string
	Species string
	Breed   string
	Sex     string

	ColorMarkings   string
	MicrochipNumber string
	Neutered        *bool

	BirthDate    *time.Time
	AdoptionDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
