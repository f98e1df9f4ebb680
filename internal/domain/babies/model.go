package babies

import "time"

// Baby es el perfil de un bebé. AgeInMonths se deriva de BirthDate (stats.AgeInMonths)
// y nunca se toma del cliente.
type Baby struct {
	ID     string
	UserID string

	Name      string
	BirthDate time.Time // solo fecha
	Gender    string

	Weight string // texto libre, p.ej. "7.2 kg"
	Height string // p.ej. "65 cm"

	HealthIssues string
	Allergies    string
	Notes        string

	AgeInMonths int

	CreatedAt time.Time
	UpdatedAt time.Time
}
