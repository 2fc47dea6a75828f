package medications

import "time"

// Medication representa un medicamento registrado por el usuario.
// Times lleva una entrada "HH:MM" por dosis diaria, siempre ordenadas ascendente.
type Medication struct {
	ID string

	Name      string
	Dosage    string
	Frequency string // etiqueta de display: "2 times daily"

	Times []string
	Notes string

	CreatedAt time.Time
	Active    bool

	// Solo presentes mientras Active == false.
	ArchivedAt    *time.Time
	ArchiveReason string
}
