package sideeffects

import "time"

// Entry es un reporte de efecto secundario. MedicationID es una referencia
// no-propietaria: el medicamento puede haberse borrado después, y la entrada
// queda huérfana (el display cae a "Unknown (Deleted)").
type Entry struct {
	ID           string
	MedicationID string

	Timestamp time.Time

	Effect   string
	Severity Severity
	Notes    string
}
