package moods

import "time"

// Entry es un registro de estado de ánimo, independiente de los medicamentos.
type Entry struct {
	ID        string
	Timestamp time.Time
	Score     int // 1..10
	Notes     string
}
