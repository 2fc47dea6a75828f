package sideeffects

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, e Entry) error

	// List devuelve las entradas en orden de inserción (el orden del documento).
	List(ctx context.Context, filter ListFilter) ([]Entry, error)

	// DeleteByMedication borra todas las entradas del medicamento y devuelve cuántas.
	DeleteByMedication(ctx context.Context, medicationID string) (int, error)

	// DeleteOlderThan borra las entradas con Timestamp < cutoff y devuelve cuántas.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type ListFilter struct {
	MedicationID string
	From         *time.Time
	To           *time.Time
}
