package moods

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, e Entry) error

	// List devuelve las entradas en orden de inserción (el orden del documento).
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	From *time.Time
}
