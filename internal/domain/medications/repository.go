package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	List(ctx context.Context, filter ListFilter) ([]Medication, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Status StatusFilter // default: all
}
