package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"meditracker/internal/domain/sideeffects"
)

// sideEffectRepo guarda las entradas en un slice para conservar el orden de
// inserción, igual que la lista del documento persistido.
type sideEffectRepo struct {
	mu      sync.RWMutex
	entries []sideeffects.Entry
}

func NewSideEffectRepo() sideeffects.Repository {
	return &sideEffectRepo{}
}

func (r *sideEffectRepo) Append(ctx context.Context, e sideeffects.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("side effect id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *sideEffectRepo) List(ctx context.Context, filter sideeffects.ListFilter) ([]sideeffects.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sideeffects.Entry, 0)
	for _, e := range r.entries {
		if !matchesSideEffectFilter(e, filter) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *sideEffectRepo) DeleteByMedication(ctx context.Context, medicationID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if e.MedicationID == medicationID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

func (r *sideEffectRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

func matchesSideEffectFilter(e sideeffects.Entry, filter sideeffects.ListFilter) bool {
	if filter.MedicationID != "" && e.MedicationID != filter.MedicationID {
		return false
	}
	if filter.From != nil && e.Timestamp.Before(*filter.From) {
		return false
	}
	if filter.To != nil && e.Timestamp.After(*filter.To) {
		return false
	}
	return true
}
