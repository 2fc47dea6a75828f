package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"meditracker/internal/domain/moods"
)

// moodRepo guarda las entradas en un slice para conservar el orden de inserción.
type moodRepo struct {
	mu      sync.RWMutex
	entries []moods.Entry
}

func NewMoodRepo() moods.Repository {
	return &moodRepo{}
}

func (r *moodRepo) Append(ctx context.Context, e moods.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("mood entry id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *moodRepo) List(ctx context.Context, filter moods.ListFilter) ([]moods.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]moods.Entry, 0)
	for _, e := range r.entries {
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
