package jsonfile

import (
	"context"
	"errors"
	"strings"

	"meditracker/internal/domain/moods"
)

type moodRepo struct {
	store *Store
}

func (r *moodRepo) Append(ctx context.Context, e moods.Entry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("mood entry id required")
	}

	s.doc.MoodLogs = append(s.doc.MoodLogs, moodRecord{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		MoodScore: e.Score,
		Notes:     e.Notes,
	})
	return s.persistLocked()
}

func (r *moodRepo) List(ctx context.Context, filter moods.ListFilter) ([]moods.Entry, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]moods.Entry, 0)
	for _, rec := range s.doc.MoodLogs {
		if filter.From != nil && rec.Timestamp.Before(*filter.From) {
			continue
		}
		out = append(out, moods.Entry{
			ID:        rec.ID,
			Timestamp: rec.Timestamp,
			Score:     rec.MoodScore,
			Notes:     rec.Notes,
		})
	}
	return out, nil
}
