package jsonfile

import (
	"context"
	"errors"
	"strings"
	"time"

	"meditracker/internal/domain/sideeffects"
)

type sideEffectRepo struct {
	store *Store
}

func (r *sideEffectRepo) Append(ctx context.Context, e sideeffects.Entry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("side effect id required")
	}

	s.doc.SideEffects = append(s.doc.SideEffects, toSideEffectRecord(e))
	return s.persistLocked()
}

func (r *sideEffectRepo) List(ctx context.Context, filter sideeffects.ListFilter) ([]sideeffects.Entry, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]sideeffects.Entry, 0)
	for _, rec := range s.doc.SideEffects {
		e := toSideEffect(rec)
		if filter.MedicationID != "" && e.MedicationID != filter.MedicationID {
			continue
		}
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Timestamp.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *sideEffectRepo) DeleteByMedication(ctx context.Context, medicationID string) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]sideEffectRecord, 0, len(s.doc.SideEffects))
	removed := 0
	for _, rec := range s.doc.SideEffects {
		if rec.MedID == medicationID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}

	if removed == 0 {
		return 0, nil // nada que persistir
	}

	s.doc.SideEffects = kept
	return removed, s.persistLocked()
}

func (r *sideEffectRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]sideEffectRecord, 0, len(s.doc.SideEffects))
	removed := 0
	for _, rec := range s.doc.SideEffects {
		if rec.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}

	if removed == 0 {
		return 0, nil
	}

	s.doc.SideEffects = kept
	return removed, s.persistLocked()
}

func toSideEffectRecord(e sideeffects.Entry) sideEffectRecord {
	return sideEffectRecord{
		ID:        e.ID,
		MedID:     e.MedicationID,
		Timestamp: e.Timestamp,
		Effect:    e.Effect,
		Severity:  int(e.Severity),
		Notes:     e.Notes,
	}
}

func toSideEffect(rec sideEffectRecord) sideeffects.Entry {
	return sideeffects.Entry{
		ID:           rec.ID,
		MedicationID: rec.MedID,
		Timestamp:    rec.Timestamp,
		Effect:       rec.Effect,
		Severity:     sideeffects.Severity(rec.Severity),
		Notes:        rec.Notes,
	}
}
