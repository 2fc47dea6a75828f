package jsonfile

import (
	"context"
	"errors"
	"sort"
	"strings"

	"meditracker/internal/domain/medications"
)

type medicationRepo struct {
	store *Store
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := s.doc.Medications[m.ID]; exists {
		return errors.New("medication already exists")
	}

	s.doc.Medications[m.ID] = toMedicationRecord(m)
	return s.persistLocked()
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := s.doc.Medications[m.ID]; !exists {
		return medications.ErrNotFound
	}

	s.doc.Medications[m.ID] = toMedicationRecord(m)
	return s.persistLocked()
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.doc.Medications[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return toMedication(id, rec), nil
}

func (r *medicationRepo) List(ctx context.Context, filter medications.ListFilter) ([]medications.Medication, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for id, rec := range s.doc.Medications {
		m := toMedication(id, rec)
		switch filter.Status {
		case medications.StatusActive:
			if !m.Active {
				continue
			}
		case medications.StatusArchived:
			if m.Active {
				continue
			}
		}
		out = append(out, m)
	}

	// El documento guarda un map: orden estable por created_at asc.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.doc.Medications[id]; !exists {
		return medications.ErrNotFound
	}
	delete(s.doc.Medications, id)
	return s.persistLocked()
}

func toMedicationRecord(m medications.Medication) medicationRecord {
	return medicationRecord{
		Name:          m.Name,
		Dosage:        m.Dosage,
		Frequency:     m.Frequency,
		Times:         m.Times,
		Notes:         m.Notes,
		CreatedDate:   m.CreatedAt,
		Active:        m.Active,
		ArchivedDate:  m.ArchivedAt,
		ArchiveReason: m.ArchiveReason,
	}
}

func toMedication(id string, rec medicationRecord) medications.Medication {
	return medications.Medication{
		ID:            id,
		Name:          rec.Name,
		Dosage:        rec.Dosage,
		Frequency:     rec.Frequency,
		Times:         rec.Times,
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedDate,
		Active:        rec.Active,
		ArchivedAt:    rec.ArchivedDate,
		ArchiveReason: rec.ArchiveReason,
	}
}
