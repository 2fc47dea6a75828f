package export

import (
	"context"
	"time"

	"meditracker/internal/domain/medications"
	"meditracker/internal/domain/moods"
	"meditracker/internal/domain/sideeffects"
)

// Document es el mismo shape que el archivo persistido, más export_date.
// El export es lectura pura: no toca el store.
type Document struct {
	Medications map[string]MedicationRecord `json:"medications"`
	Logs        []any                       `json:"logs"` // reservado, siempre vacío en export
	MoodLogs    []MoodRecord                `json:"mood_logs"`
	SideEffects []SideEffectRecord          `json:"side_effects"`
	ExportDate  time.Time                   `json:"export_date"`
}

type MedicationRecord struct {
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	Frequency     string     `json:"frequency"`
	Times         []string   `json:"times"`
	Notes         string     `json:"notes"`
	CreatedDate   time.Time  `json:"created_date"`
	Active        bool       `json:"active"`
	ArchivedDate  *time.Time `json:"archived_date,omitempty"`
	ArchiveReason string     `json:"archive_reason,omitempty"`
}

type MoodRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	MoodScore int       `json:"mood_score"`
	Notes     string    `json:"notes"`
}

type SideEffectRecord struct {
	ID        string    `json:"id"`
	MedID     string    `json:"med_id"`
	Timestamp time.Time `json:"timestamp"`
	Effect    string    `json:"effect"`
	Severity  int       `json:"severity"`
	Notes     string    `json:"notes"`
}

type Service struct {
	meds    medications.Repository
	effects sideeffects.Repository
	moods   moods.Repository
	now     func() time.Time
}

func NewService(meds medications.Repository, effects sideeffects.Repository, moodRepo moods.Repository) *Service {
	return &Service{
		meds:    meds,
		effects: effects,
		moods:   moodRepo,
		now:     time.Now,
	}
}

func (s *Service) Build(ctx context.Context) (Document, error) {
	meds, err := s.meds.List(ctx, medications.ListFilter{Status: medications.StatusAll})
	if err != nil {
		return Document{}, err
	}
	effects, err := s.effects.List(ctx, sideeffects.ListFilter{})
	if err != nil {
		return Document{}, err
	}
	moodEntries, err := s.moods.List(ctx, moods.ListFilter{})
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Medications: make(map[string]MedicationRecord, len(meds)),
		Logs:        []any{},
		MoodLogs:    make([]MoodRecord, 0, len(moodEntries)),
		SideEffects: make([]SideEffectRecord, 0, len(effects)),
		ExportDate:  s.now(),
	}

	for _, m := range meds {
		doc.Medications[m.ID] = MedicationRecord{
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
	for _, e := range moodEntries {
		doc.MoodLogs = append(doc.MoodLogs, MoodRecord{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			MoodScore: e.Score,
			Notes:     e.Notes,
		})
	}
	for _, e := range effects {
		doc.SideEffects = append(doc.SideEffects, SideEffectRecord{
			ID:        e.ID,
			MedID:     e.MedicationID,
			Timestamp: e.Timestamp,
			Effect:    e.Effect,
			Severity:  int(e.Severity),
			Notes:     e.Notes,
		})
	}

	return doc, nil
}

// Filename arma el nombre del archivo descargable con el timestamp actual.
func Filename(t time.Time) string {
	return "meditracker_data_" + t.Format("20060102_150405") + ".json"
}
