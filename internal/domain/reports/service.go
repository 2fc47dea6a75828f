package reports

import (
	"context"
	"math"
	"sort"
	"time"

	"meditracker/internal/domain/medications"
	"meditracker/internal/domain/moods"
	"meditracker/internal/domain/sideeffects"
)

// unknownMedicationName es el fallback para agregados sobre entradas huérfanas.
const unknownMedicationName = "Unknown (Deleted)"

const recentMedicationLimit = 5

// Service calcula los agregados del dashboard y los datasets para charts.
// Solo lee: ninguna operación de este paquete muta estado.
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

type Dashboard struct {
	ActiveMedications   int
	ArchivedMedications int
	SideEffectsLast7d   int
	RecentActive        []medications.Medication // hasta 5
}

type MedicationBreakdown struct {
	MedicationID   string
	MedicationName string
	Total          int
	AvgSeverity    float64 // redondeado a 0.1
}

type DailyCount struct {
	Date  string // "2006-01-02"
	Count int
}

type SeverityCount struct {
	Severity int
	Label    string
	Count    int
}

type MoodSummary struct {
	Average float64 // redondeado a 0.1; 0 si no hay entradas
	Entries int
	Points  []MoodPoint
}

type MoodPoint struct {
	Date  string // "2006-01-02"
	Score int
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	active, err := s.meds.List(ctx, medications.ListFilter{Status: medications.StatusActive})
	if err != nil {
		return Dashboard{}, err
	}
	archived, err := s.meds.List(ctx, medications.ListFilter{Status: medications.StatusArchived})
	if err != nil {
		return Dashboard{}, err
	}

	from := s.now().AddDate(0, 0, -7)
	recentEffects, err := s.effects.List(ctx, sideeffects.ListFilter{From: &from})
	if err != nil {
		return Dashboard{}, err
	}

	recent := active
	if len(recent) > recentMedicationLimit {
		recent = recent[:recentMedicationLimit]
	}

	return Dashboard{
		ActiveMedications:   len(active),
		ArchivedMedications: len(archived),
		SideEffectsLast7d:   len(recentEffects),
		RecentActive:        recent,
	}, nil
}

// SideEffectsByMedication agrupa por medication id y calcula total + severidad media.
// Las entradas huérfanas agrupan bajo su id con nombre "Unknown (Deleted)".
func (s *Service) SideEffectsByMedication(ctx context.Context) ([]MedicationBreakdown, error) {
	entries, err := s.effects.List(ctx, sideeffects.ListFilter{})
	if err != nil {
		return nil, err
	}

	type acc struct {
		total int
		sum   int
	}
	byMed := map[string]*acc{}
	order := make([]string, 0) // primer avistamiento, para salida estable

	for _, e := range entries {
		a, ok := byMed[e.MedicationID]
		if !ok {
			a = &acc{}
			byMed[e.MedicationID] = a
			order = append(order, e.MedicationID)
		}
		a.total++
		a.sum += int(e.Severity)
	}

	out := make([]MedicationBreakdown, 0, len(order))
	for _, id := range order {
		a := byMed[id]

		name := unknownMedicationName
		if m, err := s.meds.GetByID(ctx, id); err == nil {
			name = m.Name
		}

		out = append(out, MedicationBreakdown{
			MedicationID:   id,
			MedicationName: name,
			Total:          a.total,
			AvgSeverity:    round1(float64(a.sum) / float64(a.total)),
		})
	}
	return out, nil
}

// SideEffectsDaily cuenta reportes por fecha calendario, ordenado ascendente.
func (s *Service) SideEffectsDaily(ctx context.Context) ([]DailyCount, error) {
	entries, err := s.effects.List(ctx, sideeffects.ListFilter{})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Timestamp.Format("2006-01-02")]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyCount{Date: d, Count: counts[d]})
	}
	return out, nil
}

// SideEffectsBySeverity cuenta reportes por severidad (solo severidades presentes).
func (s *Service) SideEffectsBySeverity(ctx context.Context) ([]SeverityCount, error) {
	entries, err := s.effects.List(ctx, sideeffects.ListFilter{})
	if err != nil {
		return nil, err
	}

	counts := map[sideeffects.Severity]int{}
	for _, e := range entries {
		counts[e.Severity]++
	}

	out := make([]SeverityCount, 0, len(counts))
	for sev := sideeffects.SeverityMild; sev <= sideeffects.SeverityVerySevere; sev++ {
		if counts[sev] == 0 {
			continue
		}
		out = append(out, SeverityCount{
			Severity: int(sev),
			Label:    sev.Label(),
			Count:    counts[sev],
		})
	}
	return out, nil
}

// MoodTrend calcula la media de mood en la ventana de los últimos days días,
// con los puntos ordenados por timestamp ascendente.
func (s *Service) MoodTrend(ctx context.Context, days int) (MoodSummary, error) {
	from := s.now().AddDate(0, 0, -days)
	entries, err := s.moods.List(ctx, moods.ListFilter{From: &from})
	if err != nil {
		return MoodSummary{}, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	sum := 0
	points := make([]MoodPoint, 0, len(entries))
	for _, e := range entries {
		sum += e.Score
		points = append(points, MoodPoint{
			Date:  e.Timestamp.Format("2006-01-02"),
			Score: e.Score,
		})
	}

	summary := MoodSummary{Entries: len(entries), Points: points}
	if len(entries) > 0 {
		summary.Average = round1(float64(sum) / float64(len(entries)))
	}
	return summary, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
