package medications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Dosage    string
	Frequency string   // opcional; default "N times daily"
	Times     []string // "HH:MM", una por dosis diaria
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Dosage) == "" {
		return Medication{}, ErrInvalidInput
	}
	if len(in.Times) == 0 {
		return Medication{}, ErrInvalidInput
	}

	times := make([]string, 0, len(in.Times))
	for _, t := range in.Times {
		t = strings.TrimSpace(t)
		if !validClockTime(t) {
			return Medication{}, ErrInvalidInput
		}
		times = append(times, t)
	}
	// Orden ascendente: con "HH:MM" cero-padded el orden lexicográfico es el horario.
	sort.Strings(times)

	freq := strings.TrimSpace(in.Frequency)
	if freq == "" {
		freq = fmt.Sprintf("%d times daily", len(times))
	}

	m := Medication{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: freq,
		Times:     times,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
		Active:    true,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Medication, error) {
	return s.repo.List(ctx, filter)
}

// Archive marca el medicamento como inactivo conservando su historia.
// Re-archivar solo re-estampa archived_at y el motivo.
func (s *Service) Archive(ctx context.Context, id, reason string) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	now := s.now()
	m.Active = false
	m.ArchivedAt = &now
	m.ArchiveReason = strings.TrimSpace(reason)

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// Reactivate vuelve a activar un medicamento archivado y limpia los metadatos de archivo.
func (s *Service) Reactivate(ctx context.Context, id string) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	m.Active = true
	m.ArchivedAt = nil
	m.ArchiveReason = ""

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// Delete elimina el medicamento por completo. No borra side effects asociados:
// esa purga es responsabilidad del caller (el handler la aplica siempre).
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// validClockTime acepta exactamente "HH:MM" en 24h con cero a la izquierda.
func validClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
