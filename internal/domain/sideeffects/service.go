package sideeffects

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type LogInput struct {
	MedicationID string
	Effect       string
	Severity     int
	Notes        string
}

// Log registra un efecto secundario. No valida que MedicationID exista:
// reportar contra un medicamento ya borrado está permitido y queda huérfano.
// La severidad sí se valida estricta en [1,5].
func (s *Service) Log(ctx context.Context, in LogInput) (Entry, error) {
	if strings.TrimSpace(in.MedicationID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Effect) == "" {
		return Entry{}, ErrInvalidInput
	}

	sev := Severity(in.Severity)
	if !sev.Valid() {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:           uuid.NewString(),
		MedicationID: strings.TrimSpace(in.MedicationID),
		Timestamp:    s.now(),
		Effect:       strings.TrimSpace(in.Effect),
		Severity:     sev,
		Notes:        strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List devuelve las entradas en orden de inserción (para export y agregados).
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	return s.repo.List(ctx, filter)
}

// Recent devuelve las entradas más recientes primero, recortadas a limit.
func (s *Service) Recent(ctx context.Context, filter ListFilter, limit int) ([]Entry, error) {
	out, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RemoveByMedication purga todas las entradas de un medicamento.
// Lo usa el delete de medicamentos para el cascade uniforme.
func (s *Service) RemoveByMedication(ctx context.Context, medicationID string) (int, error) {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.DeleteByMedication(ctx, medicationID)
}

// PurgeOlderThan borra las entradas con timestamp anterior a now - days.
func (s *Service) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, ErrInvalidInput
	}
	cutoff := s.now().AddDate(0, 0, -days)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
