package moods

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	MinScore = 1
	MaxScore = 10
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
	Score int
	Notes string
}

// Log registra un estado de ánimo. Score se valida estricto en [1,10].
func (s *Service) Log(ctx context.Context, in LogInput) (Entry, error) {
	if in.Score < MinScore || in.Score > MaxScore {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Score:     in.Score,
		Notes:     strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	return s.repo.List(ctx, filter)
}

// RecentDays devuelve las entradas de la ventana de los últimos days días.
func (s *Service) RecentDays(ctx context.Context, days int) ([]Entry, error) {
	if days <= 0 {
		return nil, ErrInvalidInput
	}
	from := s.now().AddDate(0, 0, -days)
	return s.repo.List(ctx, ListFilter{From: &from})
}
