package moods

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	entries []Entry
}

func (r *testRepo) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return errors.New("repo: id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func TestService_Log_ValidatesScoreRange(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	for _, score := range []int{0, -3, 11, 100} {
		if _, err := svc.Log(context.Background(), LogInput{Score: score}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("score %d: expected ErrInvalidInput, got %v", score, err)
		}
	}
	if len(repo.entries) != 0 {
		t.Fatalf("expected nothing appended after rejected scores")
	}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	e, err := svc.Log(context.Background(), LogInput{Score: 7, Notes: " ok "})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if e.ID == "" || e.Timestamp != now || e.Score != 7 || e.Notes != "ok" {
		t.Fatalf("unexpected entry: %#v", e)
	}
}

func TestService_RecentDays_FiltersWindow(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_ = repo.Append(context.Background(), Entry{ID: "old", Timestamp: now.AddDate(0, 0, -40), Score: 3})
	_ = repo.Append(context.Background(), Entry{ID: "in", Timestamp: now.AddDate(0, 0, -5), Score: 8})

	out, err := svc.RecentDays(context.Background(), 30)
	if err != nil {
		t.Fatalf("RecentDays error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "in" {
		t.Fatalf("expected only the entry inside the window, got %#v", out)
	}

	if _, err := svc.RecentDays(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for days=0, got %v", err)
	}
}
