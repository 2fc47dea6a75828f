package medications

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		switch filter.Status {
		case StatusActive:
			if !m.Active {
				continue
			}
		case StatusArchived:
			if m.Active {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_SortsTimes_AndDefaultsFrequency(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m, err := svc.Create(context.Background(), CreateInput{
		Name:   "Aspirin",
		Dosage: "100mg",
		Times:  []string{"20:00", "08:00"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !m.Active {
		t.Fatalf("expected new medication to be active")
	}
	if m.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}
	if len(m.Times) != 2 || m.Times[0] != "08:00" || m.Times[1] != "20:00" {
		t.Fatalf("expected times sorted ascending, got %#v", m.Times)
	}
	if m.Frequency != "2 times daily" {
		t.Fatalf("expected default frequency label, got %q", m.Frequency)
	}
}

func TestService_Create_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{Name: " ", Dosage: "100mg", Times: []string{"08:00"}}},
		{"empty dosage", CreateInput{Name: "Aspirin", Dosage: "", Times: []string{"08:00"}}},
		{"no times", CreateInput{Name: "Aspirin", Dosage: "100mg", Times: nil}},
		{"time without zero padding", CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"8:00"}}},
		{"hour out of range", CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"25:00"}}},
		{"not a time", CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"ab:cd"}}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing stored after rejected inputs")
	}
}

func TestService_Create_AllowsDuplicateNames_WithUniqueIDs(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	m1, err := svc.Create(context.Background(), CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"08:00"}})
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	m2, err := svc.Create(context.Background(), CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"08:00"}})
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}
	if m1.ID == m2.ID {
		t.Fatalf("expected distinct ids for duplicate names")
	}
}

func TestService_Archive_Reactivate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	now2 := now1.Add(48 * time.Hour)
	svc.now = func() time.Time { return now1 }

	m, err := svc.Create(context.Background(), CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"08:00"}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Archive(context.Background(), "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	archived, err := svc.Archive(context.Background(), m.ID, string(ReasonCourseCompleted))
	if err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if archived.Active {
		t.Fatalf("expected archived medication to be inactive")
	}
	if archived.ArchivedAt == nil || !archived.ArchivedAt.Equal(now1) {
		t.Fatalf("expected ArchivedAt stamped with now")
	}
	if archived.ArchiveReason != "Course completed" {
		t.Fatalf("expected reason stored, got %q", archived.ArchiveReason)
	}

	// filtros: fuera de active, dentro de archived
	active, _ := svc.List(context.Background(), ListFilter{Status: StatusActive})
	if len(active) != 0 {
		t.Fatalf("expected no active medications, got %d", len(active))
	}
	arch, _ := svc.List(context.Background(), ListFilter{Status: StatusArchived})
	if len(arch) != 1 {
		t.Fatalf("expected 1 archived medication, got %d", len(arch))
	}

	// re-archivar re-estampa
	svc.now = func() time.Time { return now2 }
	rearchived, err := svc.Archive(context.Background(), m.ID, "Other")
	if err != nil {
		t.Fatalf("re-Archive error: %v", err)
	}
	if !rearchived.ArchivedAt.Equal(now2) || rearchived.ArchiveReason != "Other" {
		t.Fatalf("expected re-archive to re-stamp, got %v %q", rearchived.ArchivedAt, rearchived.ArchiveReason)
	}

	reactivated, err := svc.Reactivate(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Reactivate error: %v", err)
	}
	if !reactivated.Active || reactivated.ArchivedAt != nil || reactivated.ArchiveReason != "" {
		t.Fatalf("expected reactivation to clear archive metadata, got %#v", reactivated)
	}

	active, _ = svc.List(context.Background(), ListFilter{Status: StatusActive})
	if len(active) != 1 {
		t.Fatalf("expected medication back in active filter")
	}
}

func TestService_Delete_RemovesExactlyOne(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	m1, _ := svc.Create(context.Background(), CreateInput{Name: "Aspirin", Dosage: "100mg", Times: []string{"08:00"}})
	m2, _ := svc.Create(context.Background(), CreateInput{Name: "Ibuprofen", Dosage: "200mg", Times: []string{"12:00"}})

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
	if len(repo.byID) != 2 {
		t.Fatalf("expected state unchanged after failed delete")
	}

	if err := svc.Delete(context.Background(), m1.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.byID[m1.ID]; ok {
		t.Fatalf("expected %s removed", m1.ID)
	}
	if _, ok := repo.byID[m2.ID]; !ok {
		t.Fatalf("expected %s untouched", m2.ID)
	}
}
