package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"meditracker/internal/domain/medications"
	"meditracker/internal/domain/moods"
	"meditracker/internal/domain/sideeffects"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "medication_data.json")
}

func TestOpen_MissingFile_StartsEmpty(t *testing.T) {
	s, err := Open(tempPath(t))
	if err != nil {
		t.Fatalf("Open returned error for missing file: %v", err)
	}

	meds, err := s.Medications().List(context.Background(), medications.ListFilter{Status: medications.StatusAll})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(meds) != 0 {
		t.Fatalf("expected empty store, got %d medications", len(meds))
	}
}

func TestOpen_CorruptFile_ReturnsLoadError(t *testing.T) {
	path := tempPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatalf("expected error for corrupt file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T: %v", err, err)
	}
	if loadErr.Path != path {
		t.Fatalf("expected path in error, got %q", loadErr.Path)
	}

	// El fallback es decisión del caller: Empty arranca limpio y puede persistir.
	s := Empty(path)
	err = s.Medications().Create(context.Background(), medications.Medication{
		ID: "m1", Name: "Aspirin", Dosage: "100mg", Frequency: "1 times daily",
		Times: []string{"08:00"}, CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), Active: true,
	})
	if err != nil {
		t.Fatalf("Create after Empty error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open after overwrite error: %v", err)
	}
	if _, err := reopened.Medications().GetByID(context.Background(), "m1"); err != nil {
		t.Fatalf("expected medication persisted over corrupt file: %v", err)
	}
}

func TestOpen_PartialDocument_DefaultsMissingKeys(t *testing.T) {
	path := tempPath(t)
	if err := os.WriteFile(path, []byte(`{"medications": {}}`), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	effects, err := s.SideEffects().List(context.Background(), sideeffects.ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(effects) != 0 {
		t.Fatalf("expected empty side effects, got %d", len(effects))
	}
}

func TestRoundTrip_PreservesCollectionsAndOrder(t *testing.T) {
	path := tempPath(t)
	ctx := context.Background()
	s := Empty(path)

	t1 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	archivedAt := time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)

	meds := []medications.Medication{
		{ID: "m1", Name: "Aspirin", Dosage: "100mg", Frequency: "2 times daily",
			Times: []string{"08:00", "20:00"}, Notes: "with food", CreatedAt: t1, Active: true},
		{ID: "m2", Name: "Ibuprofen", Dosage: "200mg", Frequency: "1 times daily",
			Times: []string{"12:00"}, CreatedAt: t2, Active: false,
			ArchivedAt: &archivedAt, ArchiveReason: "Course completed"},
	}
	for _, m := range meds {
		if err := s.Medications().Create(ctx, m); err != nil {
			t.Fatalf("Create %s: %v", m.ID, err)
		}
	}

	effects := []sideeffects.Entry{
		{ID: "se1", MedicationID: "m1", Timestamp: t1.Add(time.Hour), Effect: "Headache", Severity: 2, Notes: "mild"},
		{ID: "se2", MedicationID: "m2", Timestamp: t2.Add(time.Hour), Effect: "Nausea", Severity: 4},
		{ID: "se3", MedicationID: "m1", Timestamp: t1.Add(2 * time.Hour), Effect: "Dizziness", Severity: 1},
	}
	for _, e := range effects {
		if err := s.SideEffects().Append(ctx, e); err != nil {
			t.Fatalf("Append %s: %v", e.ID, err)
		}
	}

	moodEntries := []moods.Entry{
		{ID: "mo1", Timestamp: t1, Score: 7, Notes: "fine"},
		{ID: "mo2", Timestamp: t2, Score: 4},
	}
	for _, e := range moodEntries {
		if err := s.Moods().Append(ctx, e); err != nil {
			t.Fatalf("Append %s: %v", e.ID, err)
		}
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	gotMeds, err := reopened.Medications().List(ctx, medications.ListFilter{Status: medications.StatusAll})
	if err != nil {
		t.Fatalf("List medications: %v", err)
	}
	if !reflect.DeepEqual(gotMeds, meds) {
		t.Fatalf("medications round-trip mismatch:\n got %#v\nwant %#v", gotMeds, meds)
	}

	gotEffects, err := reopened.SideEffects().List(ctx, sideeffects.ListFilter{})
	if err != nil {
		t.Fatalf("List side effects: %v", err)
	}
	if !reflect.DeepEqual(gotEffects, effects) {
		t.Fatalf("side effects round-trip mismatch (incl. order):\n got %#v\nwant %#v", gotEffects, effects)
	}

	gotMoods, err := reopened.Moods().List(ctx, moods.ListFilter{})
	if err != nil {
		t.Fatalf("List moods: %v", err)
	}
	if !reflect.DeepEqual(gotMoods, moodEntries) {
		t.Fatalf("moods round-trip mismatch (incl. order):\n got %#v\nwant %#v", gotMoods, moodEntries)
	}
}

func TestWriteThrough_EveryMutationHitsDisk(t *testing.T) {
	path := tempPath(t)
	ctx := context.Background()
	s := Empty(path)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	if err := s.Medications().Create(ctx, medications.Medication{
		ID: "m1", Name: "Aspirin", Dosage: "100mg", Frequency: "1 times daily",
		Times: []string{"08:00"}, CreatedAt: now, Active: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_ = s.SideEffects().Append(ctx, sideeffects.Entry{ID: "old", MedicationID: "m1", Timestamp: now.AddDate(-2, 0, 0), Effect: "x", Severity: 1})
	_ = s.SideEffects().Append(ctx, sideeffects.Entry{ID: "new", MedicationID: "m1", Timestamp: now, Effect: "y", Severity: 2})

	removed, err := s.SideEffects().DeleteOlderThan(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	// Otro handle sobre el mismo archivo ve cada mutación ya persistida.
	other, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	effects, _ := other.SideEffects().List(ctx, sideeffects.ListFilter{})
	if len(effects) != 1 || effects[0].ID != "new" {
		t.Fatalf("expected purge persisted, got %#v", effects)
	}
	if _, err := other.Medications().GetByID(ctx, "m1"); err != nil {
		t.Fatalf("expected medication persisted: %v", err)
	}
}

func TestDelete_DoesNotCascadeSideEffects(t *testing.T) {
	path := tempPath(t)
	ctx := context.Background()
	s := Empty(path)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	_ = s.Medications().Create(ctx, medications.Medication{
		ID: "A", Name: "Aspirin", Dosage: "100mg", Frequency: "2 times daily",
		Times: []string{"08:00", "20:00"}, CreatedAt: now, Active: true,
	})
	_ = s.SideEffects().Append(ctx, sideeffects.Entry{ID: "se", MedicationID: "A", Timestamp: now, Effect: "Headache", Severity: 2})

	if err := s.Medications().Delete(ctx, "A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// A nivel store no hay cascade: la entrada queda huérfana pero consultable.
	effects, _ := s.SideEffects().List(ctx, sideeffects.ListFilter{MedicationID: "A"})
	if len(effects) != 1 {
		t.Fatalf("expected orphaned side effect to remain, got %d", len(effects))
	}

	if err := s.Medications().Delete(ctx, "A"); !errors.Is(err, medications.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReservedLogsKey_PreservedAcrossMutations(t *testing.T) {
	path := tempPath(t)
	ctx := context.Background()

	seed := `{"medications":{},"logs":[{"legacy":true}],"mood_logs":[],"side_effects":[]}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Moods().Append(ctx, moods.Entry{ID: "mo", Timestamp: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), Score: 5}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var doc struct {
		Logs []map[string]any `json:"logs"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("parse written document: %v", err)
	}
	if len(doc.Logs) != 1 || doc.Logs[0]["legacy"] != true {
		t.Fatalf("expected reserved logs preserved, got %#v", doc.Logs)
	}
}
