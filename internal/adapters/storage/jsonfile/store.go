// Package jsonfile implementa el store durable de la app: las tres
// colecciones viven en memoria y cada mutación reescribe el documento JSON
// completo en disco (write-through, last-writer-wins, un solo proceso).
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"meditracker/internal/domain/medications"
	"meditracker/internal/domain/moods"
	"meditracker/internal/domain/sideeffects"
)

// document es el shape exacto del archivo (ver también el export, que
// produce el mismo shape más export_date).
type document struct {
	Medications map[string]medicationRecord `json:"medications"`
	Logs        []json.RawMessage           `json:"logs"` // reservado; se preserva tal cual
	MoodLogs    []moodRecord                `json:"mood_logs"`
	SideEffects []sideEffectRecord          `json:"side_effects"`
}

type medicationRecord struct {
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

type moodRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	MoodScore int       `json:"mood_score"`
	Notes     string    `json:"notes"`
}

type sideEffectRecord struct {
	ID        string    `json:"id"`
	MedID     string    `json:"med_id"`
	Timestamp time.Time `json:"timestamp"`
	Effect    string    `json:"effect"`
	Severity  int       `json:"severity"`
	Notes     string    `json:"notes"`
}

// LoadError indica que el archivo existe pero no se pudo leer o parsear.
// El caller decide qué hacer (típicamente: loguear y arrancar vacío con Empty).
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("jsonfile: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store es el único dueño de las colecciones. Un mutex alcanza: un proceso,
// un writer (ver modelo de concurrencia en el diseño).
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// Open carga el documento desde path. Archivo inexistente => store vacío sin
// error. Archivo ilegible o corrupto => *LoadError; acá no se decide el
// fallback, eso es del caller.
func Open(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(path), nil
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	// Keys ausentes => colecciones vacías.
	normalize(&doc)

	return &Store{path: path, doc: doc}, nil
}

// Empty crea un store sin datos que persistirá en path.
func Empty(path string) *Store {
	var doc document
	normalize(&doc)
	return &Store{path: path, doc: doc}
}

func normalize(doc *document) {
	if doc.Medications == nil {
		doc.Medications = map[string]medicationRecord{}
	}
	if doc.Logs == nil {
		doc.Logs = []json.RawMessage{}
	}
	if doc.MoodLogs == nil {
		doc.MoodLogs = []moodRecord{}
	}
	if doc.SideEffects == nil {
		doc.SideEffects = []sideEffectRecord{}
	}
}

// Medications devuelve la vista Repository sobre este store.
func (s *Store) Medications() medications.Repository { return &medicationRepo{store: s} }

// SideEffects devuelve la vista Repository sobre este store.
func (s *Store) SideEffects() sideeffects.Repository { return &sideEffectRepo{store: s} }

// Moods devuelve la vista Repository sobre este store.
func (s *Store) Moods() moods.Repository { return &moodRepo{store: s} }

// persistLocked reescribe el documento completo. Caller debe tener s.mu.
// Escribe a un temp en el mismo directorio y renombra: suficiente atomicidad
// para no necesitar recovery de escrituras parciales.
func (s *Store) persistLocked() error {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
