package medications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// SideEffectPurger elimina los side effects asociados a un medicamento.
// Lo implementa sideeffects.Service; el handler de delete lo aplica SIEMPRE
// antes de borrar, para que la política de cascade sea uniforme en toda la API.
type SideEffectPurger interface {
	RemoveByMedication(ctx context.Context, medicationID string) (int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, purger SideEffectPurger) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc))
		mr.Get("/", listMedicationsHandler(svc))

		mr.Get("/{medID}", getMedicationHandler(svc))
		mr.Post("/{medID}/archive", archiveMedicationHandler(svc))
		mr.Post("/{medID}/reactivate", reactivateMedicationHandler(svc))
		mr.Delete("/{medID}", deleteMedicationHandler(svc, purger))
	})
}

type createMedicationRequest struct {
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"` // opcional
	Times     []string `json:"times"`     // "HH:MM"
	Notes     string   `json:"notes"`
}

type archiveMedicationRequest struct {
	Reason string `json:"reason"`
}

type medicationResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	Frequency     string     `json:"frequency"`
	Times         []string   `json:"times"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	Active        bool       `json:"active"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	ArchiveReason string     `json:"archive_reason,omitempty"`
}

type deleteMedicationResponse struct {
	Deleted            bool `json:"deleted"`
	SideEffectsRemoved int  `json:"side_effects_removed"`
}

// createMedicationHandler godoc
// @Summary Registrar medicamento
// @Description Registra un medicamento con su horario diario. times debe traer una entrada "HH:MM" por dosis; se ordenan ascendente. frequency es opcional (default "N times daily").
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Datos del medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Times:     req.Times,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Lista medicamentos filtrando por status: active (default), archived o all.
// @Tags medications
// @Produce json
// @Param status query string false "active | archived | all"
// @Success 200 {array} medicationResponse
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := StatusFilter(r.URL.Query().Get("status"))
		switch status {
		case StatusActive, StatusArchived, StatusAll:
		case "":
			status = StatusActive
		default:
			http.Error(w, "status must be active, archived or all", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{Status: status})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medID"))
		if err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// archiveMedicationHandler godoc
// @Summary Archivar medicamento
// @Description Marca el medicamento como inactivo conservando su historia. Re-archivar re-estampa archived_at y el motivo.
// @Tags medications
// @Accept json
// @Produce json
// @Param medID path string true "ID del medicamento"
// @Param payload body archiveMedicationRequest true "Motivo de archivo"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medID}/archive [post]
func archiveMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req archiveMedicationRequest
		if r.Body != nil {
			// body opcional: archivar sin motivo es válido
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		m, err := svc.Archive(r.Context(), chi.URLParam(r, "medID"), req.Reason)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func reactivateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Reactivate(r.Context(), chi.URLParam(r, "medID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Eliminar medicamento
// @Description Elimina el medicamento y purga sus side effects asociados (cascade uniforme). La confirmación en dos pasos es responsabilidad del cliente.
// @Tags medications
// @Produce json
// @Param medID path string true "ID del medicamento"
// @Success 200 {object} deleteMedicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medID} [delete]
func deleteMedicationHandler(svc *Service, purger SideEffectPurger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medID := chi.URLParam(r, "medID")

		// Verificar existencia antes de purgar: borrar un id desconocido
		// no debe tocar side effects huérfanos que apunten a ese id.
		if _, err := svc.GetByID(r.Context(), medID); err != nil {
			writeServiceError(w, err)
			return
		}

		removed, err := purger.RemoveByMedication(r.Context(), medID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := svc.Delete(r.Context(), medID); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deleteMedicationResponse{
			Deleted:            true,
			SideEffectsRemoved: removed,
		})
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:            m.ID,
		Name:          m.Name,
		Dosage:        m.Dosage,
		Frequency:     m.Frequency,
		Times:         m.Times,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		Active:        m.Active,
		ArchivedAt:    m.ArchivedAt,
		ArchiveReason: m.ArchiveReason,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
