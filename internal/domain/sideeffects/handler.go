package sideeffects

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"meditracker/internal/domain/medications"

	"github.com/go-chi/chi/v5"
)

// unknownMedicationName es el fallback de display para entradas huérfanas.
const unknownMedicationName = "Unknown (Deleted)"

const defaultHistoryLimit = 20

func RegisterRoutes(r chi.Router, svc *Service, medsSvc *medications.Service) {
	r.Route("/side-effects", func(sr chi.Router) {
		sr.Post("/", logSideEffectHandler(svc, medsSvc))
		sr.Get("/", listSideEffectsHandler(svc, medsSvc))
		sr.Post("/purge", purgeSideEffectsHandler(svc))
	})
}

type logSideEffectRequest struct {
	MedicationID string `json:"medication_id"`
	Effect       string `json:"effect"`
	Severity     int    `json:"severity"`
	Notes        string `json:"notes"`
}

type purgeSideEffectsRequest struct {
	OlderThanDays int `json:"older_than_days"`
}

type sideEffectResponse struct {
	ID             string    `json:"id"`
	MedicationID   string    `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	Timestamp      time.Time `json:"timestamp"`
	Effect         string    `json:"effect"`
	Severity       int       `json:"severity"`
	SeverityLabel  string    `json:"severity_label"`
	Notes          string    `json:"notes"`
}

type purgeSideEffectsResponse struct {
	Removed int `json:"removed"`
}

// logSideEffectHandler godoc
// @Summary Reportar efecto secundario
// @Description Registra un efecto secundario contra un medicamento. severity debe estar en [1,5]. No se exige que medication_id exista todavía: la entrada puede quedar huérfana y se muestra como "Unknown (Deleted)".
// @Tags side-effects
// @Accept json
// @Produce json
// @Param payload body logSideEffectRequest true "Datos del reporte"
// @Success 201 {object} sideEffectResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /side-effects [post]
func logSideEffectHandler(svc *Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logSideEffectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Log(r.Context(), LogInput{
			MedicationID: req.MedicationID,
			Effect:       req.Effect,
			Severity:     req.Severity,
			Notes:        req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		name := unknownMedicationName
		if m, err := medsSvc.GetByID(r.Context(), e.MedicationID); err == nil {
			name = m.Name
		}
		writeJSON(w, http.StatusCreated, toSideEffectResponse(e, name))
	}
}

// listSideEffectsHandler godoc
// @Summary Historial de efectos secundarios
// @Description Devuelve los reportes más recientes primero. El nombre del medicamento se resuelve al vuelo; si fue borrado, cae a "Unknown (Deleted)".
// @Tags side-effects
// @Produce json
// @Param medication_id query string false "Filtrar por medicamento"
// @Param limit query int false "Máximo de entradas (default 20)"
// @Success 200 {array} sideEffectResponse
// @Router /side-effects [get]
func listSideEffectsHandler(svc *Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultHistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		filter := ListFilter{MedicationID: r.URL.Query().Get("medication_id")}

		items, err := svc.Recent(r.Context(), filter, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Cache local de nombres para no resolver el mismo med N veces.
		names := map[string]string{}
		out := make([]sideEffectResponse, 0, len(items))
		for _, e := range items {
			name, ok := names[e.MedicationID]
			if !ok {
				name = unknownMedicationName
				if m, err := medsSvc.GetByID(r.Context(), e.MedicationID); err == nil {
					name = m.Name
				}
				names[e.MedicationID] = name
			}
			out = append(out, toSideEffectResponse(e, name))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// purgeSideEffectsHandler godoc
// @Summary Purgar reportes antiguos
// @Description Borra todos los reportes con timestamp anterior a now - older_than_days.
// @Tags side-effects
// @Accept json
// @Produce json
// @Param payload body purgeSideEffectsRequest true "Antigüedad en días (ej. 365)"
// @Success 200 {object} purgeSideEffectsResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /side-effects/purge [post]
func purgeSideEffectsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purgeSideEffectsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		removed, err := svc.PurgeOlderThan(r.Context(), req.OlderThanDays)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "older_than_days must be positive", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, purgeSideEffectsResponse{Removed: removed})
	}
}

func toSideEffectResponse(e Entry, medicationName string) sideEffectResponse {
	return sideEffectResponse{
		ID:             e.ID,
		MedicationID:   e.MedicationID,
		MedicationName: medicationName,
		Timestamp:      e.Timestamp,
		Effect:         e.Effect,
		Severity:       int(e.Severity),
		SeverityLabel:  e.Severity.Label(),
		Notes:          e.Notes,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
