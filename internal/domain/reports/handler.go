package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultMoodWindowDays = 30

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))

	r.Route("/analytics", func(ar chi.Router) {
		ar.Get("/side-effects/daily", sideEffectsDailyHandler(svc))
		ar.Get("/side-effects/severity", sideEffectsBySeverityHandler(svc))
		ar.Get("/side-effects/medications", sideEffectsByMedicationHandler(svc))
		ar.Get("/mood", moodTrendHandler(svc))
	})
}

type dashboardResponse struct {
	ActiveMedications   int                           `json:"active_medications"`
	ArchivedMedications int                           `json:"archived_medications"`
	SideEffectsLast7d   int                           `json:"side_effects_last_7d"`
	RecentActive        []dashboardMedicationResponse `json:"recent_active"`
}

type dashboardMedicationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	Times     []string  `json:"times"`
	CreatedAt time.Time `json:"created_at"`
}

type medicationBreakdownResponse struct {
	MedicationID   string  `json:"medication_id"`
	MedicationName string  `json:"medication_name"`
	Total          int     `json:"total"`
	AvgSeverity    float64 `json:"avg_severity"`
}

type dailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type severityCountResponse struct {
	Severity int    `json:"severity"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

type moodSummaryResponse struct {
	Average float64             `json:"average"`
	Entries int                 `json:"entries"`
	Points  []moodPointResponse `json:"points"`
}

type moodPointResponse struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// dashboardHandler godoc
// @Summary Dashboard
// @Description Métricas de portada: medicamentos activos/archivados, side effects de los últimos 7 días y hasta 5 medicamentos activos recientes.
// @Tags reports
// @Produce json
// @Success 200 {object} dashboardResponse
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		recent := make([]dashboardMedicationResponse, 0, len(d.RecentActive))
		for _, m := range d.RecentActive {
			recent = append(recent, dashboardMedicationResponse{
				ID:        m.ID,
				Name:      m.Name,
				Dosage:    m.Dosage,
				Frequency: m.Frequency,
				Times:     m.Times,
				CreatedAt: m.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, dashboardResponse{
			ActiveMedications:   d.ActiveMedications,
			ArchivedMedications: d.ArchivedMedications,
			SideEffectsLast7d:   d.SideEffectsLast7d,
			RecentActive:        recent,
		})
	}
}

// sideEffectsDailyHandler entrega el dataset del line chart "Side Effects Over Time".
func sideEffectsDailyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SideEffectsDaily(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dailyCountResponse, 0, len(items))
		for _, it := range items {
			out = append(out, dailyCountResponse{Date: it.Date, Count: it.Count})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// sideEffectsBySeverityHandler entrega el dataset del pie chart por severidad.
func sideEffectsBySeverityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SideEffectsBySeverity(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]severityCountResponse, 0, len(items))
		for _, it := range items {
			out = append(out, severityCountResponse{Severity: it.Severity, Label: it.Label, Count: it.Count})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// sideEffectsByMedicationHandler godoc
// @Summary Análisis por medicamento
// @Description Total de reportes y severidad media por medicamento. Las entradas huérfanas se agrupan como "Unknown (Deleted)".
// @Tags reports
// @Produce json
// @Success 200 {array} medicationBreakdownResponse
// @Router /analytics/side-effects/medications [get]
func sideEffectsByMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SideEffectsByMedication(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationBreakdownResponse, 0, len(items))
		for _, it := range items {
			out = append(out, medicationBreakdownResponse{
				MedicationID:   it.MedicationID,
				MedicationName: it.MedicationName,
				Total:          it.Total,
				AvgSeverity:    it.AvgSeverity,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func moodTrendHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := defaultMoodWindowDays
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		summary, err := svc.MoodTrend(r.Context(), days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		points := make([]moodPointResponse, 0, len(summary.Points))
		for _, p := range summary.Points {
			points = append(points, moodPointResponse{Date: p.Date, Score: p.Score})
		}

		writeJSON(w, http.StatusOK, moodSummaryResponse{
			Average: summary.Average,
			Entries: summary.Entries,
			Points:  points,
		})
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
