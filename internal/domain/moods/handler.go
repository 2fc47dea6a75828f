package moods

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultWindowDays = 30

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/moods", func(mr chi.Router) {
		mr.Post("/", logMoodHandler(svc))
		mr.Get("/", listMoodsHandler(svc))
	})
}

type logMoodRequest struct {
	MoodScore int    `json:"mood_score"`
	Notes     string `json:"notes"`
}

type moodResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	MoodScore int       `json:"mood_score"`
	Notes     string    `json:"notes"`
}

// logMoodHandler godoc
// @Summary Registrar estado de ánimo
// @Description Registra una entrada de mood. mood_score debe estar en [1,10].
// @Tags moods
// @Accept json
// @Produce json
// @Param payload body logMoodRequest true "Datos del registro"
// @Success 201 {object} moodResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /moods [post]
func logMoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logMoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Log(r.Context(), LogInput{
			Score: req.MoodScore,
			Notes: req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "mood_score must be between 1 and 10", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toMoodResponse(e))
	}
}

func listMoodsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := defaultWindowDays
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		items, err := svc.RecentDays(r.Context(), days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]moodResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toMoodResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toMoodResponse(e Entry) moodResponse {
	return moodResponse{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		MoodScore: e.Score,
		Notes:     e.Notes,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
