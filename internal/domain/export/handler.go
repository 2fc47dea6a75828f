package export

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/export", exportHandler(svc))
}

// exportHandler godoc
// @Summary Exportar datos
// @Description Devuelve el documento completo (mismo shape que el archivo persistido) más export_date, como descarga con nombre timestampeado.
// @Tags export
// @Produce json
// @Success 200 {object} Document
// @Router /export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.Build(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+Filename(doc.ExportDate)+`"`)
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(doc)
	}
}
