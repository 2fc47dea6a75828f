package router

import (
	"net/http"
	"os"

	"meditracker/internal/adapters/storage/jsonfile"
	mem "meditracker/internal/adapters/storage/memory"
	"meditracker/internal/domain/export"
	"meditracker/internal/domain/medications"
	"meditracker/internal/domain/moods"
	"meditracker/internal/domain/reports"
	"meditracker/internal/domain/sideeffects"
	"meditracker/internal/middleware"
	"meditracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Log logger.Logger // puede ser nil (se crea desde env)

	// Opcional: si viene, persiste al archivo JSON. Si no, in-memory.
	Store *jsonfile.Store
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		medRepo    medications.Repository
		effectRepo sideeffects.Repository
		moodRepo   moods.Repository
	)

	// Si no te pasan store explícito, intenta por env (para dev/handoff)
	store := opts.Store
	if store == nil {
		if path := os.Getenv("DATA_FILE"); path != "" {
			opened, err := jsonfile.Open(path)
			if err == nil {
				store = opened
			} else {
				log.Warn("data file unreadable, using in-memory store", map[string]any{
					"path": path,
					"err":  err.Error(),
				})
			}
		}
	}

	if store != nil {
		medRepo = store.Medications()
		effectRepo = store.SideEffects()
		moodRepo = store.Moods()
	} else {
		medRepo = mem.NewMedicationRepo()
		effectRepo = mem.NewSideEffectRepo()
		moodRepo = mem.NewMoodRepo()
	}

	// Services por módulo
	medsSvc := medications.NewService(medRepo)
	effectsSvc := sideeffects.NewService(effectRepo)
	moodsSvc := moods.NewService(moodRepo)
	reportsSvc := reports.NewService(medRepo, effectRepo, moodRepo)
	exportSvc := export.NewService(medRepo, effectRepo, moodRepo)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc, effectsSvc)
	sideeffects.RegisterRoutes(r, effectsSvc, medsSvc)
	moods.RegisterRoutes(r, moodsSvc)
	reports.RegisterRoutes(r, reportsSvc)
	export.RegisterRoutes(r, exportSvc)

	return r
}
