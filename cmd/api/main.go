package main

import (
	"net/http"
	"os"
	"time"

	"meditracker/internal/adapters/storage/jsonfile"
	"meditracker/internal/platform/logger"
	"meditracker/internal/router"
)

const defaultDataFile = "medication_data.json"

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	path := defaultDataFile
	if v := os.Getenv("DATA_FILE"); v != "" {
		path = v
	}

	// El load devuelve error explícito; acá decidimos el fallback a vacío
	// en vez de que el store lo trague en silencio.
	store, err := jsonfile.Open(path)
	if err != nil {
		log.Error("could not load data file, starting empty", map[string]any{
			"path": path,
			"err":  err.Error(),
		})
		store = jsonfile.Empty(path)
	}

	r := router.NewRouter(router.Options{Log: log, Store: store})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "data_file": path})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
