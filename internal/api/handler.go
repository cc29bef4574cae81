// Package api implements the Delvescope REST API: assessment endpoints plus
// read endpoints over persisted runs.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/delvescope/delvescope/internal/archive"
	"github.com/delvescope/delvescope/internal/store"
	"github.com/delvescope/delvescope/pkg/scoring"
)

// Handler is the top-level API handler for the Delvescope daemon.
type Handler struct {
	db      *sql.DB
	runs    *store.Service
	archive archive.StorageClient
	engine  *scoring.Engine
}

// NewHandler creates a new API handler. db, runs, and blobs may be nil, in
// which case assessment still works but nothing is persisted and the run
// endpoints report the persistence as unavailable.
func NewHandler(db *sql.DB, runs *store.Service, blobs archive.StorageClient, engine *scoring.Engine) *Handler {
	if engine == nil {
		engine = scoring.Default()
	}
	return &Handler{
		db:      db,
		runs:    runs,
		archive: blobs,
		engine:  engine,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/assess", h.handleAssess)
	mux.HandleFunc("GET /api/v1/metrics", h.handleListMetrics)
	mux.HandleFunc("POST /api/v1/metrics/{key}/evaluate", h.handleEvaluateMetric)
	mux.HandleFunc("GET /api/v1/projects", h.handleListProjects)
	mux.HandleFunc("GET /api/v1/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/v1/runs/latest", h.handleLatestRun)
	mux.HandleFunc("GET /api/v1/runs/{runID}", h.handleGetRun)
	mux.HandleFunc("GET /api/v1/runs/{runID}/level", h.handleGetRunLevel)
	mux.HandleFunc("GET /api/v1/runs/{runID}/result", h.handleGetRunResult)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded", "database": err.Error(),
			})
			return
		}
		status["database"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
