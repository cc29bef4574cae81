package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/delvescope/delvescope/internal/archive"
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
	"github.com/delvescope/delvescope/pkg/scoring"
)

// assessRequest is the POST /api/v1/assess body. Level carries the level
// document; Project, when set and persistence is configured, files the run
// under that project.
type assessRequest struct {
	Project string          `json:"project,omitempty"`
	Level   json.RawMessage `json:"level"`
}

// assessResponse wraps the result with the storage reference when the run
// was persisted.
type assessResponse struct {
	Result   any    `json:"result"`
	LevelRef string `json:"level_ref,omitempty"`
	Stored   bool   `json:"stored"`
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var req assessRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	// A bare level document is accepted too.
	levelDoc := req.Level
	if len(levelDoc) == 0 {
		levelDoc = body
	}

	level, err := dungeon.ParseLevel(levelDoc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level: "+err.Error())
		return
	}

	engine := h.engine
	if keysCSV := r.URL.Query().Get("metrics"); keysCSV != "" {
		engine, err = h.engineForKeys(keysCSV)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := engine.Assess(level)
	if err != nil {
		var ge *graph.GraphError
		if errors.As(err, &ge) {
			writeError(w, http.StatusUnprocessableEntity, "graph construction failed: "+ge.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := assessResponse{Result: result}
	if req.Project != "" && h.runs != nil {
		project, err := h.runs.EnsureProject(r.Context(), req.Project)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "persist run: "+err.Error())
			return
		}
		levelRef := ""
		if h.archive != nil {
			if err := h.archive.PutLevel(r.Context(), project.ID, result.ID, levelDoc); err != nil {
				writeError(w, http.StatusInternalServerError, "archive level: "+err.Error())
				return
			}
			levelRef = archive.LevelRef(project.ID, result.ID)

			resultDoc, err := json.Marshal(result)
			if err == nil {
				if err := h.archive.PutResult(r.Context(), project.ID, result.ID, resultDoc); err != nil {
					log.Printf("archive result %s: %v", result.ID, err)
				}
			}
		}
		if _, err := h.runs.InsertRun(r.Context(), project.ID, levelRef, result); err != nil {
			writeError(w, http.StatusInternalServerError, "persist run: "+err.Error())
			return
		}
		resp.Stored = true
		resp.LevelRef = levelRef
	}

	writeJSON(w, http.StatusOK, resp)
}

// engineForKeys narrows the configured engine to the comma-separated metric
// keys, keeping the configured thresholds.
func (h *Handler) engineForKeys(keysCSV string) (*scoring.Engine, error) {
	byKey := make(map[string]scoring.Metric)
	for _, m := range h.engine.Metrics() {
		byKey[m.Key()] = m
	}
	var selected []scoring.Metric
	for _, k := range strings.Split(keysCSV, ",") {
		if k = strings.TrimSpace(k); k == "" {
			continue
		}
		m, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownMetric, k)
		}
		selected = append(selected, m)
	}
	return scoring.NewEngine(selected...)
}
