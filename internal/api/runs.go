package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/delvescope/delvescope/internal/store"
)

type runResponse struct {
	ID               string  `json:"id"`
	ProjectID        string  `json:"project_id"`
	LevelName        string  `json:"level_name"`
	OverallScore     float64 `json:"overall_score"`
	Grade            string  `json:"grade"`
	TopologyInferred bool    `json:"topology_inferred"`
	RoomCount        int     `json:"room_count"`
	ConnectionCount  int     `json:"connection_count"`
	LevelRef         string  `json:"level_ref,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type projectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

const timeLayout = "2006-01-02T15:04:05Z"

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}
	projects, err := h.runs.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list projects failed")
		return
	}
	result := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, projectResponse{
			ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt.UTC().Format(timeLayout),
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	projectName := r.URL.Query().Get("project")
	if projectName == "" {
		writeError(w, http.StatusBadRequest, "project query parameter is required")
		return
	}
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	project, err := h.runs.GetProjectByName(r.Context(), projectName)
	if err != nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	rows, err := h.runs.ListRunsByProject(r.Context(), project.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}

	result := make([]runResponse, 0, len(rows))
	for i := range rows {
		result = append(result, runRowToResponse(&rows[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	projectName := r.URL.Query().Get("project")
	levelName := r.URL.Query().Get("level")
	if projectName == "" || levelName == "" {
		writeError(w, http.StatusBadRequest, "project and level query parameters are required")
		return
	}

	project, err := h.runs.GetProjectByName(r.Context(), projectName)
	if err != nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	row, err := h.runs.LatestRunForLevel(r.Context(), project.ID, levelName)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			writeError(w, http.StatusNotFound, "no runs recorded for level")
		} else {
			writeError(w, http.StatusInternalServerError, "get latest run failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, runRowToResponse(row))
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	row, err := h.runs.GetRunByID(r.Context(), r.PathValue("runID"))
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			writeError(w, http.StatusNotFound, "run not found")
		} else {
			writeError(w, http.StatusInternalServerError, "get run failed")
		}
		return
	}
	result, err := row.Result()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "decode run failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetRunLevel(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil || h.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	row, err := h.runs.GetRunByID(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if row.LevelRef == "" {
		writeError(w, http.StatusNotFound, "run has no archived level")
		return
	}
	data, err := h.archive.GetLevel(r.Context(), row.ProjectID, row.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "archived level unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleGetRunResult serves the archived result payload exactly as it was
// written at assessment time, bypassing the row reconstruction in
// handleGetRun.
func (h *Handler) handleGetRunResult(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil || h.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	row, err := h.runs.GetRunByID(r.Context(), r.PathValue("runID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	data, err := h.archive.GetResult(r.Context(), row.ProjectID, row.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "archived result unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func runRowToResponse(row *store.RunRow) runResponse {
	return runResponse{
		ID:               row.ID,
		ProjectID:        row.ProjectID,
		LevelName:        row.LevelName,
		OverallScore:     row.OverallScore,
		Grade:            row.Grade,
		TopologyInferred: row.TopologyInferred,
		RoomCount:        row.RoomCount,
		ConnectionCount:  row.ConnectionCount,
		LevelRef:         row.LevelRef,
		CreatedAt:        row.CreatedAt.UTC().Format(timeLayout),
	}
}
