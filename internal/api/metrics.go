package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/scoring"
)

type metricInfo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *Handler) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.engine.Metrics()
	result := make([]metricInfo, 0, len(metrics))
	for _, m := range metrics {
		result = append(result, metricInfo{
			Key:      m.Key(),
			Name:     m.Name(),
			Category: string(m.Category()),
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleEvaluateMetric(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	level, err := dungeon.ParseLevel(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level: "+err.Error())
		return
	}

	result, err := h.engine.EvaluateMetric(key, level)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownMetric) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
