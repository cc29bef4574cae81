// Package scoring implements the Delvescope dungeon quality assessment
// engine. It evaluates a level's adjacency graph against structural,
// gameplay, and aesthetic design heuristics and produces explainable,
// bounded scores.
package scoring

import "time"

// Category groups metrics for weighted aggregation.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryGameplay   Category = "gameplay"
	CategoryAesthetic  Category = "aesthetic"
)

// MetricResult is the output of a single metric evaluation.
// Immutable once computed. Score is always in [0, 1]; Detail carries the
// diagnostic values behind it, including an "error" entry when the metric
// could not be computed.
type MetricResult struct {
	Key      string         `json:"key"`  // machine key: "dead_end_ratio"
	Name     string         `json:"name"` // human name: "Dead-end ratio"
	Category Category       `json:"category"`
	Score    float64        `json:"score"`
	Detail   map[string]any `json:"detail,omitempty"`
}

// AssessmentResult is the complete output of assessing one level.
// Immutable once computed.
type AssessmentResult struct {
	ID               string                  `json:"id"`
	LevelName        string                  `json:"level_name,omitempty"`
	OverallScore     float64                 `json:"overall_score"`
	Grade            string                  `json:"grade"` // A, B, C, D, F
	Categories       map[Category]float64    `json:"categories"`
	Scores           map[string]MetricResult `json:"scores"`
	TopologyInferred bool                    `json:"topology_inferred"`
	RoomCount        int                     `json:"room_count"`
	ConnectionCount  int                     `json:"connection_count"`
	AssessedAt       time.Time               `json:"assessed_at"`
}

// GradeFromScore maps an overall score to a letter grade.
func GradeFromScore(score float64) string {
	switch {
	case score >= 0.8:
		return "A"
	case score >= 0.6:
		return "B"
	case score >= 0.4:
		return "C"
	case score >= 0.2:
		return "D"
	default:
		return "F"
	}
}

// errResult builds the uniform zero-score result a metric returns when it
// cannot compute: one failing rule never aborts the whole assessment.
func errResult(m Metric, reason string) MetricResult {
	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    0,
		Detail:   map[string]any{"error": reason, "reason": reason},
	}
}
