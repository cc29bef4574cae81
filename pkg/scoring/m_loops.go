package scoring

import (
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// LoopRatioMetric scores the number of independent cycles per room. Both
// strictly tree-like layouts (no route choice) and heavily looped ones
// (mazes without structure) score lower; the ideal sits at IdealRatio.
type LoopRatioMetric struct {
	IdealRatio float64 // target cycles-per-room
	Spread     float64 // Gaussian spread around the target
}

func (m *LoopRatioMetric) Key() string        { return "loop_ratio" }
func (m *LoopRatioMetric) Name() string       { return "Loop ratio" }
func (m *LoopRatioMetric) Category() Category { return CategoryStructural }

func (m *LoopRatioMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	if g.NodeCount() == 0 {
		return errResult(m, "level has no rooms")
	}

	cycles := g.CyclomaticNumber()
	ratio := float64(cycles) / float64(g.NodeCount())
	score := GaussianScore(ratio, m.IdealRatio, m.Spread)

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"independent_cycles": cycles,
			"loop_ratio":         ratio,
		},
	}
}
