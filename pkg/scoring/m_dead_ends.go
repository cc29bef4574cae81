package scoring

import (
	"sort"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// DeadEndMetric penalizes layouts where too many rooms terminate the map.
// A room is a dead end when its degree is at most one; the entrance is
// exempt. The score stays at 1.0 up to Ceiling and drops linearly to zero as
// the dead-end fraction approaches 1.
type DeadEndMetric struct {
	Ceiling float64 // acceptable dead-end fraction
}

func (m *DeadEndMetric) Key() string        { return "dead_end_ratio" }
func (m *DeadEndMetric) Name() string       { return "Dead-end ratio" }
func (m *DeadEndMetric) Category() Category { return CategoryStructural }

func (m *DeadEndMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	if g.NodeCount() == 0 {
		return errResult(m, "level has no rooms")
	}

	entrance, _ := findEntrance(g, level)

	var deadEnds []string
	for _, id := range g.Nodes() {
		if id == entrance {
			continue
		}
		if g.Degree(id) <= 1 {
			deadEnds = append(deadEnds, id)
		}
	}
	sort.Strings(deadEnds)

	ratio := float64(len(deadEnds)) / float64(g.NodeCount())
	score := PlateauScore(ratio, 0, m.Ceiling,
		Falloff{},
		Falloff{Width: 1 - m.Ceiling, Floor: 0},
	)

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"dead_end_count": len(deadEnds),
			"dead_end_rooms": deadEnds,
			"ratio":          ratio,
		},
	}
}
