package scoring

import (
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// AccessibilityMetric scores the fraction of rooms reachable from the
// entrance. Full credit for reachability in [IdealLo, IdealHi]; below that
// the score drops linearly, and near-total connectivity takes a capped
// penalty because an over-connected layout removes challenge.
type AccessibilityMetric struct {
	IdealLo   float64 // lower edge of the full-credit band
	IdealHi   float64 // upper edge of the full-credit band
	OverFloor float64 // score floor for fully connected layouts
}

func (m *AccessibilityMetric) Key() string        { return "accessibility" }
func (m *AccessibilityMetric) Name() string       { return "Accessibility" }
func (m *AccessibilityMetric) Category() Category { return CategoryStructural }

func (m *AccessibilityMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	if g.NodeCount() == 0 {
		return errResult(m, "level has no rooms")
	}

	entrance, ok := findEntrance(g, level)
	if !ok {
		return errResult(m, "no entrance candidate")
	}

	reachable := len(g.Distances(entrance))
	fraction := float64(reachable) / float64(g.NodeCount())
	components := len(g.ConnectedComponents())

	score := PlateauScore(fraction, m.IdealLo, m.IdealHi,
		Falloff{Width: m.IdealLo, Floor: 0},
		Falloff{Width: 1 - m.IdealHi, Floor: m.OverFloor},
	)

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"entrance":        entrance,
			"reachable_rooms": reachable,
			"total_rooms":     g.NodeCount(),
			"reachability":    fraction,
			"components":      components,
		},
	}
}
