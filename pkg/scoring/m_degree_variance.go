package scoring

import (
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// DegreeVarianceMetric rewards a mix of hub rooms and simple rooms over a
// uniform branching factor. Degree variance is normalized by the theoretical
// maximum for the room count (half the rooms at degree 0, half at n-1) and
// mapped through a Gaussian centered on the target band.
type DegreeVarianceMetric struct {
	Center float64 // target normalized variance
	Spread float64 // Gaussian spread
}

func (m *DegreeVarianceMetric) Key() string        { return "degree_variance" }
func (m *DegreeVarianceMetric) Name() string       { return "Degree variance" }
func (m *DegreeVarianceMetric) Category() Category { return CategoryStructural }

func (m *DegreeVarianceMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	n := g.NodeCount()
	if n < 2 {
		return errResult(m, "degree variance needs at least two rooms")
	}

	degrees := make([]float64, 0, n)
	for _, id := range g.Nodes() {
		degrees = append(degrees, float64(g.Degree(id)))
	}

	v := variance(degrees)
	half := float64(n-1) / 2
	maxVar := half * half
	normalized := v / maxVar

	score := GaussianScore(normalized, m.Center, m.Spread)

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"variance":            v,
			"normalized_variance": normalized,
			"mean_degree":         mean(degrees),
		},
	}
}
