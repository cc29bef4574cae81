package scoring

import (
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// KeyPathMetric scores the length of the entrance-to-exit path relative to
// the graph diameter. A key path close to the diameter means the level's
// breadth is actually used by the critical route; a short key path through a
// sprawling map wastes most of the layout.
type KeyPathMetric struct {
	IdealLo float64 // lower edge of the target normalized-length band
	IdealHi float64 // upper edge of the target normalized-length band
}

func (m *KeyPathMetric) Key() string        { return "key_path_length" }
func (m *KeyPathMetric) Name() string       { return "Key path length" }
func (m *KeyPathMetric) Category() Category { return CategoryGameplay }

func (m *KeyPathMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	entrance, exit, ok := findKeyEndpoints(g, level)
	if !ok {
		return errResult(m, "level has no rooms")
	}

	diameter, _ := g.Diameter()
	if diameter == 0 {
		return errResult(m, "graph diameter is zero (single room or no connected pair)")
	}

	path, reachable := g.ShortestPath(entrance, exit)
	if !reachable {
		return errResult(m, "entrance and exit are disconnected")
	}

	rawLength := len(path) - 1
	normalized := float64(rawLength) / float64(diameter)

	score := PlateauScore(normalized, m.IdealLo, m.IdealHi,
		Falloff{Width: m.IdealLo, Floor: 0},
		Falloff{Width: 1 - m.IdealHi, Floor: 0},
	)

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"entrance":          entrance,
			"exit":              exit,
			"path":              path,
			"path_length":       rawLength,
			"diameter":          diameter,
			"normalized_length": normalized,
		},
	}
}
