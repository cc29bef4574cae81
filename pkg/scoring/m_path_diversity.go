package scoring

import (
	"math/rand"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// PathDiversityMetric scores how many distinct routes connect room pairs.
// Small graphs are measured exhaustively; larger ones use a seeded sample of
// pairs so repeated runs of the same level produce the same score. Per-pair
// enumeration is capped by BudgetPerPair, which bounds worst-case cost
// without introducing wall-clock nondeterminism.
type PathDiversityMetric struct {
	Target         float64 // ideal average simple-path count
	Spread         float64 // Gaussian spread around the target
	MaxLen         int     // maximum path length in edges
	BudgetPerPair  int     // enumeration cap per pair
	MaxPairSamples int     // pair-count threshold for sampling
	Seed           int64   // sampling seed
}

func (m *PathDiversityMetric) Key() string        { return "path_diversity" }
func (m *PathDiversityMetric) Name() string       { return "Path diversity" }
func (m *PathDiversityMetric) Category() Category { return CategoryGameplay }

func (m *PathDiversityMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	n := g.NodeCount()
	if n < 2 {
		return errResult(m, "path diversity needs at least two rooms")
	}

	pairs := m.samplePairs(g.Nodes())

	var total float64
	truncatedPairs := 0
	for _, p := range pairs {
		count, truncated := g.CountSimplePaths(p[0], p[1], m.MaxLen, m.BudgetPerPair)
		if truncated {
			truncatedPairs++
		}
		total += float64(count)
	}
	avg := total / float64(len(pairs))
	score := GaussianScore(avg, m.Target, m.Spread)

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    score,
		Detail: map[string]any{
			"sampled_pairs":   len(pairs),
			"avg_paths":       avg,
			"truncated_pairs": truncatedPairs,
		},
	}
}

// samplePairs returns every unordered pair when the pair count fits the
// sample budget, otherwise MaxPairSamples pairs drawn with a fixed seed over
// the sorted node list.
func (m *PathDiversityMetric) samplePairs(nodes []string) [][2]string {
	n := len(nodes)
	totalPairs := n * (n - 1) / 2
	if totalPairs <= m.MaxPairSamples {
		pairs := make([][2]string, 0, totalPairs)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, [2]string{nodes[i], nodes[j]})
			}
		}
		return pairs
	}

	rng := rand.New(rand.NewSource(m.Seed))
	seen := make(map[[2]string]bool, m.MaxPairSamples)
	pairs := make([][2]string, 0, m.MaxPairSamples)
	// Fixed round count: sampling stops after 4x the budget in draws even if
	// duplicates keep the sample short, so run time stays bounded.
	for draws := 0; len(pairs) < m.MaxPairSamples && draws < m.MaxPairSamples*4; draws++ {
		i := rng.Intn(n)
		j := rng.Intn(n)
		if i == j {
			continue
		}
		if i > j {
			i, j = j, i
		}
		p := [2]string{nodes[i], nodes[j]}
		if seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, p)
	}
	return pairs
}
