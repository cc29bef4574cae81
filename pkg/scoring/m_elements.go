package scoring

import (
	"math"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// ElementDistributionMetric scores treasure and monster placement: overall
// density per room, how widely each element type spreads over the map, and
// whether monsters sit close enough to treasure to guard it. Deviations from
// the target bands accumulate as penalties against a starting score of 1.
type ElementDistributionMetric struct {
	DensityLo      float64 // lower edge of the elements-per-room band
	DensityHi      float64 // upper edge of the elements-per-room band
	MinSpreadRatio float64 // minimum per-type spread as a fraction of the map diagonal
	GuardMaxRatio  float64 // maximum treasure-monster distance as a fraction of the diagonal
}

func (m *ElementDistributionMetric) Key() string        { return "element_distribution" }
func (m *ElementDistributionMetric) Name() string       { return "Treasure/monster distribution" }
func (m *ElementDistributionMetric) Category() Category { return CategoryGameplay }

func (m *ElementDistributionMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	if g.NodeCount() == 0 {
		return errResult(m, "level has no rooms")
	}

	elements := level.AllElements()
	if len(elements) == 0 {
		// A bare layout is not an error, just unassessable placement.
		return MetricResult{
			Key:      m.Key(),
			Name:     m.Name(),
			Category: m.Category(),
			Score:    0.5,
			Detail:   map[string]any{"reason": "no game elements placed"},
		}
	}

	diag := levelDiagonal(level)
	if diag <= 0 {
		return errResult(m, "degenerate map extent")
	}

	var treasures, monsters []dungeon.Point
	for _, e := range elements {
		switch e.Type {
		case dungeon.ElementTreasure:
			treasures = append(treasures, e.Position)
		case dungeon.ElementMonster:
			monsters = append(monsters, e.Position)
		}
	}

	density := float64(len(elements)) / float64(g.NodeCount())
	treasureSpread := meanPairwiseDist(treasures) / diag
	monsterSpread := meanPairwiseDist(monsters) / diag
	guardDist := meanCrossDist(treasures, monsters) / diag

	score := 1.0
	detail := map[string]any{
		"elements":        len(elements),
		"treasures":       len(treasures),
		"monsters":        len(monsters),
		"density":         density,
		"treasure_spread": treasureSpread,
		"monster_spread":  monsterSpread,
		"guard_distance":  guardDist,
	}

	switch {
	case density < m.DensityLo:
		score -= 0.3 * clamp01((m.DensityLo-density)/m.DensityLo)
	case density > m.DensityHi:
		score -= 0.3 * clamp01((density-m.DensityHi)/m.DensityHi)
	}

	groups := []struct {
		count  int
		spread float64
	}{
		{len(treasures), treasureSpread},
		{len(monsters), monsterSpread},
	}
	for _, grp := range groups {
		// Clumped placement of a type that appears more than once; coincident
		// positions count as fully clumped.
		if grp.count >= 2 && grp.spread < m.MinSpreadRatio {
			score -= 0.2 * (1 - grp.spread/m.MinSpreadRatio)
		}
	}

	if guardDist > m.GuardMaxRatio {
		score -= 0.25 * clamp01((guardDist-m.GuardMaxRatio)/(1-m.GuardMaxRatio))
	}

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    clamp01(score),
		Detail:   detail,
	}
}

// levelDiagonal returns the diagonal of the bounding box over all room
// footprints.
func levelDiagonal(level *dungeon.Level) float64 {
	rooms := level.AllRooms()
	if len(rooms) == 0 {
		return 0
	}
	fp := rooms[0].Footprint()
	minX, minY, maxX, maxY := fp.X, fp.Y, fp.MaxX(), fp.MaxY()
	for i := range rooms[1:] {
		fp := rooms[i+1].Footprint()
		minX = math.Min(minX, fp.X)
		minY = math.Min(minY, fp.Y)
		maxX = math.Max(maxX, fp.MaxX())
		maxY = math.Max(maxY, fp.MaxY())
	}
	return math.Hypot(maxX-minX, maxY-minY)
}

// meanPairwiseDist returns the mean distance over all unordered point pairs,
// or 0 when fewer than two points exist.
func meanPairwiseDist(pts []dungeon.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	var sum float64
	count := 0
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			sum += pts[i].Dist(pts[j])
			count++
		}
	}
	return sum / float64(count)
}

// meanCrossDist returns the mean distance over all cross pairs of two point
// sets, or 0 when either set is empty.
func meanCrossDist(as, bs []dungeon.Point) float64 {
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	var sum float64
	for _, a := range as {
		for _, b := range bs {
			sum += a.Dist(b)
		}
	}
	return sum / float64(len(as)*len(bs))
}
