package scoring

import (
	"math"
	"sort"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// GeometricBalanceMetric is a composite aesthetic score built from four
// weighted sub-scores: Gestalt organization (proximity, similarity,
// continuity), visual-weight balance, spatial legibility, and unity/variety.
// The sub-score weights are part of the metric definition and fixed.
type GeometricBalanceMetric struct{}

const (
	balanceGestaltWeight    = 0.30
	balanceVisualWeight     = 0.25
	balanceLegibilityWeight = 0.25
	balanceUnityWeight      = 0.20
)

func (m *GeometricBalanceMetric) Key() string        { return "geometric_balance" }
func (m *GeometricBalanceMetric) Name() string       { return "Geometric balance" }
func (m *GeometricBalanceMetric) Category() Category { return CategoryAesthetic }

func (m *GeometricBalanceMetric) Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult {
	// Contracted corridors are not part of the composition being judged.
	var rects []dungeon.Rect
	for _, r := range level.AllRooms() {
		if g.HasNode(r.ID) {
			rects = append(rects, r.Footprint())
		}
	}
	if len(rects) < 2 {
		return errResult(m, "geometric balance needs at least two rooms")
	}

	gestalt := gestaltScore(rects)
	visual := visualWeightScore(rects)
	legibility := legibilityScore(rects)
	unity := unityVarietyScore(rects)

	score := balanceGestaltWeight*gestalt +
		balanceVisualWeight*visual +
		balanceLegibilityWeight*legibility +
		balanceUnityWeight*unity

	return MetricResult{
		Key:      m.Key(),
		Name:     m.Name(),
		Category: m.Category(),
		Score:    clamp01(score),
		Detail: map[string]any{
			"gestalt":       gestalt,
			"visual_weight": visual,
			"legibility":    legibility,
			"unity_variety": unity,
		},
	}
}

// gestaltScore combines three perception cues: proximity (room spacing
// regularity), similarity (size consistency), and continuity (smoothness of
// the angular distribution of rooms around the centroid).
func gestaltScore(rects []dungeon.Rect) float64 {
	centers := make([]dungeon.Point, len(rects))
	areas := make([]float64, len(rects))
	for i, r := range rects {
		centers[i] = r.Center()
		areas[i] = r.Area()
	}

	var dists []float64
	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			dists = append(dists, centers[i].Dist(centers[j]))
		}
	}
	proximity := GaussianScore(coeffVariation(dists), 0, 0.6)
	similarity := GaussianScore(coeffVariation(areas), 0, 0.5)
	continuity := angularContinuity(centers)

	return (proximity + similarity + continuity) / 3
}

// angularContinuity measures how evenly rooms surround their centroid: sort
// the polar angles of room centers and score the regularity of the gaps.
func angularContinuity(centers []dungeon.Point) float64 {
	if len(centers) < 3 {
		return 1
	}
	var cx, cy float64
	for _, c := range centers {
		cx += c.X
		cy += c.Y
	}
	cx /= float64(len(centers))
	cy /= float64(len(centers))

	angles := make([]float64, 0, len(centers))
	for _, c := range centers {
		angles = append(angles, math.Atan2(c.Y-cy, c.X-cx))
	}
	sort.Float64s(angles)

	gaps := make([]float64, 0, len(angles))
	for i := 1; i < len(angles); i++ {
		gaps = append(gaps, angles[i]-angles[i-1])
	}
	gaps = append(gaps, 2*math.Pi-(angles[len(angles)-1]-angles[0]))

	return GaussianScore(coeffVariation(gaps), 0, 0.6)
}

// visualWeightScore compares left/right and top/bottom mass, where a room's
// mass is its area times its distance from the composition center.
func visualWeightScore(rects []dungeon.Rect) float64 {
	minX, minY, maxX, maxY := bounds(rects)
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	var left, right, bottom, top float64
	for _, r := range rects {
		c := r.Center()
		if dx := c.X - cx; dx < 0 {
			left += r.Area() * -dx
		} else {
			right += r.Area() * dx
		}
		if dy := c.Y - cy; dy < 0 {
			bottom += r.Area() * -dy
		} else {
			top += r.Area() * dy
		}
	}

	return (axisBalance(left, right) + axisBalance(bottom, top)) / 2
}

func axisBalance(a, b float64) float64 {
	if a+b == 0 {
		return 1
	}
	return 1 - math.Abs(a-b)/(a+b)
}

// legibilityScore favors an overall region close to square plus regular
// nearest-neighbor spacing, both of which make a map easy to read.
func legibilityScore(rects []dungeon.Rect) float64 {
	minX, minY, maxX, maxY := bounds(rects)
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return 0
	}
	aspect := math.Max(w, h) / math.Min(w, h)
	aspectScore := PlateauScore(aspect, 1.0, 1.8, Falloff{}, Falloff{Width: 2.0, Floor: 0})

	nn := make([]float64, 0, len(rects))
	for i, r := range rects {
		best := math.Inf(1)
		for j, o := range rects {
			if i == j {
				continue
			}
			if d := r.Center().Dist(o.Center()); d < best {
				best = d
			}
		}
		nn = append(nn, best)
	}
	nnScore := GaussianScore(coeffVariation(nn), 0, 0.5)

	return (aspectScore + nnScore) / 2
}

// unityVarietyScore rewards a coherent composition: consistent room sizes
// and shapes score high, chaotic mixes score low.
func unityVarietyScore(rects []dungeon.Rect) float64 {
	areas := make([]float64, len(rects))
	shapes := make([]float64, len(rects))
	for i, r := range rects {
		areas[i] = r.Area()
		if r.H > 0 {
			shapes[i] = r.W / r.H
		}
	}
	sizeScore := GaussianScore(coeffVariation(areas), 0, 0.5)
	shapeScore := GaussianScore(coeffVariation(shapes), 0, 0.5)
	return 0.6*sizeScore + 0.4*shapeScore
}

func bounds(rects []dungeon.Rect) (minX, minY, maxX, maxY float64) {
	minX, minY = rects[0].X, rects[0].Y
	maxX, maxY = rects[0].MaxX(), rects[0].MaxY()
	for _, r := range rects[1:] {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.MaxX())
		maxY = math.Max(maxY, r.MaxY())
	}
	return minX, minY, maxX, maxY
}
