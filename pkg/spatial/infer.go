// Package spatial completes missing level topology from room geometry.
// Some map formats export rooms without declaring their doors; the inference
// engine proposes connections between geometrically adjacent rooms so the
// metric evaluators still see a usable graph.
package spatial

import (
	"math"
	"sort"

	"github.com/delvescope/delvescope/pkg/dungeon"
)

// DefaultAdjacencyThreshold is the maximum gap, in grid units, between two
// room footprints for them to be considered adjacent.
const DefaultAdjacencyThreshold = 1.0

// Options tunes the inference pass.
type Options struct {
	// AdjacencyThreshold is the maximum axis gap between footprints.
	AdjacencyThreshold float64
}

// DefaultOptions returns the standard inference options.
func DefaultOptions() Options {
	return Options{AdjacencyThreshold: DefaultAdjacencyThreshold}
}

// InferTopology returns a copy of the level with inferred connections added
// for geometrically adjacent room pairs and door positions filled in for
// connections that lack one. The input level is never mutated.
//
// The pass is idempotent: connections are deduplicated by unordered room
// pair, and an explicit connection always wins over an inferred one for the
// same pair.
func InferTopology(level *dungeon.Level) *dungeon.Level {
	return InferTopologyWithOptions(level, DefaultOptions())
}

// InferTopologyWithOptions is InferTopology with explicit options.
func InferTopologyWithOptions(level *dungeon.Level, opts Options) *dungeon.Level {
	out := level.Clone()
	rooms := out.AllRooms()

	// Index existing connections by unordered pair, explicit first.
	byPair := make(map[string]dungeon.Connection, len(out.Connections))
	for _, c := range out.Connections {
		key := c.PairKey()
		if prev, ok := byPair[key]; ok && !prev.Inferred {
			continue
		}
		if prev, ok := byPair[key]; ok && prev.Inferred && c.Inferred {
			continue
		}
		byPair[key] = c
	}

	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			cand, ok := inferPair(&rooms[i], &rooms[j], opts.AdjacencyThreshold)
			if !ok {
				continue
			}
			if _, exists := byPair[cand.PairKey()]; exists {
				continue
			}
			byPair[cand.PairKey()] = cand
		}
	}

	// Fill in missing door positions on whatever survived.
	byID := make(map[string]*dungeon.Room, len(rooms))
	for i := range rooms {
		byID[rooms[i].ID] = &rooms[i]
	}
	conns := make([]dungeon.Connection, 0, len(byPair))
	for _, c := range byPair {
		if c.Position == nil {
			if a, b := byID[c.From], byID[c.To]; a != nil && b != nil {
				p := doorPosition(a.Footprint(), b.Footprint())
				c.Position = &p
			}
		}
		conns = append(conns, c)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].PairKey() < conns[j].PairKey() })
	out.Connections = conns

	return out
}

// inferPair proposes a connection between two rooms whose footprints are
// within threshold along one axis and overlap on the other. Confidence is the
// overlap length relative to the smaller room's edge, clamped to (0, 1].
func inferPair(a, b *dungeon.Room, threshold float64) (dungeon.Connection, bool) {
	fa, fb := a.Footprint(), b.Footprint()

	gapX := math.Max(fa.X, fb.X) - math.Min(fa.MaxX(), fb.MaxX())
	gapY := math.Max(fa.Y, fb.Y) - math.Min(fa.MaxY(), fb.MaxY())

	var overlap, minEdge float64
	switch {
	case gapX >= 0 && gapX <= threshold && gapY < 0:
		// Side by side; overlap along Y.
		overlap = dungeon.Overlap1D(fa.Y, fa.MaxY(), fb.Y, fb.MaxY())
		minEdge = math.Min(fa.H, fb.H)
	case gapY >= 0 && gapY <= threshold && gapX < 0:
		// Stacked; overlap along X.
		overlap = dungeon.Overlap1D(fa.X, fa.MaxX(), fb.X, fb.MaxX())
		minEdge = math.Min(fa.W, fb.W)
	default:
		return dungeon.Connection{}, false
	}

	if overlap <= 0 || minEdge <= 0 {
		return dungeon.Connection{}, false
	}

	conf := overlap / minEdge
	if conf > 1 {
		conf = 1
	}
	pos := doorPosition(fa, fb)
	return dungeon.Connection{
		From:       a.ID,
		To:         b.ID,
		Position:   &pos,
		Inferred:   true,
		Confidence: conf,
	}, true
}

// doorPosition places a door on the shared boundary between two footprints:
// the coincident edge coordinate on the touching axis and the midpoint of the
// overlap interval on the other. Diagonal-only neighbors fall back to the
// midpoint between room centers.
func doorPosition(a, b dungeon.Rect) dungeon.Point {
	overlapX := dungeon.Overlap1D(a.X, a.MaxX(), b.X, b.MaxX())
	overlapY := dungeon.Overlap1D(a.Y, a.MaxY(), b.Y, b.MaxY())

	switch {
	case overlapY > 0 && overlapX <= 0:
		// Side by side: door on the vertical boundary between them.
		x := boundaryCoord(a.X, a.MaxX(), b.X, b.MaxX())
		y := math.Max(a.Y, b.Y) + overlapY/2
		return dungeon.Point{X: x, Y: y}
	case overlapX > 0 && overlapY <= 0:
		x := math.Max(a.X, b.X) + overlapX/2
		y := boundaryCoord(a.Y, a.MaxY(), b.Y, b.MaxY())
		return dungeon.Point{X: x, Y: y}
	default:
		ca, cb := a.Center(), b.Center()
		return dungeon.Point{X: (ca.X + cb.X) / 2, Y: (ca.Y + cb.Y) / 2}
	}
}

// boundaryCoord returns the midpoint of the gap (or seam) between two
// intervals along one axis.
func boundaryCoord(aLo, aHi, bLo, bHi float64) float64 {
	if aHi <= bLo {
		return (aHi + bLo) / 2
	}
	return (bHi + aLo) / 2
}
