package spatial_test

import (
	"math"
	"testing"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/spatial"
)

func TestInferAdjacentRooms(t *testing.T) {
	// Two rooms sharing a wall: the seam at x=4 with y-overlap [1, 4).
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 4, Y: 1, W: 4, H: 6}},
		},
	}

	out := spatial.InferTopology(level)
	if len(out.Connections) != 1 {
		t.Fatalf("got %d connections, want 1", len(out.Connections))
	}

	c := out.Connections[0]
	if !c.Inferred {
		t.Error("connection should be marked inferred")
	}
	// Overlap is [1,4] = 3 units; smaller edge is r1's height 4.
	if math.Abs(c.Confidence-0.75) > 1e-9 {
		t.Errorf("Confidence = %g, want 0.75", c.Confidence)
	}
	if c.Position == nil {
		t.Fatal("expected a door position")
	}
	if c.Position.X != 4 || c.Position.Y != 2.5 {
		t.Errorf("door at (%g, %g), want (4, 2.5)", c.Position.X, c.Position.Y)
	}
}

func TestInferRespectsGapThreshold(t *testing.T) {
	mk := func(gap float64) *dungeon.Level {
		return &dungeon.Level{
			Rooms: []dungeon.Room{
				{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
				{ID: "r2", Bounds: dungeon.Rect{X: 4 + gap, Y: 0, W: 4, H: 4}},
			},
		}
	}

	if out := spatial.InferTopology(mk(0.5)); len(out.Connections) != 1 {
		t.Errorf("gap 0.5: got %d connections, want 1", len(out.Connections))
	}
	if out := spatial.InferTopology(mk(2.0)); len(out.Connections) != 0 {
		t.Errorf("gap 2.0: got %d connections, want 0", len(out.Connections))
	}
}

func TestInferRejectsZeroOverlap(t *testing.T) {
	// Rooms touch only at a corner: no positive overlap on either axis.
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 4, Y: 4, W: 4, H: 4}},
		},
	}
	out := spatial.InferTopology(level)
	if len(out.Connections) != 0 {
		t.Errorf("corner-touching rooms produced %d connections, want 0", len(out.Connections))
	}
}

func TestInferIdempotent(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 4, Y: 0, W: 4, H: 4}},
			{ID: "r3", Bounds: dungeon.Rect{X: 8, Y: 0, W: 4, H: 4}},
		},
	}

	once := spatial.InferTopology(level)
	twice := spatial.InferTopology(once)

	if len(once.Connections) != len(twice.Connections) {
		t.Fatalf("second pass changed connection count: %d -> %d",
			len(once.Connections), len(twice.Connections))
	}
	for i := range once.Connections {
		if once.Connections[i].PairKey() != twice.Connections[i].PairKey() {
			t.Errorf("connection %d changed: %+v -> %+v", i, once.Connections[i], twice.Connections[i])
		}
	}
}

func TestExplicitConnectionWins(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 4, Y: 0, W: 4, H: 4}},
		},
		Connections: []dungeon.Connection{
			{From: "r2", To: "r1", Position: &dungeon.Point{X: 4, Y: 1}},
		},
	}

	out := spatial.InferTopology(level)
	if len(out.Connections) != 1 {
		t.Fatalf("got %d connections, want 1 (no duplicate of explicit pair)", len(out.Connections))
	}
	c := out.Connections[0]
	if c.Inferred {
		t.Error("explicit connection replaced by inferred one")
	}
	if c.Position == nil || c.Position.Y != 1 {
		t.Errorf("explicit door position lost: %+v", c.Position)
	}
}

func TestExplicitConnectionGetsDoorPosition(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 0, Y: 4, W: 4, H: 4}},
		},
		Connections: []dungeon.Connection{{From: "r1", To: "r2"}},
	}

	out := spatial.InferTopology(level)
	c := out.Connections[0]
	if c.Position == nil {
		t.Fatal("expected inferred door position on explicit connection")
	}
	if c.Position.X != 2 || c.Position.Y != 4 {
		t.Errorf("door at (%g, %g), want (2, 4)", c.Position.X, c.Position.Y)
	}
}

func TestDiagonalFallbackPosition(t *testing.T) {
	// Diagonal rooms connected explicitly: door falls back to center midpoint.
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 6, Y: 6, W: 4, H: 4}},
		},
		Connections: []dungeon.Connection{{From: "r1", To: "r2"}},
	}

	out := spatial.InferTopology(level)
	c := out.Connections[0]
	if c.Position == nil {
		t.Fatal("expected a fallback door position")
	}
	if c.Position.X != 5 || c.Position.Y != 5 {
		t.Errorf("door at (%g, %g), want midpoint (5, 5)", c.Position.X, c.Position.Y)
	}
}

func TestInferDoesNotMutateInput(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 4, Y: 0, W: 4, H: 4}},
		},
	}

	_ = spatial.InferTopology(level)
	if len(level.Connections) != 0 {
		t.Errorf("input level mutated: %d connections added", len(level.Connections))
	}
}
