package graph_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// lineLevel builds n unit-separated rooms in a row connected in a chain.
func lineLevel(n int) *dungeon.Level {
	level := &dungeon.Level{}
	for i := 0; i < n; i++ {
		level.Rooms = append(level.Rooms, dungeon.Room{
			ID:     roomID(i),
			Bounds: dungeon.Rect{X: float64(i * 5), Y: 0, W: 4, H: 4},
		})
		if i > 0 {
			level.Connections = append(level.Connections, dungeon.Connection{
				From: roomID(i - 1), To: roomID(i),
			})
		}
	}
	return level
}

func roomID(i int) string {
	return "room_" + string(rune('a'+i))
}

func TestBuildBasic(t *testing.T) {
	g, err := graph.Build(lineLevel(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
	if g.Degree(roomID(0)) != 1 || g.Degree(roomID(1)) != 2 {
		t.Errorf("degrees = %d, %d, want 1, 2", g.Degree(roomID(0)), g.Degree(roomID(1)))
	}
}

func TestBuildUnknownRoomIsGraphError(t *testing.T) {
	level := lineLevel(2)
	level.Connections = append(level.Connections, dungeon.Connection{From: roomID(0), To: "phantom"})

	_, err := graph.Build(level)
	if err == nil {
		t.Fatal("expected error for unknown room reference")
	}
	var gerr *graph.GraphError
	if !errors.As(err, &gerr) {
		t.Errorf("error type = %T, want *GraphError", err)
	}
}

func TestBuildDedupesReversedEdges(t *testing.T) {
	level := lineLevel(2)
	level.Connections = append(level.Connections, dungeon.Connection{From: roomID(1), To: roomID(0)})

	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 after dedupe", g.EdgeCount())
	}
}

func TestThinCorridorContraction(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 14, Y: 0, W: 4, H: 4}},
		},
		Corridors: []dungeon.Room{
			{ID: "c1", Bounds: dungeon.Rect{X: 4, Y: 1.5, W: 10, H: 1}},
		},
		Connections: []dungeon.Connection{
			{From: "r1", To: "c1"},
			{From: "c1", To: "r2"},
		},
	}

	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (corridor contracted)", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if !reflect.DeepEqual(g.Neighbors("r1"), []string{"r2"}) {
		t.Errorf("Neighbors(r1) = %v, want [r2]", g.Neighbors("r1"))
	}
}

func TestCorridorChainContraction(t *testing.T) {
	// r1 - c1 - c2 - r2: a two-segment corridor still yields one edge.
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "r2", Bounds: dungeon.Rect{X: 20, Y: 0, W: 4, H: 4}},
		},
		Corridors: []dungeon.Room{
			{ID: "c1", Bounds: dungeon.Rect{X: 4, Y: 1.5, W: 8, H: 1}},
			{ID: "c2", Bounds: dungeon.Rect{X: 12, Y: 1.5, W: 8, H: 1}},
		},
		Connections: []dungeon.Connection{
			{From: "r1", To: "c1"},
			{From: "c1", To: "c2"},
			{From: "c2", To: "r2"},
		},
	}

	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("got %d nodes, %d edges, want 2 nodes, 1 edge", g.NodeCount(), g.EdgeCount())
	}
}

func TestWideCorridorStaysANode(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}},
		},
		Corridors: []dungeon.Room{
			{ID: "hall", Bounds: dungeon.Rect{X: 5, Y: 0, W: 6, H: 3}},
		},
		Connections: []dungeon.Connection{{From: "r1", To: "hall"}},
	}

	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (wide corridor kept)", g.NodeCount())
	}
}

func TestShortestPathAndDistances(t *testing.T) {
	g, err := graph.Build(lineLevel(5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path, ok := g.ShortestPath(roomID(0), roomID(4))
	if !ok {
		t.Fatal("expected path to exist")
	}
	if len(path) != 5 {
		t.Errorf("path length = %d, want 5 nodes", len(path))
	}

	dist := g.Distances(roomID(0))
	if dist[roomID(4)] != 4 {
		t.Errorf("Distances[last] = %d, want 4", dist[roomID(4)])
	}

	if _, ok := g.ShortestPath(roomID(0), "nope"); ok {
		t.Error("expected no path to nonexistent node")
	}
}

func TestConnectedComponentsAndCyclomatic(t *testing.T) {
	level := lineLevel(4)
	// Detach room_d by dropping its connection; add a triangle elsewhere.
	level.Connections = level.Connections[:2]

	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	comps := g.ConnectedComponents()
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	// No cycles: E=2, V=4, C=2 -> 0
	if cn := g.CyclomaticNumber(); cn != 0 {
		t.Errorf("CyclomaticNumber = %d, want 0", cn)
	}

	// Close a loop a-b-c-a.
	level.Connections = append(level.Connections, dungeon.Connection{From: roomID(0), To: roomID(2)})
	g, err = graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cn := g.CyclomaticNumber(); cn != 1 {
		t.Errorf("CyclomaticNumber = %d, want 1", cn)
	}
}

func TestDiameter(t *testing.T) {
	g, err := graph.Build(lineLevel(5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d, pair := g.Diameter()
	if d != 4 {
		t.Errorf("Diameter = %d, want 4", d)
	}
	if pair[0] != roomID(0) || pair[1] != roomID(4) {
		t.Errorf("endpoints = %v, want ends of the line", pair)
	}
}

func TestDiameterSingleRoom(t *testing.T) {
	g, err := graph.Build(lineLevel(1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d, _ := g.Diameter()
	if d != 0 {
		t.Errorf("Diameter = %d, want 0 for a single room", d)
	}
}

func TestCountSimplePaths(t *testing.T) {
	// Square a-b-d, a-c-d: two simple paths of length 2.
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "a", Bounds: dungeon.Rect{X: 0, Y: 0, W: 2, H: 2}},
			{ID: "b", Bounds: dungeon.Rect{X: 3, Y: 0, W: 2, H: 2}},
			{ID: "c", Bounds: dungeon.Rect{X: 0, Y: 3, W: 2, H: 2}},
			{ID: "d", Bounds: dungeon.Rect{X: 3, Y: 3, W: 2, H: 2}},
		},
		Connections: []dungeon.Connection{
			{From: "a", To: "b"}, {From: "a", To: "c"},
			{From: "b", To: "d"}, {From: "c", To: "d"},
		},
	}
	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	n, truncated := g.CountSimplePaths("a", "d", 6, 100)
	if n != 2 || truncated {
		t.Errorf("CountSimplePaths = %d (truncated=%v), want 2", n, truncated)
	}

	// Length cap of 1 excludes both two-hop paths.
	n, _ = g.CountSimplePaths("a", "d", 1, 100)
	if n != 0 {
		t.Errorf("CountSimplePaths with cap 1 = %d, want 0", n)
	}

	// Budget of 1 stops enumeration after the first hit.
	n, truncated = g.CountSimplePaths("a", "d", 6, 1)
	if n != 1 || !truncated {
		t.Errorf("CountSimplePaths with budget 1 = %d (truncated=%v), want 1, true", n, truncated)
	}
}
