package scoring_test

import (
	"fmt"
	"testing"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// lineLevel builds n rooms in a row connected in a chain, entrance and exit
// unlabeled unless flagged afterwards.
func lineLevel(n int) *dungeon.Level {
	level := &dungeon.Level{Name: fmt.Sprintf("line-%d", n)}
	for i := 1; i <= n; i++ {
		level.Rooms = append(level.Rooms, dungeon.Room{
			ID:     fmt.Sprintf("room_%d", i),
			Bounds: dungeon.Rect{X: float64(i * 5), Y: 0, W: 4, H: 4},
		})
		if i > 1 {
			level.Connections = append(level.Connections, dungeon.Connection{
				From: fmt.Sprintf("room_%d", i-1),
				To:   fmt.Sprintf("room_%d", i),
			})
		}
	}
	return level
}

// gridLevel builds a side x side grid of identical square rooms connected to
// their horizontal and vertical neighbors.
func gridLevel(side int) *dungeon.Level {
	level := &dungeon.Level{Name: fmt.Sprintf("grid-%dx%d", side, side)}
	id := func(r, c int) string { return fmt.Sprintf("g%d_%d", r, c) }
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			level.Rooms = append(level.Rooms, dungeon.Room{
				ID:     id(r, c),
				Bounds: dungeon.Rect{X: float64(c * 6), Y: float64(r * 6), W: 4, H: 4},
			})
			if c > 0 {
				level.Connections = append(level.Connections, dungeon.Connection{From: id(r, c-1), To: id(r, c)})
			}
			if r > 0 {
				level.Connections = append(level.Connections, dungeon.Connection{From: id(r-1, c), To: id(r, c)})
			}
		}
	}
	return level
}

// roomIDNum matches the id scheme lineLevel uses.
func roomIDNum(i int) string { return fmt.Sprintf("room_%d", i) }

func connect(from, to string) dungeon.Connection {
	return dungeon.Connection{From: from, To: to}
}

// mustBuild builds the adjacency graph or fails the test.
func mustBuild(t *testing.T, level *dungeon.Level) *graph.Graph {
	t.Helper()
	g, err := graph.Build(level)
	if err != nil {
		t.Fatalf("graph.Build: %v", err)
	}
	return g
}

// checkBounds fails the test when a score leaves [0, 1].
func checkBounds(t *testing.T, score float64, what string) {
	t.Helper()
	if score < 0 || score > 1 {
		t.Errorf("%s = %g, outside [0, 1]", what, score)
	}
}
