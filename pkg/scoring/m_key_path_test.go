package scoring_test

import (
	"testing"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/scoring"
)

func keyPathMetric() *scoring.KeyPathMetric {
	p := scoring.DefaultParams()
	return &scoring.KeyPathMetric{IdealLo: p.KeyPathIdealLo, IdealHi: p.KeyPathIdealHi}
}

func TestKeyPathThreeRoomLine(t *testing.T) {
	level := lineLevel(3)
	level.Rooms[0].IsEntrance = true
	level.Rooms[2].IsExit = true

	result := keyPathMetric().Evaluate(mustBuild(t, level), level)

	if got := result.Detail["entrance"]; got != "room_1" {
		t.Errorf("entrance = %v, want room_1", got)
	}
	if got := result.Detail["exit"]; got != "room_3" {
		t.Errorf("exit = %v, want room_3", got)
	}
	if got := result.Detail["path_length"].(int); got != 2 {
		t.Errorf("path_length = %d, want 2", got)
	}
	if got := result.Detail["diameter"].(int); got != 2 {
		t.Errorf("diameter = %d, want 2", got)
	}
	if got := result.Detail["normalized_length"].(float64); got != 1.0 {
		t.Errorf("normalized_length = %g, want 1.0", got)
	}
	if result.Score != 1 {
		t.Errorf("score = %g, want 1.0", result.Score)
	}
}

func TestKeyPathUnlabeledUsesDiameterEndpoints(t *testing.T) {
	level := lineLevel(3)
	result := keyPathMetric().Evaluate(mustBuild(t, level), level)

	if got := result.Detail["entrance"]; got != "room_1" {
		t.Errorf("entrance = %v, want room_1 (diameter endpoint)", got)
	}
	if got := result.Detail["exit"]; got != "room_3" {
		t.Errorf("exit = %v, want room_3 (diameter endpoint)", got)
	}
	if got := result.Detail["normalized_length"].(float64); got != 1.0 {
		t.Errorf("normalized_length = %g, want 1.0", got)
	}
}

func TestKeyPathSingleRoom(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{{ID: "only", Bounds: dungeon.Rect{W: 4, H: 4}}},
	}
	result := keyPathMetric().Evaluate(mustBuild(t, level), level)

	if result.Score != 0 {
		t.Errorf("score = %g, want 0 for zero diameter", result.Score)
	}
	if result.Detail["reason"] == nil {
		t.Error("expected a reason detail, not a division error")
	}
}

func TestKeyPathDisconnectedEndpoints(t *testing.T) {
	level := &dungeon.Level{
		Rooms: []dungeon.Room{
			{ID: "r1", Bounds: dungeon.Rect{X: 0, Y: 0, W: 4, H: 4}, IsEntrance: true},
			{ID: "r2", Bounds: dungeon.Rect{X: 10, Y: 0, W: 4, H: 4}},
			{ID: "r3", Bounds: dungeon.Rect{X: 20, Y: 0, W: 4, H: 4}, IsExit: true},
		},
		// Only r2-r3 connected: entrance is cut off from the exit but the
		// diameter is still positive.
		Connections: []dungeon.Connection{{From: "r2", To: "r3"}},
	}
	result := keyPathMetric().Evaluate(mustBuild(t, level), level)

	if result.Score != 0 {
		t.Errorf("score = %g, want 0 for disconnected entrance/exit", result.Score)
	}
	if result.Detail["reason"] == nil {
		t.Error("expected a reason detail")
	}
}

func TestKeyPathShortcutScoresLower(t *testing.T) {
	// A direct entrance-exit edge across an otherwise long map: normalized
	// length well below the target band.
	level := lineLevel(6)
	level.Rooms[0].IsEntrance = true
	level.Rooms[5].IsExit = true
	level.Connections = append(level.Connections, dungeon.Connection{From: "room_1", To: "room_6"})

	result := keyPathMetric().Evaluate(mustBuild(t, level), level)
	if result.Score >= 1 {
		t.Errorf("score = %g, want below full credit for a shortcut", result.Score)
	}
	if got := result.Detail["path_length"].(int); got != 1 {
		t.Errorf("path_length = %d, want 1 (the shortcut)", got)
	}
}
