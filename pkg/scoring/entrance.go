package scoring

import (
	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
)

// Entrance and exit selection shared by the accessibility and key-path
// metrics. Heuristics are deterministic: every tie breaks to the
// lexicographically smallest room id.

// findEntrance returns the room treated as the entrance: the explicitly
// flagged room if any, otherwise the lowest-degree node of the largest
// component.
func findEntrance(g *graph.Graph, level *dungeon.Level) (string, bool) {
	if id, ok := flaggedRoom(g, level, func(r *dungeon.Room) bool { return r.IsEntrance }); ok {
		return id, true
	}
	comp := g.LargestComponent()
	if len(comp) == 0 {
		return "", false
	}
	best := comp[0]
	for _, id := range comp[1:] {
		if g.Degree(id) < g.Degree(best) {
			best = id
		}
	}
	return best, true
}

// findKeyEndpoints returns the entrance and exit rooms for the key path.
// Explicit flags win; a missing endpoint falls back to the node most distant
// from the known one, and when neither is labeled the diameter endpoints are
// used.
func findKeyEndpoints(g *graph.Graph, level *dungeon.Level) (entrance, exit string, ok bool) {
	if g.NodeCount() == 0 {
		return "", "", false
	}
	ent, hasEnt := flaggedRoom(g, level, func(r *dungeon.Room) bool { return r.IsEntrance })
	ext, hasExt := flaggedRoom(g, level, func(r *dungeon.Room) bool { return r.IsExit })

	switch {
	case hasEnt && hasExt:
		return ent, ext, true
	case hasEnt:
		return ent, farthestFrom(g, ent), true
	case hasExt:
		return farthestFrom(g, ext), ext, true
	default:
		_, pair := g.Diameter()
		return pair[0], pair[1], true
	}
}

// flaggedRoom returns the smallest-id room matching the flag that is also a
// graph node (flags on contracted corridors are ignored).
func flaggedRoom(g *graph.Graph, level *dungeon.Level, match func(*dungeon.Room) bool) (string, bool) {
	all := level.AllRooms()
	found := ""
	for i := range all {
		if !match(&all[i]) || !g.HasNode(all[i].ID) {
			continue
		}
		if found == "" || all[i].ID < found {
			found = all[i].ID
		}
	}
	return found, found != ""
}

// farthestFrom returns the reachable node with the greatest BFS distance from
// start, smallest id on ties.
func farthestFrom(g *graph.Graph, start string) string {
	dist := g.Distances(start)
	best, bestD := start, 0
	for _, id := range g.Nodes() {
		d, reach := dist[id]
		if !reach {
			continue
		}
		if d > bestD || (d == bestD && d > 0 && id < best) {
			best, bestD = id, d
		}
	}
	return best
}
