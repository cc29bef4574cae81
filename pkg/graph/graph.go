// Package graph builds the derived adjacency graph over a dungeon level and
// provides the traversal primitives the metric evaluators share. The graph is
// rebuilt deterministically from the same Level input; nothing here caches
// across assessments.
package graph

import (
	"fmt"
	"sort"

	"github.com/delvescope/delvescope/pkg/dungeon"
)

// DefaultConnectorThreshold is the footprint width below which a corridor is
// treated as a connector (contracted into an edge) rather than a scorable
// room. One grid cell.
const DefaultConnectorThreshold = 1.0

// GraphError reports a data-integrity problem that aborts graph construction.
// Callers must surface it as a failure of the whole assessment.
type GraphError struct {
	Msg string
}

func (e *GraphError) Error() string { return "graph: " + e.Msg }

// Graph is the undirected room-adjacency graph for one level.
// Owned by a single assessment; never shared or mutated after Build.
type Graph struct {
	nodes []string            // sorted room ids
	adj   map[string][]string // sorted neighbor lists
	edges [][2]string         // unique unordered pairs, lexicographic order
}

// Build constructs the adjacency graph from a level using the default
// connector threshold.
func Build(level *dungeon.Level) (*Graph, error) {
	return BuildWithThreshold(level, DefaultConnectorThreshold)
}

// BuildWithThreshold constructs the adjacency graph, contracting corridors
// whose thinner dimension is at most threshold into plain edges.
func BuildWithThreshold(level *dungeon.Level, threshold float64) (*Graph, error) {
	if err := level.Validate(); err != nil {
		return nil, &GraphError{Msg: err.Error()}
	}

	all := level.AllRooms()
	connector := make(map[string]bool)
	for _, r := range all {
		fp := r.Footprint()
		thin := fp.W
		if fp.H < thin {
			thin = fp.H
		}
		if r.IsCorridor && thin <= threshold {
			connector[r.ID] = true
		}
	}

	g := &Graph{adj: make(map[string][]string)}
	for _, r := range all {
		if !connector[r.ID] {
			g.nodes = append(g.nodes, r.ID)
		}
	}
	sort.Strings(g.nodes)

	// Room-room connections become edges directly. Connections touching a
	// connector are collected so corridor chains can be contracted below.
	edgeSet := make(map[string][2]string)
	connAdj := make(map[string][]string) // connector id -> touching ids
	addEdge := func(a, b string) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		edgeSet[a+"|"+b] = [2]string{a, b}
	}
	for _, c := range level.Connections {
		if connector[c.From] || connector[c.To] {
			connAdj[c.From] = append(connAdj[c.From], c.To)
			connAdj[c.To] = append(connAdj[c.To], c.From)
			continue
		}
		addEdge(c.From, c.To)
	}

	// Contract connector chains: BFS over connector-connector links, then
	// link every pair of rooms the chain touches.
	visited := make(map[string]bool)
	for id := range connector {
		if visited[id] {
			continue
		}
		var rooms []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range connAdj[cur] {
				if connector[nb] {
					if !visited[nb] {
						visited[nb] = true
						queue = append(queue, nb)
					}
				} else {
					rooms = append(rooms, nb)
				}
			}
		}
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				addEdge(rooms[i], rooms[j])
			}
		}
	}

	keys := make([]string, 0, len(edgeSet))
	for k := range edgeSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := edgeSet[k]
		g.edges = append(g.edges, e)
		g.adj[e[0]] = append(g.adj[e[0]], e[1])
		g.adj[e[1]] = append(g.adj[e[1]], e[0])
	}
	for id := range g.adj {
		sort.Strings(g.adj[id])
	}

	return g, nil
}

// Nodes returns the sorted room ids.
func (g *Graph) Nodes() []string { return g.nodes }

// NodeCount returns the number of scorable rooms.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of unique connections.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns the unique unordered edges in deterministic order.
func (g *Graph) Edges() [][2]string { return g.edges }

// HasNode reports whether id is a node in the graph.
func (g *Graph) HasNode(id string) bool {
	i := sort.SearchStrings(g.nodes, id)
	return i < len(g.nodes) && g.nodes[i] == id
}

// Neighbors returns the sorted neighbor ids of a room.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of connections a room participates in.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Distances runs BFS from a node and returns hop counts for every reachable
// node, including zero for the start itself.
func (g *Graph) Distances(from string) map[string]int {
	dist := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.adj[cur] {
			if _, ok := dist[nb]; !ok {
				dist[nb] = dist[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return dist
}

// ShortestPath returns a shortest node path from a to b inclusive, or false
// when b is unreachable from a.
func (g *Graph) ShortestPath(a, b string) ([]string, bool) {
	if a == b {
		return []string{a}, g.HasNode(a)
	}
	prev := map[string]string{a: a}
	queue := []string{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.adj[cur] {
			if _, ok := prev[nb]; ok {
				continue
			}
			prev[nb] = cur
			if nb == b {
				var path []string
				for at := b; at != a; at = prev[at] {
					path = append(path, at)
				}
				path = append(path, a)
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, true
			}
			queue = append(queue, nb)
		}
	}
	return nil, false
}

// ConnectedComponents returns the components of the graph, each sorted by id,
// ordered by their smallest member.
func (g *Graph) ConnectedComponents() [][]string {
	seen := make(map[string]bool)
	var comps [][]string
	for _, start := range g.nodes {
		if seen[start] {
			continue
		}
		var comp []string
		queue := []string{start}
		seen[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range g.adj[cur] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	return comps
}

// LargestComponent returns the component with the most rooms, preferring the
// lexicographically smallest leading id on ties.
func (g *Graph) LargestComponent() []string {
	var best []string
	for _, comp := range g.ConnectedComponents() {
		if len(comp) > len(best) {
			best = comp
		}
	}
	return best
}

// CyclomaticNumber returns edges - nodes + components: the number of
// independent cycles in the graph.
func (g *Graph) CyclomaticNumber() int {
	return len(g.edges) - len(g.nodes) + len(g.ConnectedComponents())
}

// Diameter returns the longest shortest-path distance over all node pairs and
// one pair realizing it. Unreachable pairs are ignored; ties resolve to the
// lexicographically smallest pair so results are reproducible.
func (g *Graph) Diameter() (int, [2]string) {
	best := 0
	var pair [2]string
	if len(g.nodes) > 0 {
		pair = [2]string{g.nodes[0], g.nodes[0]}
	}
	for _, from := range g.nodes {
		dist := g.Distances(from)
		for _, to := range g.nodes {
			d, ok := dist[to]
			if !ok || from >= to {
				continue
			}
			if d > best || (d == best && d > 0 && lessPair(from, to, pair)) {
				best = d
				pair = [2]string{from, to}
			}
		}
	}
	return best, pair
}

func lessPair(a, b string, cur [2]string) bool {
	if a != cur[0] {
		return a < cur[0]
	}
	return b < cur[1]
}

// CountSimplePaths counts simple paths from a to b using at most maxLen edges.
// Enumeration stops once budget paths have been explored, keeping worst-case
// cost bounded; the second result reports whether the budget was hit.
func (g *Graph) CountSimplePaths(a, b string, maxLen, budget int) (int, bool) {
	if !g.HasNode(a) || !g.HasNode(b) {
		return 0, false
	}
	onPath := map[string]bool{a: true}
	count := 0
	truncated := false

	var dfs func(cur string, depth int)
	dfs = func(cur string, depth int) {
		if truncated {
			return
		}
		if cur == b {
			count++
			if count >= budget {
				truncated = true
			}
			return
		}
		if depth == maxLen {
			return
		}
		for _, nb := range g.adj[cur] {
			if onPath[nb] {
				continue
			}
			onPath[nb] = true
			dfs(nb, depth+1)
			onPath[nb] = false
			if truncated {
				return
			}
		}
	}
	dfs(a, 0)
	return count, truncated
}

// String summarizes the graph for logs and error messages.
func (g *Graph) String() string {
	return fmt.Sprintf("graph{%d rooms, %d connections}", len(g.nodes), len(g.edges))
}
