// Package dungeon defines the core map data model for Delvescope.
// These types are the shared vocabulary across all modules: adapters produce
// a Level, the engine consumes it.
package dungeon

import (
	"fmt"
	"math"
)

// Point is a position on the map grid.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned footprint: origin at (X, Y), extending W by H.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the footprint area.
func (r Rect) Area() float64 { return r.W * r.H }

// Center returns the footprint centroid.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// MaxX returns the right edge coordinate.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the top edge coordinate.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Overlap1D returns the length of the overlap between intervals [aLo, aHi]
// and [bLo, bHi]. Negative values indicate a gap of that size.
func Overlap1D(aLo, aHi, bLo, bHi float64) float64 {
	return math.Min(aHi, bHi) - math.Max(aLo, bLo)
}

// ElementType classifies a placed game element.
type ElementType string

const (
	ElementTreasure ElementType = "treasure"
	ElementMonster  ElementType = "monster"
)

// GameElement is a treasure or monster placed on the map.
// RoomID is optional; when empty the engine assigns the element to the room
// whose footprint contains its position.
type GameElement struct {
	Type     ElementType `json:"type"`
	Position Point       `json:"position"`
	RoomID   string      `json:"room_id,omitempty"`
}

// Room is a single scorable space in a level.
type Room struct {
	ID       string `json:"id"`
	Bounds   Rect   `json:"bounds"`
	Vertices []Point `json:"vertices,omitempty"` // explicit polygon for non-rectangular rooms

	IsEntrance bool `json:"is_entrance,omitempty"`
	IsExit     bool `json:"is_exit,omitempty"`
	IsCorridor bool `json:"is_corridor,omitempty"`

	Elements []GameElement `json:"elements,omitempty"`
}

// Footprint returns the room's axis-aligned footprint. When an explicit
// vertex list is present, it is the bounding box of the polygon.
func (r *Room) Footprint() Rect {
	if len(r.Vertices) == 0 {
		return r.Bounds
	}
	minX, minY := r.Vertices[0].X, r.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range r.Vertices[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Connection is a door or passage linking two rooms.
// Inferred connections carry a confidence in (0, 1] assigned by the spatial
// inference engine; source-declared connections leave both fields zero.
type Connection struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Position   *Point  `json:"position,omitempty"`
	Inferred   bool    `json:"inferred,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// PairKey returns a stable key for the unordered room pair, used for
// deduplication.
func (c Connection) PairKey() string {
	if c.From <= c.To {
		return c.From + "|" + c.To
	}
	return c.To + "|" + c.From
}

// Level is the unit of assessment: one floor of a dungeon.
// Some adapters emit passages as degenerate thin rooms in Corridors rather
// than as connections; the graph builder decides which become edges.
type Level struct {
	Name        string        `json:"name,omitempty"`
	Rooms       []Room        `json:"rooms"`
	Connections []Connection  `json:"connections"`
	Corridors   []Room        `json:"corridors,omitempty"`
	Elements    []GameElement `json:"game_elements,omitempty"`
}

// AllRooms returns rooms followed by corridors, in declaration order.
func (l *Level) AllRooms() []Room {
	out := make([]Room, 0, len(l.Rooms)+len(l.Corridors))
	out = append(out, l.Rooms...)
	for _, c := range l.Corridors {
		c.IsCorridor = true
		out = append(out, c)
	}
	return out
}

// RoomByID returns a lookup map over rooms and corridors.
func (l *Level) RoomByID() map[string]*Room {
	all := l.AllRooms()
	m := make(map[string]*Room, len(all))
	for i := range all {
		m[all[i].ID] = &all[i]
	}
	return m
}

// AllElements returns level-scoped elements plus room-inline elements, with
// RoomID resolved by footprint containment where the source left it empty.
func (l *Level) AllElements() []GameElement {
	all := l.AllRooms()
	var out []GameElement
	for i := range all {
		for _, e := range all[i].Elements {
			if e.RoomID == "" {
				e.RoomID = all[i].ID
			}
			out = append(out, e)
		}
	}
	for _, e := range l.Elements {
		if e.RoomID == "" {
			for i := range all {
				if all[i].Footprint().Contains(e.Position) {
					e.RoomID = all[i].ID
					break
				}
			}
		}
		out = append(out, e)
	}
	return out
}

// Clone returns a deep copy of the level.
func (l *Level) Clone() *Level {
	out := &Level{Name: l.Name}
	out.Rooms = append([]Room(nil), l.Rooms...)
	for i := range out.Rooms {
		out.Rooms[i].Vertices = append([]Point(nil), l.Rooms[i].Vertices...)
		out.Rooms[i].Elements = append([]GameElement(nil), l.Rooms[i].Elements...)
	}
	out.Corridors = append([]Room(nil), l.Corridors...)
	for i := range out.Corridors {
		out.Corridors[i].Vertices = append([]Point(nil), l.Corridors[i].Vertices...)
		out.Corridors[i].Elements = append([]GameElement(nil), l.Corridors[i].Elements...)
	}
	out.Connections = append([]Connection(nil), l.Connections...)
	for i := range out.Connections {
		if p := l.Connections[i].Position; p != nil {
			cp := *p
			out.Connections[i].Position = &cp
		}
	}
	out.Elements = append([]GameElement(nil), l.Elements...)
	return out
}

// ValidationError reports a data-integrity problem in a Level.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "invalid level: " + e.Msg }

// Validate checks level-wide integrity invariants: unique room IDs, positive
// footprints, connections referencing known rooms, confidences in [0, 1].
func (l *Level) Validate() error {
	seen := make(map[string]bool)
	for _, r := range l.AllRooms() {
		if r.ID == "" {
			return &ValidationError{Msg: "room with empty id"}
		}
		if seen[r.ID] {
			return &ValidationError{Msg: fmt.Sprintf("duplicate room id %q", r.ID)}
		}
		seen[r.ID] = true
		if r.Footprint().Area() <= 0 {
			return &ValidationError{Msg: fmt.Sprintf("room %q has non-positive footprint", r.ID)}
		}
	}
	for _, c := range l.Connections {
		if !seen[c.From] {
			return &ValidationError{Msg: fmt.Sprintf("connection references unknown room %q", c.From)}
		}
		if !seen[c.To] {
			return &ValidationError{Msg: fmt.Sprintf("connection references unknown room %q", c.To)}
		}
		if c.Confidence < 0 || c.Confidence > 1 {
			return &ValidationError{Msg: fmt.Sprintf("connection %s-%s confidence %g outside [0,1]", c.From, c.To, c.Confidence)}
		}
	}
	return nil
}
