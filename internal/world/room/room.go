// Package room defines the scene snapshot the lighting engine works on:
// walls, doors, obstacles and lights, plus loading and validation of scene
// files.
package room

import (
	"math"

	"chosenoffset.com/roomlight/internal/core/geometry"
)

// Wall is a room wall segment with an identifier doors can refer to
type Wall struct {
	ID string
	geometry.Segment
}

// Door is an opening in a wall. Position is the distance from the wall's
// start to the door's center.
type Door struct {
	ID       string
	WallID   string
	Position float64
	Width    float64
}

// Span returns the opening as distances from the wall start, clamped to a
// wall of the given length. ok is false when nothing of the door lies on the
// wall.
func (d Door) Span(wallLen float64) (from, to float64, ok bool) {
	if d.Width <= 0 {
		return 0, 0, false
	}
	from = math.Max(0, d.Position-d.Width/2)
	to = math.Min(wallLen, d.Position+d.Width/2)
	return from, to, to > from
}

// Obstacle is a closed polygon of wall segments with a height. Obstacles at
// or above the ceiling block light like walls; shorter ones cast shadows.
type Obstacle struct {
	ID     string
	Walls  []geometry.Segment
	Height float64
}

// NewObstacle builds a closed obstacle from its vertex ring
func NewObstacle(id string, height float64, vertices []geometry.Point) Obstacle {
	walls := make([]geometry.Segment, 0, len(vertices))
	for i := range vertices {
		walls = append(walls, geometry.Segment{
			Start: vertices[i],
			End:   vertices[(i+1)%len(vertices)],
		})
	}
	return Obstacle{ID: id, Walls: walls, Height: height}
}

// Vertices returns the obstacle outline as a vertex ring
func (o Obstacle) Vertices() []geometry.Point {
	pts := make([]geometry.Point, 0, len(o.Walls))
	for _, w := range o.Walls {
		pts = append(pts, w.Start)
	}
	return pts
}

// FullHeight reports whether the obstacle reaches the ceiling
func (o Obstacle) FullHeight(ceilingHeight float64) bool {
	return o.Height >= ceilingHeight
}

// LightSource is a point light. Lumens and BeamAngle are carried for
// downstream shading only; the geometry engine uses the position alone.
type LightSource struct {
	ID        string
	Position  geometry.Point
	Lumens    float64
	BeamAngle float64
}

// State is an immutable room snapshot. Walls are ordered and may form an
// open polygon.
type State struct {
	CeilingHeight float64
	Walls         []Wall
	Doors         []Door
	Obstacles     []Obstacle
}

// Wall looks up a wall by ID
func (s State) Wall(id string) (Wall, bool) {
	for _, w := range s.Walls {
		if w.ID == id {
			return w, true
		}
	}
	return Wall{}, false
}

// Outline returns the room wall start points in order
func (s State) Outline() []geometry.Point {
	pts := make([]geometry.Point, 0, len(s.Walls))
	for _, w := range s.Walls {
		pts = append(pts, w.Start)
	}
	return pts
}

// Bounds returns the box around every wall and obstacle, grown by padding.
// An empty scene yields a zero box grown by padding.
func (s State) Bounds(padding float64) geometry.BoundingBox {
	var box geometry.BoundingBox
	first := true
	add := func(p geometry.Point) {
		if first {
			box = geometry.BoundingBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			first = false
			return
		}
		box = box.Expand(p)
	}

	for _, w := range s.Walls {
		add(w.Start)
		add(w.End)
	}
	for _, o := range s.Obstacles {
		for _, w := range o.Walls {
			add(w.Start)
			add(w.End)
		}
	}

	return box.Pad(padding)
}
