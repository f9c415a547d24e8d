// Package geometry holds the plane primitives the visibility and shadow
// engine is built on. Coordinates are in feet.
package geometry

import "math"

// Point represents a 2D point (or vector) in the floor plane
type Point struct {
	X, Y float64
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * k
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Len returns the euclidean length of p treated as a vector
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the direction of p.
// The zero vector normalizes to itself.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Perp rotates p by 90 degrees counter-clockwise
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

// Cross returns the scalar 2D cross product a x b
func Cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot returns the dot product of a and b
func Dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return b.Sub(a).Len()
}

// DegenerateLength is the length under which a segment counts as a point
const DegenerateLength = 1e-9

// Segment is a directed line segment from Start to End
type Segment struct {
	Start, End Point
}

// Dir returns End - Start
func (s Segment) Dir() Point {
	return s.End.Sub(s.Start)
}

// Len returns the segment length
func (s Segment) Len() float64 {
	return s.Dir().Len()
}

// Midpoint returns the point halfway along the segment
func (s Segment) Midpoint() Point {
	return Point{(s.Start.X + s.End.X) / 2, (s.Start.Y + s.End.Y) / 2}
}

// Degenerate reports whether the segment has (near) zero length and
// therefore cannot occlude anything
func (s Segment) Degenerate() bool {
	return s.Len() < DegenerateLength
}

// At returns the point at distance d from Start along the segment direction
func (s Segment) At(d float64) Point {
	return s.Start.Add(s.Dir().Normalize().Scale(d))
}

// BoundingBox is an axis-aligned rectangle. MinX <= MaxX and MinY <= MaxY.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Valid reports whether the box satisfies its ordering invariant
func (b BoundingBox) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Width returns MaxX - MinX
func (b BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns MaxY - MinY
func (b BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Contains reports whether p lies inside or on the box
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Corners returns the four corners counter-clockwise starting at (MinX, MinY)
func (b BoundingBox) Corners() [4]Point {
	return [4]Point{
		{b.MinX, b.MinY},
		{b.MaxX, b.MinY},
		{b.MaxX, b.MaxY},
		{b.MinX, b.MaxY},
	}
}

// Edges returns the four boundary segments of the box
func (b BoundingBox) Edges() [4]Segment {
	c := b.Corners()
	return [4]Segment{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// Expand grows the box to include p
func (b BoundingBox) Expand(p Point) BoundingBox {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
	return b
}

// Pad grows the box by d on every side
func (b BoundingBox) Pad(d float64) BoundingBox {
	return BoundingBox{b.MinX - d, b.MinY - d, b.MaxX + d, b.MaxY + d}
}
