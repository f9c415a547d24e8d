// Package shadows computes what each light can see: the visibility polygon
// from a radial sweep over wall and obstacle segments, and the shadow
// trapezoids cast by obstacles shorter than the ceiling.
package shadows

import (
	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/world/room"
)

// Options holds the numeric tolerances of the sweep and the projector. They
// are calibrated for coordinates in feet.
type Options struct {
	AngleEpsilon      float64 // Angular offset (radians) sampled either side of each target
	MergeDistance     float64 // Consecutive polygon vertices closer than this collapse
	HitEpsilon        float64 // Ray hits at or below this distance are ignored
	MinShadowDistance float64 // Endpoints this close to the light are not extended
}

// DefaultOptions returns the standard tolerances
func DefaultOptions() Options {
	return Options{
		AngleEpsilon:      1e-4,
		MergeDistance:     1e-3,
		HitEpsilon:        geometry.DefaultHitEpsilon,
		MinShadowDistance: 1e-6,
	}
}

// Occluders is the assembled blocking geometry for one room snapshot
type Occluders struct {
	Blocking []geometry.Segment // Walls, full-height obstacle walls and boundary
	Targets  []geometry.Point   // Sweep targets: segment endpoints, door jambs, boundary corners
	Partial  []room.Obstacle    // Obstacles below the ceiling, handled by the projector
}

// VisibilityResult is the lit floor area of one light. An empty Polygon means
// nothing is lit.
type VisibilityResult struct {
	Light   room.LightSource
	Polygon []geometry.Point
}

// Area returns the lit area
func (v VisibilityResult) Area() float64 {
	return geometry.PolygonArea(v.Polygon)
}

// Lit reports whether any floor area is visible from the light
func (v VisibilityResult) Lit() bool {
	return len(v.Polygon) >= 3
}

// ShadowTrapezoid is the umbra cast by one obstacle edge. Polygon runs
// edge end, edge start, extended start, extended end.
type ShadowTrapezoid struct {
	ObstacleID string
	Edge       int
	Polygon    [4]geometry.Point
	Strength   float64 // Obstacle height over ceiling height
}

// Result is everything computed for one light
type Result struct {
	Visibility VisibilityResult
	Shadows    []ShadowTrapezoid
}
