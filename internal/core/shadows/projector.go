package shadows

import (
	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/world/room"
)

// ShadowExtension returns how far beyond an endpoint at planar distance d the
// shadow of an obstacle of height h reaches under a ceiling light at height
// ceiling. By similar triangles D = h*d / (ceiling-h). Zero when the
// obstacle is not strictly between floor and ceiling.
func ShadowExtension(h, ceiling, d float64) float64 {
	if h <= 0 || h >= ceiling {
		return 0
	}
	return h * d / (ceiling - h)
}

// ProjectShadows casts a trapezoid from every obstacle edge that faces away
// from the light. Obstacles at or above the ceiling, or with no height, cast
// nothing here.
func ProjectShadows(ob room.Obstacle, light geometry.Point, ceiling float64, opts Options) []ShadowTrapezoid {
	h := ob.Height
	if h <= 0 || h >= ceiling {
		return nil
	}

	// Counter-clockwise rings have the left normal pointing inward
	outwardSign := -1.0
	if geometry.SignedArea(ob.Vertices()) < 0 {
		outwardSign = 1.0
	}

	strength := h / ceiling
	var out []ShadowTrapezoid

	for i, edge := range ob.Walls {
		if edge.Degenerate() {
			continue
		}

		outward := edge.Dir().Perp().Scale(outwardSign)
		toMid := edge.Midpoint().Sub(light)
		if geometry.Dot(outward, toMid) <= 0 {
			continue
		}

		out = append(out, ShadowTrapezoid{
			ObstacleID: ob.ID,
			Edge:       i,
			Polygon: [4]geometry.Point{
				edge.End,
				edge.Start,
				extend(edge.Start, light, h, ceiling, opts.MinShadowDistance),
				extend(edge.End, light, h, ceiling, opts.MinShadowDistance),
			},
			Strength: strength,
		})
	}

	return out
}

// extend pushes p away from the light by its shadow extension. Points at the
// light stay put.
func extend(p, light geometry.Point, h, ceiling, minDist float64) geometry.Point {
	away := p.Sub(light)
	d := away.Len()
	if d < minDist {
		return p
	}
	return p.Add(away.Normalize().Scale(ShadowExtension(h, ceiling, d)))
}
