package shadows

import (
	"math"
	"sort"

	"chosenoffset.com/roomlight/internal/core/geometry"
)

// ray is one sample of the sweep: the cast angle and the nearest hit
type ray struct {
	angle float64
	point geometry.Point
	exact bool // Cast straight at its target, no angle offset
}

// ComputeVisibilityPolygon calculates the floor area the light can see.
// Rays are cast toward every target and a small angle either side of it, so
// the nearest-hit change just before and after a corner is captured. Hits
// are ordered by angle and consecutive near-duplicates collapse onto the
// exact-angle hit when one is among them. Fewer than three vertices, or a
// light outside bounds, yields an empty polygon.
func ComputeVisibilityPolygon(light geometry.Point, blocking []geometry.Segment, targets []geometry.Point, bounds geometry.BoundingBox, opts Options) []geometry.Point {
	if !bounds.Contains(light) {
		return nil
	}

	offsets := [3]float64{-opts.AngleEpsilon, 0, opts.AngleEpsilon}

	rays := make([]ray, 0, len(targets)*len(offsets))
	for _, target := range targets {
		base := math.Atan2(target.Y-light.Y, target.X-light.X)
		for _, off := range offsets {
			angle := normalizeAngle(base + off)
			hit, ok := castRay(light, angle, blocking, opts.HitEpsilon)
			if !ok {
				continue
			}
			rays = append(rays, ray{angle: angle, point: hit, exact: off == 0})
		}
	}

	sort.SliceStable(rays, func(i, j int) bool { return rays[i].angle < rays[j].angle })

	var polygon []geometry.Point
	lastExact := false
	for _, r := range rays {
		if n := len(polygon); n > 0 && geometry.Distance(polygon[n-1], r.point) < opts.MergeDistance {
			// A corner keeps its exact hit over the offset samples beside it
			if r.exact && !lastExact {
				polygon[n-1] = r.point
				lastExact = true
			}
			continue
		}
		polygon = append(polygon, r.point)
		lastExact = r.exact
	}

	if len(polygon) < 3 {
		return nil
	}
	return polygon
}

// castRay returns the nearest hit of a ray from origin at angle against all
// segments
func castRay(origin geometry.Point, angle float64, segments []geometry.Segment, minT float64) (geometry.Point, bool) {
	dir := geometry.Point{X: math.Cos(angle), Y: math.Sin(angle)}

	closest := math.Inf(1)
	var closestPoint geometry.Point
	found := false

	for _, seg := range segments {
		hit, ok := geometry.RaySegmentIntersectEps(origin, dir, seg.Start, seg.End, minT)
		if ok && hit.T < closest {
			closest = hit.T
			closestPoint = hit.Point
			found = true
		}
	}

	return closestPoint, found
}

// normalizeAngle wraps an angle into [-pi, pi]
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
