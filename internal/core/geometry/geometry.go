package geometry

import "math"

const (
	// parallelEpsilon is the determinant magnitude below which a ray and a
	// segment are treated as parallel
	parallelEpsilon = 1e-10

	// segmentParamSlack widens the [0,1] segment range so a ray aimed exactly
	// at a shared corner still hits one of the two segments
	segmentParamSlack = 1e-9

	// DefaultHitEpsilon is the minimum ray parameter accepted as a hit
	DefaultHitEpsilon = 1e-3
)

// Hit is a ray/segment intersection. T is the distance along the ray
// direction (in units of the direction length).
type Hit struct {
	T     float64
	Point Point
}

// RaySegmentIntersect intersects the ray origin + t*dir with the segment
// segStart-segEnd. Parallel lines, hits outside the segment and hits with
// t <= DefaultHitEpsilon report false.
func RaySegmentIntersect(origin, dir, segStart, segEnd Point) (Hit, bool) {
	return RaySegmentIntersectEps(origin, dir, segStart, segEnd, DefaultHitEpsilon)
}

// RaySegmentIntersectEps is RaySegmentIntersect with an explicit self-hit
// epsilon
func RaySegmentIntersectEps(origin, dir, segStart, segEnd Point, minT float64) (Hit, bool) {
	// Ray: P = origin + t*dir, t > minT
	// Segment: Q = segStart + u*e, 0 <= u <= 1
	e := segEnd.Sub(segStart)

	det := Cross(dir, e)
	if math.Abs(det) < parallelEpsilon {
		return Hit{}, false
	}

	diff := segStart.Sub(origin)
	t := Cross(diff, e) / det
	u := Cross(diff, dir) / det

	if u < -segmentParamSlack || u > 1+segmentParamSlack || t <= minT {
		return Hit{}, false
	}

	return Hit{T: t, Point: origin.Add(dir.Scale(t))}, true
}

// orientation returns the cross product of (b-a) and (c-a): positive when
// a, b, c turn counter-clockwise
func orientation(a, b, c Point) float64 {
	return Cross(b.Sub(a), c.Sub(a))
}

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 properly cross.
// Touching at endpoints and collinear overlap do not count.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)

	return o1*o2 < 0 && o3*o4 < 0
}

// PointInPolygon tests if a point is inside a polygon using the even-odd
// crossing rule. Polygons with fewer than three vertices contain nothing.
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// SignedArea returns the shoelace area of the polygon, positive when the
// vertices run counter-clockwise
func SignedArea(polygon []Point) float64 {
	if len(polygon) < 3 {
		return 0
	}
	sum := 0.0
	j := len(polygon) - 1
	for i := range polygon {
		sum += polygon[j].X*polygon[i].Y - polygon[i].X*polygon[j].Y
		j = i
	}
	return sum / 2
}

// PolygonArea returns the absolute area of the polygon regardless of winding
func PolygonArea(polygon []Point) float64 {
	return math.Abs(SignedArea(polygon))
}
