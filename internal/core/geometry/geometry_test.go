package geometry

import (
	"math"
	"testing"
)

func TestRaySegmentIntersect(t *testing.T) {
	tests := []struct {
		name    string
		origin  Point
		dir     Point
		a, b    Point
		wantHit bool
		wantT   float64
		wantPt  Point
	}{
		{"straight hit", Point{0, 0}, Point{1, 0}, Point{5, -1}, Point{5, 1}, true, 5, Point{5, 0}},
		{"hit at endpoint", Point{0, 0}, Point{1, 0}, Point{5, 0}, Point{5, 3}, true, 5, Point{5, 0}},
		{"behind origin", Point{0, 0}, Point{-1, 0}, Point{5, -1}, Point{5, 1}, false, 0, Point{}},
		{"outside segment", Point{0, 0}, Point{1, 0}, Point{5, 1}, Point{5, 3}, false, 0, Point{}},
		{"parallel", Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{5, 1}, false, 0, Point{}},
		{"self hit guard", Point{5, 0}, Point{1, 0}, Point{5, -1}, Point{5, 1}, false, 0, Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := RaySegmentIntersect(tt.origin, tt.dir, tt.a, tt.b)
			if ok != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("expected t=%f, got %f", tt.wantT, hit.T)
			}
			if Distance(hit.Point, tt.wantPt) > 1e-9 {
				t.Errorf("expected point %v, got %v", tt.wantPt, hit.Point)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	if !SegmentsIntersect(Point{0, 0}, Point{4, 4}, Point{0, 4}, Point{4, 0}) {
		t.Error("expected crossing diagonals to intersect")
	}
	if SegmentsIntersect(Point{0, 0}, Point{4, 0}, Point{0, 1}, Point{4, 1}) {
		t.Error("expected parallel segments not to intersect")
	}
	if SegmentsIntersect(Point{0, 0}, Point{4, 0}, Point{4, 0}, Point{4, 4}) {
		t.Error("expected segments sharing an endpoint not to count as crossing")
	}
	if SegmentsIntersect(Point{0, 0}, Point{1, 1}, Point{3, 0}, Point{2, 5}) {
		t.Error("expected disjoint segments not to intersect")
	}
}

func TestPointInPolygon(t *testing.T) {
	triangle := []Point{{0, 0}, {4, 0}, {0, 4}}

	if !PointInPolygon(Point{1, 1}, triangle) {
		t.Error("expected (1,1) inside triangle")
	}
	if PointInPolygon(Point{10, 10}, triangle) {
		t.Error("expected (10,10) outside triangle")
	}
	if PointInPolygon(Point{0, 0}, []Point{{0, 0}, {1, 1}}) {
		t.Error("expected polygon with fewer than 3 vertices to contain nothing")
	}
}

func TestPolygonAreaWindingIndependent(t *testing.T) {
	ccw := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	cw := []Point{{0, 10}, {10, 10}, {10, 0}, {0, 0}}

	if got := PolygonArea(ccw); got != 100 {
		t.Errorf("expected area 100, got %f", got)
	}
	if PolygonArea(ccw) != PolygonArea(cw) {
		t.Errorf("expected equal areas, got %f and %f", PolygonArea(ccw), PolygonArea(cw))
	}
	if SignedArea(ccw) <= 0 || SignedArea(cw) >= 0 {
		t.Errorf("unexpected signed areas: ccw=%f cw=%f", SignedArea(ccw), SignedArea(cw))
	}
	if PolygonArea([]Point{{0, 0}, {1, 1}}) != 0 {
		t.Error("expected zero area for a degenerate polygon")
	}
}

func TestVectorHelpers(t *testing.T) {
	v := Point{3, 4}
	if v.Len() != 5 {
		t.Errorf("expected length 5, got %f", v.Len())
	}
	n := v.Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", n.Len())
	}
	if (Point{}).Normalize() != (Point{}) {
		t.Error("expected zero vector to normalize to zero")
	}
	if p := (Point{1, 0}).Perp(); p != (Point{0, 1}) {
		t.Errorf("expected CCW perpendicular (0,1), got %v", p)
	}
	if c := Cross(Point{1, 0}, Point{0, 1}); c != 1 {
		t.Errorf("expected cross 1, got %f", c)
	}
	if d := (Point{5, 5}).Sub(Point{2, 1}); d != (Point{3, 4}) {
		t.Errorf("expected (3,4), got %v", d)
	}
}

func TestSegmentDegenerate(t *testing.T) {
	if !(Segment{Point{3, 3}, Point{3, 3}}).Degenerate() {
		t.Error("expected zero-length segment to be degenerate")
	}
	if (Segment{Point{0, 0}, Point{1, 0}}).Degenerate() {
		t.Error("expected unit segment not to be degenerate")
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox{0, 0, 10, 5}
	if !b.Contains(Point{10, 5}) || b.Contains(Point{11, 0}) {
		t.Error("unexpected Contains result")
	}
	edges := b.Edges()
	for i, e := range edges {
		if e.End != edges[(i+1)%4].Start {
			t.Errorf("edge %d does not connect to the next edge", i)
		}
	}
	if p := b.Pad(1); p.MinX != -1 || p.MaxY != 6 {
		t.Errorf("unexpected padded box %+v", p)
	}
}
