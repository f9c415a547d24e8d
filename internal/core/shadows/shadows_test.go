package shadows

import (
	"math"
	"testing"

	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/world/room"
)

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func wall(id string, x1, y1, x2, y2 float64) room.Wall {
	return room.Wall{ID: id, Segment: geometry.Segment{Start: pt(x1, y1), End: pt(x2, y2)}}
}

// squareRoom is the 10x10 room (0,0)-(10,0)-(10,10)-(0,10)
func squareRoom() room.State {
	return room.State{
		CeilingHeight: 8,
		Walls: []room.Wall{
			wall("south", 0, 0, 10, 0),
			wall("east", 10, 0, 10, 10),
			wall("north", 10, 10, 0, 10),
			wall("west", 0, 10, 0, 0),
		},
	}
}

var squareBounds = geometry.BoundingBox{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}

func visible(state room.State, light geometry.Point) []geometry.Point {
	occ := Assemble(state, squareBounds)
	return ComputeVisibilityPolygon(light, occ.Blocking, occ.Targets, squareBounds, DefaultOptions())
}

func TestVisibilityConvexRoom(t *testing.T) {
	poly := visible(squareRoom(), pt(5, 5))

	if area := geometry.PolygonArea(poly); math.Abs(area-100) > 1e-3 {
		t.Errorf("expected area 100, got %f", area)
	}

	for _, corner := range []geometry.Point{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)} {
		found := false
		for _, v := range poly {
			if geometry.Distance(v, corner) < 1e-6 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a polygon vertex at room corner %v", corner)
		}
	}

	for _, v := range poly {
		if v.X < -1e-9 || v.X > 10+1e-9 || v.Y < -1e-9 || v.Y > 10+1e-9 {
			t.Errorf("vertex %v lies outside the room", v)
		}
	}
}

func TestVisibilityFullHeightDivider(t *testing.T) {
	state := squareRoom()
	state.Walls = append(state.Walls, wall("divider", 5, 0, 5, 10))

	open := geometry.PolygonArea(visible(squareRoom(), pt(2.5, 5)))
	divided := geometry.PolygonArea(visible(state, pt(2.5, 5)))

	if divided >= open {
		t.Errorf("expected divider to reduce visible area, got %f vs %f", divided, open)
	}
	if math.Abs(divided-50) > 1e-2 {
		t.Errorf("expected visible area 50, got %f", divided)
	}
}

func TestVisibilityPartialDivider(t *testing.T) {
	state := squareRoom()
	state.Walls = append(state.Walls, wall("screen", 5, 2, 5, 8))

	area := geometry.PolygonArea(visible(state, pt(2.5, 5)))

	// Shadow behind the screen is 50 minus two 2 x 5/3 corner triangles
	want := 100 - (50 - 2*(0.5*2*5.0/3.0))
	if math.Abs(area-want) > 1e-2 {
		t.Errorf("expected visible area %f, got %f", want, area)
	}
}

func TestVisibilityThroughDoor(t *testing.T) {
	state := squareRoom()
	state.Walls = append(state.Walls, wall("divider", 5, 0, 5, 10))
	state.Doors = []room.Door{{ID: "door", WallID: "divider", Position: 5, Width: 2}}

	poly := visible(state, pt(2.5, 5))

	if !geometry.PointInPolygon(pt(9, 5), poly) {
		t.Error("expected light to pass through the door gap")
	}
	if geometry.PointInPolygon(pt(9, 1), poly) {
		t.Error("expected the area beside the gap to stay dark")
	}

	// Half room plus the trapezoid (5,4)-(10,2)-(10,8)-(5,6)
	if area := geometry.PolygonArea(poly); math.Abs(area-70) > 1e-2 {
		t.Errorf("expected visible area 70, got %f", area)
	}
}

func TestVisibilityZeroLengthWall(t *testing.T) {
	state := squareRoom()
	state.Walls = append(state.Walls, wall("dot", 3, 3, 3, 3))

	occ := Assemble(state, squareBounds)
	for _, seg := range occ.Blocking {
		if seg.Degenerate() {
			t.Errorf("degenerate segment %v kept as occluder", seg)
		}
	}
	for _, p := range occ.Targets {
		if p == pt(3, 3) {
			t.Error("degenerate wall point kept as target")
		}
	}

	poly := ComputeVisibilityPolygon(pt(5, 5), occ.Blocking, occ.Targets, squareBounds, DefaultOptions())
	if area := geometry.PolygonArea(poly); math.Abs(area-100) > 1e-3 {
		t.Errorf("expected area 100, got %f", area)
	}
}

func TestVisibilityEmptyRoomUsesBounds(t *testing.T) {
	bounds := geometry.BoundingBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 3}
	occ := Assemble(room.State{CeilingHeight: 8}, bounds)

	poly := ComputeVisibilityPolygon(pt(1, 1), occ.Blocking, occ.Targets, bounds, DefaultOptions())
	if area := geometry.PolygonArea(poly); math.Abs(area-12) > 1e-3 {
		t.Errorf("expected bounds area 12, got %f", area)
	}
}

func TestVisibilityCornersCollapse(t *testing.T) {
	bounds := geometry.BoundingBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 3}
	occ := Assemble(room.State{CeilingHeight: 8}, bounds)

	poly := ComputeVisibilityPolygon(pt(2, 1.5), occ.Blocking, occ.Targets, bounds, DefaultOptions())
	if len(poly) != 4 {
		t.Fatalf("expected one vertex per corner, got %d: %v", len(poly), poly)
	}

	// Counter-clockwise from the -pi side of the sweep
	want := []geometry.Point{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 3)}
	for i, v := range poly {
		if geometry.Distance(v, want[i]) > 1e-9 {
			t.Errorf("vertex %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestVisibilityLightOutsideBounds(t *testing.T) {
	occ := Assemble(squareRoom(), squareBounds)
	poly := ComputeVisibilityPolygon(pt(50, 50), occ.Blocking, occ.Targets, squareBounds, DefaultOptions())
	if poly != nil {
		t.Errorf("expected empty polygon, got %d vertices", len(poly))
	}
}

func TestVisibilityTooFewVertices(t *testing.T) {
	// A single target cannot produce three distinct vertices
	blocking := []geometry.Segment{{Start: pt(5, -5), End: pt(5, 5)}}
	poly := ComputeVisibilityPolygon(pt(0, 0), blocking, []geometry.Point{pt(5, 0)}, squareBounds.Pad(10), Options{
		AngleEpsilon:  1e-4,
		MergeDistance: 1,
		HitEpsilon:    1e-3,
	})
	if len(poly) != 0 {
		t.Errorf("expected empty polygon, got %v", poly)
	}
}

func TestAssemblePartitionsObstacles(t *testing.T) {
	state := squareRoom()
	state.Obstacles = []room.Obstacle{
		room.NewObstacle("table", 3, []geometry.Point{pt(2, 2), pt(4, 2), pt(4, 4), pt(2, 4)}),
		room.NewObstacle("column", 8, []geometry.Point{pt(7, 7), pt(8, 7), pt(8, 8)}),
	}

	occ := Assemble(state, squareBounds)

	if len(occ.Partial) != 1 || occ.Partial[0].ID != "table" {
		t.Fatalf("expected only the table withheld, got %+v", occ.Partial)
	}
	// 4 room walls + 3 column walls + 4 boundary edges
	if len(occ.Blocking) != 11 {
		t.Errorf("expected 11 blocking segments, got %d", len(occ.Blocking))
	}
	for _, p := range []geometry.Point{pt(7, 7), pt(-1, -1), pt(11, 11)} {
		if !containsPoint(occ.Targets, p) {
			t.Errorf("expected target %v", p)
		}
	}
	if containsPoint(occ.Targets, pt(2, 2)) {
		t.Error("partial obstacle corner should not be a target")
	}
}

func TestCarveDoors(t *testing.T) {
	w := geometry.Segment{Start: pt(0, 0), End: pt(10, 0)}

	pieces, jambs := carveDoors(w, []room.Door{
		{WallID: "w", Position: 3, Width: 2},
		{WallID: "w", Position: 4.5, Width: 1},
		{WallID: "w", Position: 9.5, Width: 2},
	})

	// Openings [2,5] and [8.5,10] leave [0,2] and [5,8.5]
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d: %v", len(pieces), pieces)
	}
	if pieces[0].End != pt(2, 0) || pieces[1].Start != pt(5, 0) || math.Abs(pieces[1].End.X-8.5) > 1e-9 {
		t.Errorf("unexpected pieces %v", pieces)
	}
	if len(jambs) != 4 {
		t.Errorf("expected 4 jambs, got %d", len(jambs))
	}
}

func TestShadowExtension(t *testing.T) {
	if d := ShadowExtension(4, 8, 6); d != 6 {
		t.Errorf("expected extension 6, got %f", d)
	}
	if d := ShadowExtension(8, 8, 6); d != 0 {
		t.Errorf("expected no extension at ceiling height, got %f", d)
	}
	if d := ShadowExtension(0, 8, 6); d != 0 {
		t.Errorf("expected no extension for zero height, got %f", d)
	}
}

func TestProjectShadows(t *testing.T) {
	ring := []geometry.Point{pt(6, -1), pt(8, -1), pt(8, 1), pt(6, 1)}
	ob := room.NewObstacle("crate", 4, ring)

	shadows := ProjectShadows(ob, pt(0, 0), 8, DefaultOptions())
	if len(shadows) != 3 {
		t.Fatalf("expected 3 back-facing edges, got %d", len(shadows))
	}

	var far *ShadowTrapezoid
	for i := range shadows {
		if shadows[i].Edge == 3 {
			t.Error("edge facing the light should not cast")
		}
		if shadows[i].Edge == 1 {
			far = &shadows[i]
		}
	}
	if far == nil {
		t.Fatal("expected the far edge to cast a shadow")
	}

	// h/(H-h) = 1 so the far edge projects to twice its distance
	want := [4]geometry.Point{pt(8, 1), pt(8, -1), pt(16, -2), pt(16, 2)}
	for i := range want {
		if geometry.Distance(far.Polygon[i], want[i]) > 1e-9 {
			t.Errorf("vertex %d: expected %v, got %v", i, want[i], far.Polygon[i])
		}
	}
	if far.Strength != 0.5 {
		t.Errorf("expected strength 0.5, got %f", far.Strength)
	}
	if far.ObstacleID != "crate" {
		t.Errorf("expected obstacle id 'crate', got '%s'", far.ObstacleID)
	}
}

func TestProjectShadowsWindingIndependent(t *testing.T) {
	ring := []geometry.Point{pt(6, 1), pt(8, 1), pt(8, -1), pt(6, -1)}
	shadows := ProjectShadows(room.NewObstacle("crate", 4, ring), pt(0, 0), 8, DefaultOptions())
	if len(shadows) != 3 {
		t.Errorf("expected 3 shadows for clockwise ring, got %d", len(shadows))
	}
}

func TestProjectShadowsDegenerateHeights(t *testing.T) {
	ring := []geometry.Point{pt(6, -1), pt(8, -1), pt(8, 1), pt(6, 1)}
	for _, h := range []float64{0, -1, 8, 9} {
		if s := ProjectShadows(room.NewObstacle("x", h, ring), pt(0, 0), 8, DefaultOptions()); s != nil {
			t.Errorf("height %f: expected no shadows, got %d", h, len(s))
		}
	}
}

func TestExtendAtLight(t *testing.T) {
	p := pt(3, 3)
	if got := extend(p, p, 4, 8, 1e-6); got != p {
		t.Errorf("expected point at the light to stay put, got %v", got)
	}
}

func TestComputeAll(t *testing.T) {
	state := squareRoom()
	state.Obstacles = []room.Obstacle{
		room.NewObstacle("table", 3, []geometry.Point{pt(6, 6), pt(7, 6), pt(7, 7), pt(6, 7)}),
		room.NewObstacle("column", 9, []geometry.Point{pt(2, 7), pt(3, 7), pt(3, 8), pt(2, 8)}),
	}
	lights := []room.LightSource{
		{ID: "a", Position: pt(5, 5)},
		{ID: "b", Position: pt(1, 1)},
	}

	results := ComputeAll(state, squareBounds, lights, DefaultOptions())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Visibility.Light.ID != lights[i].ID {
			t.Errorf("result %d: expected light %s, got %s", i, lights[i].ID, res.Visibility.Light.ID)
		}
		if !res.Visibility.Lit() {
			t.Errorf("result %d: expected a lit polygon", i)
		}
		if res.Visibility.Area() >= 100 {
			t.Errorf("result %d: expected the column to block some light, area %f", i, res.Visibility.Area())
		}
		for _, s := range res.Shadows {
			if s.ObstacleID != "table" {
				t.Errorf("result %d: unexpected shadow from %s", i, s.ObstacleID)
			}
		}
		if len(res.Shadows) == 0 {
			t.Errorf("result %d: expected the table to cast shadows", i)
		}
	}

	single := ComputeLight(state, squareBounds, lights[0], DefaultOptions())
	if math.Abs(single.Visibility.Area()-results[0].Visibility.Area()) > 1e-9 {
		t.Error("expected ComputeLight to match ComputeAll")
	}
}

func containsPoint(pts []geometry.Point, p geometry.Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}
