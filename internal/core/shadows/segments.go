package shadows

import (
	"math"
	"sort"

	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/world/room"
)

// Assemble merges the room walls, full-height obstacles and the boundary box
// into one blocking set, collects the sweep targets, and sets partial-height
// obstacles aside. Door gaps are cut out of their walls so light passes
// through them. Degenerate segments are dropped.
func Assemble(state room.State, bounds geometry.BoundingBox) Occluders {
	var occ Occluders
	var extraTargets []geometry.Point

	// Step 1: Room walls, with door gaps carved out
	doorsByWall := make(map[string][]room.Door)
	for _, d := range state.Doors {
		doorsByWall[d.WallID] = append(doorsByWall[d.WallID], d)
	}

	for _, wall := range state.Walls {
		if wall.Degenerate() {
			continue
		}
		doors := doorsByWall[wall.ID]
		if len(doors) == 0 {
			occ.Blocking = append(occ.Blocking, wall.Segment)
			continue
		}
		pieces, jambs := carveDoors(wall.Segment, doors)
		occ.Blocking = append(occ.Blocking, pieces...)
		extraTargets = append(extraTargets, jambs...)
	}

	// Step 2: Obstacles split by height
	for _, ob := range state.Obstacles {
		if !ob.FullHeight(state.CeilingHeight) {
			occ.Partial = append(occ.Partial, ob)
			continue
		}
		for _, w := range ob.Walls {
			if !w.Degenerate() {
				occ.Blocking = append(occ.Blocking, w)
			}
		}
	}

	// Step 3: Boundary so every ray terminates
	for _, e := range bounds.Edges() {
		if !e.Degenerate() {
			occ.Blocking = append(occ.Blocking, e)
		}
	}

	// Step 4: Targets from every blocking endpoint plus the door jambs.
	// Boundary corners are endpoints of the boundary edges.
	occ.Targets = collectVertices(occ.Blocking, extraTargets)

	return occ
}

// gap is a door opening along a wall, as distances from the wall start
type gap struct {
	from, to float64
}

// carveDoors removes each door's span from the wall and returns the
// remaining pieces and the jamb points of every gap
func carveDoors(wall geometry.Segment, doors []room.Door) ([]geometry.Segment, []geometry.Point) {
	length := wall.Len()

	var gaps []gap
	for _, d := range doors {
		if from, to, ok := d.Span(length); ok {
			gaps = append(gaps, gap{from, to})
		}
	}
	if len(gaps) == 0 {
		return []geometry.Segment{wall}, nil
	}

	sort.Slice(gaps, func(i, j int) bool { return gaps[i].from < gaps[j].from })

	// Merge overlapping openings
	merged := []gap{gaps[0]}
	for _, g := range gaps[1:] {
		last := &merged[len(merged)-1]
		if g.from <= last.to {
			last.to = math.Max(last.to, g.to)
			continue
		}
		merged = append(merged, g)
	}

	var pieces []geometry.Segment
	var jambs []geometry.Point
	cursor := 0.0
	for _, g := range merged {
		jambs = append(jambs, wall.At(g.from), wall.At(g.to))
		piece := geometry.Segment{Start: wall.At(cursor), End: wall.At(g.from)}
		if !piece.Degenerate() {
			pieces = append(pieces, piece)
		}
		cursor = g.to
	}
	tail := geometry.Segment{Start: wall.At(cursor), End: wall.End}
	if !tail.Degenerate() {
		pieces = append(pieces, tail)
	}

	return pieces, jambs
}

// collectVertices extracts the unique endpoint vertices from segments,
// followed by any extra points, keeping first-seen order
func collectVertices(segments []geometry.Segment, extra []geometry.Point) []geometry.Point {
	seen := make(map[geometry.Point]bool)
	var vertices []geometry.Point

	add := func(p geometry.Point) {
		if seen[p] {
			return
		}
		seen[p] = true
		vertices = append(vertices, p)
	}

	for _, seg := range segments {
		add(seg.Start)
		add(seg.End)
	}
	for _, p := range extra {
		add(p)
	}

	return vertices
}
