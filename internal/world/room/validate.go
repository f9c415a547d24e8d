package room

import (
	"errors"
	"fmt"

	"chosenoffset.com/roomlight/internal/core/geometry"
)

var (
	// ErrBadCeiling is returned for a non-positive ceiling height
	ErrBadCeiling = errors.New("ceiling height must be positive")
	// ErrUnknownWall is returned when a door refers to a missing wall
	ErrUnknownWall = errors.New("door refers to unknown wall")
	// ErrSelfIntersecting is returned when two room walls cross
	ErrSelfIntersecting = errors.New("room walls intersect")
	// ErrBadObstacle is returned for obstacles that are not a usable polygon
	ErrBadObstacle = errors.New("invalid obstacle")
	// ErrBadDoor is returned for doors with a non-positive width
	ErrBadDoor = errors.New("invalid door")
	// ErrDuplicateID is returned when two walls or two lights share an ID
	ErrDuplicateID = errors.New("duplicate id")
)

// Validate checks a snapshot for structural problems. All problems found are
// reported together.
func Validate(s State) error {
	var errs []error

	if s.CeilingHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrBadCeiling, s.CeilingHeight))
	}

	seen := make(map[string]bool)
	for _, w := range s.Walls {
		if seen[w.ID] {
			errs = append(errs, fmt.Errorf("%w: wall %q", ErrDuplicateID, w.ID))
		}
		seen[w.ID] = true
	}

	for _, d := range s.Doors {
		if _, ok := s.Wall(d.WallID); !ok {
			errs = append(errs, fmt.Errorf("%w: door %q wall %q", ErrUnknownWall, d.ID, d.WallID))
		}
		if d.Width <= 0 {
			errs = append(errs, fmt.Errorf("%w: door %q width %v", ErrBadDoor, d.ID, d.Width))
		}
	}

	for _, o := range s.Obstacles {
		if len(o.Walls) < 3 {
			errs = append(errs, fmt.Errorf("%w: obstacle %q has %d walls, need at least 3", ErrBadObstacle, o.ID, len(o.Walls)))
		}
		if o.Height <= 0 {
			errs = append(errs, fmt.Errorf("%w: obstacle %q height %v", ErrBadObstacle, o.ID, o.Height))
		}
	}

	for _, pair := range crossingWalls(s.Walls) {
		errs = append(errs, fmt.Errorf("%w: %q and %q", ErrSelfIntersecting, pair[0], pair[1]))
	}

	return errors.Join(errs...)
}

// crossingWalls returns the ID pairs of walls that properly cross each other
func crossingWalls(walls []Wall) [][2]string {
	var pairs [][2]string
	for i := 0; i < len(walls); i++ {
		for j := i + 1; j < len(walls); j++ {
			a, b := walls[i], walls[j]
			if geometry.SegmentsIntersect(a.Start, a.End, b.Start, b.End) {
				pairs = append(pairs, [2]string{a.ID, b.ID})
			}
		}
	}
	return pairs
}
