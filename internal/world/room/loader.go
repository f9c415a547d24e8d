package room

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"chosenoffset.com/roomlight/internal/core/geometry"
)

// PointData is a point as written in scene files
type PointData struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// WallData is a wall as written in scene files
type WallData struct {
	ID    string    `json:"id" yaml:"id"`
	Start PointData `json:"start" yaml:"start"`
	End   PointData `json:"end" yaml:"end"`
}

// DoorData is a door as written in scene files
type DoorData struct {
	ID       string  `json:"id" yaml:"id"`
	WallID   string  `json:"wall_id" yaml:"wall_id"`
	Position float64 `json:"position" yaml:"position"` // Distance from wall start to door center
	Width    float64 `json:"width" yaml:"width"`
}

// ObstacleData is an obstacle as written in scene files
type ObstacleData struct {
	ID       string      `json:"id" yaml:"id"`
	Height   float64     `json:"height" yaml:"height"`
	Vertices []PointData `json:"vertices" yaml:"vertices"` // Closed ring, last vertex connects to first
}

// LightData is a light as written in scene files
type LightData struct {
	ID        string  `json:"id" yaml:"id"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Lumens    float64 `json:"lumens" yaml:"lumens"`
	BeamAngle float64 `json:"beam_angle" yaml:"beam_angle"`
}

// BoundsData is an explicit viewport box as written in scene files
type BoundsData struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// SceneData is the on-disk scene layout
type SceneData struct {
	Name          string         `json:"name" yaml:"name"`
	CeilingHeight float64        `json:"ceiling_height" yaml:"ceiling_height"`
	Bounds        *BoundsData    `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Walls         []WallData     `json:"walls" yaml:"walls"`
	Doors         []DoorData     `json:"doors" yaml:"doors"`
	Obstacles     []ObstacleData `json:"obstacles" yaml:"obstacles"`
	Lights        []LightData    `json:"lights" yaml:"lights"`
}

// Scene is a loaded, validated scene
type Scene struct {
	Name   string
	State  State
	Lights []LightSource
	// Bounds is nil when the file gives no explicit viewport
	Bounds *geometry.BoundingBox
}

// ViewBounds returns the explicit viewport or one derived from the walls
func (s *Scene) ViewBounds(padding float64) geometry.BoundingBox {
	if s.Bounds != nil {
		return *s.Bounds
	}
	return s.State.Bounds(padding)
}

// LoadScene reads a scene from a YAML (.yaml, .yml) or JSON file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	var sceneData SceneData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sceneData)
	default:
		err = json.Unmarshal(data, &sceneData)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	scene, err := sceneData.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid scene in %s: %w", path, err)
	}
	return scene, nil
}

// Build converts file data into a validated Scene. Elements without an ID
// get a generated one.
func (d *SceneData) Build() (*Scene, error) {
	state := State{CeilingHeight: d.CeilingHeight}

	for _, w := range d.Walls {
		state.Walls = append(state.Walls, Wall{
			ID: idOr(w.ID, "wall"),
			Segment: geometry.Segment{
				Start: w.Start.point(),
				End:   w.End.point(),
			},
		})
	}

	for _, dd := range d.Doors {
		state.Doors = append(state.Doors, Door{
			ID:       idOr(dd.ID, "door"),
			WallID:   dd.WallID,
			Position: dd.Position,
			Width:    dd.Width,
		})
	}

	for _, od := range d.Obstacles {
		vertices := make([]geometry.Point, 0, len(od.Vertices))
		for _, v := range od.Vertices {
			vertices = append(vertices, v.point())
		}
		state.Obstacles = append(state.Obstacles, NewObstacle(idOr(od.ID, "obstacle"), od.Height, vertices))
	}

	if err := Validate(state); err != nil {
		return nil, err
	}

	scene := &Scene{Name: d.Name, State: state}
	seen := make(map[string]bool)
	var dups []error
	for _, l := range d.Lights {
		id := idOr(l.ID, "light")
		if seen[id] {
			dups = append(dups, fmt.Errorf("%w: light %q", ErrDuplicateID, id))
			continue
		}
		seen[id] = true
		scene.Lights = append(scene.Lights, LightSource{
			ID:        id,
			Position:  geometry.Point{X: l.X, Y: l.Y},
			Lumens:    l.Lumens,
			BeamAngle: l.BeamAngle,
		})
	}
	if err := errors.Join(dups...); err != nil {
		return nil, err
	}

	if d.Bounds != nil {
		box := geometry.BoundingBox{MinX: d.Bounds.MinX, MinY: d.Bounds.MinY, MaxX: d.Bounds.MaxX, MaxY: d.Bounds.MaxY}
		if !box.Valid() {
			return nil, fmt.Errorf("bounds min exceeds max: %+v", *d.Bounds)
		}
		scene.Bounds = &box
	}

	return scene, nil
}

func (p PointData) point() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

func idOr(id, kind string) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s_%s", kind, uuid.New().String()[:8])
}
