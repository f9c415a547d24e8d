package lighting

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/core/shadows"
	"chosenoffset.com/roomlight/internal/world/room"
)

// Manager handles all light sources in the layout
type Manager struct {
	lights map[string]*room.LightSource // Keyed by light ID
	opts   shadows.Options
	log    *zap.Logger
}

// NewManager creates a new lighting manager
func NewManager(opts shadows.Options, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		lights: make(map[string]*room.LightSource),
		opts:   opts,
		log:    log,
	}
}

// AddLight adds a light source. IDs must be unique; use MoveLight to update
// an existing light.
func (m *Manager) AddLight(light room.LightSource) error {
	if light.ID == "" {
		return fmt.Errorf("light source needs an id")
	}
	if _, ok := m.lights[light.ID]; ok {
		return fmt.Errorf("%w: light %q", room.ErrDuplicateID, light.ID)
	}
	l := light
	m.lights[light.ID] = &l
	m.log.Debug("light added",
		zap.String("id", light.ID),
		zap.Float64("x", light.Position.X),
		zap.Float64("y", light.Position.Y))
	return nil
}

// MoveLight updates a light's position. It reports false for unknown lights.
func (m *Manager) MoveLight(id string, pos geometry.Point) bool {
	l, ok := m.lights[id]
	if !ok {
		return false
	}
	l.Position = pos
	return true
}

// RemoveLight removes a light source
func (m *Manager) RemoveLight(id string) {
	delete(m.lights, id)
}

// ClearLights removes all lights (called when loading a new scene)
func (m *Manager) ClearLights() {
	m.lights = make(map[string]*room.LightSource)
}

// Light returns a copy of the light with the given ID
func (m *Manager) Light(id string) (room.LightSource, bool) {
	l, ok := m.lights[id]
	if !ok {
		return room.LightSource{}, false
	}
	return *l, true
}

// GetAllLights returns all light sources ordered by ID
func (m *Manager) GetAllLights() []room.LightSource {
	lights := make([]room.LightSource, 0, len(m.lights))
	for _, l := range m.lights {
		lights = append(lights, *l)
	}
	sort.Slice(lights, func(i, j int) bool { return lights[i].ID < lights[j].ID })
	return lights
}

// Recompute runs the visibility sweep and shadow projection for every light
// against the snapshot. Results follow GetAllLights order. Callers throttle
// calls during interactive edits; nothing is cached between calls.
func (m *Manager) Recompute(state room.State, bounds geometry.BoundingBox) []shadows.Result {
	start := time.Now()
	lights := m.GetAllLights()

	results := shadows.ComputeAll(state, bounds, lights, m.opts)

	for _, res := range results {
		if !res.Visibility.Lit() {
			m.log.Debug("light illuminates nothing",
				zap.String("id", res.Visibility.Light.ID))
		}
	}

	m.log.Debug("lighting recomputed",
		zap.Int("lights", len(lights)),
		zap.Int("walls", len(state.Walls)),
		zap.Int("obstacles", len(state.Obstacles)),
		zap.Duration("elapsed", time.Since(start)))

	return results
}
