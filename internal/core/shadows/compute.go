package shadows

import (
	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/world/room"
)

// ComputeLight runs the sweep and the projector for a single light
func ComputeLight(state room.State, bounds geometry.BoundingBox, light room.LightSource, opts Options) Result {
	return computeWith(Assemble(state, bounds), state.CeilingHeight, bounds, light, opts)
}

// ComputeAll assembles the occluders once and computes every light against
// them. Results are in light order.
func ComputeAll(state room.State, bounds geometry.BoundingBox, lights []room.LightSource, opts Options) []Result {
	occ := Assemble(state, bounds)
	results := make([]Result, 0, len(lights))
	for _, l := range lights {
		results = append(results, computeWith(occ, state.CeilingHeight, bounds, l, opts))
	}
	return results
}

func computeWith(occ Occluders, ceiling float64, bounds geometry.BoundingBox, light room.LightSource, opts Options) Result {
	res := Result{
		Visibility: VisibilityResult{
			Light:   light,
			Polygon: ComputeVisibilityPolygon(light.Position, occ.Blocking, occ.Targets, bounds, opts),
		},
	}
	for _, ob := range occ.Partial {
		res.Shadows = append(res.Shadows, ProjectShadows(ob, light.Position, ceiling, opts)...)
	}
	return res
}
