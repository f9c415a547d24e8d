package preview

import (
	"math"

	"chosenoffset.com/roomlight/internal/core/geometry"
)

// viewport maps floor coordinates (feet, y up) to screen pixels (y down)
type viewport struct {
	bounds        geometry.BoundingBox
	pixelsPerFoot float64
	margin        float64
}

// fit returns a viewport showing bounds inside a w x h screen, capped at
// maxPPF pixels per foot
func fit(bounds geometry.BoundingBox, w, h int, maxPPF, margin float64) viewport {
	ppf := maxPPF
	if bw := bounds.Width(); bw > 0 {
		ppf = math.Min(ppf, (float64(w)-2*margin)/bw)
	}
	if bh := bounds.Height(); bh > 0 {
		ppf = math.Min(ppf, (float64(h)-2*margin)/bh)
	}
	if ppf <= 0 {
		ppf = 1
	}
	return viewport{bounds: bounds, pixelsPerFoot: ppf, margin: margin}
}

func (v viewport) toScreen(p geometry.Point) (float32, float32) {
	return float32((p.X-v.bounds.MinX)*v.pixelsPerFoot + v.margin),
		float32((v.bounds.MaxY-p.Y)*v.pixelsPerFoot + v.margin)
}

func (v viewport) toWorld(x, y int) geometry.Point {
	return geometry.Point{
		X: (float64(x)-v.margin)/v.pixelsPerFoot + v.bounds.MinX,
		Y: v.bounds.MaxY - (float64(y)-v.margin)/v.pixelsPerFoot,
	}
}

// clamp keeps p inside the viewport bounds
func (v viewport) clamp(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: math.Max(v.bounds.MinX, math.Min(v.bounds.MaxX, p.X)),
		Y: math.Max(v.bounds.MinY, math.Min(v.bounds.MaxY, p.Y)),
	}
}
