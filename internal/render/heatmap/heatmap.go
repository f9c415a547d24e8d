// Package heatmap rasterizes per-light visibility polygons and shadow
// trapezoids into an illumination grid, for coverage statistics and PNG
// export.
package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/core/shadows"
)

// DeadZoneThreshold is the illumination below which a cell counts as dark
const DeadZoneThreshold = 0.05

// Map is an illumination grid. Each cell holds the sum over lights of the
// cell's visible coverage, attenuated by the strongest shadow over it.
// Row 0 is the top (MaxY) edge of the bounds.
type Map struct {
	Width, Height int
	PixelsPerFoot float64
	Bounds        geometry.BoundingBox
	Values        []float64
}

// Stats summarizes a Map
type Stats struct {
	Cells            int
	LitFraction      float64 // Cells at or above the dead zone threshold
	DeadZoneFraction float64 // Cells below the threshold
	MaxOverlap       float64 // Highest cell value
}

// Render rasterizes the results over bounds at the given resolution
func Render(results []shadows.Result, bounds geometry.BoundingBox, pixelsPerFoot float64) (*Map, error) {
	if !bounds.Valid() || bounds.Width() == 0 || bounds.Height() == 0 {
		return nil, fmt.Errorf("heatmap bounds are empty: %+v", bounds)
	}
	if pixelsPerFoot <= 0 {
		return nil, fmt.Errorf("pixels per foot must be positive, got %v", pixelsPerFoot)
	}

	w := int(math.Ceil(bounds.Width() * pixelsPerFoot))
	h := int(math.Ceil(bounds.Height() * pixelsPerFoot))

	m := &Map{
		Width:         w,
		Height:        h,
		PixelsPerFoot: pixelsPerFoot,
		Bounds:        bounds,
		Values:        make([]float64, w*h),
	}

	r := vector.NewRasterizer(w, h)
	visible := image.NewAlpha(image.Rect(0, 0, w, h))
	shadow := image.NewAlpha(image.Rect(0, 0, w, h))
	shade := make([]float64, w*h)

	for _, res := range results {
		if !res.Visibility.Lit() {
			continue
		}

		clear(visible.Pix)
		m.fill(r, visible, res.Visibility.Polygon)

		clear(shade)
		for _, s := range res.Shadows {
			clear(shadow.Pix)
			m.fill(r, shadow, s.Polygon[:])
			for i, a := range shadow.Pix {
				if v := float64(a) / 255 * s.Strength; v > shade[i] {
					shade[i] = v
				}
			}
		}

		for i, a := range visible.Pix {
			m.Values[i] += float64(a) / 255 * (1 - shade[i])
		}
	}

	return m, nil
}

// fill rasterizes one polygon into dst as coverage alpha
func (m *Map) fill(r *vector.Rasterizer, dst *image.Alpha, polygon []geometry.Point) {
	if len(polygon) < 3 {
		return
	}
	r.Reset(m.Width, m.Height)
	x, y := m.toPixel(polygon[0])
	r.MoveTo(x, y)
	for _, p := range polygon[1:] {
		x, y = m.toPixel(p)
		r.LineTo(x, y)
	}
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
}

func (m *Map) toPixel(p geometry.Point) (float32, float32) {
	return float32((p.X - m.Bounds.MinX) * m.PixelsPerFoot),
		float32((m.Bounds.MaxY - p.Y) * m.PixelsPerFoot)
}

// cellCenter returns the floor point at the center of cell (x, y)
func (m *Map) cellCenter(x, y int) geometry.Point {
	return geometry.Point{
		X: m.Bounds.MinX + (float64(x)+0.5)/m.PixelsPerFoot,
		Y: m.Bounds.MaxY - (float64(y)+0.5)/m.PixelsPerFoot,
	}
}

// At returns the value of cell (x, y)
func (m *Map) At(x, y int) float64 {
	return m.Values[y*m.Width+x]
}

// Stats summarizes the cells whose centers lie inside outline. With fewer
// than three outline points every cell counts.
func (m *Map) Stats(outline []geometry.Point) Stats {
	var st Stats
	lit := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if len(outline) >= 3 && !geometry.PointInPolygon(m.cellCenter(x, y), outline) {
				continue
			}
			v := m.At(x, y)
			st.Cells++
			if v >= DeadZoneThreshold {
				lit++
			}
			st.MaxOverlap = math.Max(st.MaxOverlap, v)
		}
	}
	if st.Cells > 0 {
		st.LitFraction = float64(lit) / float64(st.Cells)
		st.DeadZoneFraction = 1 - st.LitFraction
	}
	return st
}

// Image renders the map with a cold-to-warm ramp scaled to the brightest
// cell. Dead zones are black.
func (m *Map) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	peak := 0.0
	for _, v := range m.Values {
		peak = math.Max(peak, v)
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := m.At(x, y)
			if v < DeadZoneThreshold || peak == 0 {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
				continue
			}
			img.SetNRGBA(x, y, ramp(v/peak))
		}
	}
	return img
}

// WritePNG encodes the map image as PNG
func (m *Map) WritePNG(w io.Writer) error {
	if err := png.Encode(w, m.Image()); err != nil {
		return fmt.Errorf("failed to encode heatmap: %w", err)
	}
	return nil
}

// ramp maps t in [0,1] from blue through green to red
func ramp(t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	var r, g, b float64
	if t < 0.5 {
		g = t * 2
		b = 1 - g
	} else {
		r = (t - 0.5) * 2
		g = 1 - r
	}
	return color.NRGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}
