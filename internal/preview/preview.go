// Package preview is an interactive window over the lighting engine. Lights
// can be dragged with the mouse; recomputes are throttled to one every few
// ticks while dragging.
package preview

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/core/shadows"
	"chosenoffset.com/roomlight/internal/render"
	"chosenoffset.com/roomlight/internal/render/lighting"
	"chosenoffset.com/roomlight/internal/world/room"
)

const (
	screenMargin = 24.0
	pickRadius   = 12.0 // Pixels around a light that start a drag
	lightRadius  = 6
)

var (
	backgroundColor = color.NRGBA{18, 18, 24, 255}
	wallColor       = color.NRGBA{220, 220, 220, 255}
	doorColor       = color.NRGBA{90, 200, 120, 255}
	fullColor       = color.NRGBA{150, 150, 160, 255}
	partialColor    = color.NRGBA{230, 150, 60, 255}
	lightColor      = color.NRGBA{255, 220, 120, 255}
)

// Options configures the preview
type Options struct {
	Width, Height  int
	PixelsPerFoot  float64 // Upper bound; the scene is fit to the window
	RecomputeTicks int     // Minimum ticks between recomputes while dragging
}

// Game implements render.Game for the lighting preview
type Game struct {
	renderer render.Renderer
	input    render.InputManager
	log      *zap.Logger

	scene   *room.Scene
	bounds  geometry.BoundingBox
	manager *lighting.Manager
	results []shadows.Result

	opts  Options
	view  viewport
	white render.Image

	dragging       string // ID of the light being dragged
	dirty          bool
	sinceRecompute int
	recomputes     int

	showShadows    bool
	showVisibility bool
}

// NewGame creates the preview over a loaded scene. The manager already holds
// the scene's lights.
func NewGame(r render.Renderer, input render.InputManager, scene *room.Scene, bounds geometry.BoundingBox, manager *lighting.Manager, opts Options, log *zap.Logger) *Game {
	if opts.RecomputeTicks < 1 {
		opts.RecomputeTicks = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		renderer:       r,
		input:          input,
		log:            log,
		scene:          scene,
		bounds:         bounds,
		manager:        manager,
		opts:           opts,
		view:           fit(bounds, opts.Width, opts.Height, opts.PixelsPerFoot, screenMargin),
		showShadows:    true,
		showVisibility: true,
	}
	g.recompute()
	return g
}

// Update handles input and throttled recomputation.
func (g *Game) Update() error {
	if g.input.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}
	if g.input.IsKeyJustPressed(render.KeyL) {
		g.showShadows = !g.showShadows
	}
	if g.input.IsKeyJustPressed(render.KeyV) {
		g.showVisibility = !g.showVisibility
	}

	cx, cy := g.input.GetCursorPosition()

	if g.input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		g.dragging = g.pickLight(cx, cy)
	}

	if g.dragging != "" {
		if g.input.IsMouseButtonPressed(render.MouseButtonLeft) {
			pos := g.view.clamp(g.view.toWorld(cx, cy))
			if l, ok := g.manager.Light(g.dragging); ok && l.Position != pos {
				g.manager.MoveLight(g.dragging, pos)
				g.dirty = true
			}
		} else {
			g.dragging = ""
		}
	}

	g.sinceRecompute++
	if g.dirty && (g.dragging == "" || g.sinceRecompute >= g.opts.RecomputeTicks) {
		g.recompute()
	}

	return nil
}

// pickLight returns the ID of the light under the cursor, or ""
func (g *Game) pickLight(x, y int) string {
	best := ""
	bestDist := pickRadius
	for _, l := range g.manager.GetAllLights() {
		sx, sy := g.view.toScreen(l.Position)
		d := geometry.Distance(geometry.Point{X: float64(sx), Y: float64(sy)}, geometry.Point{X: float64(x), Y: float64(y)})
		if d <= bestDist {
			best = l.ID
			bestDist = d
		}
	}
	return best
}

func (g *Game) recompute() {
	g.results = g.manager.Recompute(g.scene.State, g.bounds)
	g.dirty = false
	g.sinceRecompute = 0
	g.recomputes++
}

// Results returns the most recent lighting results
func (g *Game) Results() []shadows.Result {
	return g.results
}

// Draw renders the scene, lit areas, shadows and lights.
func (g *Game) Draw(screen render.Image) {
	if g.white == nil {
		g.white = g.renderer.NewImage(3, 3)
		g.white.Fill(color.White)
	}

	screen.Fill(backgroundColor)

	if g.showVisibility {
		for _, res := range g.results {
			g.fillFan(screen, res.Visibility.Light.Position, res.Visibility.Polygon, true, 1, 0.85, 0.5, 0.18)
		}
	}

	if g.showShadows {
		for _, res := range g.results {
			for _, s := range res.Shadows {
				g.fillFan(screen, s.Polygon[0], s.Polygon[1:], false, 0, 0, 0, float32(0.6*s.Strength))
			}
		}
	}

	g.drawRoom(screen)

	for _, l := range g.manager.GetAllLights() {
		x, y := g.view.toScreen(l.Position)
		g.renderer.FillCircle(screen, x, y, lightRadius, lightColor)
		if l.ID == g.dragging {
			g.renderer.StrokeCircle(screen, x, y, lightRadius+4, 1.5, lightColor)
		}
	}

	g.drawStatus(screen)
}

// fillFan fills a triangle fan around center. A closed ring also joins its
// last point back to its first. Visibility polygons are star-shaped around
// their light and shadow quads are convex, so a fan covers both exactly.
func (g *Game) fillFan(dst render.Image, center geometry.Point, ring []geometry.Point, closed bool, r, gr, b, a float32) {
	if len(ring) < 2 || len(ring)+1 > 0xffff {
		return
	}
	vertices := make([]render.Vertex, 0, len(ring)+1)
	add := func(p geometry.Point) {
		x, y := g.view.toScreen(p)
		vertices = append(vertices, render.Vertex{
			DstX: x, DstY: y,
			SrcX: 1.5, SrcY: 1.5,
			ColorR: r, ColorG: gr, ColorB: b, ColorA: a,
		})
	}
	add(center)
	for _, p := range ring {
		add(p)
	}

	n := len(ring)
	tris := n - 1
	if closed {
		tris = n
	}
	indices := make([]uint16, 0, tris*3)
	for i := 0; i < tris; i++ {
		indices = append(indices, 0, uint16(i+1), uint16((i+1)%n+1))
	}
	dst.DrawTriangles(vertices, indices, g.white, &render.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawRoom(screen render.Image) {
	occ := shadows.Assemble(g.scene.State, g.bounds)

	// Walls as the engine sees them, door gaps already carved out
	for _, seg := range occ.Blocking {
		g.line(screen, seg, 2, wallColor)
	}

	for _, gap := range g.doorGaps() {
		g.line(screen, gap, 1, doorColor)
	}

	for _, ob := range g.scene.State.Obstacles {
		clr := partialColor
		if ob.FullHeight(g.scene.State.CeilingHeight) {
			clr = fullColor
		}
		for _, w := range ob.Walls {
			g.line(screen, w, 2, clr)
		}
	}
}

// doorGaps returns each door opening clamped to its wall, matching the gaps
// the engine carves
func (g *Game) doorGaps() []geometry.Segment {
	var gaps []geometry.Segment
	for _, d := range g.scene.State.Doors {
		w, ok := g.scene.State.Wall(d.WallID)
		if !ok {
			continue
		}
		from, to, ok := d.Span(w.Len())
		if !ok {
			continue
		}
		gaps = append(gaps, geometry.Segment{Start: w.At(from), End: w.At(to)})
	}
	return gaps
}

func (g *Game) line(dst render.Image, s geometry.Segment, width float32, clr color.Color) {
	x0, y0 := g.view.toScreen(s.Start)
	x1, y1 := g.view.toScreen(s.End)
	g.renderer.StrokeLine(dst, x0, y0, x1, y1, width, clr)
}

func (g *Game) drawStatus(screen render.Image) {
	lit := 0.0
	shadowCount := 0
	for _, res := range g.results {
		lit += res.Visibility.Area()
		shadowCount += len(res.Shadows)
	}
	status := fmt.Sprintf("%s  lights:%d  lit:%.1f sq ft  shadows:%d  [drag] move  [L] shadows  [V] visibility  [Esc] quit",
		g.scene.Name, len(g.results), lit, shadowCount)
	g.renderer.DrawText(screen, status, 8, 4)
}

// Layout keeps the configured logical size and refits the view.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.opts.Width || outsideHeight != g.opts.Height {
		g.opts.Width, g.opts.Height = outsideWidth, outsideHeight
		g.view = fit(g.bounds, outsideWidth, outsideHeight, g.opts.PixelsPerFoot, screenMargin)
	}
	return outsideWidth, outsideHeight
}

// Run opens the preview window and blocks until it closes
func Run(engine render.Engine, game *Game, title string) error {
	engine.SetWindowSize(game.opts.Width, game.opts.Height)
	engine.SetWindowTitle(title)
	engine.SetWindowResizable(true)

	game.log.Info("opening preview", zap.String("title", title))
	if err := engine.RunGame(game); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
