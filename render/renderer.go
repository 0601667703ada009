// Package render paints a scene into a cell grid and emits only the cells that changed
package render

import (
	"strings"

	"github.com/lixenwraith/weathr/celestial"
	"github.com/lixenwraith/weathr/effect"
	"github.com/lixenwraith/weathr/hud"
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/particle"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/terminal"
)

// Scene is everything visible in one tick
type Scene struct {
	Layers    []scene.LayerSpec
	Phase     celestial.Phase
	Particles []particle.Particle
	Effects   effect.Hints
	Tick      uint64
	HideHUD   bool
}

// Renderer holds the current and previous frames
// The returned writes slice is reused and valid until the next Render call
type Renderer struct {
	current  *Frame
	previous *Frame
	writes   []terminal.CellWrite

	colorEnabled bool
	fullRedraw   bool
}

// NewRenderer creates a renderer whose first frame is a full redraw
func NewRenderer(width, height int, colorEnabled bool) *Renderer {
	r := &Renderer{colorEnabled: colorEnabled}
	r.Resize(width, height)
	return r
}

// Resize reallocates both frames and forces a full redraw
func (r *Renderer) Resize(width, height int) {
	width = max(width, parameter.MinGridWidth)
	height = max(height, parameter.MinGridHeight)
	if r.current == nil {
		r.current = NewFrame(width, height)
		r.previous = NewFrame(width, height)
	} else {
		r.current.Resize(width, height)
		r.previous.Resize(width, height)
	}
	r.fullRedraw = true
}

// Invalidate forces the next frame to be a full redraw
func (r *Renderer) Invalidate() {
	r.fullRedraw = true
}

// FullRedrawPending reports whether the next Render emits every cell
func (r *Renderer) FullRedrawPending() bool {
	return r.fullRedraw
}

// Size returns the grid dimensions
func (r *Renderer) Size() (width, height int) {
	return r.current.Size()
}

// Frame returns the last painted frame
func (r *Renderer) Frame() *Frame {
	return r.previous
}

// Render paints s with the overlay and returns the changed cells
func (r *Renderer) Render(s Scene, overlay hud.Overlay) []terminal.CellWrite {
	f := r.current
	f.Clear()

	sky, body, ground := findLayers(s.Layers)
	r.paintSky(s, sky)
	if body != nil {
		f.SetShape(s.Phase.Col, s.Phase.Row, body.Body.Shape(), body.Color, terminal.AttrBold)
	}
	if ground != nil {
		r.paintGround(s, ground, sky)
	}

	for i := range s.Particles {
		p := &s.Particles[i]
		if !p.Kind.IsSprite() {
			f.SetFg(int(p.Col), int(p.Row), p.Glyph, p.Color, terminal.AttrNone)
		}
	}
	r.paintBolt(s.Effects)
	for i := range s.Particles {
		p := &s.Particles[i]
		if !p.Kind.IsSprite() {
			continue
		}
		switch {
		case len(p.Shape) > 0:
			f.SetShape(int(p.Col), int(p.Row), p.Shape, p.Color, terminal.AttrNone)
		case p.Glyph == 0:
			// Dark firefly
		case p.Kind == scene.ParticleFirefly:
			f.SetFg(int(p.Col), int(p.Row), p.Glyph, p.Color, terminal.AttrBold)
		default:
			f.SetFg(int(p.Col), int(p.Row), p.Glyph, p.Color, terminal.AttrDim)
		}
	}

	r.paintOverlay(s.HideHUD, overlay)

	if !r.colorEnabled {
		f.stripColor()
	}
	return r.diff()
}

func findLayers(layers []scene.LayerSpec) (sky, body, ground *scene.LayerSpec) {
	for i := range layers {
		switch layers[i].Kind {
		case scene.KindSky:
			sky = &layers[i]
		case scene.KindCelestial:
			body = &layers[i]
		case scene.KindGround:
			ground = &layers[i]
		}
	}
	return sky, body, ground
}

func (r *Renderer) paintSky(s Scene, sky *scene.LayerSpec) {
	f := r.current
	w, h := f.Size()
	darkness := 0.0
	if sky != nil {
		darkness = sky.Darkness
	}
	// Cloud cover hides stars
	stars := s.Phase.Body == celestial.Moon && !s.Effects.Flash && darkness <= parameter.NightDarkness

	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := Darken(celestial.Sample(s.Phase.Gradient, t), darkness)
		if s.Effects.Flash {
			c = Blend(c, visual.RgbFlash, s.Effects.Intensity)
		}
		for x := 0; x < w; x++ {
			f.SetBg(x, y, c)
			if stars && y < h*2/3 {
				if g, ok := star(x, y, s.Tick); ok {
					f.SetFg(x, y, g, visual.RgbStar, terminal.AttrNone)
				}
			}
		}
	}
}

// paintGround fills the rows below the horizon and stands the house on them
// Windows are lit while the moon is up
func (r *Renderer) paintGround(s Scene, ground, sky *scene.LayerSpec) {
	f := r.current
	w, h := f.Size()
	grid := scene.Size{Width: w, Height: h}
	darkness := 0.0
	if sky != nil {
		darkness = sky.Darkness
	}

	soil := Darken(ground.Color, darkness)
	grass := Darken(visual.RgbGrass, darkness)
	snowy := ground.Color == visual.RgbGroundSnow
	horizon := scene.Horizon(grid)
	for y := horizon; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetBg(x, y, soil)
			if y == horizon && !snowy {
				if g, ok := tuft(x); ok {
					f.SetFg(x, y, g, grass, terminal.AttrNone)
				}
			}
		}
	}

	row, col, ok := scene.HouseAt(grid)
	if !ok {
		return
	}
	f.SetShape(col, row, visual.HouseShape, Darken(visual.RgbHouse, darkness), terminal.AttrNone)
	if s.Phase.Body != celestial.Moon {
		return
	}
	windows := []rune(visual.HouseShape[visual.HouseWindowRow])
	for _, x := range visual.HouseWindowCols {
		f.SetFg(col+x, row+visual.HouseWindowRow, windows[x], visual.RgbWindowLit, terminal.AttrBold)
	}
}

// tuft scatters grass along the horizon by a stable column hash
func tuft(x int) (rune, bool) {
	hash := uint32(x) * 2654435761
	hash ^= hash >> 16
	if hash%3 != 0 {
		return 0, false
	}
	return visual.GrassGlyphs[(hash>>8)%uint32(len(visual.GrassGlyphs))], true
}

// star places stars by a stable cell hash; the glyph alternates slowly to twinkle
func star(x, y int, tick uint64) (rune, bool) {
	hash := uint32(x)*73856093 ^ uint32(y)*19349663
	hash ^= hash >> 13
	hash *= 0x5bd1e995
	hash ^= hash >> 15
	if float64(hash%10000) >= parameter.StarDensity*10000 {
		return 0, false
	}
	n := uint64(len(visual.StarGlyphs))
	idx := (uint64(hash>>16) + tick/parameter.StarTwinklePeriod) % n
	return visual.StarGlyphs[idx], true
}

func (r *Renderer) paintBolt(h effect.Hints) {
	if len(h.Bolt) == 0 {
		return
	}
	color, attrs := visual.RgbBolt, terminal.AttrBold
	if h.Charging {
		color, attrs = visual.RgbBoltDim, terminal.AttrDim
	}
	for i, p := range h.Bolt {
		g := visual.BoltDownStraight
		if i+1 < len(h.Bolt) && h.Bolt[i+1].Row == p.Row+1 {
			switch next := h.Bolt[i+1].Col; {
			case next < p.Col:
				g = visual.BoltDownLeft
			case next > p.Col:
				g = visual.BoltDownRight
			}
		}
		r.current.SetFg(p.Col, p.Row, g, color, attrs)
	}
}

func (r *Renderer) paintOverlay(hideHUD bool, o hud.Overlay) {
	f := r.current
	w, h := f.Size()
	if !hideHUD && o.Status != "" {
		f.SetText(parameter.HUDCol, parameter.HUDRow, o.Status, visual.RgbHUD, terminal.AttrBold)
		if i := strings.Index(o.Status, offlineMarker); o.Offline && i >= 0 {
			f.SetText(parameter.HUDCol+hud.Width(o.Status[:i]), parameter.HUDRow, offlineMarker, visual.RgbOffline, terminal.AttrBold)
		}
	}
	if o.Attribution != "" {
		x := max(w-hud.Width(o.Attribution)-parameter.AttributionMargin, 0)
		f.SetText(x, h-1, o.Attribution, visual.RgbAttribution, terminal.AttrNone)
	}
}

const offlineMarker = "OFFLINE"

// diff emits cells that differ from the previous frame, then swaps frames
func (r *Renderer) diff() []terminal.CellWrite {
	cur, prev := r.current, r.previous
	r.writes = r.writes[:0]
	for i, c := range cur.cells {
		if r.fullRedraw || c != prev.cells[i] {
			r.writes = append(r.writes, terminal.CellWrite{X: i % cur.width, Y: i / cur.width, Cell: c})
		}
	}
	r.fullRedraw = false
	r.current, r.previous = prev, cur
	return r.writes
}
