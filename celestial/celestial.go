// Package celestial maps time of day onto the sun or moon position and the sky gradient
package celestial

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/terminal"
	"github.com/lixenwraith/weathr/vmath"
)

// Body is the celestial sprite in the sky
type Body uint8

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	if b == Moon {
		return "moon"
	}
	return "sun"
}

// Shape returns the sprite rows for the body
func (b Body) Shape() []string {
	if b == Moon {
		return visual.MoonShape
	}
	return visual.SunShape
}

// Segment is a part of the day with its own sky stops
type Segment uint8

const (
	Night Segment = iota
	Dawn
	Day
	Dusk
)

var segmentNames = [...]string{"night", "dawn", "day", "dusk"}

func (s Segment) String() string { return segmentNames[s] }

func (s Segment) stops() []terminal.RGB {
	switch s {
	case Dawn:
		return visual.SkyDawn
	case Day:
		return visual.SkyDay
	case Dusk:
		return visual.SkyDusk
	default:
		return visual.SkyNight
	}
}

// boundary is a segment transition at a day fraction
type boundary struct {
	at       float64
	from, to Segment
}

// boundaries are ordered by fraction
var boundaries = [4]boundary{
	{parameter.Sunrise - parameter.DawnSpan, Night, Dawn},
	{parameter.Sunrise + parameter.DawnSpan, Dawn, Day},
	{parameter.Sunset - parameter.DuskSpan, Day, Dusk},
	{parameter.Sunset + parameter.DuskSpan, Dusk, Night},
}

// Phase is the celestial state for one instant
type Phase struct {
	Fraction float64
	Body     Body
	Segment  Segment

	// Row and Col are the sprite's top-left cell, always inside the grid when it fits
	Row, Col int

	// Gradient holds sky stops from top row to horizon
	Gradient []terminal.RGB
}

// Clock computes phases for a grid
type Clock struct {
	width, height int
}

// NewClock creates a Clock for the grid size
func NewClock(width, height int) *Clock {
	c := &Clock{}
	c.Resize(width, height)
	return c
}

// Resize updates arc bounds
func (c *Clock) Resize(width, height int) {
	c.width = max(width, parameter.MinGridWidth)
	c.height = max(height, parameter.MinGridHeight)
}

// Fraction returns the day fraction of now in its own location
func Fraction(now time.Time) float64 {
	h, m, s := now.Clock()
	secs := float64(h*3600+m*60+s) + float64(now.Nanosecond())/1e9
	return vmath.Frac(secs / 86400)
}

// Phase computes the phase at now; a non-nil override pins midnight (true) or noon (false)
func (c *Clock) Phase(now time.Time, nightOverride *bool) Phase {
	var f float64
	switch {
	case nightOverride == nil:
		f = Fraction(now)
	case *nightOverride:
		f = parameter.NightFraction
	default:
		f = parameter.NoonFraction
	}
	return c.PhaseAt(f)
}

// Align maps f onto the half of the day matching night, keeping progress along the arc
// Noon with night reported becomes midnight; midnight with day reported becomes noon
func Align(f float64, night bool) float64 {
	f = vmath.Frac(f)
	dayLen := parameter.Sunset - parameter.Sunrise
	nightLen := 1 - dayLen
	isDay := f >= parameter.Sunrise && f < parameter.Sunset
	switch {
	case night && isDay:
		progress := (f - parameter.Sunrise) / dayLen
		return vmath.Frac(parameter.Sunset + progress*nightLen)
	case !night && !isDay:
		progress := vmath.Frac(f-parameter.Sunset) / nightLen
		return parameter.Sunrise + progress*dayLen
	}
	return f
}

// PhaseAt computes the phase for a day fraction
func (c *Clock) PhaseAt(f float64) Phase {
	f = vmath.Frac(f)
	p := Phase{
		Fraction: f,
		Segment:  SegmentAt(f),
		Gradient: GradientAt(f),
	}

	// Progress along the visible arc in [0,1)
	var progress float64
	if f >= parameter.Sunrise && f < parameter.Sunset {
		p.Body = Sun
		progress = (f - parameter.Sunrise) / (parameter.Sunset - parameter.Sunrise)
	} else {
		p.Body = Moon
		nightLen := 1 - (parameter.Sunset - parameter.Sunrise)
		progress = vmath.Frac(f-parameter.Sunset) / nightLen
	}

	p.Row, p.Col = c.arc(progress, p.Body.Shape())
	return p
}

// arc places the sprite centered on a sinusoidal arc, clamped so the whole sprite is visible
func (c *Clock) arc(progress float64, shape []string) (row, col int) {
	sh := len(shape)
	sw := 0
	for _, line := range shape {
		sw = max(sw, len([]rune(line)))
	}

	cx := progress * float64(c.width-1)
	depth := parameter.ArcHeightRatio * float64(c.height)
	cy := parameter.ArcTopRow + (1-math.Sin(math.Pi*progress))*depth

	col = int(cx) - sw/2
	row = int(cy) - sh/2
	col = vmath.ClampInt(col, 0, max(c.width-sw, 0))
	row = vmath.ClampInt(row, 0, max(c.height-sh, 0))
	return row, col
}

// SegmentAt returns the day segment containing f
func SegmentAt(f float64) Segment {
	f = vmath.Frac(f)
	seg := Night
	for _, b := range boundaries {
		if f >= b.at {
			seg = b.to
		}
	}
	return seg
}

// GradientAt returns the sky stops for f, blended in Lab space near segment boundaries
func GradientAt(f float64) []terminal.RGB {
	f = vmath.Frac(f)
	for _, b := range boundaries {
		if d := f - b.at; d > -parameter.BlendWidth && d < parameter.BlendWidth {
			t := (d + parameter.BlendWidth) / (2 * parameter.BlendWidth)
			return blendStops(b.from.stops(), b.to.stops(), t)
		}
	}
	src := SegmentAt(f).stops()
	out := make([]terminal.RGB, len(src))
	copy(out, src)
	return out
}

func blendStops(a, b []terminal.RGB, t float64) []terminal.RGB {
	out := make([]terminal.RGB, min(len(a), len(b)))
	for i := range out {
		out[i] = BlendLab(a[i], b[i], t)
	}
	return out
}

// BlendLab interpolates two colors in CIE Lab space
func BlendLab(a, b terminal.RGB, t float64) terminal.RGB {
	ca := toColorful(a)
	cb := toColorful(b)
	return fromColorful(ca.BlendLab(cb, vmath.Clamp(t, 0, 1)))
}

// Sample interpolates a stop list at t in [0,1] (0 is the first stop)
func Sample(stops []terminal.RGB, t float64) terminal.RGB {
	switch len(stops) {
	case 0:
		return terminal.RGBBlack
	case 1:
		return stops[0]
	}
	pos := vmath.Clamp(t, 0, 1) * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	frac := pos - float64(i)
	if frac == 0 {
		return stops[i]
	}
	return BlendLab(stops[i], stops[i+1], frac)
}

func toColorful(c terminal.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) terminal.RGB {
	r, g, b := c.Clamped().RGB255()
	return terminal.RGB{R: r, G: g, B: b}
}
