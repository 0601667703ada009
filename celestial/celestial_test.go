package celestial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/terminal"
)

func boolPtr(b bool) *bool { return &b }

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, Fraction(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0.5, Fraction(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 0.75, Fraction(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)), 1e-12)
}

func TestPhase_NightOverrideIgnoresClock(t *testing.T) {
	c := NewClock(80, 24)
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	p := c.Phase(noon, boolPtr(true))
	assert.Equal(t, Moon, p.Body)
	assert.Equal(t, Night, p.Segment)
	assert.Equal(t, 0.0, p.Fraction)

	p = c.Phase(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), boolPtr(false))
	assert.Equal(t, Sun, p.Body)
	assert.Equal(t, Day, p.Segment)
}

func TestPhase_BodyBySunriseSunset(t *testing.T) {
	c := NewClock(80, 24)
	assert.Equal(t, Moon, c.PhaseAt(0.24).Body)
	assert.Equal(t, Sun, c.PhaseAt(0.25).Body)
	assert.Equal(t, Sun, c.PhaseAt(0.7499).Body)
	assert.Equal(t, Moon, c.PhaseAt(0.75).Body)
}

func TestPhase_SpriteStaysInGrid(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {120, 40}, {20, 8}, {1, 1}} {
		c := NewClock(size[0], size[1])
		for i := 0; i < 1000; i++ {
			p := c.PhaseAt(float64(i) / 1000)
			shape := p.Body.Shape()
			w := 0
			for _, l := range shape {
				w = max(w, len([]rune(l)))
			}
			assert.GreaterOrEqual(t, p.Row, 0)
			assert.GreaterOrEqual(t, p.Col, 0)
			if size[0] >= w && size[1] >= len(shape) {
				assert.LessOrEqual(t, p.Col+w, size[0])
				assert.LessOrEqual(t, p.Row+len(shape), size[1])
			}
		}
	}
}

func TestPhase_ArcApexAtNoon(t *testing.T) {
	c := NewClock(80, 24)
	morning := c.PhaseAt(0.3)
	noon := c.PhaseAt(0.5)
	assert.Less(t, noon.Row, morning.Row, "sun is highest at noon")
	assert.Less(t, morning.Col, noon.Col, "sun travels left to right")
}

func TestSegmentAt(t *testing.T) {
	assert.Equal(t, Night, SegmentAt(0.1))
	assert.Equal(t, Dawn, SegmentAt(0.25))
	assert.Equal(t, Day, SegmentAt(0.5))
	assert.Equal(t, Dusk, SegmentAt(0.75))
	assert.Equal(t, Night, SegmentAt(0.95))
}

func TestGradientAt_PureSegmentsAndBlend(t *testing.T) {
	assert.Equal(t, visual.SkyDay, GradientAt(0.5))
	assert.Equal(t, visual.SkyNight, GradientAt(0.0))

	// Inside the blend window the stops lie between both segments
	b := boundaries[1]
	mid := GradientAt(b.at)
	assert.NotEqual(t, visual.SkyDawn, mid)
	assert.NotEqual(t, visual.SkyDay, mid)
}

func TestGradientAt_NoPopping(t *testing.T) {
	// Adjacent samples across the whole day never jump by more than a small step
	const steps = 4000
	prev := GradientAt(0)
	for i := 1; i <= steps; i++ {
		cur := GradientAt(float64(i) / steps)
		for j := range cur {
			assert.LessOrEqual(t, channelDelta(prev[j], cur[j]), 20, "fraction %f", float64(i)/steps)
		}
		prev = cur
	}
}

func channelDelta(a, b terminal.RGB) int {
	d := max(absInt(int(a.R)-int(b.R)), absInt(int(a.G)-int(b.G)), absInt(int(a.B)-int(b.B)))
	return d
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestSample(t *testing.T) {
	stops := []terminal.RGB{{R: 0}, {R: 200}}
	assert.Equal(t, stops[0], Sample(stops, 0))
	assert.Equal(t, stops[1], Sample(stops, 1))
	assert.Equal(t, stops[1], Sample(stops, 5))
	assert.Equal(t, terminal.RGBBlack, Sample(nil, 0.5))
}

func TestAlign(t *testing.T) {
	assert.Equal(t, 0.0, Align(0.5, true), "noon at night is midnight")
	assert.Equal(t, 0.5, Align(0.0, false), "midnight by day is noon")
	assert.Equal(t, 0.4, Align(0.4, false), "matching half unchanged")
	assert.Equal(t, 0.9, Align(0.9, true))

	c := NewClock(80, 24)
	for f := 0.0; f < 1; f += 0.01 {
		assert.Equal(t, Moon, c.PhaseAt(Align(f, true)).Body, "f=%v", f)
		assert.Equal(t, Sun, c.PhaseAt(Align(f, false)).Body, "f=%v", f)
	}
	assert.Less(t, c.PhaseAt(Align(0.3, true)).Col, c.PhaseAt(Align(0.6, true)).Col, "arc progress preserved")
}
