package particle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/weather"
)

func rainOnly(density float64) []scene.LayerSpec {
	return []scene.LayerSpec{{
		Kind:     scene.KindPrecipitation,
		Particle: scene.ParticleRain,
		Density:  density,
		Glyphs:   []rune{'|'},
		Motion:   scene.Motion{DRow: parameter.RainSpeed},
		Jitter:   parameter.RainJitter,
	}}
}

func TestSpawnProportionalToDensityTimesWidth(t *testing.T) {
	for _, tc := range []struct {
		density float64
		width   int
		ticks   int
	}{
		{0.10, 80, 100},
		{0.037, 120, 333},
		{0.5, 7, 50},
	} {
		s := NewSystem(tc.width, 24, 42)
		layers := rainOnly(tc.density)
		for i := 0; i < tc.ticks; i++ {
			s.Tick(1, layers)
		}
		want := math.Floor(float64(tc.ticks) * tc.density * float64(tc.width))
		assert.InDelta(t, want, float64(s.Spawned()), 1, "density=%v width=%d", tc.density, tc.width)
	}
}

func TestZeroDensitySpawnsNothing(t *testing.T) {
	s := NewSystem(80, 24, 1)
	for i := 0; i < 500; i++ {
		assert.Empty(t, s.Tick(1, rainOnly(0)))
	}
	assert.Zero(t, s.Spawned())
}

func TestArenaCapacityBoundsSpawns(t *testing.T) {
	s := NewSystem(400, 200, 1)
	layers := rainOnly(1000)
	for i := 0; i < 5; i++ {
		ps := s.Tick(1, layers)
		assert.LessOrEqual(t, len(ps), parameter.MaxParticles)
	}
	assert.Equal(t, parameter.MaxParticles, s.Count())
}

func TestRainRowMonotonicUntilRemoval(t *testing.T) {
	s := NewSystem(80, 24, 9)
	layers := rainOnly(0.05)

	// Slots are recycled, so a row is only compared once the particle has aged a full tick
	lastRow := map[int32]float64{}
	for tick := 0; tick < 200; tick++ {
		s.Tick(1, layers)
		seen := map[int32]bool{}
		for _, idx := range s.live {
			p := s.arena[idx]
			if prev, ok := lastRow[idx]; ok && p.TTL < parameter.ParticleTTL-1 {
				assert.GreaterOrEqual(t, p.Row, prev, "tick %d slot %d", tick, idx)
			}
			lastRow[idx] = p.Row
			seen[idx] = true
		}
		for idx := range lastRow {
			if !seen[idx] {
				delete(lastRow, idx)
			}
		}
	}
}

func TestParticlesRemovedBelowGrid(t *testing.T) {
	s := NewSystem(40, 10, 3)
	for i := 0; i < 100; i++ {
		for _, p := range s.Tick(1, rainOnly(0.2)) {
			assert.Less(t, p.Row, 10.0)
		}
	}
}

func TestHailBouncesOnce(t *testing.T) {
	s := NewSystem(20, 10, 5)
	layers := []scene.LayerSpec{{
		Kind:     scene.KindPrecipitation,
		Particle: scene.ParticleHail,
		Density:  0.05,
		Glyphs:   []rune{'o'},
		Motion:   scene.Motion{DRow: parameter.HailSpeed},
	}}
	s.Tick(1, layers)
	require.Equal(t, 1, s.Count())

	bounced := false
	noSpawn := []scene.LayerSpec{}
	for i := 0; i < 100 && s.Count() > 0; i++ {
		ps := s.Tick(1, noSpawn)
		for _, p := range ps {
			if p.Bounced {
				bounced = true
			}
			assert.LessOrEqual(t, p.Row, 9.0)
		}
	}
	assert.True(t, bounced)
	assert.Zero(t, s.Count(), "removed on second contact")
}

func TestSnowSwaysLaterally(t *testing.T) {
	s := NewSystem(80, 60, 11)
	layers := []scene.LayerSpec{{
		Kind:     scene.KindPrecipitation,
		Particle: scene.ParticleSnow,
		Density:  0.05,
		Glyphs:   []rune{'*'},
		Motion:   scene.Motion{DRow: parameter.SnowSpeed},
	}}
	s.Tick(1, layers)
	require.Greater(t, s.Count(), 0)
	start := s.arena[s.live[0]]

	var moved bool
	for i := 0; i < 40; i++ {
		s.Tick(1, nil)
	}
	for _, idx := range s.live {
		if s.arena[idx].Col != start.Col {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestResizeClampsLiveParticles(t *testing.T) {
	s := NewSystem(120, 40, 2)
	comp := &scene.Composer{}
	layers := comp.Compose(weather.Snow, false, 0, scene.Size{Width: 120, Height: 40})
	for i := 0; i < 150; i++ {
		s.Tick(1, layers)
	}
	require.Greater(t, s.Count(), 0)

	s.Resize(30, 10)
	for _, p := range s.view {
		assert.GreaterOrEqual(t, p.Row, 0.0)
		assert.LessOrEqual(t, p.Row, 9.0)
		assert.GreaterOrEqual(t, p.Col, 0.0)
		assert.LessOrEqual(t, p.Col, 29.0)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	comp := &scene.Composer{Leaves: true}
	layers := comp.Compose(weather.Clear, false, 0, scene.Size{Width: 80, Height: 24})
	layers = append(layers, comp.Compose(weather.Rain, false, 0, scene.Size{Width: 80, Height: 24})...)

	run := func() []Particle {
		s := NewSystem(80, 24, 1234)
		var out []Particle
		for i := 0; i < 120; i++ {
			out = s.Tick(1, layers)
		}
		return append([]Particle(nil), out...)
	}
	assert.Equal(t, run(), run())
}

func TestSpritesStayInBandAndRespectTarget(t *testing.T) {
	s := NewSystem(100, 30, 8)
	layers := []scene.LayerSpec{{
		Kind:     scene.KindSprite,
		Particle: scene.ParticleCloud,
		Density:  3,
		Motion:   scene.Motion{DCol: parameter.CloudSpeed},
	}}
	for i := 0; i < 500; i++ {
		ps := s.Tick(1, layers)
		assert.LessOrEqual(t, len(ps), 3)
		for _, p := range ps {
			assert.GreaterOrEqual(t, p.Row, float64(parameter.SpriteRowBandTop+1))
			assert.NotEmpty(t, p.Shape)
		}
	}
}

func TestResetClearsArena(t *testing.T) {
	s := NewSystem(80, 24, 1)
	for i := 0; i < 10; i++ {
		s.Tick(1, rainOnly(0.2))
	}
	require.Greater(t, s.Count(), 0)
	s.Reset()
	assert.Zero(t, s.Count())
	assert.Len(t, s.free, parameter.MaxParticles)
}

func TestSmokeRisesFromChimney(t *testing.T) {
	grid := scene.Size{Width: 80, Height: 24}
	layers := (&scene.Composer{}).Compose(weather.Clear, false, 0, grid)
	crow, ccol, ok := scene.ChimneyAt(grid)
	require.True(t, ok)

	s := NewSystem(grid.Width, grid.Height, 3)
	for i := 0; i < 200; i++ {
		s.Tick(1, layers)
	}
	smoke := 0
	for _, p := range s.view {
		if p.Kind != scene.ParticleSmoke {
			continue
		}
		smoke++
		assert.Less(t, p.Row, float64(crow), "puffs stay above the chimney")
		assert.GreaterOrEqual(t, p.Row, 0.0)
		assert.InDelta(t, float64(ccol), p.Col, 8, "no wind, puffs stay near the chimney")
		assert.Contains(t, visual.SmokeGlyphs, p.Glyph)
	}
	assert.Positive(t, smoke)

	// A grid too short for the house emits nothing
	short := NewSystem(80, 10, 3)
	for i := 0; i < 100; i++ {
		for _, p := range short.Tick(1, layers) {
			assert.NotEqual(t, scene.ParticleSmoke, p.Kind)
		}
	}
}

func TestFirefliesWanderLowerHalfAndGlow(t *testing.T) {
	grid := scene.Size{Width: 30, Height: 20}
	layers := (&scene.Composer{}).Compose(weather.Clear, true, 20, grid)
	s := NewSystem(grid.Width, grid.Height, 5)

	glyphs := map[rune]bool{}
	for i := 0; i < 400; i++ {
		n := 0
		for _, p := range s.Tick(1, layers) {
			if p.Kind != scene.ParticleFirefly {
				continue
			}
			n++
			glyphs[p.Glyph] = true
			assert.GreaterOrEqual(t, p.Row, float64(grid.Height/2))
			assert.LessOrEqual(t, p.Row, float64(grid.Height-1))
			assert.GreaterOrEqual(t, p.Col, 0.0)
			assert.Less(t, p.Col, float64(grid.Width))
		}
		require.GreaterOrEqual(t, n, parameter.FireflyMinCount, "tick %d", i)
	}
	assert.True(t, glyphs[0], "fireflies go dark")
	assert.True(t, glyphs['*'], "fireflies reach full glow")
}
