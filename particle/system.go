package particle

import (
	"math"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/vmath"
)

// hailGravity pulls a bounced hailstone back down (cells per tick squared)
const hailGravity = 0.12

// leafSwayRate is the phase advance per tick of a falling leaf
const leafSwayRate = 0.08

// System advances particles one tick at a time
// Slots are recycled through a free list; steady state performs no allocation
type System struct {
	arena []Particle
	free  []int32
	live  []int32
	view  []Particle

	// Per-layer spawn state, indexed by layer position
	carry  []float64
	warmed []bool

	rng           *vmath.FastRand
	width, height int

	spawned uint64
}

// NewSystem creates a system for the grid with a deterministic seed
func NewSystem(width, height int, seed uint64) *System {
	s := &System{
		arena: make([]Particle, parameter.MaxParticles),
		free:  make([]int32, 0, parameter.MaxParticles),
		live:  make([]int32, 0, parameter.MaxParticles),
		view:  make([]Particle, 0, parameter.MaxParticles),
		rng:   vmath.NewFastRand(seed),
	}
	s.Resize(width, height)
	s.Reset()
	return s
}

// Reset clears the arena and spawn accumulators
func (s *System) Reset() {
	s.free = s.free[:0]
	for i := len(s.arena) - 1; i >= 0; i-- {
		s.free = append(s.free, int32(i))
	}
	s.live = s.live[:0]
	s.view = s.view[:0]
	s.carry = s.carry[:0]
	s.warmed = s.warmed[:0]
}

// Count returns the number of live particles
func (s *System) Count() int { return len(s.live) }

// Spawned returns the total number of particles spawned since creation
func (s *System) Spawned() uint64 { return s.spawned }

// Resize updates bounds and clamps every live particle into the new grid
func (s *System) Resize(width, height int) {
	s.width = max(width, parameter.MinGridWidth)
	s.height = max(height, parameter.MinGridHeight)

	maxRow := float64(s.height - 1)
	maxCol := float64(s.width - 1)
	for _, idx := range s.live {
		p := &s.arena[idx]
		p.Row = vmath.Clamp(p.Row, 0, maxRow)
		p.Col = vmath.Clamp(p.Col, 0, maxCol)
	}
	s.rebuildView()
}

// Tick advances live particles by dt ticks, then spawns for the given layers
// The returned slice is valid until the next call
func (s *System) Tick(dt float64, layers []scene.LayerSpec) []Particle {
	dt = vmath.Clamp(dt, 0, parameter.MaxTickDelta)

	for len(s.carry) < len(layers) {
		s.carry = append(s.carry, 0)
		s.warmed = append(s.warmed, false)
	}

	s.advance(dt)

	for i := range layers {
		l := &layers[i]
		switch l.Kind {
		case scene.KindPrecipitation:
			s.spawnPrecipitation(i, l, dt)
		case scene.KindSprite:
			if l.Particle == scene.ParticleSmoke {
				s.spawnSmoke(i, l, dt)
			} else {
				s.spawnSprites(i, l, dt)
			}
		}
	}

	s.rebuildView()
	return s.view
}

func (s *System) rebuildView() {
	s.view = s.view[:0]
	for _, idx := range s.live {
		s.view = append(s.view, s.arena[idx])
	}
}

// advance moves every live particle and recycles the expired ones
func (s *System) advance(dt float64) {
	h := float64(s.height)
	w := float64(s.width)

	for i := 0; i < len(s.live); {
		idx := s.live[i]
		p := &s.arena[idx]
		p.TTL -= dt

		alive := true
		switch p.Kind {
		case scene.ParticleRain:
			p.Row += p.VRow * dt
			p.Col += p.VCol * dt
			alive = p.Row < h

		case scene.ParticleSnow:
			p.Phase += parameter.SnowSwayRate * dt
			p.Row += p.VRow * dt
			p.Col += (p.VCol + parameter.SnowSwayAmplitude*vmath.FastSin(p.Phase)) * dt
			alive = p.Row < h

		case scene.ParticleHail:
			if p.Bounced {
				p.VRow += hailGravity * dt
			}
			p.Row += p.VRow * dt
			p.Col += p.VCol * dt
			if p.Row >= h-1 {
				if p.Bounced {
					alive = false
				} else {
					p.Row = h - 1
					p.VRow = -p.VRow * parameter.HailBounceDamp
					p.VCol += s.rng.Range(-parameter.HailBounceDrift, parameter.HailBounceDrift)
					p.Bounced = true
				}
			}

		case scene.ParticleLeaf:
			p.Phase += leafSwayRate * dt
			p.Row += p.VRow * dt
			p.Col += (p.VCol + parameter.LeafSwayAmplitude*vmath.FastSin(p.Phase)) * dt
			alive = p.Row < h

		case scene.ParticleBird:
			p.Phase += dt
			p.Shape = visual.BirdFrames[int(p.Phase)/parameter.BirdFlapTicks%2]
			p.Col += p.VCol * dt
			alive = onScreen(p, w)

		case scene.ParticleSmoke:
			p.Phase += parameter.SmokeSwayRate * dt
			p.Row += p.VRow * dt
			p.Col += (p.VCol + p.Rate*vmath.FastSin(p.Phase)) * dt
			age := vmath.Clamp(1-p.TTL/parameter.SmokeTTL, 0, 1)
			p.Glyph = visual.SmokeGlyphs[min(int(age*float64(len(visual.SmokeGlyphs))), len(visual.SmokeGlyphs)-1)]
			alive = p.Row >= 0 && p.Col >= 0 && p.Col < w

		case scene.ParticleFirefly:
			if s.rng.Chance(parameter.FireflyTurnOdds * dt) {
				s.headFirefly(p)
			}
			p.Row += p.VRow * dt
			p.Col += p.VCol * dt
			if top := float64(s.height / 2); p.Row < top || p.Row > h-1 {
				p.Row = vmath.Clamp(p.Row, top, h-1)
				p.VRow = -p.VRow
			}
			if p.Col < 0 {
				p.Col += w
			} else if p.Col >= w {
				p.Col -= w
			}
			p.Phase += p.Rate * dt
			glow(p)

		default:
			p.Col += p.VCol * dt
			alive = onScreen(p, w)
		}

		if !alive || p.TTL <= 0 {
			s.release(i)
			continue
		}
		i++
	}
}

// onScreen reports whether a horizontally moving sprite still overlaps or is entering the grid
func onScreen(p *Particle, w float64) bool {
	pw := float64(p.Width())
	if p.VCol >= 0 {
		return p.Col < w
	}
	return p.Col+pw > 0
}

// release returns live[i] to the free list with a swap-delete
func (s *System) release(i int) {
	idx := s.live[i]
	last := len(s.live) - 1
	s.live[i] = s.live[last]
	s.live = s.live[:last]
	s.free = append(s.free, idx)
}

// alloc takes a slot from the free list, nil when the arena is full
func (s *System) alloc() *Particle {
	n := len(s.free)
	if n == 0 {
		return nil
	}
	idx := s.free[n-1]
	s.free = s.free[:n-1]
	s.live = append(s.live, idx)
	s.spawned++
	p := &s.arena[idx]
	*p = Particle{}
	return p
}

// spawnPrecipitation spawns density*width*dt particles, carrying the fraction to the next tick
func (s *System) spawnPrecipitation(layer int, l *scene.LayerSpec, dt float64) {
	if l.Density <= 0 {
		return
	}
	s.carry[layer] += l.Density * float64(s.width) * dt
	n := int(s.carry[layer])
	s.carry[layer] -= float64(n)

	for ; n > 0; n-- {
		p := s.alloc()
		if p == nil {
			return
		}
		s.initPrecipitation(p, layer, l)
	}
}

func (s *System) initPrecipitation(p *Particle, layer int, l *scene.LayerSpec) {
	p.Kind = l.Particle
	p.Layer = layer
	p.Color = l.Color
	p.Glyph = pickGlyph(s.rng, l.Glyphs)
	p.TTL = parameter.ParticleTTL
	p.Row = -s.rng.Float64()
	p.Col = s.rng.Range(0, float64(s.width))

	switch l.Particle {
	case scene.ParticleSnow:
		p.VRow = l.Motion.DRow * s.rng.Range(0.7, 1.3)
		p.VCol = l.Motion.DCol
		p.Phase = s.rng.Range(0, 2*math.Pi)
	case scene.ParticleLeaf:
		p.VRow = l.Motion.DRow * s.rng.Range(0.6, 1.4)
		p.VCol = l.Motion.DCol * s.rng.Range(0.5, 1.5)
		p.Phase = s.rng.Range(0, 2*math.Pi)
	default:
		// Rain and hail: fast near-vertical fall with slight angle jitter
		p.VRow = l.Motion.DRow * s.rng.Range(0.9, 1.1)
		p.VCol = l.Motion.DCol + s.rng.Range(-l.Jitter, l.Jitter)
	}
}

// spawnSmoke emits puffs from the chimney at density per tick
func (s *System) spawnSmoke(layer int, l *scene.LayerSpec, dt float64) {
	row, col, ok := scene.ChimneyAt(scene.Size{Width: s.width, Height: s.height})
	if !ok || l.Density <= 0 {
		return
	}
	s.carry[layer] += l.Density * dt
	n := int(s.carry[layer])
	s.carry[layer] -= float64(n)

	for ; n > 0; n-- {
		p := s.alloc()
		if p == nil {
			return
		}
		p.Kind = l.Particle
		p.Layer = layer
		p.Color = l.Color
		p.Glyph = visual.SmokeGlyphs[0]
		p.Row = float64(row - 1)
		p.Col = float64(col) + s.rng.Range(0, 2)
		p.VRow = l.Motion.DRow * s.rng.Range(0.8, 1.2)
		p.VCol = l.Motion.DCol
		p.Rate = l.Jitter * s.rng.Range(0.5, 1)
		p.Phase = s.rng.Range(0, 2*math.Pi)
		p.TTL = parameter.SmokeTTL * s.rng.Range(0.7, 1)
	}
}

// headFirefly picks a new random heading within the drift bounds
func (s *System) headFirefly(p *Particle) {
	p.VRow = s.rng.Range(-parameter.FireflyDriftRow, parameter.FireflyDriftRow)
	p.VCol = s.rng.Range(-parameter.FireflyDriftCol, parameter.FireflyDriftCol)
}

// glow sets a firefly's glyph and color from its phase; a dim firefly has no glyph
func glow(p *Particle) {
	g := (vmath.FastSin(p.Phase) + 1) / 2
	if g < parameter.FireflyBrightMin {
		p.Glyph = 0
		return
	}
	n := len(visual.FireflyGlyphs)
	i := min(int((g-parameter.FireflyBrightMin)/(1-parameter.FireflyBrightMin)*float64(n)), n-1)
	p.Glyph = visual.FireflyGlyphs[i]
	p.Color = visual.FireflyColors[i]
}

// spawnSprites keeps the live sprite count of a layer near density per 100 columns
func (s *System) spawnSprites(layer int, l *scene.LayerSpec, dt float64) {
	target := int(math.Ceil(l.Density * float64(s.width) / 100))
	if l.Particle == scene.ParticleFirefly {
		target = max(target, parameter.FireflyMinCount)
	}
	if target <= 0 {
		return
	}

	count := 0
	for _, idx := range s.live {
		if s.arena[idx].Layer == layer && s.arena[idx].Kind == l.Particle {
			count++
		}
	}

	// First tick after a reset scatters sprites across the grid instead of waiting at the edge
	if !s.warmed[layer] {
		s.warmed[layer] = true
		for ; count < target; count++ {
			p := s.alloc()
			if p == nil {
				return
			}
			s.initSprite(p, layer, l, true)
		}
		return
	}

	odds := parameter.SpriteSpawnOdds * float64(target-count) * dt
	if count < target && s.rng.Chance(odds) {
		if p := s.alloc(); p != nil {
			s.initSprite(p, layer, l, false)
		}
	}
}

func (s *System) initSprite(p *Particle, layer int, l *scene.LayerSpec, scatter bool) {
	p.Kind = l.Particle
	p.Layer = layer
	p.Color = l.Color

	dir := 1.0
	if l.Motion.DCol < 0 {
		dir = -1
	}
	p.VCol = dir * math.Abs(l.Motion.DCol) * s.rng.Range(0.7, 1.3)

	top := parameter.SpriteRowBandTop + 1
	band := max(s.height/3, top+1)

	switch l.Particle {
	case scene.ParticleCloud:
		p.Shape = visual.CloudShapes[s.rng.Intn(len(visual.CloudShapes))]
	case scene.ParticleBird:
		p.Shape = visual.BirdFrames[0]
		p.Phase = float64(s.rng.Intn(parameter.BirdFlapTicks * 2))
	case scene.ParticleAirplane:
		p.Shape = visual.AirplaneShape
	case scene.ParticleFog:
		p.Glyph = pickGlyph(s.rng, l.Glyphs)
		top = s.height / 2
		band = s.height - 1
	case scene.ParticleFirefly:
		top = s.height / 2
		band = s.height - 1
	}

	p.Row = float64(s.rng.IntRange(top, max(band-len(p.Shape), top)))

	pw := float64(p.Width())
	switch {
	case scatter || l.Particle == scene.ParticleFog || l.Particle == scene.ParticleFirefly:
		p.Col = s.rng.Range(0, float64(s.width))
	case dir > 0:
		p.Col = -pw + 1
	default:
		p.Col = float64(s.width) - 1
	}

	switch l.Particle {
	case scene.ParticleFog:
		p.TTL = float64(s.rng.IntRange(parameter.FogTTL/2, parameter.FogTTL))
		return
	case scene.ParticleFirefly:
		s.headFirefly(p)
		p.Phase = s.rng.Range(0, 2*math.Pi)
		p.Rate = s.rng.Range(parameter.FireflyGlowMin, parameter.FireflyGlowMax)
		p.TTL = parameter.FireflyLifetime
		glow(p)
		return
	}
	// Long enough to cross the grid at this speed
	speed := max(math.Abs(p.VCol), 0.01)
	p.TTL = (float64(s.width)+2*pw)/speed + 60
}

func pickGlyph(rng *vmath.FastRand, glyphs []rune) rune {
	if len(glyphs) == 0 {
		return '*'
	}
	return glyphs[rng.Intn(len(glyphs))]
}
