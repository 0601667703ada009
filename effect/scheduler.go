package effect

import (
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/vmath"
)

// Hints tell the renderer and audio how to present effects this tick
type Hints struct {
	Flash        bool
	Intensity    float64
	FlashStarted bool
	Charging     bool
	Severity     scene.Severity
	Bolt         []Point
}

// Scheduler advances the scene's effect machines
type Scheduler struct {
	lightning Lightning
	active    bool
	boltStale bool

	rng           *vmath.FastRand
	width, height int
}

// NewScheduler creates a scheduler for the grid with a deterministic seed
func NewScheduler(width, height int, seed uint64) *Scheduler {
	s := &Scheduler{rng: vmath.NewFastRand(seed)}
	s.Resize(width, height)
	return s
}

// Lightning returns a snapshot of the machine
func (s *Scheduler) Lightning() Lightning {
	return s.lightning
}

// Resize marks the bolt for regeneration on the next tick that shows it
func (s *Scheduler) Resize(width, height int) {
	s.width = max(width, parameter.MinGridWidth)
	s.height = max(height, parameter.MinGridHeight)
	s.boltStale = true
}

// Tick advances by dt ticks; effects are the scene's effect layers
// With no lightning layer the machine returns to Idle
func (s *Scheduler) Tick(dt float64, effects []scene.LayerSpec) Hints {
	layer, ok := findLightning(effects)
	if !ok {
		s.active = false
		s.lightning = Lightning{State: Idle}
		return Hints{}
	}

	m := &s.lightning
	if !s.active || m.Severity != layer.Severity {
		s.active = true
		m.Severity = layer.Severity
		if m.State == Idle {
			m.Remaining = BoundsFor(m.Severity).Duration(Idle, s.rng)
		}
	}

	var started bool
	m.Remaining -= vmath.Clamp(dt, 0, parameter.MaxTickDelta)
	// One transition per tick so a Flash is always observed
	if m.Remaining <= 0 {
		next := Transitions[m.State]
		m.Remaining += BoundsFor(m.Severity).Duration(next, s.rng)
		if m.Remaining <= 0 {
			m.Remaining = 1
		}
		m.State = next

		switch next {
		case Charging:
			m.Bolt = s.generateBolt(m.Bolt[:0])
			s.boltStale = false
		case Flash:
			started = true
		case Idle:
			m.Bolt = m.Bolt[:0]
		}
	}

	h := Hints{Severity: m.Severity}
	switch m.State {
	case Charging, Flash:
		if s.boltStale {
			m.Bolt = s.generateBolt(m.Bolt[:0])
			s.boltStale = false
		}
		h.Bolt = m.Bolt
		h.Charging = m.State == Charging
		if m.State == Flash {
			h.Flash = true
			h.Intensity = BoundsFor(m.Severity).Intensity
			h.FlashStarted = started
		}
	}
	return h
}

func findLightning(effects []scene.LayerSpec) (scene.LayerSpec, bool) {
	for _, l := range effects {
		if l.Kind == scene.KindEffect && l.Effect == scene.EffectLightning {
			return l, true
		}
	}
	return scene.LayerSpec{}, false
}

// generateBolt random-walks a jagged path from the top toward the lower third, with occasional forks
func (s *Scheduler) generateBolt(buf []Point) []Point {
	if s.width < 3 || s.height < 3 {
		return buf
	}
	bottom := s.height * 2 / 3
	col := s.rng.IntRange(s.width/6, s.width*5/6)

	branchRow, branchCol := -1, 0
	for row := 0; row <= bottom && len(buf) < parameter.BoltMaxSegments; row++ {
		col = vmath.ClampInt(col+s.rng.IntRange(-1, 1), 0, s.width-1)
		buf = append(buf, Point{Row: row, Col: col})
		if branchRow < 0 && row > 1 && s.rng.Chance(parameter.BoltBranchOdds) {
			branchRow, branchCol = row, col
		}
	}

	if branchRow >= 0 {
		dir := 1
		if s.rng.Chance(0.5) {
			dir = -1
		}
		col := branchCol
		for row := branchRow + 1; row <= min(branchRow+bottom/3, bottom) && len(buf) < parameter.BoltMaxSegments; row++ {
			col += dir
			if col < 0 || col >= s.width {
				break
			}
			buf = append(buf, Point{Row: row, Col: col})
		}
	}
	return buf
}
