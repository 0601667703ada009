package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/scene"
)

func storm(sev scene.Severity) []scene.LayerSpec {
	return []scene.LayerSpec{{Kind: scene.KindEffect, Effect: scene.EffectLightning, Severity: sev}}
}

func TestTransitionTableCycles(t *testing.T) {
	s := Idle
	seen := map[State]bool{}
	for i := 0; i < int(stateCount); i++ {
		seen[s] = true
		s = Transitions[s]
	}
	assert.Equal(t, Idle, s)
	assert.Len(t, seen, int(stateCount))
}

func TestNoEffectsStaysIdle(t *testing.T) {
	s := NewScheduler(80, 24, 1)
	for i := 0; i < 1000; i++ {
		h := s.Tick(1, nil)
		require.False(t, h.Flash)
		require.Empty(t, h.Bolt)
	}
	assert.Equal(t, Idle, s.Lightning().State)
}

func TestFlashAndIntervalBounds(t *testing.T) {
	for _, sev := range []scene.Severity{scene.SeverityNormal, scene.SeveritySevere} {
		s := NewScheduler(80, 24, 99)
		b := BoundsFor(sev)
		effects := storm(sev)

		flashRun, sinceFlash, flashes := 0, 0, 0
		for i := 0; i < 20000; i++ {
			h := s.Tick(1, effects)
			if h.Flash {
				flashRun++
				require.LessOrEqual(t, flashRun, b.Flash, "flash outlasted its bound")
				require.Equal(t, b.Intensity, h.Intensity)
				require.NotEmpty(t, h.Bolt)
			} else {
				flashRun = 0
			}
			if h.FlashStarted {
				flashes++
				sinceFlash = 0
			} else {
				sinceFlash++
			}
			require.LessOrEqual(t, sinceFlash, b.MaxInterval+b.Charge+b.Flash+b.Cooldown, "gap between flashes too long")
		}
		assert.Positive(t, flashes)
	}
}

func TestSevereStormFlashesPromptly(t *testing.T) {
	s := NewScheduler(80, 24, 7)
	effects := storm(scene.SeveritySevere)
	limit := parameter.LightningSevereMaxInterval + parameter.LightningChargeTicks + 1

	flashed := false
	for i := 0; i < limit && !flashed; i++ {
		flashed = s.Tick(1, effects).Flash
	}
	assert.True(t, flashed)
}

func TestRemovingEffectResetsToIdle(t *testing.T) {
	s := NewScheduler(80, 24, 3)
	effects := storm(scene.SeveritySevere)
	for s.Lightning().State != Flash {
		s.Tick(1, effects)
	}
	h := s.Tick(1, nil)
	assert.False(t, h.Flash)
	assert.Equal(t, Idle, s.Lightning().State)
}

func TestBoltStaysInGridAfterResize(t *testing.T) {
	s := NewScheduler(120, 40, 5)
	effects := storm(scene.SeveritySevere)
	for s.Lightning().State != Charging {
		s.Tick(1, effects)
	}
	s.Resize(20, 6)
	h := s.Tick(0, effects)
	require.NotEmpty(t, h.Bolt)
	assert.LessOrEqual(t, len(h.Bolt), parameter.BoltMaxSegments)
	for _, p := range h.Bolt {
		assert.True(t, p.Row >= 0 && p.Row < 6 && p.Col >= 0 && p.Col < 20, "bolt point %v outside grid", p)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "flash", Flash.String())
	assert.Equal(t, "unknown", State(42).String())
}
