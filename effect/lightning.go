// Package effect runs time-boxed scene effects as explicit state machines
package effect

import (
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/vmath"
)

// State is a lightning machine state
type State uint8

const (
	Idle State = iota
	Charging
	Flash
	Cooldown

	stateCount
)

var stateNames = [stateCount]string{"idle", "charging", "flash", "cooldown"}

func (s State) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return "unknown"
}

// Transitions is the lightning transition table; each edge fires when the state's remaining ticks reach zero
var Transitions = [stateCount]State{
	Idle:     Charging,
	Charging: Flash,
	Flash:    Cooldown,
	Cooldown: Idle,
}

// Bounds are the tick durations for one severity
type Bounds struct {
	MinInterval, MaxInterval int
	Charge, Flash, Cooldown  int
	Intensity                float64
}

// BoundsFor returns the configured timing for a severity
func BoundsFor(sev scene.Severity) Bounds {
	b := Bounds{
		MinInterval: parameter.LightningMinInterval,
		MaxInterval: parameter.LightningMaxInterval,
		Charge:      parameter.LightningChargeTicks,
		Flash:       parameter.LightningFlashTicks,
		Cooldown:    parameter.LightningCooldownTicks,
		Intensity:   parameter.LightningIntensity,
	}
	if sev == scene.SeveritySevere {
		b.MinInterval = parameter.LightningSevereMinInterval
		b.MaxInterval = parameter.LightningSevereMaxInterval
		b.Intensity = parameter.LightningSevereIntensity
	}
	return b
}

// Duration returns the ticks spent in s; Idle draws uniformly from the interval bounds
func (b Bounds) Duration(s State, rng *vmath.FastRand) float64 {
	switch s {
	case Idle:
		return float64(rng.IntRange(b.MinInterval, b.MaxInterval))
	case Charging:
		return float64(b.Charge)
	case Flash:
		return float64(b.Flash)
	default:
		return float64(b.Cooldown)
	}
}

// Point is a grid cell
type Point struct {
	Row, Col int
}

// Lightning is the single per-scene lightning machine
type Lightning struct {
	State     State
	Remaining float64
	Severity  scene.Severity
	Bolt      []Point
}
