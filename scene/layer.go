// Package scene turns a weather condition and time of day into an ordered set of visual layers
package scene

import (
	"github.com/lixenwraith/weathr/celestial"
	"github.com/lixenwraith/weathr/terminal"
)

// Kind is the compositing class of a layer; the declaration order is the paint order
type Kind uint8

const (
	KindSky Kind = iota
	KindCelestial
	KindGround
	KindPrecipitation
	KindEffect
	KindSprite
)

var kindNames = [...]string{"sky", "celestial", "ground", "precipitation", "effect", "sprite"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParticleKind selects motion rules in the particle system
type ParticleKind uint8

const (
	ParticleNone ParticleKind = iota
	ParticleRain
	ParticleSnow
	ParticleHail
	ParticleLeaf
	ParticleCloud
	ParticleBird
	ParticleAirplane
	ParticleFog
	ParticleSmoke
	ParticleFirefly
)

var particleNames = [...]string{"none", "rain", "snow", "hail", "leaf", "cloud", "bird", "airplane", "fog", "smoke", "firefly"}

func (p ParticleKind) String() string {
	if int(p) < len(particleNames) {
		return particleNames[p]
	}
	return "unknown"
}

// IsSprite reports particles painted above precipitation and the bolt
func (p ParticleKind) IsSprite() bool {
	return p >= ParticleCloud
}

// EffectKind selects an effect state machine
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectLightning
)

// Severity scales lightning frequency and brightness
type Severity uint8

const (
	SeverityNormal Severity = iota
	SeveritySevere
)

// Motion is a velocity in cells per tick
type Motion struct {
	DRow, DCol float64
}

// LayerSpec is declarative data for one visual layer
type LayerSpec struct {
	Kind     Kind
	Particle ParticleKind
	Effect   EffectKind

	// Density is particles per column per tick for precipitation,
	// and max concurrent sprites per 100 columns for sprites
	Density float64
	Glyphs  []rune
	Color   terminal.RGB
	Motion  Motion
	Jitter  float64

	// Darkness in [0,1] dims the sky gradient
	Darkness float64
	Body     celestial.Body
	Severity Severity
}

// Size is a grid dimension in cells
type Size struct {
	Width, Height int
}
