package scene

import (
	"fmt"
	"math"

	"github.com/lixenwraith/weathr/celestial"
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/terminal"
	"github.com/lixenwraith/weathr/vmath"
	"github.com/lixenwraith/weathr/weather"
)

// spriteMinHeight is the smallest grid that still has a sprite band under the HUD
const spriteMinHeight = 6

// template is the static description of one condition
type template struct {
	defined  bool
	darkness float64
	dimBody  bool
	precip   *LayerSpec
	storm    bool
	severity Severity
	clouds   float64
	darkSky  bool
	fog      bool
	birds    bool
	airplane bool
}

func rainLayer(density, speed float64, glyphs []rune, color terminal.RGB) *LayerSpec {
	return &LayerSpec{
		Kind:     KindPrecipitation,
		Particle: ParticleRain,
		Density:  density,
		Glyphs:   glyphs,
		Color:    color,
		Motion:   Motion{DRow: speed},
		Jitter:   parameter.RainJitter,
	}
}

func snowLayer(density float64, glyphs []rune) *LayerSpec {
	return &LayerSpec{
		Kind:     KindPrecipitation,
		Particle: ParticleSnow,
		Density:  density,
		Glyphs:   glyphs,
		Color:    visual.RgbSnow,
		Motion:   Motion{DRow: parameter.SnowSpeed},
		Jitter:   parameter.SnowSwayAmplitude,
	}
}

// templates is indexed by weather.Condition
var templates = [weather.ConditionCount]template{
	weather.Clear: {
		defined: true, birds: true, airplane: true,
	},
	weather.PartlyCloudy: {
		defined: true, darkness: 0.05, clouds: parameter.CloudDensity / 2, birds: true, airplane: true,
	},
	weather.Cloudy: {
		defined: true, darkness: 0.2, clouds: parameter.CloudDensity, dimBody: true,
	},
	weather.Overcast: {
		defined: true, darkness: 0.35, clouds: parameter.CloudOvercast, darkSky: true, dimBody: true,
	},
	weather.Fog: {
		defined: true, darkness: 0.3, fog: true, dimBody: true,
	},
	weather.Drizzle: {
		defined: true, darkness: 0.2, clouds: parameter.CloudDensity, dimBody: true,
		precip: rainLayer(parameter.DrizzleDensity, parameter.RainSpeed*0.7, visual.DrizzleGlyphs, visual.RgbDrizzle),
	},
	weather.Rain: {
		defined: true, darkness: 0.3, clouds: parameter.CloudOvercast, darkSky: true, dimBody: true,
		precip: rainLayer(parameter.RainDensity, parameter.RainSpeed, visual.RainGlyphs, visual.RgbRain),
	},
	weather.FreezingRain: {
		defined: true, darkness: 0.3, clouds: parameter.CloudOvercast, darkSky: true, dimBody: true,
		precip: rainLayer(parameter.RainDensity, parameter.FreezingSpeed, visual.FreezingGlyphs, visual.RgbFreezingRain),
	},
	weather.RainShowers: {
		defined: true, darkness: 0.25, clouds: parameter.CloudDensity, darkSky: true, dimBody: true,
		precip: rainLayer(parameter.RainDensity, parameter.RainSpeed, visual.RainGlyphs, visual.RgbRain),
	},
	weather.Snow: {
		defined: true, darkness: 0.25, clouds: parameter.CloudOvercast, dimBody: true,
		precip: snowLayer(parameter.SnowDensity, visual.SnowGlyphs),
	},
	weather.SnowGrains: {
		defined: true, darkness: 0.2, clouds: parameter.CloudDensity, dimBody: true,
		precip: snowLayer(parameter.SnowGrainsDensity, visual.GrainGlyphs),
	},
	weather.SnowShowers: {
		defined: true, darkness: 0.25, clouds: parameter.CloudDensity, dimBody: true,
		precip: snowLayer(parameter.SnowShowerDensity, visual.SnowGlyphs),
	},
	weather.Thunderstorm: {
		defined: true, darkness: 0.5, clouds: parameter.CloudOvercast, darkSky: true, dimBody: true,
		precip:   rainLayer(parameter.StormDensity, parameter.RainSpeed, visual.StormGlyphs, visual.RgbStormRain),
		storm:    true,
		severity: SeverityNormal,
	},
	weather.ThunderstormHail: {
		defined: true, darkness: 0.55, clouds: parameter.CloudOvercast, darkSky: true, dimBody: true,
		precip: &LayerSpec{
			Kind:     KindPrecipitation,
			Particle: ParticleHail,
			Density:  parameter.HailDensity,
			Glyphs:   visual.HailGlyphs,
			Color:    visual.RgbHail,
			Motion:   Motion{DRow: parameter.HailSpeed},
			Jitter:   parameter.HailBounceDrift,
		},
		storm:    true,
		severity: SeveritySevere,
	},
}

// Composer selects layers from the condition table
type Composer struct {
	// Leaves adds falling leaves on clear and partly cloudy skies
	Leaves bool
}

// Validate reports conditions without a template
func Validate() error {
	for _, c := range weather.Conditions() {
		if !templates[c].defined {
			return fmt.Errorf("no scene template for condition %q", c)
		}
	}
	return nil
}

// Compose returns layers in paint order: sky, celestial, ground, precipitation, effects, sprites
// Unknown conditions compose as clear and sizes are clamped to 1x1
// tempC gates fireflies on warm clear nights
func (c *Composer) Compose(cond weather.Condition, isNight bool, tempC float64, grid Size) []LayerSpec {
	if !cond.Valid() {
		cond = weather.Clear
	}
	grid.Width = max(grid.Width, parameter.MinGridWidth)
	grid.Height = max(grid.Height, parameter.MinGridHeight)
	t := &templates[cond]

	layers := make([]LayerSpec, 0, 8)

	darkness := t.darkness
	if isNight {
		darkness += parameter.NightDarkness
	}
	layers = append(layers, LayerSpec{Kind: KindSky, Darkness: vmath.Clamp(darkness, 0, 1)})

	body := LayerSpec{Kind: KindCelestial, Body: celestial.Sun, Color: visual.RgbSun}
	if isNight {
		body.Body = celestial.Moon
		body.Color = visual.RgbMoon
	} else if t.dimBody {
		body.Color = visual.RgbSunDim
	}
	layers = append(layers, body)

	if grid.Height >= spriteMinHeight+parameter.GroundHeight {
		ground := LayerSpec{Kind: KindGround, Color: visual.RgbGround}
		if cond.IsSnowing() {
			ground.Color = visual.RgbGroundSnow
		}
		layers = append(layers, ground)
	}

	switch {
	case t.precip != nil:
		layers = append(layers, *t.precip)
	case c.Leaves && (cond == weather.Clear || cond == weather.PartlyCloudy):
		layers = append(layers, LayerSpec{
			Kind:     KindPrecipitation,
			Particle: ParticleLeaf,
			Density:  parameter.LeafDensity,
			Glyphs:   visual.LeafGlyphs,
			Color:    visual.RgbLeaf,
			Motion:   Motion{DRow: parameter.LeafSpeed, DCol: parameter.LeafDrift},
			Jitter:   parameter.LeafSwayAmplitude,
		})
	}

	if t.storm {
		layers = append(layers, LayerSpec{Kind: KindEffect, Effect: EffectLightning, Severity: t.severity})
	}

	if grid.Height < spriteMinHeight {
		return layers
	}
	if t.clouds > 0 {
		color := visual.RgbCloud
		if t.darkSky || isNight {
			color = visual.RgbCloudDark
		}
		layers = append(layers, sprite(ParticleCloud, t.clouds, parameter.CloudSpeed, color))
	}
	if t.fog {
		layers = append(layers, LayerSpec{
			Kind:     KindSprite,
			Particle: ParticleFog,
			Density:  parameter.FogDensity,
			Glyphs:   visual.FogGlyphs,
			Color:    visual.RgbFog,
			Motion:   Motion{DCol: parameter.FogSpeed},
		})
	}
	if t.birds && !isNight {
		layers = append(layers, sprite(ParticleBird, parameter.BirdDensity, parameter.BirdSpeed, visual.RgbBird))
	}
	if t.airplane {
		layers = append(layers, sprite(ParticleAirplane, parameter.AirplaneDensity, parameter.AirplaneSpeed, visual.RgbAirplane))
	}
	if _, _, ok := ChimneyAt(grid); ok && !cond.IsRaining() && !cond.IsThunderstorm() {
		layers = append(layers, LayerSpec{
			Kind:     KindSprite,
			Particle: ParticleSmoke,
			Density:  parameter.SmokeRate,
			Glyphs:   visual.SmokeGlyphs,
			Color:    visual.RgbSmoke,
			Motion:   Motion{DRow: -parameter.SmokeRise},
			Jitter:   parameter.SmokeSway,
		})
	}
	if isNight && tempC > parameter.FireflyMinTempC && (cond == weather.Clear || cond == weather.PartlyCloudy) {
		layers = append(layers, LayerSpec{
			Kind:     KindSprite,
			Particle: ParticleFirefly,
			Density:  parameter.FireflyDensity,
			Glyphs:   visual.FireflyGlyphs,
			Motion:   Motion{DRow: parameter.FireflyDriftRow, DCol: parameter.FireflyDriftCol},
		})
	}
	return layers
}

func sprite(kind ParticleKind, density, speed float64, color terminal.RGB) LayerSpec {
	return LayerSpec{
		Kind:     KindSprite,
		Particle: kind,
		Density:  density,
		Color:    color,
		Motion:   Motion{DCol: speed},
	}
}

// IntensityScale maps a precipitation intensity in [0,1] onto a density multiplier
// The curve is linear with a floor so a raining condition always shows rain
func IntensityScale(intensity float64) float64 {
	return parameter.IntensityFloor + parameter.IntensitySlope*vmath.Clamp(intensity, 0, 1)
}

// WindDrift returns lateral drift in cells per tick for a meteorological wind direction
// (degrees the wind blows from); wind from the west pushes particles right
func WindDrift(windKmh, windDirDeg float64) float64 {
	strength := math.Min(math.Max(windKmh, 0)/parameter.WindFullDriftKmh, 1)
	return -math.Sin(windDirDeg*math.Pi/180) * strength * parameter.WindMaxDrift
}

// Modulate returns a copy of layers with precipitation scaled by intensity and pushed by wind
func Modulate(layers []LayerSpec, intensity, windKmh, windDirDeg float64) []LayerSpec {
	out := make([]LayerSpec, len(layers))
	copy(out, layers)

	scale := IntensityScale(intensity)
	drift := WindDrift(windKmh, windDirDeg)
	for i := range out {
		switch out[i].Kind {
		case KindPrecipitation:
			out[i].Density *= scale
			out[i].Motion.DCol += drift
		case KindSprite:
			switch out[i].Particle {
			case ParticleCloud, ParticleFog:
				out[i].Motion.DCol += drift / 4
			case ParticleSmoke:
				out[i].Motion.DCol += drift * parameter.SmokeWindShare
			}
		}
	}
	return out
}
