package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/weathr/celestial"
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
	"github.com/lixenwraith/weathr/weather"
)

var grid80x24 = Size{Width: 80, Height: 24}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestCompose_EveryConditionFixedOrder(t *testing.T) {
	comp := &Composer{Leaves: true}
	for _, cond := range weather.Conditions() {
		for _, night := range []bool{false, true} {
			layers := comp.Compose(cond, night, 0, grid80x24)
			require.NotEmpty(t, layers, "%s night=%v", cond, night)

			celestials, precips := 0, 0
			for i, l := range layers {
				if i > 0 {
					assert.LessOrEqual(t, layers[i-1].Kind, l.Kind, "%s night=%v: order", cond, night)
				}
				switch l.Kind {
				case KindCelestial:
					celestials++
				case KindPrecipitation:
					precips++
				}
			}
			assert.Equal(t, KindSky, layers[0].Kind)
			assert.Equal(t, 1, celestials, "%s night=%v", cond, night)
			assert.LessOrEqual(t, precips, 1, "%s night=%v", cond, night)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	comp := &Composer{}
	for _, cond := range weather.Conditions() {
		assert.Equal(t, comp.Compose(cond, false, 0, grid80x24), comp.Compose(cond, false, 0, grid80x24))
	}
}

func TestCompose_NightSwapsBodyKeepsPrecipitation(t *testing.T) {
	comp := &Composer{}
	for _, cond := range weather.Conditions() {
		day := comp.Compose(cond, false, 0, grid80x24)
		night := comp.Compose(cond, true, 0, grid80x24)

		assert.Equal(t, celestial.Sun, find(day, KindCelestial).Body)
		assert.Equal(t, celestial.Moon, find(night, KindCelestial).Body)
		assert.Greater(t, find(night, KindSky).Darkness, find(day, KindSky).Darkness)
		assert.Equal(t, find(day, KindPrecipitation), find(night, KindPrecipitation), cond.String())
	}
}

func TestCompose_UnknownConditionIsClear(t *testing.T) {
	comp := &Composer{}
	assert.Equal(t, comp.Compose(weather.Clear, false, 0, grid80x24), comp.Compose(weather.Condition(250), false, 0, grid80x24))
}

func TestCompose_MalformedGrid(t *testing.T) {
	comp := &Composer{}
	layers := comp.Compose(weather.Rain, false, 0, Size{Width: -5, Height: 0})
	require.NotEmpty(t, layers)
	assert.NotNil(t, find(layers, KindPrecipitation))
	for _, l := range layers {
		assert.NotEqual(t, KindSprite, l.Kind, "no sprite band on a 1x1 grid")
	}
}

func TestCompose_LeavesOnlyWhenEnabledAndClear(t *testing.T) {
	plain := &Composer{}
	leafy := &Composer{Leaves: true}

	assert.Nil(t, find(plain.Compose(weather.Clear, false, 0, grid80x24), KindPrecipitation))

	l := find(leafy.Compose(weather.PartlyCloudy, false, 0, grid80x24), KindPrecipitation)
	require.NotNil(t, l)
	assert.Equal(t, ParticleLeaf, l.Particle)

	assert.Nil(t, find(leafy.Compose(weather.Cloudy, false, 0, grid80x24), KindPrecipitation))
	assert.Equal(t, ParticleRain, find(leafy.Compose(weather.Rain, false, 0, grid80x24), KindPrecipitation).Particle)
}

func TestCompose_Sprites(t *testing.T) {
	comp := &Composer{}
	assert.True(t, hasParticle(comp.Compose(weather.Clear, false, 0, grid80x24), ParticleBird))
	assert.False(t, hasParticle(comp.Compose(weather.Clear, true, 0, grid80x24), ParticleBird))
	assert.True(t, hasParticle(comp.Compose(weather.PartlyCloudy, true, 0, grid80x24), ParticleAirplane))
	assert.True(t, hasParticle(comp.Compose(weather.Overcast, false, 0, grid80x24), ParticleCloud))
	assert.True(t, hasParticle(comp.Compose(weather.Fog, false, 0, grid80x24), ParticleFog))
}

// Scenario A
func TestCompose_RainDay(t *testing.T) {
	layers := (&Composer{}).Compose(weather.Rain, false, 0, grid80x24)

	assert.NotNil(t, find(layers, KindSky))
	body := find(layers, KindCelestial)
	require.NotNil(t, body)
	assert.Equal(t, celestial.Sun, body.Body)

	rain := find(layers, KindPrecipitation)
	require.NotNil(t, rain)
	assert.Equal(t, ParticleRain, rain.Particle)
	assert.Greater(t, rain.Motion.DRow, 0.0)
	assert.Less(t, math.Abs(rain.Motion.DCol), rain.Motion.DRow/4, "near vertical")
	assert.Nil(t, find(layers, KindEffect))
}

// Scenario B composition half; the flash half lives in the effect package
func TestCompose_HailStormNight(t *testing.T) {
	layers := (&Composer{}).Compose(weather.ThunderstormHail, true, 0, grid80x24)

	assert.Equal(t, celestial.Moon, find(layers, KindCelestial).Body)
	assert.Equal(t, ParticleHail, find(layers, KindPrecipitation).Particle)

	fx := find(layers, KindEffect)
	require.NotNil(t, fx)
	assert.Equal(t, EffectLightning, fx.Effect)
	assert.Equal(t, SeveritySevere, fx.Severity)

	plain := find((&Composer{}).Compose(weather.Thunderstorm, true, 0, grid80x24), KindEffect)
	assert.Equal(t, SeverityNormal, plain.Severity)
}

func TestModulate(t *testing.T) {
	layers := (&Composer{}).Compose(weather.Rain, false, 0, grid80x24)
	base := find(layers, KindPrecipitation).Density

	low := find(Modulate(layers, 0, 0, 0), KindPrecipitation)
	high := find(Modulate(layers, 1, 0, 0), KindPrecipitation)
	over := find(Modulate(layers, 7, 0, 0), KindPrecipitation)

	assert.InDelta(t, base*parameter.IntensityFloor, low.Density, 1e-12)
	assert.InDelta(t, base, high.Density, 1e-12)
	assert.Equal(t, high.Density, over.Density, "intensity is clamped")
	assert.Equal(t, base, find(layers, KindPrecipitation).Density, "input not mutated")

	westerly := find(Modulate(layers, 1, 60, 270), KindPrecipitation)
	assert.InDelta(t, parameter.WindMaxDrift, westerly.Motion.DCol, 1e-9)

	calm := find(Modulate(layers, 1, 0, 270), KindPrecipitation)
	assert.Zero(t, calm.Motion.DCol)
}

func TestIntensityScaleMonotonic(t *testing.T) {
	prev := IntensityScale(0)
	for i := 1; i <= 100; i++ {
		cur := IntensityScale(float64(i) / 100)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.LessOrEqual(t, prev, 1.0)
}

func find(layers []LayerSpec, kind Kind) *LayerSpec {
	for i := range layers {
		if layers[i].Kind == kind {
			return &layers[i]
		}
	}
	return nil
}

func hasParticle(layers []LayerSpec, p ParticleKind) bool {
	for _, l := range layers {
		if l.Particle == p {
			return true
		}
	}
	return false
}

func TestCompose_FirefliesOnWarmClearNights(t *testing.T) {
	comp := &Composer{}
	assert.True(t, hasParticle(comp.Compose(weather.Clear, true, 18, grid80x24), ParticleFirefly))
	assert.True(t, hasParticle(comp.Compose(weather.PartlyCloudy, true, 22, grid80x24), ParticleFirefly))

	assert.False(t, hasParticle(comp.Compose(weather.Clear, false, 25, grid80x24), ParticleFirefly), "day")
	assert.False(t, hasParticle(comp.Compose(weather.Clear, true, parameter.FireflyMinTempC, grid80x24), ParticleFirefly), "not above threshold")
	assert.False(t, hasParticle(comp.Compose(weather.Rain, true, 25, grid80x24), ParticleFirefly), "raining")
	assert.False(t, hasParticle(comp.Compose(weather.Cloudy, true, 25, grid80x24), ParticleFirefly), "cloudy")
}

func TestCompose_GroundAndChimneySmoke(t *testing.T) {
	comp := &Composer{}
	sunny := comp.Compose(weather.Clear, false, 0, grid80x24)
	require.NotNil(t, find(sunny, KindGround))
	assert.Equal(t, visual.RgbGround, find(sunny, KindGround).Color)
	assert.True(t, hasParticle(sunny, ParticleSmoke))

	assert.Equal(t, visual.RgbGroundSnow, find(comp.Compose(weather.Snow, false, 0, grid80x24), KindGround).Color)
	assert.False(t, hasParticle(comp.Compose(weather.Rain, false, 0, grid80x24), ParticleSmoke))
	assert.False(t, hasParticle(comp.Compose(weather.ThunderstormHail, false, 0, grid80x24), ParticleSmoke))

	small := comp.Compose(weather.Clear, false, 0, Size{Width: 80, Height: 10})
	assert.NotNil(t, find(small, KindGround))
	assert.False(t, hasParticle(small, ParticleSmoke), "no house on a short grid")
}

func TestModulate_SmokeFollowsWind(t *testing.T) {
	layers := (&Composer{}).Compose(weather.Clear, false, 0, grid80x24)
	var smoke *LayerSpec
	modulated := Modulate(layers, 0, 60, 270)
	for i := range modulated {
		if modulated[i].Particle == ParticleSmoke {
			smoke = &modulated[i]
		}
	}
	require.NotNil(t, smoke)
	assert.InDelta(t, parameter.WindMaxDrift*parameter.SmokeWindShare, smoke.Motion.DCol, 1e-9)
	assert.Less(t, smoke.Motion.DRow, 0.0, "smoke rises")
}

func TestHouseStandsOnHorizon(t *testing.T) {
	row, col, ok := HouseAt(grid80x24)
	require.True(t, ok)
	assert.Equal(t, Horizon(grid80x24), row+len(visual.HouseShape))
	assert.Equal(t, 40-visual.HouseWidth/2, col)

	crow, ccol, ok := ChimneyAt(grid80x24)
	require.True(t, ok)
	assert.Equal(t, row, crow)
	assert.Equal(t, '|', []rune(visual.HouseShape[0])[ccol-col])

	_, _, ok = HouseAt(Size{Width: visual.HouseWidth, Height: 40})
	assert.False(t, ok, "no margin")
}
