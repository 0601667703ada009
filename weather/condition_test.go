package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		in   string
		want Condition
		ok   bool
	}{
		{"rain", Rain, true},
		{"Thunderstorm-Hail", ThunderstormHail, true},
		{"thunderstorm_hail", ThunderstormHail, true},
		{"partly cloudy", PartlyCloudy, true},
		{"  SNOW  ", Snow, true},
		{"sandstorm", Clear, false},
		{"", Clear, false},
	}
	for _, tt := range tests {
		got, ok := ParseCondition(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestConditionNamesRoundTrip(t *testing.T) {
	for _, c := range Conditions() {
		got, ok := ParseCondition(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
		assert.NotEmpty(t, c.Label())
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "rain", Suggest("rian"))
	assert.Equal(t, "thunderstorm", Suggest("thunderstrom"))
	assert.Equal(t, "snow-grains", Suggest("snow_grain"))
}

func TestUnknownConditionFallsBackToClear(t *testing.T) {
	bad := Condition(200)
	assert.False(t, bad.Valid())
	assert.Equal(t, "clear", bad.String())
	assert.Equal(t, "Clear", bad.Label())
}

func TestPredicates(t *testing.T) {
	assert.True(t, ThunderstormHail.IsRaining())
	assert.True(t, ThunderstormHail.IsThunderstorm())
	assert.True(t, SnowGrains.IsSnowing())
	assert.False(t, Snow.IsRaining())
	assert.True(t, Overcast.IsCloudy())
	assert.True(t, Fog.IsFoggy())
	assert.Equal(t, "Thunderstorm with Hail", ThunderstormHail.Label())
}

func TestFromWMO(t *testing.T) {
	assert.Equal(t, Clear, FromWMO(0))
	assert.Equal(t, Overcast, FromWMO(3))
	assert.Equal(t, Fog, FromWMO(48))
	assert.Equal(t, FreezingRain, FromWMO(66))
	assert.Equal(t, SnowGrains, FromWMO(77))
	assert.Equal(t, RainShowers, FromWMO(81))
	assert.Equal(t, ThunderstormHail, FromWMO(99))
	assert.Equal(t, Clear, FromWMO(1234))
}

func TestProviderCodeMapping(t *testing.T) {
	assert.Equal(t, Clear, conditionFromOWM(800, 5))
	assert.Equal(t, PartlyCloudy, conditionFromOWM(800, 15))
	assert.Equal(t, Overcast, conditionFromOWM(804, 0))
	assert.Equal(t, Fog, conditionFromOWM(741, 0))
	assert.Equal(t, Drizzle, conditionFromOWM(300, 0))
	assert.Equal(t, Thunderstorm, conditionFromOWM(200, 0))

	assert.Equal(t, Clear, conditionFromWeatherAPI(1000))
	assert.Equal(t, FreezingRain, conditionFromWeatherAPI(1201))
	assert.Equal(t, ThunderstormHail, conditionFromWeatherAPI(1276))
}
