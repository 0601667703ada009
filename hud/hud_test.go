package hud

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/weather"
)

var berlin = weather.Location{Latitude: 52.52, Longitude: 13.41}

func newFormatter(clk clockwork.Clock) *Formatter {
	f := NewFormatter("Open-Meteo", berlin)
	f.Clock = clk
	return f
}

func TestStatusLineMatchesOriginalFormat(t *testing.T) {
	f := newFormatter(clockwork.NewFakeClock())
	st := weather.Simulated(weather.Rain, false, time.Now())

	o := f.Format(&st, false, 500)
	assert.Equal(t,
		"Weather: Rain | Temp: 20.0°C | Wind: 10.0km/h | Precip: 2.5mm | Location: 52.52°N, 13.41°E | Press 'q' to quit",
		o.Status)
	assert.Equal(t, "Weather data by Simulated", o.Attribution)
}

func TestOfflineMarkerAndHiddenLocation(t *testing.T) {
	f := newFormatter(clockwork.NewFakeClock())
	f.HideLocation = true
	st := weather.State{Condition: weather.Cloudy, Temperature: 5, Offline: true}

	o := f.Format(&st, false, 500)
	assert.True(t, o.Offline)
	assert.Equal(t, "Weather: Cloudy | Temp: 5.0°C | Wind: 0.0km/h | Precip: 0.0mm | OFFLINE | Press 'q' to quit", o.Status)
	assert.Equal(t, "Weather data by Open-Meteo", o.Attribution)
}

func TestImperialUnits(t *testing.T) {
	f := newFormatter(clockwork.NewFakeClock())
	f.Units = weather.ImperialUnits()
	f.HideLocation = true
	st := weather.State{Condition: weather.Clear, Temperature: 100, WindSpeed: 1.609344, Precipitation: 25.4}

	o := f.Format(&st, false, 500)
	assert.Contains(t, o.Status, "Temp: 212.0°F")
	assert.Contains(t, o.Status, "Wind: 1.0mph")
	assert.Contains(t, o.Status, "Precip: 1.0in")
}

func TestLoadingSpinnerAdvances(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Unix(0, 0))
	f := newFormatter(clk)

	seen := map[string]bool{}
	for i := 0; i < len(parameter.SpinnerFrames); i++ {
		o := f.Format(nil, true, 80)
		assert.Contains(t, o.Status, "Weather: Loading... ")
		seen[o.Status] = true
		clk.Advance(parameter.SpinnerInterval)
	}
	assert.Len(t, seen, len(parameter.SpinnerFrames))
}

func TestTruncationRespectsWidth(t *testing.T) {
	f := newFormatter(clockwork.NewFakeClock())
	st := weather.Simulated(weather.ThunderstormHail, true, time.Now())

	for _, w := range []int{0, 1, 10, 40, 79} {
		o := f.Format(&st, false, w)
		assert.LessOrEqual(t, Width(o.Status), max(w-parameter.HUDCol, 0))
		assert.LessOrEqual(t, Width(o.Attribution), max(w-parameter.AttributionMargin, 0))
	}
}

func TestTruncateWideRunes(t *testing.T) {
	assert.Equal(t, "雨", Truncate("雨雪", 3))
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Empty(t, Truncate("abc", -1))
}
