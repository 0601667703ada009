// Package hud formats the status line and provider attribution
package hud

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/weather"
)

// SimulatedAttribution replaces the provider name in simulate mode
const SimulatedAttribution = "Simulated"

// Overlay is the text drawn over the scene; Status is empty when the HUD is hidden
type Overlay struct {
	Status      string
	Offline     bool
	Attribution string
}

// Formatter builds overlays for one display configuration
type Formatter struct {
	Units        weather.Units
	Location     weather.Location
	HideLocation bool
	Provider     string
	Clock        clockwork.Clock
}

// NewFormatter returns a formatter with metric units and a real clock
func NewFormatter(provider string, loc weather.Location) *Formatter {
	return &Formatter{
		Units:    weather.MetricUnits(),
		Location: loc,
		Provider: provider,
		Clock:    clockwork.NewRealClock(),
	}
}

// Format builds the overlay for the current state; st is nil before the first reading
func (f *Formatter) Format(st *weather.State, loading bool, width int) Overlay {
	var o Overlay
	if st == nil || loading {
		o.Status = "Weather: Loading... " + string(f.spinner())
	} else {
		o.Status = f.status(st)
		o.Offline = st.Offline
	}

	provider := f.Provider
	if st != nil && st.Simulated {
		provider = SimulatedAttribution
	}
	o.Attribution = "Weather data by " + provider

	o.Status = Truncate(o.Status, width-parameter.HUDCol)
	o.Attribution = Truncate(o.Attribution, width-parameter.AttributionMargin)
	return o
}

func (f *Formatter) status(st *weather.State) string {
	u := f.Units
	var b strings.Builder
	fmt.Fprintf(&b, "Weather: %s | Temp: %.1f%s | Wind: %.1f%s | Precip: %.1f%s",
		st.Condition.Label(),
		weather.ConvertTemperature(st.Temperature, u.Temperature), u.Temperature.Symbol(),
		weather.ConvertWind(st.WindSpeed, u.Wind), u.Wind.Symbol(),
		weather.ConvertPrecipitation(st.Precipitation, u.Precipitation), u.Precipitation.Symbol(),
	)
	if st.Offline {
		b.WriteString(" | OFFLINE")
	}
	if !f.HideLocation {
		fmt.Fprintf(&b, " | Location: %.2f°N, %.2f°E", f.Location.Latitude, f.Location.Longitude)
	}
	b.WriteString(" | Press 'q' to quit")
	return b.String()
}

func (f *Formatter) spinner() rune {
	clk := f.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	frame := clk.Now().UnixNano() / int64(parameter.SpinnerInterval/time.Nanosecond)
	return parameter.SpinnerFrames[frame%int64(len(parameter.SpinnerFrames))]
}

// Truncate cuts s to at most width terminal columns
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

// Width is the display width of s in terminal columns
func Width(s string) int {
	return runewidth.StringWidth(s)
}
