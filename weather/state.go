package weather

import (
	"time"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/vmath"
)

// Location is a geographic coordinate pair in decimal degrees
type Location struct {
	Latitude  float64
	Longitude float64
	City      string
}

// State is an immutable weather snapshot in metric units
type State struct {
	Condition              Condition
	Temperature            float64 // °C
	ApparentTemperature    float64 // °C
	Humidity               float64 // %
	WindSpeed              float64 // km/h
	WindDirection          float64 // degrees, meteorological
	Precipitation          float64 // mm
	PrecipitationIntensity float64 // [0,1]
	IsNight                bool
	Offline                bool
	Simulated              bool
	Provider               string
	ObservedAt             time.Time
}

// Normalize returns a copy with negatives clamped and intensity derived from precipitation
func (s State) Normalize() State {
	if !s.Condition.Valid() {
		s.Condition = Clear
	}
	s.Humidity = vmath.Clamp(s.Humidity, 0, 100)
	s.WindSpeed = max(s.WindSpeed, 0)
	s.Precipitation = max(s.Precipitation, 0)
	s.PrecipitationIntensity = min(1, s.Precipitation/parameter.PrecipitationSaturationMM)
	return s
}

// Simulated builds the fixed reading shown in simulate mode
func Simulated(c Condition, night bool, now time.Time) State {
	s := State{
		Condition:           c,
		Temperature:         20.0,
		ApparentTemperature: 20.0,
		Humidity:            60.0,
		WindSpeed:           10.0,
		WindDirection:       225.0,
		IsNight:             night,
		Simulated:           true,
		Provider:            "Simulated",
		ObservedAt:          now,
	}
	if c.IsRaining() {
		s.Precipitation = 2.5
	}
	if c.IsThunderstorm() {
		s.WindSpeed = 45.0
	}
	return s.Normalize()
}

// offlineConditions are the mild conditions drawn when no reading has ever succeeded
var offlineConditions = [...]Condition{Clear, PartlyCloudy, Cloudy, Rain}

// Offline generates a plausible random reading flagged Offline
func Offline(rng *vmath.FastRand, now time.Time) State {
	c := offlineConditions[rng.Intn(len(offlineConditions))]
	hour := now.Hour()
	s := State{
		Condition:           c,
		Temperature:         rng.Range(10, 25),
		ApparentTemperature: rng.Range(10, 25),
		Humidity:            rng.Range(40, 80),
		WindSpeed:           rng.Range(5, 15),
		WindDirection:       rng.Range(0, 360),
		IsNight:             hour < 6 || hour >= 18,
		Offline:             true,
		Provider:            "Offline",
		ObservedAt:          now,
	}
	if c.IsRaining() {
		s.Precipitation = rng.Range(1, 5)
	}
	return s.Normalize()
}
