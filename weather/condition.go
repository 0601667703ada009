package weather

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Condition is the closed set of weather categories that drive scene selection
type Condition uint8

const (
	Clear Condition = iota
	PartlyCloudy
	Cloudy
	Overcast
	Fog
	Drizzle
	Rain
	FreezingRain
	RainShowers
	Snow
	SnowGrains
	SnowShowers
	Thunderstorm
	ThunderstormHail

	// ConditionCount is the number of known conditions
	ConditionCount
)

var conditionNames = [ConditionCount]string{
	Clear:            "clear",
	PartlyCloudy:     "partly-cloudy",
	Cloudy:           "cloudy",
	Overcast:         "overcast",
	Fog:              "fog",
	Drizzle:          "drizzle",
	Rain:             "rain",
	FreezingRain:     "freezing-rain",
	RainShowers:      "rain-showers",
	Snow:             "snow",
	SnowGrains:       "snow-grains",
	SnowShowers:      "snow-showers",
	Thunderstorm:     "thunderstorm",
	ThunderstormHail: "thunderstorm-hail",
}

var conditionLabels = [ConditionCount]string{
	Clear:            "Clear",
	PartlyCloudy:     "Partly Cloudy",
	Cloudy:           "Cloudy",
	Overcast:         "Overcast",
	Fog:              "Fog",
	Drizzle:          "Drizzle",
	Rain:             "Rain",
	FreezingRain:     "Freezing Rain",
	RainShowers:      "Rain Showers",
	Snow:             "Snow",
	SnowGrains:       "Snow Grains",
	SnowShowers:      "Snow Showers",
	Thunderstorm:     "Thunderstorm",
	ThunderstormHail: "Thunderstorm with Hail",
}

// Conditions returns every known condition in enumeration order
func Conditions() []Condition {
	out := make([]Condition, ConditionCount)
	for i := range out {
		out[i] = Condition(i)
	}
	return out
}

// Valid reports whether c is a known condition
func (c Condition) Valid() bool {
	return c < ConditionCount
}

// String returns the kebab-case name, or clear for unknown values
func (c Condition) String() string {
	if !c.Valid() {
		return conditionNames[Clear]
	}
	return conditionNames[c]
}

// Label returns the human readable HUD text
func (c Condition) Label() string {
	if !c.Valid() {
		return conditionLabels[Clear]
	}
	return conditionLabels[c]
}

func (c Condition) IsRaining() bool {
	switch c {
	case Drizzle, Rain, RainShowers, FreezingRain, Thunderstorm, ThunderstormHail:
		return true
	}
	return false
}

func (c Condition) IsSnowing() bool {
	switch c {
	case Snow, SnowGrains, SnowShowers:
		return true
	}
	return false
}

func (c Condition) IsThunderstorm() bool {
	return c == Thunderstorm || c == ThunderstormHail
}

func (c Condition) IsCloudy() bool {
	switch c {
	case PartlyCloudy, Cloudy, Overcast:
		return true
	}
	return false
}

func (c Condition) IsFoggy() bool {
	return c == Fog
}

// ParseCondition accepts kebab-case, snake_case or spaced names case-insensitively
// Unknown input falls back to Clear with ok=false
func ParseCondition(s string) (c Condition, ok bool) {
	key := normalizeName(s)
	for i, name := range conditionNames {
		if name == key {
			return Condition(i), true
		}
	}
	return Clear, false
}

// Suggest returns the known condition name closest to s by edit distance
func Suggest(s string) string {
	key := normalizeName(s)
	best := conditionNames[Clear]
	bestDist := -1
	for _, name := range conditionNames {
		d := levenshtein.ComputeDistance(key, name)
		if bestDist < 0 || d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// FromWMO maps a WMO weather interpretation code onto a Condition
func FromWMO(code int) Condition {
	switch {
	case code == 0:
		return Clear
	case code == 1:
		return PartlyCloudy
	case code == 2:
		return Cloudy
	case code == 3:
		return Overcast
	case code == 45 || code == 48:
		return Fog
	case code >= 51 && code <= 55:
		return Drizzle
	case code == 56 || code == 57 || code == 66 || code == 67:
		return FreezingRain
	case code >= 61 && code <= 65:
		return Rain
	case code >= 71 && code <= 75:
		return Snow
	case code == 77:
		return SnowGrains
	case code >= 80 && code <= 82:
		return RainShowers
	case code == 85 || code == 86:
		return SnowShowers
	case code == 95:
		return Thunderstorm
	case code == 96 || code == 99:
		return ThunderstormHail
	default:
		return Clear
	}
}
