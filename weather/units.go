package weather

// TemperatureUnit selects the displayed temperature scale
type TemperatureUnit string

// WindUnit selects the displayed wind speed unit
type WindUnit string

// PrecipitationUnit selects the displayed precipitation unit
type PrecipitationUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"

	Kmh WindUnit = "kmh"
	Ms  WindUnit = "ms"
	Mph WindUnit = "mph"
	Kn  WindUnit = "kn"

	Millimeter PrecipitationUnit = "mm"
	Inch       PrecipitationUnit = "inch"
)

const (
	kmhPerMs  = 3.6
	kmhPerMph = 1.609344
	kmhPerKn  = 1.852
	mmPerInch = 25.4
)

// Units is the display unit configuration; canonical values are always metric
type Units struct {
	Temperature   TemperatureUnit
	Wind          WindUnit
	Precipitation PrecipitationUnit
}

// MetricUnits is the default display configuration
func MetricUnits() Units {
	return Units{Temperature: Celsius, Wind: Kmh, Precipitation: Millimeter}
}

// ImperialUnits mirrors the --imperial flag
func ImperialUnits() Units {
	return Units{Temperature: Fahrenheit, Wind: Mph, Precipitation: Inch}
}

// ConvertTemperature converts °C to the unit
func ConvertTemperature(c float64, u TemperatureUnit) float64 {
	if u == Fahrenheit {
		return c*9/5 + 32
	}
	return c
}

// RevertTemperature converts a value in the unit back to °C
func RevertTemperature(v float64, u TemperatureUnit) float64 {
	if u == Fahrenheit {
		return (v - 32) * 5 / 9
	}
	return v
}

// ConvertWind converts km/h to the unit
func ConvertWind(kmh float64, u WindUnit) float64 {
	switch u {
	case Ms:
		return kmh / kmhPerMs
	case Mph:
		return kmh / kmhPerMph
	case Kn:
		return kmh / kmhPerKn
	default:
		return kmh
	}
}

// RevertWind converts a value in the unit back to km/h
func RevertWind(v float64, u WindUnit) float64 {
	switch u {
	case Ms:
		return v * kmhPerMs
	case Mph:
		return v * kmhPerMph
	case Kn:
		return v * kmhPerKn
	default:
		return v
	}
}

// ConvertPrecipitation converts mm to the unit
func ConvertPrecipitation(mm float64, u PrecipitationUnit) float64 {
	if u == Inch {
		return mm / mmPerInch
	}
	return mm
}

// RevertPrecipitation converts a value in the unit back to mm
func RevertPrecipitation(v float64, u PrecipitationUnit) float64 {
	if u == Inch {
		return v * mmPerInch
	}
	return v
}

// Symbol returns the HUD suffix for the unit
func (u TemperatureUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (u WindUnit) Symbol() string {
	switch u {
	case Ms:
		return "m/s"
	case Mph:
		return "mph"
	case Kn:
		return "kn"
	default:
		return "km/h"
	}
}

func (u PrecipitationUnit) Symbol() string {
	if u == Inch {
		return "in"
	}
	return "mm"
}
