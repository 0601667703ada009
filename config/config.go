// Package config loads the TOML configuration, merges .env secrets and applies command-line overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/terminal"
	"github.com/lixenwraith/weathr/weather"
)

// Environment keys read from the process and .env
const (
	EnvAPIKey   = "WEATHR_API_KEY"
	EnvProvider = "WEATHR_PROVIDER"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

var ErrConflictingUnits = errors.New("--imperial and --metric are mutually exclusive")

var validate = validator.New()

// Config is the full runtime configuration
type Config struct {
	HideHUD  bool           `toml:"hide_hud"`
	Location LocationConfig `toml:"location"`
	Units    UnitsConfig    `toml:"units"`
	Provider ProviderConfig `toml:"provider"`
	Display  DisplayConfig  `toml:"display"`
	Audio    AudioConfig    `toml:"audio"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type LocationConfig struct {
	Latitude  float64 `toml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `toml:"longitude" validate:"gte=-180,lte=180"`
	Auto      bool    `toml:"auto"`
	Hide      bool    `toml:"hide"`
}

type UnitsConfig struct {
	Temperature   string `toml:"temperature" validate:"oneof=celsius fahrenheit"`
	WindSpeed     string `toml:"wind_speed" validate:"oneof=kmh ms mph kn"`
	Precipitation string `toml:"precipitation" validate:"oneof=mm inch"`
}

type ProviderConfig struct {
	Name           string `toml:"name" validate:"oneof=open_meteo openmeteo openweathermap open_weather_map weatherapi weather_api"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url" validate:"omitempty,url"`
	RefreshMinutes int    `toml:"refresh_minutes" validate:"gte=1"`
}

type DisplayConfig struct {
	Color   string `toml:"color" validate:"oneof=auto truecolor 256 none"`
	Backend string `toml:"backend" validate:"oneof=tcell ansi"`
	Leaves  bool   `toml:"leaves"`
}

type AudioConfig struct {
	Silent bool `toml:"silent"`
}

type MetricsConfig struct {
	// Addr enables the /metrics listener when non-empty
	Addr string `toml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Location: LocationConfig{
			Latitude:  parameter.DefaultLatitude,
			Longitude: parameter.DefaultLongitude,
		},
		Units: UnitsConfig{
			Temperature:   string(weather.Celsius),
			WindSpeed:     string(weather.Kmh),
			Precipitation: string(weather.Millimeter),
		},
		Provider: ProviderConfig{
			Name:           weather.ProviderOpenMeteo,
			RefreshMinutes: int(parameter.RefreshInterval / time.Minute),
		},
		Display: DisplayConfig{
			Color:   "auto",
			Backend: terminal.BackendTcell,
		},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "weathr", "config.toml"), nil
}

// Load reads path over the defaults, merges environment overrides and validates
// A missing file is not an error; envFiles default to DefaultEnvFile
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	if err := cfg.applyEnv(envFiles); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv merges .env values; the process environment wins over files
func (c *Config) applyEnv(files []string) error {
	merged := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			merged[k] = v
		}
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return merged[key]
	}

	if v := lookup(EnvAPIKey); v != "" {
		c.Provider.APIKey = v
	}
	if v := lookup(EnvProvider); v != "" {
		c.Provider.Name = v
	}
	return nil
}

func (c *Config) normalize() {
	c.Provider.Name = strings.ToLower(strings.TrimSpace(c.Provider.Name))
	c.Display.Color = strings.ToLower(c.Display.Color)
	c.Display.Backend = strings.ToLower(c.Display.Backend)
	if c.Display.Color == "" {
		c.Display.Color = "auto"
	}
	if c.Display.Backend == "" {
		c.Display.Backend = terminal.BackendTcell
	}
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s: must satisfy %s", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s (got %v)", msg, fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Flags are the command-line overrides
type Flags struct {
	AutoLocation bool
	HideLocation bool
	HideHUD      bool
	Imperial     bool
	Metric       bool
	Silent       bool
	Leaves       bool
	Color        string
	Backend      string
	MetricsAddr  string
}

// ApplyFlags overlays set flags onto the configuration and revalidates
func (c *Config) ApplyFlags(f Flags) error {
	if f.Imperial && f.Metric {
		return ErrConflictingUnits
	}
	if f.AutoLocation {
		c.Location.Auto = true
	}
	if f.HideLocation {
		c.Location.Hide = true
	}
	if f.HideHUD {
		c.HideHUD = true
	}
	if f.Silent {
		c.Audio.Silent = true
	}
	if f.Leaves {
		c.Display.Leaves = true
	}
	switch {
	case f.Imperial:
		c.setUnits(weather.ImperialUnits())
	case f.Metric:
		c.setUnits(weather.MetricUnits())
	}
	if f.Color != "" {
		c.Display.Color = f.Color
	}
	if f.Backend != "" {
		c.Display.Backend = f.Backend
	}
	if f.MetricsAddr != "" {
		c.Metrics.Addr = f.MetricsAddr
	}
	c.normalize()
	return c.Validate()
}

func (c *Config) setUnits(u weather.Units) {
	c.Units = UnitsConfig{
		Temperature:   string(u.Temperature),
		WindSpeed:     string(u.Wind),
		Precipitation: string(u.Precipitation),
	}
}

// WeatherUnits returns the display units
func (c *Config) WeatherUnits() weather.Units {
	return weather.Units{
		Temperature:   weather.TemperatureUnit(c.Units.Temperature),
		Wind:          weather.WindUnit(c.Units.WindSpeed),
		Precipitation: weather.PrecipitationUnit(c.Units.Precipitation),
	}
}

// WeatherLocation returns the configured coordinates
func (c *Config) WeatherLocation() weather.Location {
	return weather.Location{Latitude: c.Location.Latitude, Longitude: c.Location.Longitude}
}

// ProviderSettings returns the provider factory input
func (c *Config) ProviderSettings() weather.ProviderConfig {
	return weather.ProviderConfig{
		Name:    c.Provider.Name,
		APIKey:  c.Provider.APIKey,
		BaseURL: c.Provider.BaseURL,
	}
}

// RefreshInterval returns the poll period
func (c *Config) RefreshInterval() time.Duration {
	return max(time.Duration(c.Provider.RefreshMinutes)*time.Minute, parameter.MinRefreshInterval)
}

// ColorMode resolves the display color setting; ok is false for auto
func (c *Config) ColorMode() (mode terminal.ColorMode, ok bool) {
	mode, ok, _ = terminal.ParseColorMode(c.Display.Color)
	return mode, ok
}
