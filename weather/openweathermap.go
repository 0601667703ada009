package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const openWeatherMapURL = "https://api.openweathermap.org/data/2.5/weather"

type openWeatherMap struct {
	baseURL string
	apiKey  string
	doer    *resilientDoer
}

func newOpenWeatherMap(cfg ProviderConfig) *openWeatherMap {
	base := cfg.BaseURL
	if base == "" {
		base = openWeatherMapURL
	}
	return &openWeatherMap{
		baseURL: base,
		apiKey:  cfg.APIKey,
		doer:    newResilientDoer(ProviderOpenWeatherMap, cfg.Client, cfg.Retry),
	}
}

func (p *openWeatherMap) Name() string { return "OpenWeatherMap" }

func (p *openWeatherMap) Fetch(ctx context.Context, loc Location) (State, error) {
	if err := validateLocation(loc); err != nil {
		return State{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
		values.Set("lon", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := p.doer.do(ctx, buildRequest)
	if err != nil {
		return State{}, fmt.Errorf("openweathermap fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"` // m/s with units=metric
			Deg   float64 `json:"deg"`
		} `json:"wind"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Snow struct {
			OneHour float64 `json:"1h"`
		} `json:"snow"`
		Dt  int64 `json:"dt"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return State{}, fmt.Errorf("openweathermap decode: %w", err)
	}

	id := 800
	if len(payload.Weather) > 0 {
		id = payload.Weather[0].ID
	}

	return State{
		Condition:           conditionFromOWM(id, payload.Clouds.All),
		Temperature:         payload.Main.Temp,
		ApparentTemperature: payload.Main.FeelsLike,
		Humidity:            payload.Main.Humidity,
		WindSpeed:           payload.Wind.Speed * kmhPerMs,
		WindDirection:       payload.Wind.Deg,
		Precipitation:       payload.Rain.OneHour + payload.Snow.OneHour,
		IsNight:             payload.Dt < payload.Sys.Sunrise || payload.Dt >= payload.Sys.Sunset,
		Provider:            p.Name(),
		ObservedAt:          time.Unix(payload.Dt, 0),
	}.Normalize(), nil
}

// conditionFromOWM maps OpenWeatherMap condition ids
func conditionFromOWM(id int, cloudCover float64) Condition {
	switch {
	case id == 800:
		if cloudCover < 10 {
			return Clear
		}
		return PartlyCloudy
	case id == 801:
		return PartlyCloudy
	case id == 802 || id == 803:
		return Cloudy
	case id == 804:
		return Overcast
	case id >= 700 && id < 800:
		return Fog
	case id >= 300 && id < 400:
		return Drizzle
	case id == 511:
		return FreezingRain
	case id >= 520 && id <= 531:
		return RainShowers
	case id >= 500 && id < 600:
		return Rain
	case id >= 611 && id <= 613:
		return SnowGrains
	case id >= 615 && id <= 622:
		return SnowShowers
	case id >= 600 && id < 700:
		return Snow
	case id >= 200 && id < 300:
		return Thunderstorm
	default:
		return Clear
	}
}
