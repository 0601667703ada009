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

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// openMeteo needs no api key and is the default provider
type openMeteo struct {
	baseURL string
	doer    *resilientDoer
}

func newOpenMeteo(cfg ProviderConfig) *openMeteo {
	base := cfg.BaseURL
	if base == "" {
		base = openMeteoURL
	}
	return &openMeteo{
		baseURL: base,
		doer:    newResilientDoer(ProviderOpenMeteo, cfg.Client, cfg.Retry),
	}
}

func (p *openMeteo) Name() string { return "Open-Meteo" }

func (p *openMeteo) Fetch(ctx context.Context, loc Location) (State, error) {
	if err := validateLocation(loc); err != nil {
		return State{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
		values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,precipitation,weather_code,wind_speed_10m,wind_direction_10m")
		values.Set("temperature_unit", "celsius")
		values.Set("wind_speed_unit", "kmh")
		values.Set("precipitation_unit", "mm")
		values.Set("timezone", "auto")
		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := p.doer.do(ctx, buildRequest)
	if err != nil {
		return State{}, fmt.Errorf("open-meteo fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time                string  `json:"time"`
			Temperature         float64 `json:"temperature_2m"`
			Humidity            float64 `json:"relative_humidity_2m"`
			ApparentTemperature float64 `json:"apparent_temperature"`
			IsDay               int     `json:"is_day"`
			Precipitation       float64 `json:"precipitation"`
			WeatherCode         int     `json:"weather_code"`
			WindSpeed           float64 `json:"wind_speed_10m"`
			WindDirection       float64 `json:"wind_direction_10m"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return State{}, fmt.Errorf("open-meteo decode: %w", err)
	}

	cur := payload.Current
	observed, err := time.ParseInLocation("2006-01-02T15:04", cur.Time, time.Local)
	if err != nil {
		observed = time.Now()
	}

	return State{
		Condition:           FromWMO(cur.WeatherCode),
		Temperature:         cur.Temperature,
		ApparentTemperature: cur.ApparentTemperature,
		Humidity:            cur.Humidity,
		WindSpeed:           cur.WindSpeed,
		WindDirection:       cur.WindDirection,
		Precipitation:       cur.Precipitation,
		IsNight:             cur.IsDay == 0,
		Provider:            p.Name(),
		ObservedAt:          observed,
	}.Normalize(), nil
}
