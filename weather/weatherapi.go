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

const weatherAPIURL = "https://api.weatherapi.com/v1/current.json"

type weatherAPI struct {
	baseURL string
	apiKey  string
	doer    *resilientDoer
}

func newWeatherAPI(cfg ProviderConfig) *weatherAPI {
	base := cfg.BaseURL
	if base == "" {
		base = weatherAPIURL
	}
	return &weatherAPI{
		baseURL: base,
		apiKey:  cfg.APIKey,
		doer:    newResilientDoer(ProviderWeatherAPI, cfg.Client, cfg.Retry),
	}
}

func (p *weatherAPI) Name() string { return "WeatherAPI.com" }

func (p *weatherAPI) Fetch(ctx context.Context, loc Location) (State, error) {
	if err := validateLocation(loc); err != nil {
		return State{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", strconv.FormatFloat(loc.Latitude, 'f', 4, 64)+","+strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
		values.Set("aqi", "no")
		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := p.doer.do(ctx, buildRequest)
	if err != nil {
		return State{}, fmt.Errorf("weatherapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			LastUpdatedEpoch int64   `json:"last_updated_epoch"`
			TempC            float64 `json:"temp_c"`
			FeelsLikeC       float64 `json:"feelslike_c"`
			IsDay            int     `json:"is_day"`
			Condition        struct {
				Code int `json:"code"`
			} `json:"condition"`
			WindKph    float64 `json:"wind_kph"`
			WindDegree float64 `json:"wind_degree"`
			PrecipMM   float64 `json:"precip_mm"`
			Humidity   float64 `json:"humidity"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return State{}, fmt.Errorf("weatherapi decode: %w", err)
	}

	cur := payload.Current
	observed := time.Now()
	if cur.LastUpdatedEpoch > 0 {
		observed = time.Unix(cur.LastUpdatedEpoch, 0)
	}

	return State{
		Condition:           conditionFromWeatherAPI(cur.Condition.Code),
		Temperature:         cur.TempC,
		ApparentTemperature: cur.FeelsLikeC,
		Humidity:            cur.Humidity,
		WindSpeed:           cur.WindKph,
		WindDirection:       cur.WindDegree,
		Precipitation:       cur.PrecipMM,
		IsNight:             cur.IsDay == 0,
		Provider:            p.Name(),
		ObservedAt:          observed,
	}.Normalize(), nil
}

// conditionFromWeatherAPI maps WeatherAPI.com condition codes
func conditionFromWeatherAPI(code int) Condition {
	switch code {
	case 1000:
		return Clear
	case 1003:
		return PartlyCloudy
	case 1006:
		return Cloudy
	case 1009:
		return Overcast
	case 1030, 1135, 1147:
		return Fog
	case 1063, 1150, 1153, 1168, 1171:
		return Drizzle
	case 1180, 1183, 1186, 1189, 1192, 1195:
		return Rain
	case 1198, 1201, 1204, 1207, 1237, 1261:
		return FreezingRain
	case 1066, 1210, 1213, 1216, 1219, 1222, 1225, 1255, 1258, 1282:
		return Snow
	case 1069, 1072, 1114, 1117, 1249, 1252:
		return SnowGrains
	case 1240, 1243, 1246:
		return RainShowers
	case 1279:
		return SnowShowers
	case 1087, 1273:
		return Thunderstorm
	case 1264, 1276:
		return ThunderstormHail
	default:
		return Clear
	}
}
