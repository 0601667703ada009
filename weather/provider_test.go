package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = Location{Latitude: 52.52, Longitude: 13.41}

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func newTestProvider(t *testing.T, name, key string, h http.HandlerFunc) Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewProvider(ProviderConfig{
		Name:    name,
		APIKey:  key,
		BaseURL: srv.URL,
		Client:  srv.Client(),
		Retry:   fastRetry(),
	})
	require.NoError(t, err)
	return p
}

func TestOpenMeteo_Fetch(t *testing.T) {
	p := newTestProvider(t, ProviderOpenMeteo, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.5200", r.URL.Query().Get("latitude"))
		assert.Contains(t, r.URL.Query().Get("current"), "weather_code")
		w.Write([]byte(`{"current":{"time":"2024-06-01T12:00","temperature_2m":18.5,
			"relative_humidity_2m":70,"apparent_temperature":17,"is_day":0,"precipitation":5,
			"weather_code":99,"wind_speed_10m":30,"wind_direction_10m":270}}`))
	})

	st, err := p.Fetch(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, ThunderstormHail, st.Condition)
	assert.Equal(t, 18.5, st.Temperature)
	assert.Equal(t, 30.0, st.WindSpeed)
	assert.True(t, st.IsNight)
	assert.InDelta(t, 0.5, st.PrecipitationIntensity, 1e-9)
	assert.Equal(t, "Open-Meteo", st.Provider)
}

func TestOpenWeatherMap_Fetch(t *testing.T) {
	p := newTestProvider(t, ProviderOpenWeatherMap, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"weather":[{"id":501}],"main":{"temp":12,"feels_like":10,"humidity":90},
			"wind":{"speed":10,"deg":180},"clouds":{"all":100},"rain":{"1h":1.2},
			"dt":1000,"sys":{"sunrise":900,"sunset":1800}}`))
	})

	st, err := p.Fetch(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, Rain, st.Condition)
	assert.InDelta(t, 36.0, st.WindSpeed, 1e-9)
	assert.Equal(t, 1.2, st.Precipitation)
	assert.False(t, st.IsNight)
}

func TestWeatherAPI_Fetch(t *testing.T) {
	p := newTestProvider(t, ProviderWeatherAPI, "k", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.5200,13.4100", r.URL.Query().Get("q"))
		w.Write([]byte(`{"current":{"last_updated_epoch":1700000000,"temp_c":-2,"feelslike_c":-6,
			"is_day":1,"condition":{"code":1225},"wind_kph":15,"wind_degree":90,"precip_mm":0.4,"humidity":85}}`))
	})

	st, err := p.Fetch(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, Snow, st.Condition)
	assert.Equal(t, -2.0, st.Temperature)
	assert.Equal(t, time.Unix(1700000000, 0), st.ObservedAt)
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Name: ProviderOpenWeatherMap})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewProvider(ProviderConfig{Name: "weather_api"})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewProvider(ProviderConfig{Name: "darksky"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	p, err := NewProvider(ProviderConfig{})
	require.NoError(t, err)
	assert.Equal(t, "Open-Meteo", p.Name())
}

func TestFetch_BadLocation(t *testing.T) {
	p, err := NewProvider(ProviderConfig{})
	require.NoError(t, err)
	_, err = p.Fetch(context.Background(), Location{Latitude: 95})
	assert.ErrorIs(t, err, ErrBadLocation)
}

func TestResilientDoer_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, ProviderOpenMeteo, "", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"current":{"weather_code":0}}`))
	})

	st, err := p.Fetch(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, Clear, st.Condition)
	assert.Equal(t, int32(3), calls.Load())
}

func TestResilientDoer_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, ProviderOpenMeteo, "", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.Fetch(context.Background(), berlin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnexpected))
	assert.Equal(t, int32(1), calls.Load())
}

func TestResilientDoer_OpensCircuit(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, ProviderOpenMeteo, "", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Three consecutive failures trip the breaker during the first fetch's retries
	_, err := p.Fetch(context.Background(), berlin)
	require.Error(t, err)

	before := calls.Load()
	_, err = p.Fetch(context.Background(), berlin)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, calls.Load())
}
