package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeolocator_LocateAndCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"loc":"48.8566,2.3522","city":"Paris"}`))
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	g := &Geolocator{
		Client:    srv.Client(),
		Endpoint:  srv.URL,
		CachePath: filepath.Join(t.TempDir(), "weathr", "location.json"),
		Clock:     clock,
	}

	loc, err := g.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 48.8566, loc.Latitude)
	assert.Equal(t, "Paris", loc.City)

	_, err = os.Stat(g.CachePath)
	require.NoError(t, err)

	loc, err = g.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.3522, loc.Longitude)
	assert.Equal(t, int32(1), calls.Load(), "second lookup served from cache")

	clock.Advance(25 * time.Hour)
	_, err = g.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "expired cache refetches")
}

func TestGeolocator_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"loc":"nowhere"}`))
	}))
	defer srv.Close()

	g := &Geolocator{Client: srv.Client(), Endpoint: srv.URL, Clock: clockwork.NewRealClock()}
	_, err := g.Locate(context.Background())
	assert.ErrorIs(t, err, ErrBadLocation)
}

func TestParseLatLon(t *testing.T) {
	loc, err := parseLatLon("52.52, 13.41")
	require.NoError(t, err)
	assert.Equal(t, 13.41, loc.Longitude)

	_, err = parseLatLon("91,0")
	assert.ErrorIs(t, err, ErrBadLocation)
}
