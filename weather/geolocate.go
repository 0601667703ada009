package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/weathr/parameter"
)

const ipinfoURL = "https://ipinfo.io/json"

// Geolocator resolves the current location from the public IP with a file cache
type Geolocator struct {
	Client    *http.Client
	Endpoint  string
	CachePath string // empty disables caching
	Clock     clockwork.Clock
}

type cachedLocation struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	City      string    `json:"city,omitempty"`
	CachedAt  time.Time `json:"cached_at"`
}

// DefaultLocationCachePath returns <user cache dir>/weathr/location.json
func DefaultLocationCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "weathr", "location.json")
}

// NewGeolocator creates a Geolocator against ipinfo.io
func NewGeolocator(cachePath string) *Geolocator {
	return &Geolocator{
		Client:    &http.Client{Timeout: parameter.GeolocateTimeout},
		Endpoint:  ipinfoURL,
		CachePath: cachePath,
		Clock:     clockwork.NewRealClock(),
	}
}

// Locate returns the cached location when fresh, otherwise queries the endpoint
func (g *Geolocator) Locate(ctx context.Context) (Location, error) {
	if loc, ok := g.loadCache(); ok {
		return loc, nil
	}

	ctx, cancel := context.WithTimeout(ctx, parameter.GeolocateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint, nil)
	if err != nil {
		return Location{}, fmt.Errorf("geolocate request: %w", err)
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geolocate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geolocate: %w: %d", errUnexpected, resp.StatusCode)
	}

	var info struct {
		Loc  string `json:"loc"`
		City string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Location{}, fmt.Errorf("geolocate decode: %w", err)
	}

	loc, err := parseLatLon(info.Loc)
	if err != nil {
		return Location{}, err
	}
	loc.City = info.City

	g.saveCache(loc)
	return loc, nil
}

func parseLatLon(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("%w: %q", ErrBadLocation, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: latitude: %v", ErrBadLocation, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: longitude: %v", ErrBadLocation, err)
	}
	loc := Location{Latitude: lat, Longitude: lon}
	if err := validateLocation(loc); err != nil {
		return Location{}, err
	}
	return loc, nil
}

func (g *Geolocator) loadCache() (Location, bool) {
	if g.CachePath == "" {
		return Location{}, false
	}
	data, err := os.ReadFile(g.CachePath)
	if err != nil {
		return Location{}, false
	}
	var c cachedLocation
	if err := json.Unmarshal(data, &c); err != nil {
		return Location{}, false
	}
	if g.Clock.Since(c.CachedAt) > parameter.LocationCacheLifetime {
		return Location{}, false
	}
	return Location{Latitude: c.Latitude, Longitude: c.Longitude, City: c.City}, true
}

// saveCache is best-effort; a failed write only costs a lookup next run
func (g *Geolocator) saveCache(loc Location) {
	if g.CachePath == "" {
		return
	}
	data, err := json.Marshal(cachedLocation{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		City:      loc.City,
		CachedAt:  g.Clock.Now(),
	})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(g.CachePath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return
	}
	os.WriteFile(g.CachePath, data, 0o644)
}
