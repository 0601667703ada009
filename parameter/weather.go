package parameter

import "time"

// Weather feed
const (
	// RefreshInterval is how often the poller refreshes live weather
	RefreshInterval = 5 * time.Minute

	// MinRefreshInterval guards configuration against provider abuse
	MinRefreshInterval = time.Minute

	// FetchTimeout bounds a single provider round trip
	FetchTimeout = 10 * time.Second

	// GeolocateTimeout bounds the IP geolocation lookup
	GeolocateTimeout = 5 * time.Second

	// PrecipitationSaturationMM is the mm/h reading mapped to intensity 1.0
	PrecipitationSaturationMM = 10.0
)

// Retry and circuit breaker
const (
	FetchMaxRetries       = 3
	FetchInitialBackoff   = 500 * time.Millisecond
	FetchMaxBackoff       = 5 * time.Second
	BreakerMaxRequests    = 5
	BreakerInterval       = time.Minute
	BreakerTimeout        = 2 * time.Minute
	BreakerTripFailures   = 3
	LocationCacheLifetime = 24 * time.Hour
)

// Default location (Berlin)
const (
	DefaultLatitude  = 52.52
	DefaultLongitude = 13.41
)
