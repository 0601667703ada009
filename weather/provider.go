package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/lixenwraith/weathr/parameter"
)

// Provider names accepted in configuration
const (
	ProviderOpenMeteo      = "open_meteo"
	ProviderOpenWeatherMap = "openweathermap"
	ProviderWeatherAPI     = "weatherapi"
)

var (
	ErrNoAPIKey        = errors.New("provider requires an api key")
	ErrCircuitOpen     = errors.New("circuit breaker open")
	ErrBadLocation     = errors.New("invalid location")
	ErrUnknownProvider = errors.New("unknown weather provider")

	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
)

// Provider fetches a current reading for a location
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (State, error)
}

// ProviderConfig selects and parameterizes a Provider
type ProviderConfig struct {
	Name   string
	APIKey string

	// BaseURL overrides the provider endpoint, empty uses the public one
	BaseURL string
	Client  *http.Client
	Retry   RetryConfig
}

// RetryConfig controls exponential backoff of a single fetch
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetry returns the production retry settings
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxRetries:      parameter.FetchMaxRetries,
		InitialInterval: parameter.FetchInitialBackoff,
		MaxInterval:     parameter.FetchMaxBackoff,
	}
}

// NewProvider builds the provider named in cfg
func NewProvider(cfg ProviderConfig) (Provider, error) {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: parameter.FetchTimeout}
	}
	if cfg.Retry.InitialInterval <= 0 {
		cfg.Retry = DefaultRetry()
	}

	switch strings.ToLower(cfg.Name) {
	case "", ProviderOpenMeteo, "openmeteo":
		return newOpenMeteo(cfg), nil
	case ProviderOpenWeatherMap, "open_weather_map":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", ProviderOpenWeatherMap, ErrNoAPIKey)
		}
		return newOpenWeatherMap(cfg), nil
	case ProviderWeatherAPI, "weather_api":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", ProviderWeatherAPI, ErrNoAPIKey)
		}
		return newWeatherAPI(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s, %s, %s)", ErrUnknownProvider, cfg.Name,
			ProviderOpenMeteo, ProviderOpenWeatherMap, ProviderWeatherAPI)
	}
}

func validateLocation(loc Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: %.4f,%.4f", ErrBadLocation, loc.Latitude, loc.Longitude)
	}
	return nil
}

// resilientDoer executes requests through a circuit breaker with exponential retry
type resilientDoer struct {
	client  *http.Client
	retry   RetryConfig
	breaker *gobreaker.CircuitBreaker
}

func newResilientDoer(name string, client *http.Client, retry RetryConfig) *resilientDoer {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: parameter.BreakerMaxRequests,
		Interval:    parameter.BreakerInterval,
		Timeout:     parameter.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= parameter.BreakerTripFailures
		},
	})
	return &resilientDoer{client: client, retry: retry, breaker: cb}
}

// do returns a 2xx response; the caller closes the body
func (d *resilientDoer) do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.retry.InitialInterval
	b.MaxInterval = d.retry.MaxInterval
	b.MaxElapsedTime = 0

	var resp *http.Response
	op := func() error {
		req, err := buildRequest()
		if err != nil {
			return backoff.Permanent(err)
		}
		req = req.WithContext(ctx)

		result, err := d.breaker.Execute(func() (interface{}, error) {
			r, execErr := d.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			switch {
			case r.StatusCode == http.StatusTooManyRequests:
				r.Body.Close()
				return nil, errRateLimited
			case r.StatusCode >= 500:
				r.Body.Close()
				return nil, fmt.Errorf("%w: %d", errServerError, r.StatusCode)
			case r.StatusCode < 200 || r.StatusCode >= 300:
				r.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, r.StatusCode)
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrCircuitOpen, err))
			}
			// Client errors other than rate limiting will not succeed on retry
			if errors.Is(err, errUnexpected) {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = result.(*http.Response)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, d.retry.MaxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return resp, nil
}
