package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/vmath"
)

// Observer receives poller outcomes, typically the metrics registry
type Observer interface {
	WeatherPublished(offline bool)
	FetchFailed(provider string)
}

type nopObserver struct{}

func (nopObserver) WeatherPublished(bool) {}
func (nopObserver) FetchFailed(string)    {}

// PollerConfig wires a Poller
type PollerConfig struct {
	Provider Provider
	Location Location
	Slot     *Slot
	Interval time.Duration
	Clock    clockwork.Clock
	Seed     uint64
	Logger   *slog.Logger
	Observer Observer
}

// Poller refreshes the slot from a provider on a fixed schedule
// Failures never reach the slot as errors: the last good reading is republished
// flagged Offline, or a generated offline reading when none ever succeeded
type Poller struct {
	provider Provider
	loc      Location
	slot     *Slot
	interval time.Duration
	clock    clockwork.Clock
	log      *slog.Logger
	observer Observer

	mu       sync.Mutex
	rng      *vmath.FastRand
	lastGood *State

	scheduler *gocron.Scheduler
}

// NewPoller creates a Poller; zero fields take defaults
func NewPoller(cfg PollerConfig) *Poller {
	if cfg.Interval < parameter.MinRefreshInterval {
		cfg.Interval = parameter.RefreshInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	return &Poller{
		provider: cfg.Provider,
		loc:      cfg.Location,
		slot:     cfg.Slot,
		interval: cfg.Interval,
		clock:    cfg.Clock,
		log:      cfg.Logger.With("component", "poller"),
		observer: cfg.Observer,
		rng:      vmath.NewFastRand(cfg.Seed),
	}
}

// Refresh performs one fetch and publishes the outcome
// The returned error is informational; the slot always receives a valid state
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, parameter.FetchTimeout)
	defer cancel()

	st, err := p.provider.Fetch(ctx, p.loc)
	if err == nil {
		st = st.Normalize()
		p.lastGood = &st
		p.slot.Publish(st)
		p.observer.WeatherPublished(false)
		p.log.Debug("weather updated", "provider", p.provider.Name(), "condition", st.Condition.String())
		return nil
	}

	p.observer.FetchFailed(p.provider.Name())
	p.log.Warn("weather fetch failed", "provider", p.provider.Name(), "error", err)

	var fallback State
	if p.lastGood != nil {
		fallback = *p.lastGood
		fallback.Offline = true
	} else {
		fallback = Offline(p.rng, p.clock.Now())
	}
	p.slot.Publish(fallback)
	p.observer.WeatherPublished(true)
	return fmt.Errorf("refresh %s: %w", p.provider.Name(), err)
}

// Start schedules Refresh every interval, running the first one immediately
// Jobs abandon in-flight requests once ctx is cancelled
func (p *Poller) Start(ctx context.Context) error {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	_, err := s.Every(p.interval).Do(func() {
		if ctx.Err() != nil {
			return
		}
		// Failures are logged and published as offline state inside Refresh
		_ = p.Refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule weather refresh: %w", err)
	}

	p.scheduler = s
	s.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop halts future refreshes
func (p *Poller) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}
