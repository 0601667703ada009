// Package engine runs the fixed-tick animation loop that turns weather state into terminal frames
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/atomic"

	"github.com/lixenwraith/weathr/audio"
	"github.com/lixenwraith/weathr/celestial"
	"github.com/lixenwraith/weathr/effect"
	"github.com/lixenwraith/weathr/hud"
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/particle"
	"github.com/lixenwraith/weathr/render"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/terminal"
	"github.com/lixenwraith/weathr/weather"
)

// Observer receives per-frame statistics
type Observer interface {
	FrameRendered(cells, particles int, elapsed time.Duration)
	WriteFailed()
	FlashStarted()
}

type nopObserver struct{}

func (nopObserver) FrameRendered(int, int, time.Duration) {}
func (nopObserver) WriteFailed()                          {}
func (nopObserver) FlashStarted()                         {}

// Config controls what the engine shows
type Config struct {
	// ConditionOverride pins a simulated condition; the weather slot is ignored
	ConditionOverride *weather.Condition
	// NightOverride pins day or night regardless of the clock
	NightOverride *bool

	HideHUD      bool
	ColorEnabled bool
	Leaves       bool
	Seed         uint64
	HideLocation bool
	Units        weather.Units
	Location     weather.Location
	ProviderName string

	Clock    clockwork.Clock
	Logger   *slog.Logger
	Observer Observer
	Audio    audio.Player
}

// sceneKey captures every input that changes composed layers
type sceneKey struct {
	condition   weather.Condition
	night       bool
	grid        scene.Size
	intensity   float64
	wind        float64
	windDir     float64
	temperature float64
}

// Engine owns all scene state; only the loop goroutine touches it
type Engine struct {
	cfg    Config
	screen terminal.Screen
	slot   *weather.Slot
	clock  clockwork.Clock
	log    *slog.Logger
	obs    Observer
	player audio.Player

	composer  *scene.Composer
	particles *particle.System
	effects   *effect.Scheduler
	sky       *celestial.Clock
	renderer  *render.Renderer
	hud       *hud.Formatter

	stop atomic.Bool

	state   *weather.State
	version uint64

	layers     []scene.LayerSpec
	kinds      []scene.ParticleKind
	key        sceneKey
	keyOK      bool
	recomposed int
	phase      celestial.Phase
	grid       scene.Size
	resize     *scene.Size
	hideHUD    bool

	tick     uint64
	lastTick time.Time
}

// New wires an engine to a screen and a weather slot
func New(screen terminal.Screen, slot *weather.Slot, cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	if cfg.Audio == nil {
		cfg.Audio = audio.Silent{}
	}
	if cfg.Units == (weather.Units{}) {
		cfg.Units = weather.MetricUnits()
	}
	if cfg.Seed == 0 {
		cfg.Seed = parameter.DefaultSeed
	}

	w, h := screen.Size()
	grid := clampGrid(w, h)

	f := hud.NewFormatter(cfg.ProviderName, cfg.Location)
	f.Units = cfg.Units
	f.HideLocation = cfg.HideLocation
	f.Clock = cfg.Clock

	e := &Engine{
		cfg:       cfg,
		screen:    screen,
		slot:      slot,
		clock:     cfg.Clock,
		log:       cfg.Logger,
		obs:       cfg.Observer,
		player:    cfg.Audio,
		composer:  &scene.Composer{Leaves: cfg.Leaves},
		particles: particle.NewSystem(grid.Width, grid.Height, cfg.Seed),
		effects:   effect.NewScheduler(grid.Width, grid.Height, cfg.Seed^0xA5A5A5A5),
		sky:       celestial.NewClock(grid.Width, grid.Height),
		renderer:  render.NewRenderer(grid.Width, grid.Height, cfg.ColorEnabled),
		hud:       f,
		grid:      grid,
		hideHUD:   cfg.HideHUD,
	}

	if cfg.ConditionOverride != nil {
		night := cfg.NightOverride != nil && *cfg.NightOverride
		st := weather.Simulated(*cfg.ConditionOverride, night, e.clock.Now())
		e.state = &st
	}
	return e
}

func clampGrid(w, h int) scene.Size {
	return scene.Size{
		Width:  max(w, parameter.MinGridWidth),
		Height: max(h, parameter.MinGridHeight),
	}
}

// Stop asks the loop to exit after the current tick
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// Stopped reports whether the stop flag is set
func (e *Engine) Stopped() bool {
	return e.stop.Load()
}

// Run initializes the screen and ticks until stopped or ctx is cancelled
// The screen is restored on every exit path; panics are re-raised after restore
func (e *Engine) Run(ctx context.Context) (err error) {
	defer func() {
		r := recover()
		e.screen.Fini()
		if r != nil {
			panic(r)
		}
	}()

	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	w, h := e.screen.Size()
	e.applyResize(clampGrid(w, h))

	ticker := e.clock.NewTicker(parameter.TickInterval)
	defer ticker.Stop()

	e.log.Info("animation loop started", "width", e.grid.Width, "height", e.grid.Height)
	e.Step()
	for !e.stop.Load() {
		select {
		case <-ctx.Done():
			e.log.Info("animation loop cancelled")
			return nil
		case <-ticker.Chan():
			e.Step()
		}
	}
	e.log.Info("animation loop stopped")
	return nil
}

// Step performs exactly one tick
func (e *Engine) Step() {
	start := e.clock.Now()
	dt := 1.0
	if !e.lastTick.IsZero() {
		dt = float64(start.Sub(e.lastTick)) / float64(parameter.TickInterval)
	}
	e.lastTick = start
	e.tick++

	e.drainEvents()
	if e.resize != nil {
		e.applyResize(*e.resize)
		e.resize = nil
	}
	e.drainWeather()

	phase := e.phaseAt(start)
	e.phase = phase
	e.recompose(phase)

	view := e.particles.Tick(dt, e.layers)
	hints := e.effects.Tick(dt, e.layers)
	if hints.FlashStarted {
		e.obs.FlashStarted()
		e.player.Thunder(hints.Severity)
	}

	overlay := e.hud.Format(e.state, e.state == nil, e.grid.Width)
	full := e.renderer.FullRedrawPending()
	writes := e.renderer.Render(render.Scene{
		Layers:    e.layers,
		Phase:     phase,
		Particles: view,
		Effects:   hints,
		Tick:      e.tick,
		HideHUD:   e.hideHUD,
	}, overlay)

	if full {
		e.screen.Clear()
	}
	if err := e.screen.Write(writes); err != nil {
		e.renderer.Invalidate()
		e.obs.WriteFailed()
		e.log.Warn("terminal write failed, forcing full redraw", "error", err)
	}
	e.obs.FrameRendered(len(writes), len(view), e.clock.Since(start))
}

func (e *Engine) drainEvents() {
	events := e.screen.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				e.stop.Store(true)
				return
			}
			e.handleEvent(ev)
		default:
			return
		}
	}
}

func (e *Engine) handleEvent(ev terminal.Event) {
	switch ev.Type {
	case terminal.EventClosed:
		e.stop.Store(true)
	case terminal.EventResize:
		size := clampGrid(ev.Width, ev.Height)
		e.resize = &size
	case terminal.EventKey:
		if ev.IsInterrupt() {
			e.stop.Store(true)
			return
		}
		if ev.Key != terminal.KeyRune {
			return
		}
		switch ev.Rune {
		case parameter.KeyQuit, parameter.KeyQuitUpper:
			e.stop.Store(true)
		case parameter.KeyToggleHUD:
			e.hideHUD = !e.hideHUD
		}
	}
}

func (e *Engine) applyResize(size scene.Size) {
	if size == e.grid {
		return
	}
	e.grid = size
	e.particles.Resize(size.Width, size.Height)
	e.effects.Resize(size.Width, size.Height)
	e.sky.Resize(size.Width, size.Height)
	e.renderer.Resize(size.Width, size.Height)
	e.log.Debug("grid resized", "width", size.Width, "height", size.Height)
}

func (e *Engine) drainWeather() {
	if e.cfg.ConditionOverride != nil || e.slot == nil {
		return
	}
	st, v, fresh := e.slot.Latest(e.version)
	if !fresh || st == nil {
		return
	}
	e.state, e.version = st, v
	e.log.Debug("weather adopted", "condition", st.Condition, "offline", st.Offline, "version", v)
}

// phaseAt keeps the sky on the same side of the day as the composed layers
// Live weather keeps the wall-clock arc position, moved into the half matching IsNight
func (e *Engine) phaseAt(now time.Time) celestial.Phase {
	if o := e.phaseOverride(); o != nil {
		return e.sky.Phase(now, o)
	}
	if e.state != nil {
		return e.sky.PhaseAt(celestial.Align(celestial.Fraction(now), e.state.IsNight))
	}
	return e.sky.Phase(now, nil)
}

// phaseOverride pins the sky for simulations and explicit night
func (e *Engine) phaseOverride() *bool {
	if e.cfg.NightOverride != nil {
		return e.cfg.NightOverride
	}
	if e.cfg.ConditionOverride != nil {
		day := false
		return &day
	}
	return nil
}

func (e *Engine) recompose(phase celestial.Phase) {
	key := sceneKey{condition: weather.Clear, night: phase.Body == celestial.Moon, grid: e.grid}
	if st := e.state; st != nil {
		key.condition = st.Condition
		key.night = st.IsNight
		key.intensity = st.PrecipitationIntensity
		key.wind = st.WindSpeed
		key.windDir = st.WindDirection
		key.temperature = st.Temperature
	}
	if e.cfg.NightOverride != nil {
		key.night = *e.cfg.NightOverride
	}
	if e.keyOK && key == e.key {
		return
	}

	layers := e.composer.Compose(key.condition, key.night, key.temperature, key.grid)
	e.layers = scene.Modulate(layers, key.intensity, key.wind, key.windDir)
	e.key, e.keyOK = key, true
	e.recomposed++

	kinds := particleKinds(e.layers)
	if !slices.Equal(kinds, e.kinds) {
		e.particles.Reset()
		e.kinds = kinds
	}
	e.log.Debug("scene recomposed", "condition", key.condition, "night", key.night, "layers", len(e.layers))
}

func particleKinds(layers []scene.LayerSpec) []scene.ParticleKind {
	var kinds []scene.ParticleKind
	for _, l := range layers {
		if l.Particle != scene.ParticleNone {
			kinds = append(kinds, l.Particle)
		}
	}
	return kinds
}
