package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/weathr/audio"
	"github.com/lixenwraith/weathr/config"
	"github.com/lixenwraith/weathr/engine"
	"github.com/lixenwraith/weathr/observability"
	"github.com/lixenwraith/weathr/terminal"
	"github.com/lixenwraith/weathr/weather"
)

const geolocateTimeout = 10 * time.Second

type options struct {
	simulate   string
	night      bool
	list       bool
	debug      bool
	seed       uint64
	configPath string
	flags      config.Flags
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.simulate, "simulate", "", "Simulate a weather condition instead of fetching live data")
	fs.StringVar(&o.simulate, "s", "", "Shorthand for --simulate")
	fs.BoolVar(&o.night, "night", false, "Show the night sky")
	fs.BoolVar(&o.night, "n", false, "Shorthand for --night")
	fs.BoolVar(&o.flags.Leaves, "leaves", false, "Show falling leaves")
	fs.BoolVar(&o.flags.Leaves, "l", false, "Shorthand for --leaves")
	fs.BoolVar(&o.list, "list", false, "List simulatable weather conditions and exit")
	fs.BoolVar(&o.flags.AutoLocation, "auto-location", false, "Detect location from the public IP address")
	fs.BoolVar(&o.flags.HideLocation, "hide-location", false, "Hide coordinates in the status line")
	fs.BoolVar(&o.flags.HideHUD, "hide-hud", false, "Start with the status line hidden")
	fs.BoolVar(&o.flags.Imperial, "imperial", false, "Use °F, mph and inches")
	fs.BoolVar(&o.flags.Metric, "metric", false, "Use °C, km/h and millimetres")
	fs.BoolVar(&o.flags.Silent, "silent", false, "Disable thunder audio")
	fs.StringVar(&o.flags.Color, "color", "", "Color mode: auto, truecolor, 256, none")
	fs.StringVar(&o.flags.Backend, "backend", "", "Terminal backend: tcell, ansi")
	fs.StringVar(&o.flags.MetricsAddr, "metrics-addr", "", "Serve /metrics and /healthz on this address")
	fs.Uint64Var(&o.seed, "seed", 0, "Random seed for reproducible animation")
	fs.BoolVar(&o.debug, "debug", false, "Write debug logs to logs/weathr.log")
	fs.StringVar(&o.configPath, "config", "", "Config file path (default: user config dir)")
	err := fs.Parse(args)
	return o, err
}

func main() {
	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mWEATHR CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts.list {
		printConditions(os.Stdout)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "weathr: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logFile, logger := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := loadConfig(opts.configPath, logger)
	if err := cfg.ApplyFlags(opts.flags); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineCfg := engine.Config{
		HideHUD:      cfg.HideHUD,
		Leaves:       cfg.Display.Leaves,
		Seed:         opts.seed,
		HideLocation: cfg.Location.Hide,
		Units:        cfg.WeatherUnits(),
		Logger:       logger,
	}
	if opts.night {
		night := true
		engineCfg.NightOverride = &night
	}
	if opts.simulate != "" {
		cond := resolveSimulation(opts.simulate, os.Stderr)
		engineCfg.ConditionOverride = &cond
		engineCfg.ProviderName = "Simulated"
	}

	mode, ok := cfg.ColorMode()
	if !ok {
		mode = terminal.DetectColorMode()
	}
	engineCfg.ColorEnabled = mode.Enabled()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)
	engineCfg.Observer = metrics
	if cfg.Metrics.Addr != "" {
		observability.NewServer(cfg.Metrics.Addr, reg, logger).Start(ctx)
	}

	var slot *weather.Slot
	if engineCfg.ConditionOverride == nil {
		loc := cfg.WeatherLocation()
		if cfg.Location.Auto {
			loc = geolocate(ctx, loc, logger)
		}
		engineCfg.Location = loc

		provider := newProvider(cfg, logger)
		engineCfg.ProviderName = provider.Name()

		slot = weather.NewSlot()
		poller := weather.NewPoller(weather.PollerConfig{
			Provider: provider,
			Location: loc,
			Slot:     slot,
			Interval: cfg.RefreshInterval(),
			Seed:     opts.seed,
			Logger:   logger,
			Observer: metrics,
		})
		if err := poller.Start(ctx); err != nil {
			return fmt.Errorf("start weather poller: %w", err)
		}
		defer poller.Stop()
	}

	screen, err := terminal.New(cfg.Display.Backend, mode)
	if err != nil {
		return err
	}

	player := audio.New(cfg.Audio.Silent, opts.seed, logger)
	defer player.Close()
	engineCfg.Audio = player

	logger.Info("starting", "backend", cfg.Display.Backend, "color", mode.String(), "simulate", opts.simulate)
	return engine.New(screen, slot, engineCfg).Run(ctx)
}

// loadConfig falls back to defaults on any error so a bad file never blocks the display
func loadConfig(path string, logger *slog.Logger) *config.Config {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Warn("no config directory", "error", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "weathr: %v; using defaults\n", err)
		logger.Warn("config load failed", "path", path, "error", err)
		return config.Default()
	}
	return cfg
}

// resolveSimulation parses a condition name, suggesting the nearest match for typos
func resolveSimulation(name string, stderr io.Writer) weather.Condition {
	if c, ok := weather.ParseCondition(name); ok {
		return c
	}
	fmt.Fprintf(stderr, "weathr: unknown condition %q", name)
	if s := weather.Suggest(name); s != "" {
		fmt.Fprintf(stderr, " (did you mean %q?)", s)
	}
	fmt.Fprintf(stderr, "; showing %s\n", weather.Clear)
	return weather.Clear
}

func geolocate(ctx context.Context, fallback weather.Location, logger *slog.Logger) weather.Location {
	ctx, cancel := context.WithTimeout(ctx, geolocateTimeout)
	defer cancel()
	loc, err := weather.NewGeolocator(weather.DefaultLocationCachePath()).Locate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "weathr: auto-location failed: %v; using configured location\n", err)
		logger.Warn("geolocation failed", "error", err)
		return fallback
	}
	logger.Info("location detected", "lat", loc.Latitude, "lon", loc.Longitude)
	return loc
}

func newProvider(cfg *config.Config, logger *slog.Logger) weather.Provider {
	settings := cfg.ProviderSettings()
	p, err := weather.NewProvider(settings)
	if err == nil {
		return p
	}
	fmt.Fprintf(os.Stderr, "weathr: %v; falling back to Open-Meteo\n", err)
	logger.Warn("provider unavailable, using open_meteo", "provider", settings.Name, "error", err)
	p, err = weather.NewProvider(weather.ProviderConfig{Name: weather.ProviderOpenMeteo})
	if err != nil {
		// Open-Meteo needs no key; failure here is a programming error
		panic(errors.Join(errors.New("open_meteo provider"), err))
	}
	return p
}

func printConditions(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, c := range weather.Conditions() {
		fmt.Fprintf(tw, "%s\t%s\n", c, c.Label())
	}
	tw.Flush()
}
