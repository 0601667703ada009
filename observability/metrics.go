// Package observability exposes runtime counters over Prometheus
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weathr"

// Metrics holds the Prometheus counters, histograms, and gauges for the animation and weather feed
type Metrics struct {
	Frames        prometheus.Counter
	CellsWritten  prometheus.Counter
	WriteErrors   prometheus.Counter
	FrameDuration prometheus.Histogram
	Particles     prometheus.Gauge
	Flashes       prometheus.Counter

	// Weather feed
	WeatherUpdates *prometheus.CounterVec // labels: offline={true,false}
	FetchFailures  *prometheus.CounterVec // labels: provider
}

// NewMetrics creates the metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Total rendered animation frames.",
		}),
		CellsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_written_total",
			Help:      "Total cells emitted to the terminal after diffing.",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Terminal write failures that forced a full redraw.",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent simulating, rendering and writing one frame.",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.033, 0.05, 0.1},
		}),
		Particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Live particles and sprites in the arena.",
		}),
		Flashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lightning_flashes_total",
			Help:      "Lightning flashes started.",
		}),
		WeatherUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_updates_total",
			Help:      "Weather states published to the animation loop.",
		}, []string{"offline"}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Failed provider fetches by provider.",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		m.Frames,
		m.CellsWritten,
		m.WriteErrors,
		m.FrameDuration,
		m.Particles,
		m.Flashes,
		m.WeatherUpdates,
		m.FetchFailures,
	)
	return m
}

// WeatherPublished implements weather.Observer
func (m *Metrics) WeatherPublished(offline bool) {
	m.WeatherUpdates.WithLabelValues(strconv.FormatBool(offline)).Inc()
}

// FetchFailed implements weather.Observer
func (m *Metrics) FetchFailed(provider string) {
	m.FetchFailures.WithLabelValues(provider).Inc()
}

// FrameRendered records one frame
func (m *Metrics) FrameRendered(cells, particles int, elapsed time.Duration) {
	m.Frames.Inc()
	m.CellsWritten.Add(float64(cells))
	m.Particles.Set(float64(particles))
	m.FrameDuration.Observe(elapsed.Seconds())
}

// WriteFailed records a terminal write error
func (m *Metrics) WriteFailed() {
	m.WriteErrors.Inc()
}

// FlashStarted records a lightning flash
func (m *Metrics) FlashStarted() {
	m.Flashes.Inc()
}
