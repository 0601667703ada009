package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/scene"
	"github.com/lixenwraith/weathr/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveNoise
)

// oscillator generates raw audio waves; noise draws from a seeded generator
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a finite oscillator stream
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, seed uint64) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(seed),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = vmath.Frac(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// lowpass is a one-pole filter that turns white noise into rumble
type lowpass struct {
	streamer beep.Streamer
	alpha    float64
	prev     [2]float64
}

// NewLowpass filters s with the given cutoff frequency
func NewLowpass(s beep.Streamer, cutoffHz float64, rate beep.SampleRate) beep.Streamer {
	dt := 1 / float64(rate)
	rc := 1 / (2 * math.Pi * cutoffHz)
	return &lowpass{streamer: s, alpha: dt / (rc + dt)}
}

func (l *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			l.prev[c] += l.alpha * (samples[i][c] - l.prev[c])
			samples[i][c] = l.prev[c]
		}
	}
	return n, ok
}

func (l *lowpass) Err() error { return l.streamer.Err() }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// ThunderVolume returns the peak gain for a storm severity
func ThunderVolume(sev scene.Severity) float64 {
	if sev == scene.SeveritySevere {
		return parameter.ThunderSevereVolume
	}
	return parameter.ThunderVolume
}

// NewThunder synthesizes one thunder clap: filtered noise over a low rumble, shaped by an envelope
func NewThunder(sev scene.Severity, rate beep.SampleRate, seed uint64) beep.Streamer {
	d := parameter.ThunderDuration

	crack := NewLowpass(NewOscillator(0, d, WaveNoise, rate, seed), parameter.ThunderCutoffHz, rate)
	rumble := NewOscillator(parameter.ThunderRumbleHz, d, WaveSine, rate, seed)
	mixed := beep.Mix(
		newVolume(crack, parameter.ThunderCrackGain),
		newVolume(rumble, parameter.ThunderRumbleGain),
	)

	shaped := NewEnvelope(mixed, d, parameter.ThunderAttack, parameter.ThunderRelease, rate)
	return newVolume(shaped, ThunderVolume(sev))
}
