// Package audio synthesizes thunder and plays it through the system speaker
package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/scene"
)

// Player plays weather sounds; implementations must not block the caller
type Player interface {
	Thunder(sev scene.Severity) bool
	Close()
}

// Silent discards every sound
type Silent struct{}

func (Silent) Thunder(scene.Severity) bool { return false }
func (Silent) Close()                      {}

// SpeakerPlayer mixes sounds into the beep speaker
type SpeakerPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	seed   uint64
	closed bool
}

// NewSpeakerPlayer initializes the speaker and starts the mixer
func NewSpeakerPlayer(seed uint64) (*SpeakerPlayer, error) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	p := &SpeakerPlayer{mixer: &beep.Mixer{}, rate: rate, seed: seed}
	speaker.Play(p.mixer)
	return p, nil
}

// Thunder queues one thunder clap
func (p *SpeakerPlayer) Thunder(sev scene.Severity) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.seed++
	s := NewThunder(sev, p.rate, p.seed)

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Close silences the mixer and releases the device
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// New returns a speaker player, or Silent when muted or no device is available
func New(silent bool, seed uint64, logger *slog.Logger) Player {
	if silent {
		return Silent{}
	}
	p, err := NewSpeakerPlayer(seed)
	if err != nil {
		logger.Warn("audio unavailable, continuing silent", "error", err)
		return Silent{}
	}
	return p
}
