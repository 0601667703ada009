package weather

import (
	"go.uber.org/atomic"
)

// Slot is a single-writer single-reader cell carrying the latest State
// The poller publishes; the animation loop polls without blocking
type Slot struct {
	state   atomic.Pointer[State]
	version atomic.Uint64
}

// NewSlot returns an empty slot at version 0
func NewSlot() *Slot {
	return &Slot{}
}

// Publish replaces the held state and bumps the version
func (s *Slot) Publish(st State) uint64 {
	s.state.Store(&st)
	return s.version.Inc()
}

// Latest returns the current state and version; fresh reports version > since
func (s *Slot) Latest(since uint64) (st *State, version uint64, fresh bool) {
	version = s.version.Load()
	if version <= since {
		return nil, version, false
	}
	return s.state.Load(), version, true
}
