package parameter

import "time"

// Animation Loop Timing
const (
	// TickInterval is the fixed animation tick (~30 FPS, matches input poll rate)
	TickInterval = 33 * time.Millisecond

	// EventQueueSize is the buffered capacity of the terminal event channel
	EventQueueSize = 256

	// InputPollTimeout bounds a raw tty read; a lone ESC pending at expiry is a standalone key
	InputPollTimeout = 50 * time.Millisecond

	// InputShutdownGrace is how long Fini waits for the input goroutines
	InputShutdownGrace = 200 * time.Millisecond

	// MaxTickDelta caps dt after a stall (debugger, suspended process) so particles do not teleport
	MaxTickDelta = 3.0
)

// Grid Limits
const (
	// MinGridWidth and MinGridHeight are the fallback for malformed sizes
	MinGridWidth  = 1
	MinGridHeight = 1

	// DefaultGridWidth and DefaultGridHeight are reported when the tty size cannot be queried
	DefaultGridWidth  = 80
	DefaultGridHeight = 24
)

// DefaultSeed is used when no --seed is supplied and determinism is not required
const DefaultSeed uint64 = 0x9E3779B97F4A7C15
