package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Thunder synthesis
const (
	ThunderDuration     = 1800 * time.Millisecond
	ThunderAttack       = 40 * time.Millisecond
	ThunderRelease      = 1200 * time.Millisecond
	ThunderRumbleHz     = 38.0
	ThunderCutoffHz     = 180.0
	ThunderCrackGain    = 0.7
	ThunderRumbleGain   = 0.3
	ThunderVolume       = 0.55
	ThunderSevereVolume = 0.8
)
