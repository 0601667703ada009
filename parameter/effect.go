package parameter

// Lightning state machine timing (ticks)
const (
	// LightningChargeTicks is the pre-flash build-up (bolt drawn dim)
	LightningChargeTicks = 3

	// LightningFlashTicks is the duration of sky color override
	LightningFlashTicks = 4

	// LightningCooldownTicks separates consecutive flashes
	LightningCooldownTicks = 10
)

// Lightning idle interval bounds per storm severity (ticks)
const (
	LightningMinInterval       = 90
	LightningMaxInterval       = 300
	LightningSevereMinInterval = 30
	LightningSevereMaxInterval = 120
)

// Lightning flash intensity per severity (blend factor toward flash color)
const (
	LightningIntensity       = 0.75
	LightningSevereIntensity = 1.0
)

// Bolt geometry
const (
	BoltMaxSegments = 40
	BoltBranchOdds  = 0.15
)
