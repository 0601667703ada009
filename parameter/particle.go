package parameter

// Particle Arena
const (
	// MaxParticles bounds the arena; spawns beyond capacity are dropped
	MaxParticles = 2048
)

// Rain (cells per tick)
const (
	RainSpeed      = 1.1
	RainJitter     = 0.08
	RainDensity    = 0.10
	DrizzleDensity = 0.04
	StormDensity   = 0.18
	FreezingSpeed  = 0.9
)

// Snow
const (
	SnowSpeed         = 0.22
	SnowSwayAmplitude = 0.35
	SnowSwayRate      = 0.12 // Radians per tick
	SnowDensity       = 0.06
	SnowGrainsDensity = 0.03
	SnowShowerDensity = 0.05
)

// Hail
const (
	HailSpeed       = 1.4
	HailDensity     = 0.05
	HailBounceDamp  = 0.35 // Fraction of fall speed reflected upward on bounce
	HailBounceDrift = 0.25
)

// Leaves
const (
	LeafSpeed         = 0.12
	LeafDrift         = 0.25
	LeafSwayAmplitude = 0.5
	LeafDensity       = 0.008
)

// Sprites (density is max concurrent count per 100 columns)
const (
	CloudSpeed       = 0.06
	CloudDensity     = 5.0
	CloudOvercast    = 9.0
	FogSpeed         = 0.05
	FogDensity       = 60.0
	FogTTL           = 200
	BirdSpeed        = 0.25
	BirdDensity      = 1.5
	BirdFlapTicks    = 6
	AirplaneSpeed    = 0.35
	AirplaneDensity  = 1.0
	SpriteSpawnOdds  = 0.01 // Per-tick probability of launching a sprite when below target
	SpriteRowBandTop = 1    // Top row of the sprite band (below HUD)
)

// ParticleTTL is the upper bound on a precipitation particle's lifetime in ticks
const ParticleTTL = 600

// Wind
const (
	// WindFullDriftKmh is the wind speed at which lateral drift saturates
	WindFullDriftKmh = 60.0
	// WindMaxDrift is the saturated lateral drift in cells per tick
	WindMaxDrift = 0.5
)

// Precipitation intensity curve: density scale = Floor + Slope*intensity
const (
	IntensityFloor = 0.35
	IntensitySlope = 0.65
)
