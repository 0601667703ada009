package parameter

// Ground and house
const (
	// GroundHeight is the number of ground rows at the bottom of the grid
	GroundHeight = 2
	// HouseMargin is the minimum free column count on each side of the house
	HouseMargin = 1
)

// Chimney smoke
const (
	SmokeRate      = 0.12 // Puffs per tick
	SmokeRise      = 0.10 // Cells per tick upward
	SmokeSway      = 0.12
	SmokeSwayRate  = 0.15
	SmokeTTL       = 45
	SmokeWindShare = 0.5 // Fraction of precipitation wind drift applied to smoke
)

// Fireflies
const (
	// FireflyMinTempC is the temperature a clear night must exceed to show fireflies
	FireflyMinTempC = 15.0
	// FireflyDensity is the target count per 100 columns (one per 15 columns)
	FireflyDensity   = 100.0 / 15.0
	FireflyMinCount  = 3
	FireflyDriftCol  = 0.15 // Max lateral speed, cells per tick
	FireflyDriftRow  = 0.10 // Max vertical speed, cells per tick
	FireflyTurnOdds  = 0.02 // Per-tick probability of a new heading
	FireflyGlowMin   = 0.10 // Glow phase advance range, radians per tick
	FireflyGlowMax   = 0.25
	FireflyLifetime  = 1e9
	FireflyBrightMin = 0.25 // Glow below this is dark
)
