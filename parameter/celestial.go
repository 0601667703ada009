package parameter

// Day fraction landmarks in [0,1)
const (
	Sunrise       = 0.25 // 06:00
	Sunset        = 0.75 // 18:00
	NightFraction = 0.0  // Pinned by night override (midnight)
	NoonFraction  = 0.5  // Pinned by day override

	// BlendWidth is the half-width of the blend window around a segment boundary
	BlendWidth = 0.02

	// DawnSpan and DuskSpan are the fraction spans of the twilight segments
	DawnSpan = 0.04
	DuskSpan = 0.04
)

// Celestial arc geometry
const (
	// ArcTopRow is the apex row of the celestial arc
	ArcTopRow = 2
	// ArcHeightRatio is the arc depth as a fraction of grid height
	ArcHeightRatio = 0.35
)

// Sky
const (
	// StarDensity is the fraction of night sky cells holding a star
	StarDensity = 0.012
	// StarTwinklePeriod is the tick period of star glyph alternation
	StarTwinklePeriod = 45
	// NightDarkness is the extra darkening applied to the sky at night
	NightDarkness = 0.35
)
