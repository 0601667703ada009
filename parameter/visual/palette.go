package visual

import (
	"github.com/lixenwraith/weathr/terminal"
)

// Particle and sprite colors
var (
	RgbRain         = terminal.RGB{R: 100, G: 149, B: 237}
	RgbDrizzle      = terminal.RGB{R: 150, G: 180, B: 220}
	RgbFreezingRain = terminal.RGB{R: 170, G: 220, B: 255}
	RgbStormRain    = terminal.RGB{R: 70, G: 110, B: 200}
	RgbSnow         = terminal.RGB{R: 240, G: 245, B: 255}
	RgbHail         = terminal.RGB{R: 210, G: 230, B: 240}
	RgbLeaf         = terminal.RGB{R: 205, G: 120, B: 40}
	RgbCloud        = terminal.RGB{R: 170, G: 170, B: 180}
	RgbCloudDark    = terminal.RGB{R: 110, G: 110, B: 120}
	RgbFog          = terminal.RGB{R: 140, G: 140, B: 140}
	RgbBird         = terminal.RGB{R: 60, G: 60, B: 60}
	RgbAirplane     = terminal.RGB{R: 220, G: 220, B: 230}
)

// Celestial colors
var (
	RgbSun     = terminal.RGB{R: 255, G: 215, B: 0}
	RgbSunDim  = terminal.RGB{R: 200, G: 180, B: 90}
	RgbMoon    = terminal.RGB{R: 230, G: 230, B: 210}
	RgbStar    = terminal.RGB{R: 255, G: 255, B: 200}
	RgbFlash   = terminal.RGB{R: 235, G: 235, B: 255}
	RgbBolt    = terminal.RGB{R: 255, G: 255, B: 160}
	RgbBoltDim = terminal.RGB{R: 140, G: 140, B: 110}
)

// HUD colors
var (
	RgbHUD         = terminal.RGB{R: 0, G: 205, B: 205}
	RgbAttribution = terminal.RGB{R: 110, G: 110, B: 110}
	RgbOffline     = terminal.RGB{R: 230, G: 120, B: 60}
)

// Sky gradient stops per day segment, ordered top row to horizon
var (
	SkyNight = []terminal.RGB{{R: 4, G: 6, B: 20}, {R: 12, G: 16, B: 40}, {R: 22, G: 26, B: 58}}
	SkyDawn  = []terminal.RGB{{R: 40, G: 50, B: 110}, {R: 170, G: 110, B: 130}, {R: 240, G: 160, B: 90}}
	SkyDay   = []terminal.RGB{{R: 40, G: 100, B: 190}, {R: 90, G: 150, B: 220}, {R: 160, G: 200, B: 240}}
	SkyDusk  = []terminal.RGB{{R: 30, G: 30, B: 80}, {R: 150, G: 70, B: 100}, {R: 230, G: 110, B: 60}}
)

// RgbOvercastTint is blended into the sky in proportion to a condition's cloud darkness
var RgbOvercastTint = terminal.RGB{R: 70, G: 72, B: 78}

// Ground, house and their particles
var (
	RgbGround     = terminal.RGB{R: 34, G: 85, B: 34}
	RgbGroundSnow = terminal.RGB{R: 200, G: 205, B: 215}
	RgbGrass      = terminal.RGB{R: 90, G: 160, B: 70}
	RgbHouse      = terminal.RGB{R: 180, G: 140, B: 100}
	RgbWindowLit  = terminal.RGB{R: 255, G: 200, B: 90}
	RgbSmoke      = terminal.RGB{R: 150, G: 150, B: 155}
)

// FireflyColors by increasing glow, matching FireflyGlyphs
var FireflyColors = []terminal.RGB{
	{R: 150, G: 200, B: 80},
	{R: 200, G: 255, B: 100},
	{R: 255, G: 255, B: 0},
}
