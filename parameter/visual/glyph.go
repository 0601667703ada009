package visual

// Precipitation glyph sets, picked per particle at spawn
var (
	RainGlyphs     = []rune{'|', '|', '\''}
	DrizzleGlyphs  = []rune{'.', ','}
	FreezingGlyphs = []rune{'|', ':'}
	StormGlyphs    = []rune{'|', '/', '|'}
	SnowGlyphs     = []rune{'*', '.', '+', '*'}
	GrainGlyphs    = []rune{'.', ':'}
	HailGlyphs     = []rune{'o', '°'}
	LeafGlyphs     = []rune{'%', '&', '~'}
	FogGlyphs      = []rune{'~', '-', '~', '='}
)

// Sky and bolt glyphs
var (
	StarGlyphs       = []rune{'.', '+', '*'}
	BoltDownLeft     = '/'
	BoltDownRight    = '\\'
	BoltDownStraight = '|'
)

// SunShape is the daytime body, drawn centered on the arc position
var SunShape = []string{
	`    \  |  /`,
	`     .-"-.`,
	`--- (  O  ) ---`,
	"     `-.-'",
	`    /  |  \`,
}

// MoonShape is the night body
var MoonShape = []string{
	`   _.._`,
	` .' .-'`,
	`/  /`,
	`|  |`,
	`\  '.___.;`,
	` '._  _.'`,
}

// CloudShapes are drifting cloud sprites; spaces are transparent
var CloudShapes = [][]string{
	{
		`   .--.`,
		` .-(    ).`,
		`(___.__)_)`,
	},
	{
		`      _  _`,
		`    ( ` + "`" + `   )_`,
		`   (    )    ` + "`" + `)`,
		`    \_  (___  )`,
	},
	{
		`   _  _`,
		`  ( ` + "`" + `   )_`,
		` (    )   ` + "`" + `)`,
		"  `--'",
	},
}

// BirdFrames alternate every BirdFlapTicks
var BirdFrames = [2][]string{
	{`\v/`},
	{`-v-`},
}

// AirplaneShape flies left to right
var AirplaneShape = []string{
	`  __|__`,
	`--o-(_)-o--`,
}

// HouseShape sits on the horizon centered horizontally; the chimney is HouseChimneyCol..+1 on row 0
var HouseShape = []string{
	`          ||    `,
	`   _______||__  `,
	`  /           \ `,
	` /_____________\`,
	`  | []  _  [] | `,
	`  |    | |    | `,
	`  |____|_|____| `,
}

const (
	HouseWidth      = 16
	HouseChimneyCol = 10
	HouseWindowRow  = 4
)

// HouseWindowCols are the window cells lit at night
var HouseWindowCols = []int{4, 5, 11, 12}

// GrassGlyphs dot the top ground row
var GrassGlyphs = []rune{',', '\'', '"', '.'}

// SmokeGlyphs thin out as a puff ages, densest first
var SmokeGlyphs = []rune{'O', 'o', '°', '.'}

// FireflyGlyphs by increasing glow
var FireflyGlyphs = []rune{'·', '.', '*'}
