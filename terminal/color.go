package terminal

import (
	"fmt"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
	ColorModeNone                       // No color output, glyphs only
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	case ColorModeNone:
		return "none"
	default:
		return "256"
	}
}

// Enabled reports whether the mode emits any color
func (m ColorMode) Enabled() bool {
	return m != ColorModeNone
}

// ParseColorMode resolves a --color flag value; "auto" returns ok=false so the caller detects
func ParseColorMode(s string) (mode ColorMode, ok bool, err error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorMode256, false, nil
	case "256":
		return ColorMode256, true, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, true, nil
	case "none", "off", "never", "no":
		return ColorModeNone, true, nil
	default:
		return ColorMode256, false, fmt.Errorf("invalid color mode %q", s)
	}
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)

	// Grayscale ramp 232-255 maps to luminance 8, 18, ..., 238
	gray := (r + g + b) / 3
	maxDiff := max(abs(r-gray), abs(g-gray), abs(b-gray))

	cr, cg, cb := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]
	cubeIdx := uint8(16 + 36*int(cr) + 6*int(cg) + int(cb))

	if maxDiff >= 10 {
		return cubeIdx
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	grayIdx := 232 + (gray-8)/10
	if grayIdx > 255 {
		grayIdx = 255
	}
	if grayIdx < 232 {
		grayIdx = 232
	}
	grayLevel := 8 + (grayIdx-232)*10
	grayDist := abs(r-grayLevel) + abs(g-grayLevel) + abs(b-grayLevel)
	cubeDist := abs(r-int(cubeValues[cr])) + abs(g-int(cubeValues[cg])) + abs(b-int(cubeValues[cb]))
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cubeIdx
}
