package render

import (
	"github.com/lixenwraith/weathr/terminal"
	"github.com/lixenwraith/weathr/vmath"
)

// RGB is an alias to terminal.RGB so the renderer can share helpers
type RGB = terminal.RGB

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func Blend(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	return RGB{
		R: uint8(vmath.Lerp(float64(dst.R), float64(src.R), alpha)),
		G: uint8(vmath.Lerp(float64(dst.G), float64(src.G), alpha)),
		B: uint8(vmath.Lerp(float64(dst.B), float64(src.B), alpha)),
	}
}

// Darken scales all channels toward black by f in [0,1]
func Darken(c RGB, f float64) RGB {
	return Blend(c, terminal.RGBBlack, f)
}
