package vmath

import "math"

const (
	LUTSize = 1024
	LUTMask = LUTSize - 1
)

// SinLUT holds one full period of sine sampled at LUTSize points
var SinLUT [LUTSize]float64

func init() {
	for i := 0; i < LUTSize; i++ {
		SinLUT[i] = math.Sin(2.0 * math.Pi * float64(i) / LUTSize)
	}
}

// FastSin approximates sin(rad) by table lookup, used for per-particle sway
func FastSin(rad float64) float64 {
	idx := int(Frac(rad/(2*math.Pi))*LUTSize) & LUTMask
	return SinLUT[idx]
}
