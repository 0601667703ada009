package vmath

import "math"

// --- Scalar helpers ---

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates a→b by t (t not clamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Frac returns the fractional part in [0,1), wrapping negatives
func Frac(x float64) float64 {
	return x - math.Floor(x)
}

// --- Randomness ---

// FastRand is a xorshift64 generator; identical seeds yield identical sequences
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0,1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// IntRange returns a value in [lo, hi]
func (r *FastRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Chance returns true with probability p
func (r *FastRand) Chance(p float64) bool {
	return r.Float64() < p
}
