package common

import "math/rand/v2"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RandomFloat returns a value in [lo, hi).
func RandomFloat(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Float32()*(hi-lo)
}
