// Package color provides the colour space conversions used by the gradient
// codecs.
//
// Every converter is a pure function over float64 channels and clamps its
// result to [0, 1]. The returned RGB is gamma-encoded sRGB.
package color

import "math"

// RGB is a gamma-encoded sRGB triple with components in [0,1].
type RGB struct {
	R, G, B float64
}

// Gray returns an RGB with all three channels set to v.
func Gray(v float64) RGB {
	v = clamp01(v)
	return RGB{R: v, G: v, B: v}
}

// clamp01 clamps a value to [0, 1] range. NaN and infinities map to 0.
func clamp01(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clampRGB(r, g, b float64) RGB {
	return RGB{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}
