package color

import "math"

// HSBToRGB converts hue, saturation and brightness, each in [0,1], to RGB
// using the standard six-sector hexcone model. Hue wraps, so 1.0 is red
// again.
func HSBToRGB(h, s, v float64) RGB {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	h = h - math.Floor(h)
	s = clamp01(s)
	v = clamp01(v)

	sector := math.Floor(h * 6)
	f := h*6 - sector
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch int(sector) % 6 {
	case 0:
		return clampRGB(v, t, p)
	case 1:
		return clampRGB(q, v, p)
	case 2:
		return clampRGB(p, v, t)
	case 3:
		return clampRGB(p, q, v)
	case 4:
		return clampRGB(t, p, v)
	default:
		return clampRGB(v, p, q)
	}
}
