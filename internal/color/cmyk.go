package color

// CMYKToRGB converts cyan, magenta, yellow and key (black), each in [0,1],
// with the naive multiplicative model. No ink profile is applied.
func CMYKToRGB(c, m, y, k float64) RGB {
	return clampRGB(
		(1-c)*(1-k),
		(1-m)*(1-k),
		(1-y)*(1-k),
	)
}
