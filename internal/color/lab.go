package color

// CIE constants for the Lab <-> XYZ transfer.
const (
	labEpsilon = 0.008856
	labKappa   = 903.3
)

// D65 reference white (2° observer).
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// LabToRGB converts CIE L*a*b* (L in [0,100], a and b roughly [-128,127])
// to sRGB through CIE XYZ relative to the D65 white point.
func LabToRGB(l, a, b float64) RGB {
	fy := (l + 16) / 116
	fx := a/500 + fy
	fz := fy - b/200

	xr := labInverse(fx)
	zr := labInverse(fz)
	var yr float64
	if l > labKappa*labEpsilon {
		yr = fy * fy * fy
	} else {
		yr = l / labKappa
	}

	x := xr * whiteX
	y := yr * whiteY
	z := zr * whiteZ

	// XYZ -> linear sRGB
	lr := 3.2404542*x - 1.5371385*y - 0.4985314*z
	lg := -0.9692660*x + 1.8760108*y + 0.0415560*z
	lb := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return clampRGB(LinearToSRGB(lr), LinearToSRGB(lg), LinearToSRGB(lb))
}

// labInverse undoes the CIE companding for the x and z channels.
func labInverse(f float64) float64 {
	if f3 := f * f * f; f3 > labEpsilon {
		return f3
	}
	return (116*f - 16) / labKappa
}
