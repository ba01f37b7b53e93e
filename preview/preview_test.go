package preview

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/colorwav3/gradkit"
)

func redToBlue(name string) gradkit.Gradient {
	return gradkit.Gradient{
		Name: name,
		Stops: []gradkit.ColorStop{
			{Position: 0, Red: 1, Alpha: 1, Midpoint: 0.5},
			{Position: 1, Blue: 1, Alpha: 1, Midpoint: 0.5},
		},
	}
}

func near(got, want color.NRGBA, tol int) bool {
	d := func(a, b uint8) bool {
		diff := int(a) - int(b)
		return diff >= -tol && diff <= tol
	}
	return d(got.R, want.R) && d(got.G, want.G) && d(got.B, want.B) && d(got.A, want.A)
}

func TestRenderLayout(t *testing.T) {
	c := &gradkit.Collection{Gradients: []gradkit.Gradient{redToBlue("a"), redToBlue("b")}}

	tests := []struct {
		name       string
		opts       []Option
		wantW      int
		wantH      int
		swatchTopY int
	}{
		{
			"labels",
			nil,
			DefaultWidth + 2*padding,
			padding + 2*(DefaultSwatchHeight+padding+labelHeight),
			padding + labelHeight,
		},
		{
			"no labels",
			[]Option{WithLabels(false), WithWidth(100), WithSwatchHeight(10)},
			100 + 2*padding,
			padding + 2*(10+padding),
			padding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Render(c, tt.opts...)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			size := img.Bounds().Size()
			if size.X != tt.wantW || size.Y != tt.wantH {
				t.Errorf("size = %v, want %dx%d", size, tt.wantW, tt.wantH)
			}
			if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
				t.Errorf("margin = %v, want white", got)
			}
			if got := img.NRGBAAt(padding, tt.swatchTopY); !near(got, color.NRGBA{R: 0xFF, A: 0xFF}, 2) {
				t.Errorf("swatch start = %v, want red", got)
			}
		})
	}
}

func TestRenderSamplesStops(t *testing.T) {
	c := &gradkit.Collection{Gradients: []gradkit.Gradient{redToBlue("g")}}
	img, err := Render(c, WithLabels(false), WithWidth(stripSamples))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	y := padding + 1
	if got := img.NRGBAAt(padding, y); !near(got, color.NRGBA{R: 0xFF, A: 0xFF}, 2) {
		t.Errorf("first pixel = %v, want red", got)
	}
	if got := img.NRGBAAt(padding+stripSamples-1, y); !near(got, color.NRGBA{B: 0xFF, A: 0xFF}, 2) {
		t.Errorf("last pixel = %v, want blue", got)
	}
	if got := img.NRGBAAt(padding+stripSamples/2, y); got.R < 0x70 || got.R > 0x90 || got.B < 0x70 || got.B > 0x90 {
		t.Errorf("middle pixel = %v, want an even red/blue mix", got)
	}
}

func TestRenderShowsCheckerThroughTransparency(t *testing.T) {
	transparent := gradkit.Gradient{Name: "clear", Stops: []gradkit.ColorStop{
		{Position: 0, Alpha: 0},
		{Position: 1, Alpha: 0},
	}}
	img, err := Render(&gradkit.Collection{Gradients: []gradkit.Gradient{transparent}}, WithLabels(false))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := img.NRGBAAt(padding, padding); got != checkerLight {
		t.Errorf("first checker cell = %v, want %v", got, checkerLight)
	}
	if got := img.NRGBAAt(padding+checkerSize, padding); got != checkerDark {
		t.Errorf("second checker cell = %v, want %v", got, checkerDark)
	}
}

func TestRenderCustomSampler(t *testing.T) {
	green := func([]gradkit.ColorStop, float64) gradkit.RGBA {
		return gradkit.RGBA{G: 1, A: 1}
	}
	c := &gradkit.Collection{Gradients: []gradkit.Gradient{redToBlue("g")}}
	img, err := Render(c, WithLabels(false), WithSampler(green))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.NRGBAAt(padding+10, padding+2); got != (color.NRGBA{G: 0xFF, A: 0xFF}) {
		t.Errorf("pixel = %v, want green", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	for _, c := range []*gradkit.Collection{nil, {Name: "empty"}} {
		if _, err := Render(c); !errors.Is(err, ErrEmpty) {
			t.Errorf("Render(%v) error = %v, want ErrEmpty", c, err)
		}
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	c := &gradkit.Collection{Gradients: []gradkit.Gradient{redToBlue("Sunset")}}
	if err := Encode(&buf, c); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != DefaultWidth+2*padding {
		t.Errorf("width = %d, want %d", got, DefaultWidth+2*padding)
	}
}

func TestTo8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{-0.2, 0},
		{1.7, 255},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := to8(tt.in); got != tt.want {
			t.Errorf("to8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
