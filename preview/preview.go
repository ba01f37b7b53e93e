// Package preview renders gradient collections as PNG swatch sheets.
//
// Each gradient becomes one row: its name set in Go Regular, then a strip
// of the gradient stretched to the sheet width over a checkerboard so
// transparency stays visible.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/colorwav3/gradkit"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("preview: no gradients")

// Defaults for a sheet built without options.
const (
	DefaultWidth        = 512
	DefaultSwatchHeight = 24
)

const (
	stripSamples = 256
	labelSize    = 12 // points at 72 DPI
	labelHeight  = 18
	labelDescent = 5
	padding      = 6
	checkerSize  = 6
)

var (
	checkerLight = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	checkerDark  = color.NRGBA{0xCC, 0xCC, 0xCC, 0xFF}
)

var parseGoRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Option configures Render.
type Option func(*options)

type options struct {
	width        int
	swatchHeight int
	labels       bool
	sampler      gradkit.Sampler
}

func defaultOptions() options {
	return options{
		width:        DefaultWidth,
		swatchHeight: DefaultSwatchHeight,
		labels:       true,
		sampler:      gradkit.Sample,
	}
}

// WithWidth sets the swatch width in pixels.
func WithWidth(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.width = px
		}
	}
}

// WithSwatchHeight sets the height of each swatch in pixels.
func WithSwatchHeight(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.swatchHeight = px
		}
	}
}

// WithLabels turns gradient names on or off. Labels are on by default.
func WithLabels(on bool) Option {
	return func(o *options) {
		o.labels = on
	}
}

// WithSampler sets the interpolation used to draw each strip.
func WithSampler(s gradkit.Sampler) Option {
	return func(o *options) {
		if s != nil {
			o.sampler = s
		}
	}
}

// Render draws one row per gradient of c.
func Render(c *gradkit.Collection, opts ...Option) (*image.NRGBA, error) {
	if c == nil || len(c.Gradients) == 0 {
		return nil, ErrEmpty
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var face font.Face
	if o.labels {
		f, err := labelFace()
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = f.Close()
		}()
		face = f
	}

	rowHeight := o.swatchHeight + padding
	if face != nil {
		rowHeight += labelHeight
	}
	img := image.NewNRGBA(image.Rect(0, 0, o.width+2*padding, padding+len(c.Gradients)*rowHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	src := image.Rect(0, 0, stripSamples, 1)
	y := padding
	for _, g := range c.Gradients {
		if face != nil {
			drawLabel(img, face, g.Name, padding, y+labelHeight-labelDescent)
			y += labelHeight
		}
		r := image.Rect(padding, y, padding+o.width, y+o.swatchHeight)
		drawChecker(img, r)
		xdraw.ApproxBiLinear.Scale(img, r, strip(g.Stops, o.sampler), src, xdraw.Over, nil)
		y += o.swatchHeight + padding
	}

	gradkit.Logger().Debug("preview: rendered",
		"collection", c.Name,
		"gradients", len(c.Gradients),
		"size", img.Bounds().Size())
	return img, nil
}

// Encode renders c and writes it to w as PNG.
func Encode(w io.Writer, c *gradkit.Collection, opts ...Option) error {
	img, err := Render(c, opts...)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// strip samples stops into a one-pixel-high image.
func strip(stops []gradkit.ColorStop, sample gradkit.Sampler) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, stripSamples, 1))
	for x := range stripSamples {
		c := sample(stops, float64(x)/(stripSamples-1))
		img.SetNRGBA(x, 0, color.NRGBA{
			R: to8(c.R),
			G: to8(c.G),
			B: to8(c.B),
			A: to8(c.A),
		})
	}
	return img
}

func drawChecker(dst *image.NRGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := checkerLight
			if ((x-r.Min.X)/checkerSize+(y-r.Min.Y)/checkerSize)%2 == 1 {
				c = checkerDark
			}
			dst.SetNRGBA(x, y, c)
		}
	}
}

func drawLabel(dst draw.Image, face font.Face, text string, x, y int) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func labelFace() (font.Face, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, fmt.Errorf("preview: parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: label face: %w", err)
	}
	return face, nil
}

func to8(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return uint8(math.Round(math.Min(1, v) * 255))
}
