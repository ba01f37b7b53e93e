package afpalette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/colorwav3/gradkit"
)

// Version is the container version written to the header.
const Version = 11

// ErrEmptyGradient is returned by Encode for a gradient without stops.
var ErrEmptyGradient = errors.New("afpalette: gradient has no colour stops")

// ErrNilCollection is returned by Encode for a nil collection.
var ErrNilCollection = errors.New("afpalette: nil collection")

// DefaultTimestamp is the datestamp written when WithTimestamp is not
// given. Affinity is known to accept palettes carrying it.
var DefaultTimestamp = time.Unix(0x644FD1F8, 0).UTC()

// Option configures Encode.
type Option func(*options)

type options struct {
	timestamp time.Time
}

// WithTimestamp sets the datestamp stored in the header and footer.
func WithTimestamp(t time.Time) Option {
	return func(o *options) {
		o.timestamp = t
	}
}

// Encode writes c as an Affinity palette, one palette entry per gradient.
//
// Stop colours are written as single-precision RGBA. Stops are expected in
// position order, as grd.Decode returns them.
func Encode(c *gradkit.Collection, opts ...Option) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCollection
	}
	o := options{timestamp: DefaultTimestamp}
	for _, opt := range opts {
		opt(&o)
	}
	for i, g := range c.Gradients {
		if len(g.Stops) == 0 {
			return nil, fmt.Errorf("gradient %d (%q): %w", i, g.Name, ErrEmptyGradient)
		}
	}

	stamp := binary.LittleEndian.AppendUint32(nil, uint32(o.timestamp.Unix()))

	s := newStage()
	writeHeader(s, c, stamp)

	var (
		id     ids
		colors int
	)
	for i, g := range c.Gradients {
		writeFill(s, occurrenceOf(i), &id)
		writePositions(s, g.Stops)

		s.text(markerColors)
		s.u32(uint32(len(g.Stops)))
		for j, st := range g.Stops {
			writeColor(s, occurrenceOf(colors), &id, st, j == len(g.Stops)-1)
			colors++
		}
	}

	writeNames(s, c.Gradients)
	writeFooter(s, stamp)

	out := s.finalize()
	gradkit.Logger().Info("afpalette: encoded collection",
		"name", c.Name, "gradients", len(c.Gradients), "colors", colors, "bytes", len(out))
	return out, nil
}

func writeHeader(s *stage, c *gradkit.Collection, stamp []byte) {
	s.text("\x00\xFF\x4B\x41")
	s.u32(Version)
	s.text("htwS")
	s.text("#Inf")
	s.placeholder(fileSizeMinusFooter)
	s.placeholder(fileSize)
	s.placeholder(bodySize)
	s.u64(0)
	s.raw(stamp)
	s.u32(0)
	s.u32(2)
	s.u32(2)
	s.text("Prot")
	s.u32(3)
	s.text("#Fil")
	s.text("\x00\xFF\x4B\x53\x02\x00")
	s.text("VlaP")
	s.text("\x01\x00\x14\x00\x00\x00")
	s.text("+NClP")

	s.str(c.Name)
	s.text("\xB1VlaP")
	s.u32(uint32(len(c.Gradients)))
}

func writeNames(s *stage, gs []gradkit.Gradient) {
	s.text("\x00\x00\x00\xAB")
	s.text(markerNames)

	size := 0
	for _, g := range gs {
		size += 4 + len(g.Name)
	}
	s.u32(uint32(size))
	s.u32(uint32(len(gs)))
	for _, g := range gs {
		s.str(g.Name)
	}
	s.text("\x00\xFF\xFF\xFF\xFF")
}

// writeFooter stages the footerSize-byte trailer. Its checksum slots are
// zero until finalize.
func writeFooter(s *stage, stamp []byte) {
	s.text("#FT4")
	s.u32(0)
	s.u32(0)
	s.raw(stamp)
	s.u32(0)
	s.placeholder(fileSize)
	s.placeholder(bodySize)
	for _, v := range []uint32{0, 0, 1, 0, 0x38, 1 << 24, 0, 0x48, 0} {
		s.u32(v)
	}
	s.placeholder(bodySize)
	s.placeholder(bodySize)
	s.u32(0)
	s.text("\x00\x14\x00\x00\x00")
	s.u32(0)
	s.text("\x0C\x00")
	s.text("Swatches.dat")
}
