package grd

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/internal/color"
	"github.com/colorwav3/gradkit/internal/descriptor"
)

// Version is the only gradient file version Decode accepts.
const Version = 5

const (
	legacyVersion   = 3
	descriptorClass = 16
	headerSize      = 10

	// Bytes between a 'Clrt' tag and the colour model tag that follows it.
	stopPrefixSize = 26

	// Lctn is stored in 1/4096 units, Mdpn in percent.
	locationScale = 4096
	midpointScale = 100

	// How far past the colour model tag a Book Color stop may keep its
	// embedded RGB fallback.
	bookColorWindow = 300
)

// Decode parses a version 5 gradient file.
//
// Header errors are returned as *HeaderError or *VersionError. Damaged or
// unsupported gradient records are skipped; the collection holds every
// gradient that decoded cleanly, in file order.
func Decode(data []byte, opts ...Option) (*gradkit.Collection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkHeader(data); err != nil {
		return nil, err
	}

	log := gradkit.Logger()
	groups := ExtractHierarchy(data)

	c := &gradkit.Collection{Name: o.name}
	offsets := descriptor.FindAllTagOffsets(data, tagGrdn)
	for i, start := range offsets {
		end := len(data)
		if i+1 < len(offsets) {
			end = offsets[i+1] - 4
		}

		r := record{data: data, pos: start, end: end}
		g, named, err := r.gradient(o.name, len(c.Gradients), o.sampler)
		if !named {
			// Outer wrapper objects share the 'Grdn' class with the
			// gradient itself but carry no name.
			continue
		}
		if err != nil {
			re := &RecordError{Index: i, Name: g.Name, Err: err}
			log.Warn("grd: skipping gradient", "index", i, "name", g.Name, "err", err)
			if o.onRecordError != nil {
				o.onRecordError(re)
			}
			continue
		}

		if len(groups) > 0 && i/2 < len(groups) {
			g.Group = groups[i/2]
		}
		c.Gradients = append(c.Gradients, g)
	}

	if len(groups) > 0 {
		c.Groups = gradkit.SummarizeGroups(c.Gradients)
	}
	log.Info("grd: decoded collection",
		"name", c.Name, "records", len(offsets), "gradients", len(c.Gradients), "groups", len(c.Groups))
	return c, nil
}

func checkHeader(data []byte) error {
	if len(data) < headerSize {
		return &HeaderError{Field: "length", Got: uint32(len(data))}
	}
	sig, _ := descriptor.Uint32(data, 0)
	if descriptor.Tag(sig) != tagSignature {
		return &HeaderError{Field: "signature", Got: sig}
	}
	version, _ := descriptor.Uint16(data, 4)
	if version != Version {
		return &VersionError{Version: version}
	}
	class, _ := descriptor.Uint32(data, 6)
	if class != descriptorClass {
		return &HeaderError{Field: "descriptor class", Got: class}
	}
	return nil
}

// record is a cursor over one gradient record, data[pos:end).
type record struct {
	data []byte
	pos  int
	end  int
}

// seek moves past the next occurrence of tag, then skip more bytes.
func (r *record) seek(tag descriptor.Tag, skip int) error {
	p := descriptor.SkipToTag(r.data, r.pos, tag, r.end)
	if p >= r.end {
		return fmt.Errorf("%w: %s", ErrMissingField, tag)
	}
	r.pos = p + skip
	return nil
}

func (r *record) uint32() (uint32, error) {
	if r.pos+4 > r.end {
		return 0, fmt.Errorf("%w: truncated value at %d", ErrMissingField, r.pos)
	}
	v, _ := descriptor.Uint32(r.data, r.pos)
	r.pos += 4
	return v, nil
}

func (r *record) float64() (float64, error) {
	if r.pos+8 > r.end {
		return 0, fmt.Errorf("%w: truncated value at %d", ErrMissingField, r.pos)
	}
	v, _ := descriptor.Float64(r.data, r.pos)
	r.pos += 8
	return v, nil
}

// doubleField reads the double stored skip bytes past tag, divided by scale.
func (r *record) doubleField(tag descriptor.Tag, skip int, scale float64) (float64, error) {
	if err := r.seek(tag, skip); err != nil {
		return 0, err
	}
	v, err := r.float64()
	return v / scale, err
}

func (r *record) longField(tag descriptor.Tag, skip int) (uint32, error) {
	if err := r.seek(tag, skip); err != nil {
		return 0, err
	}
	return r.uint32()
}

// gradient decodes the record. named reports whether the record has a
// name field at all; records without one are not gradients.
func (r *record) gradient(collection string, ordinal int, sampler gradkit.Sampler) (g gradkit.Gradient, named bool, err error) {
	if r.seek(tagNm, 4) != nil {
		return g, false, nil
	}
	g.Name, r.pos = descriptor.UnicodeString(r.data, r.pos, r.end)
	if g.Name == "" {
		g.Name = collection + " " + strconv.Itoa(ordinal+1)
	}

	colors, err := r.colorTrack()
	if err != nil {
		return g, true, err
	}
	if len(colors) == 0 {
		return g, true, ErrEmptyGradient
	}
	alphas, err := r.transparencyTrack()
	if err != nil {
		return g, true, err
	}

	colors = normalizeTrack(colors)
	if alphas == nil {
		g.Stops = colors
		return g, true, nil
	}
	g.Stops = mergeTracks(colors, normalizeTrack(alphas), sampler)
	return g, true, nil
}

func (r *record) colorTrack() ([]gradkit.ColorStop, error) {
	if err := r.seek(tagClrs, 4); err != nil {
		return nil, err
	}
	count, err := r.uint32()
	if err != nil {
		return nil, err
	}

	stops := make([]gradkit.ColorStop, 0, min(count, 64))
	for range count {
		if err := r.seek(tagClrt, stopPrefixSize); err != nil {
			return nil, err
		}
		model, err := r.uint32()
		if err != nil {
			return nil, err
		}
		rgb, err := r.color(descriptor.Tag(model))
		if err != nil {
			return nil, err
		}
		loc, mid, err := r.locationAndMidpoint()
		if err != nil {
			return nil, err
		}
		gradkit.Logger().Debug("grd: colour stop",
			"model", descriptor.Tag(model).String(), "location", loc, "midpoint", mid)
		stops = append(stops, gradkit.ColorStop{
			Position: loc,
			Red:      rgb.R,
			Green:    rgb.G,
			Blue:     rgb.B,
			Alpha:    1,
			Midpoint: mid,
		})
	}
	return stops, nil
}

// transparencyTrack returns nil, nil when the record has no opacity stops.
func (r *record) transparencyTrack() ([]gradkit.ColorStop, error) {
	p := descriptor.SkipToTag(r.data, r.pos, tagTrns, r.end)
	if p >= r.end {
		return nil, nil
	}
	r.pos = p + 4
	count, err := r.uint32()
	if err != nil || count == 0 {
		return nil, err
	}

	stops := make([]gradkit.ColorStop, 0, min(count, 64))
	for range count {
		if err := r.seek(tagTrnS, 0); err != nil {
			return nil, err
		}
		opacity, err := r.doubleField(tagOpct, 8, midpointScale)
		if err != nil {
			return nil, err
		}
		loc, mid, err := r.locationAndMidpoint()
		if err != nil {
			return nil, err
		}
		stops = append(stops, gradkit.ColorStop{
			Position: loc,
			Alpha:    clamp01(opacity),
			Midpoint: mid,
		})
	}
	return stops, nil
}

func (r *record) locationAndMidpoint() (loc, mid float64, err error) {
	l, err := r.longField(tagLctn, 4)
	if err != nil {
		return 0, 0, err
	}
	m, err := r.longField(tagMdpn, 4)
	if err != nil {
		return 0, 0, err
	}
	return clamp01(float64(l) / locationScale), clamp01(float64(m) / midpointScale), nil
}

// color reads the channels of one colour stop, positioned just past its
// colour model tag, and converts them to sRGB.
func (r *record) color(model descriptor.Tag) (color.RGB, error) {
	switch model {
	case tagRGBC:
		return r.rgb()

	case tagHSBC:
		h, err := r.doubleField(tagHue, 8, 360)
		if err != nil {
			return color.RGB{}, err
		}
		s, err := r.doubleField(tagStrt, 4, 100)
		if err != nil {
			return color.RGB{}, err
		}
		b, err := r.doubleField(tagBrgh, 4, 100)
		if err != nil {
			return color.RGB{}, err
		}
		return color.HSBToRGB(h, s, b), nil

	case tagBkCl:
		window := min(r.pos+bookColorWindow, r.end)
		if descriptor.SkipToTag(r.data, r.pos, tagRd, window) < window {
			return r.rgb()
		}
		return color.Gray(0.5), nil

	case tagCMYC:
		var cmyk [4]float64
		for i, tag := range [...]descriptor.Tag{tagCyn, tagMgnt, tagYlw, tagBlck} {
			v, err := r.doubleField(tag, 8, 100)
			if err != nil {
				return color.RGB{}, err
			}
			cmyk[i] = v
		}
		return color.CMYKToRGB(cmyk[0], cmyk[1], cmyk[2], cmyk[3]), nil

	case tagGrsc:
		v, err := r.doubleField(tagGry, 8, 100)
		if err != nil {
			return color.RGB{}, err
		}
		return color.Gray(v), nil

	case tagLbCl:
		l, err := r.doubleField(tagLmnc, 8, 1)
		if err != nil {
			return color.RGB{}, err
		}
		a, err := r.doubleField(tagLabA, 4, 1)
		if err != nil {
			return color.RGB{}, err
		}
		b, err := r.doubleField(tagLabB, 4, 1)
		if err != nil {
			return color.RGB{}, err
		}
		return color.LabToRGB(l, a, b), nil
	}
	return color.RGB{}, fmt.Errorf("%w: %q", ErrUnknownColorFormat, model.String())
}

func (r *record) rgb() (color.RGB, error) {
	var c [3]float64
	for i, tag := range [...]descriptor.Tag{tagRd, tagGrn, tagBl} {
		v, err := r.doubleField(tag, 4, 255)
		if err != nil {
			return color.RGB{}, err
		}
		c[i] = clamp01(v)
	}
	return color.RGB{R: c[0], G: c[1], B: c[2]}, nil
}

// normalizeTrack orders stops by position and pins the first and last
// stops to 0 and 1.
func normalizeTrack(stops []gradkit.ColorStop) []gradkit.ColorStop {
	gradkit.SortStops(stops)
	return gradkit.EnsureEndpoints(stops)
}

// mergeTracks combines colour and transparency tracks into one stop list.
// Every distinct position of either track becomes a stop, coloured by
// sampling the colour track and made transparent by sampling the alpha
// track. The midpoint of the first stop seen at a position is kept.
func mergeTracks(colors, alphas []gradkit.ColorStop, sample gradkit.Sampler) []gradkit.ColorStop {
	type mark struct {
		pos, mid float64
	}
	marks := make([]mark, 0, len(colors)+len(alphas))
	for _, s := range colors {
		marks = append(marks, mark{s.Position, s.Midpoint})
	}
	for _, s := range alphas {
		marks = append(marks, mark{s.Position, s.Midpoint})
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].pos < marks[j].pos })

	merged := make([]gradkit.ColorStop, 0, len(marks))
	last := math.NaN()
	for _, m := range marks {
		if m.pos == last {
			continue
		}
		last = m.pos
		c := sample(colors, m.pos)
		a := sample(alphas, m.pos)
		merged = append(merged, gradkit.ColorStop{
			Position: m.pos,
			Red:      c.R,
			Green:    c.G,
			Blue:     c.B,
			Alpha:    a.A,
			Midpoint: m.mid,
		})
	}
	return merged
}

// clamp01 maps x into [0, 1]. Non-finite values, which only a corrupt
// file can produce, become 0.
func clamp01(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
