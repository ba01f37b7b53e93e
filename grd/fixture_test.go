package grd

import "github.com/colorwav3/gradkit/internal/descriptor"

// Helpers that write gradient files the way Photoshop lays them out,
// including colour models Encode never produces.

type fixtureStop struct {
	model    string
	channels func(b *descriptor.Builder)
	loc, mid uint32
}

type fixtureAlpha struct {
	opacity  float64 // percent
	loc, mid uint32
}

func fixtureFile(gradients ...func(b *descriptor.Builder)) []byte {
	var b descriptor.Builder
	b.Tag(tagSignature)
	b.Uint16(Version)
	b.Uint32(descriptorClass)
	b.Unicode("")
	b.ClassID("null")
	b.Uint32(1)
	b.Key(tagGrdL)
	b.Tag(tagVlLs)
	b.Uint32(uint32(len(gradients)))
	for _, g := range gradients {
		g(&b)
	}
	return b.Bytes()
}

func fixtureGradient(name string, stops []fixtureStop, alphas []fixtureAlpha) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Tag(tagObjc)
		b.Unicode("Gradient")
		b.Key(tagGrdn)
		b.Uint32(1)
		b.Key(tagGrad)
		b.Tag(tagObjc)
		b.Unicode("Gradient")
		b.Key(tagGrdn)
		b.Uint32(4)

		b.Key(tagNm)
		b.Tag(tagTEXT)
		b.Unicode(name)

		b.Key(tagClrs)
		b.Tag(tagVlLs)
		b.Uint32(uint32(len(stops)))
		for _, s := range stops {
			b.Tag(tagObjc)
			b.Unicode("")
			b.Key(tagClrt)
			writeStopPrefix(b)
			b.Tag(descriptor.MakeTag(s.model))
			s.channels(b)
			fixtureLocation(b, s.loc, s.mid)
		}

		if alphas == nil {
			return
		}
		b.Key(tagTrns)
		b.Tag(tagVlLs)
		b.Uint32(uint32(len(alphas)))
		for _, a := range alphas {
			b.Tag(tagObjc)
			b.Unicode("")
			b.Key(tagTrnS)
			b.Uint32(3)
			percentField(b, tagOpct, a.opacity)
			fixtureLocation(b, a.loc, a.mid)
		}
	}
}

func fixtureLocation(b *descriptor.Builder, loc, mid uint32) {
	b.Key(tagLctn)
	b.Tag(tagLong)
	b.Uint32(loc)
	b.Key(tagMdpn)
	b.Tag(tagLong)
	b.Uint32(mid)
}

func percentField(b *descriptor.Builder, key descriptor.Tag, v float64) {
	b.Key(key)
	b.Tag(tagUntF)
	b.Tag(tagPrc)
	b.Float64(v)
}

func rgbChannels(r, g, bl float64) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Uint32(3)
		writeDouble(b, tagRd, r)
		writeDouble(b, tagGrn, g)
		writeDouble(b, tagBl, bl)
	}
}

func hsbChannels(h, s, v float64) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Uint32(3)
		b.Key(tagHue)
		b.Tag(tagUntF)
		b.Tag(descriptor.MakeTag("#Ang"))
		b.Float64(h)
		writeDouble(b, tagStrt, s)
		writeDouble(b, tagBrgh, v)
	}
}

func cmykChannels(c, m, y, k float64) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Uint32(4)
		percentField(b, tagCyn, c)
		percentField(b, tagMgnt, m)
		percentField(b, tagYlw, y)
		percentField(b, tagBlck, k)
	}
}

func grayChannels(v float64) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Uint32(1)
		percentField(b, tagGry, v)
	}
}

func labChannels(l, a, bb float64) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Uint32(3)
		percentField(b, tagLmnc, l)
		writeDouble(b, tagLabA, a)
		writeDouble(b, tagLabB, bb)
	}
}

// bookChannels writes a Book Color stop, optionally with the RGB values
// Photoshop embeds for colour books it can convert.
func bookChannels(withRGB bool) func(*descriptor.Builder) {
	return func(b *descriptor.Builder) {
		b.Uint32(2)
		b.Key(descriptor.MakeTag("Bk  "))
		b.Tag(tagTEXT)
		b.Unicode("PANTONE+ Solid Coated")
		if withRGB {
			rgbChannels(0, 51, 255)(b)
			return
		}
		b.Key(descriptor.MakeTag("bkID"))
		b.Tag(tagLong)
		b.Uint32(3060)
	}
}

// fixtureHierarchy writes a hierarchy block. Each item is "+Name" to open
// a group, "-" to close one, or a preset name.
func fixtureHierarchy(b *descriptor.Builder, items ...string) {
	b.Raw([]byte("8BIMphry"))
	b.ClassID("hierarchy")
	b.Tag(tagVlLs)
	b.Uint32(uint32(len(items)))
	for _, it := range items {
		switch {
		case it == "-":
			b.Tag(tagObjc)
			b.Unicode("")
			b.ClassID(classGroupEnd)
			b.Uint32(0)
		case len(it) > 0 && it[0] == '+':
			writeHierarchyObject(b, classGroup, it[1:])
		default:
			writeHierarchyObject(b, classPreset, it)
		}
	}
}
