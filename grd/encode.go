package grd

import (
	"fmt"
	"math"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/internal/descriptor"
)

// Encode writes c as a version 5 gradient file.
//
// Stops are written in the RGB colour model with a matching transparency
// track. A hierarchy block is appended when any gradient has a group, so
// Photoshop shows runs of same-group gradients as folders.
func Encode(c *gradkit.Collection) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCollection
	}
	for i, g := range c.Gradients {
		if len(g.Stops) == 0 {
			return nil, fmt.Errorf("gradient %d (%q): %w", i, g.Name, ErrEmptyGradient)
		}
	}

	var b descriptor.Builder
	b.Tag(tagSignature)
	b.Uint16(Version)
	b.Uint32(descriptorClass)

	b.Unicode("")
	b.ClassID("null")
	b.Uint32(1)
	b.Key(tagGrdL)
	b.Tag(tagVlLs)
	b.Uint32(uint32(len(c.Gradients)))
	for _, g := range c.Gradients {
		writeGradient(&b, g)
	}

	if hasGroups(c.Gradients) {
		writeHierarchy(&b, c.Gradients)
	}

	gradkit.Logger().Debug("grd: encoded collection",
		"name", c.Name, "gradients", len(c.Gradients), "bytes", b.Len())
	return b.Bytes(), nil
}

func writeGradient(b *descriptor.Builder, g gradkit.Gradient) {
	b.Tag(tagObjc)
	b.Unicode("Gradient")
	b.Key(tagGrdn)
	b.Uint32(1)

	b.Key(tagGrad)
	b.Tag(tagObjc)
	b.Unicode("Gradient")
	b.Key(tagGrdn)
	b.Uint32(5)

	b.Key(tagNm)
	b.Tag(tagTEXT)
	b.Unicode(g.Name)

	b.Key(tagGrdF)
	b.Tag(tagEnum)
	b.Key(tagGrdF)
	b.Key(tagCstS)

	b.Key(tagIntr)
	b.Tag(tagDoub)
	b.Float64(locationScale)

	b.Key(tagClrs)
	b.Tag(tagVlLs)
	b.Uint32(uint32(len(g.Stops)))
	for _, s := range g.Stops {
		writeColorStop(b, s)
	}

	alphas := transparencyStops(g.Stops)
	b.Key(tagTrns)
	b.Tag(tagVlLs)
	b.Uint32(uint32(len(alphas)))
	for _, s := range alphas {
		writeTransparencyStop(b, s)
	}
}

func writeColorStop(b *descriptor.Builder, s gradkit.ColorStop) {
	b.Tag(tagObjc)
	b.Unicode("")
	b.Key(tagClrt)
	writeStopPrefix(b)

	b.Tag(tagRGBC)
	b.Uint32(3)
	writeDouble(b, tagRd, clamp01(s.Red)*255)
	writeDouble(b, tagGrn, clamp01(s.Green)*255)
	writeDouble(b, tagBl, clamp01(s.Blue)*255)

	b.Key(tagType)
	b.Tag(tagEnum)
	b.Key(tagClry)
	b.Key(tagUsrS)

	writeLocation(b, s)
}

// writeStopPrefix writes the stopPrefixSize bytes between a colour stop's
// 'Clrt' class and its colour model: the stop's field count, then the
// 'Clr ' key opening an unnamed object with a short class ID.
func writeStopPrefix(b *descriptor.Builder) {
	b.Uint32(4)
	b.Key(tagClr)
	b.Tag(tagObjc)
	b.Unicode("")
	b.Uint32(0)
}

func writeTransparencyStop(b *descriptor.Builder, s gradkit.ColorStop) {
	b.Tag(tagObjc)
	b.Unicode("")
	b.Key(tagTrnS)
	b.Uint32(3)

	b.Key(tagOpct)
	b.Tag(tagUntF)
	b.Tag(tagPrc)
	b.Float64(clamp01(s.Alpha) * 100)

	writeLocation(b, s)
}

func writeDouble(b *descriptor.Builder, key descriptor.Tag, v float64) {
	b.Key(key)
	b.Tag(tagDoub)
	b.Float64(v)
}

func writeLocation(b *descriptor.Builder, s gradkit.ColorStop) {
	b.Key(tagLctn)
	b.Tag(tagLong)
	b.Uint32(quantizeLocation(s.Position))
	b.Key(tagMdpn)
	b.Tag(tagLong)
	b.Uint32(uint32(math.Round(clamp01(s.Midpoint) * midpointScale)))
}

func quantizeLocation(pos float64) uint32 {
	return uint32(math.Round(clamp01(pos) * locationScale))
}

// transparencyStops returns one stop per distinct written location, taken
// from the first colour stop at that location.
func transparencyStops(stops []gradkit.ColorStop) []gradkit.ColorStop {
	seen := make(map[uint32]bool, len(stops))
	out := make([]gradkit.ColorStop, 0, len(stops))
	for _, s := range stops {
		loc := quantizeLocation(s.Position)
		if seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, s)
	}
	return out
}

func hasGroups(gs []gradkit.Gradient) bool {
	for _, g := range gs {
		if g.Group != "" {
			return true
		}
	}
	return false
}

// writeHierarchy appends the preset hierarchy block. Each run of adjacent
// gradients sharing a group becomes one folder; ungrouped gradients sit at
// the top level.
func writeHierarchy(b *descriptor.Builder, gs []gradkit.Gradient) {
	type run struct {
		group      string
		start, end int
	}
	var runs []run
	for i := 0; i < len(gs); {
		j := i + 1
		for j < len(gs) && gs[j].Group == gs[i].Group {
			j++
		}
		runs = append(runs, run{gs[i].Group, i, j})
		i = j
	}

	items := len(gs)
	for _, r := range runs {
		if r.group != "" {
			items += 2
		}
	}

	b.Raw([]byte("8BIMphry"))
	b.ClassID(string(hierarchyMarker))
	b.Tag(tagVlLs)
	b.Uint32(uint32(items))
	for _, r := range runs {
		if r.group != "" {
			writeHierarchyObject(b, classGroup, r.group)
		}
		for _, g := range gs[r.start:r.end] {
			writeHierarchyObject(b, classPreset, g.Name)
		}
		if r.group != "" {
			b.Tag(tagObjc)
			b.Unicode("")
			b.ClassID(classGroupEnd)
			b.Uint32(0)
		}
	}
}

func writeHierarchyObject(b *descriptor.Builder, class, name string) {
	b.Tag(tagObjc)
	b.Unicode("")
	b.ClassID(class)
	b.Uint32(1)
	b.Key(tagNm)
	b.Tag(tagTEXT)
	b.Unicode(name)
}
