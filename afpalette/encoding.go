package afpalette

import "github.com/colorwav3/gradkit"

// occurrence selects between the two encodings Affinity uses for a
// repeated structure: the first instance in a file carries type metadata,
// later instances refer back to it.
type occurrence int

const (
	firstOccurrence occurrence = iota
	subsequentOccurrence
)

// occurrenceOf returns the encoding for the n-th instance (from 0) of a
// structure.
func occurrenceOf(n int) occurrence {
	if n == 0 {
		return firstOccurrence
	}
	return subsequentOccurrence
}

// Record markers. Affinity stores four-character codes byte-reversed.
const (
	markerFillGroup = "GliF"
	markerFill      = "lliF"
	markerType      = "*epyT"
	markerGradient1 = "1darG"
	markerGradient  = "darG"
	markerPositions = "nsoP"
	markerColors    = "\xB1sloC"
	markerRGBA      = "ABGR"
	markerColorData = "Dloc_"
	markerNames     = "VNaP"
)

// Object flags following an object ID: full type information, or a
// reference to a type seen earlier in the file.
const (
	objectTyped      = 0
	objectCompressed = 1
)

// Trailer of a typed object header.
const typedObjectTrailer = "\x01\x00\x00\x02"

// ids hands out the sequential object IDs used throughout the body.
type ids struct{ next uint32 }

func (i *ids) take() uint32 {
	id := i.next
	i.next++
	return id
}

// writeFill stages the fill record that opens each gradient.
func writeFill(s *stage, occ occurrence, id *ids) {
	switch occ {
	case firstOccurrence:
		s.u8(1)
		s.u32(id.take())
		s.u8(objectTyped)
		s.text(markerFillGroup + "\x02\x00\x00\x00" + markerFill + "\x00\x00\x00\x02" +
			markerType + "\x00\x00\x00\x00" + markerGradient1 + "\x01")
		s.u32(id.take())
		s.u8(objectTyped)
		s.text(markerGradient)
		s.text(typedObjectTrailer)
	case subsequentOccurrence:
		s.u32(1 << 24)
		s.u32(id.take())
		s.u8(objectCompressed)
		s.text(markerFillGroup + markerType + "\x00\x00\x00\x00" + markerGradient1 + "\x01")
		s.u32(id.take())
		s.u8(objectCompressed)
		s.text(markerGradient)
	}
	s.u8(0xA4)
}

// writePositions stages stop positions paired with midpoints. Each pair
// takes the midpoint of the following stop; the last pair gets the
// neutral midpoint.
func writePositions(s *stage, stops []gradkit.ColorStop) {
	s.text(markerPositions)
	s.u32(uint32(len(stops)))
	for i, st := range stops {
		s.f64(st.Position)
		if i == len(stops)-1 {
			s.f64(gradkit.DefaultMidpoint)
		} else {
			s.f64(stops[i+1].Midpoint)
		}
	}
}

// writeColor stages one RGBA colour entry. The last entry of a gradient
// has no trailing separator byte.
func writeColor(s *stage, occ occurrence, id *ids, st gradkit.ColorStop, last bool) {
	s.u8(1)
	s.u32(id.take())
	switch occ {
	case firstOccurrence:
		s.u8(objectTyped)
		s.text(markerRGBA)
		s.text(typedObjectTrailer)
	case subsequentOccurrence:
		s.u8(objectCompressed)
		s.text(markerRGBA)
	}
	s.text(markerColorData)
	s.f32(float32(st.Red))
	s.f32(float32(st.Green))
	s.f32(float32(st.Blue))
	s.f32(float32(st.Alpha))
	if !last {
		s.u8(0)
	}
}
