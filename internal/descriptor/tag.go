package descriptor

import (
	"bytes"
	"encoding/binary"
)

// Tag is a 4-byte big-endian code identifying a descriptor field.
type Tag uint32

// MakeTag builds a Tag from a 4-character string. Shorter strings are
// padded with spaces, matching how Photoshop writes short keys ("Nm  ").
func MakeTag(s string) Tag {
	var b [4]byte
	for i := range b {
		if i < len(s) {
			b[i] = s[i]
		} else {
			b[i] = ' '
		}
	}
	return Tag(binary.BigEndian.Uint32(b[:]))
}

// String returns the four characters of the tag.
func (t Tag) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(t))
	return string(b[:])
}

// SkipToTag scans buf[start:end) for the first occurrence of tag and
// returns the offset just past it. When the tag is absent it returns end,
// which callers read as "field not present"; it is not an error.
//
// The whole tag must lie inside the range. end is clamped to len(buf).
func SkipToTag(buf []byte, start int, tag Tag, end int) int {
	if end > len(buf) {
		end = len(buf)
	}
	if start < 0 {
		start = 0
	}
	for i := start; i+4 <= end; i++ {
		if Tag(binary.BigEndian.Uint32(buf[i:])) == tag {
			return i + 4
		}
	}
	return end
}

// FindAllTagOffsets returns, in order, the offset just past every
// occurrence of tag in buf. Occurrences may overlap.
func FindAllTagOffsets(buf []byte, tag Tag) []int {
	var offsets []int
	for i := 0; i+4 <= len(buf); i++ {
		if Tag(binary.BigEndian.Uint32(buf[i:])) == tag {
			offsets = append(offsets, i+4)
		}
	}
	return offsets
}

// IndexBytes returns the offset of the first occurrence of pattern in
// buf[start:], or -1.
func IndexBytes(buf []byte, start int, pattern []byte) int {
	start = max(start, 0)
	if start > len(buf) {
		return -1
	}
	i := bytes.Index(buf[start:], pattern)
	if i < 0 {
		return -1
	}
	return start + i
}
