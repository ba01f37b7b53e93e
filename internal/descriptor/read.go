package descriptor

import (
	"encoding/binary"
	"math"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// utf16BE is the encoding of descriptor Unicode strings: big-endian code
// units with no byte order mark.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Uint16 reads a big-endian uint16 at off. ok is false if the value does
// not fit in buf.
func Uint16(buf []byte, off int) (v uint16, ok bool) {
	if off < 0 || off+2 > len(buf) {
		return 0, false
	}
	return binary.BigEndian.Uint16(buf[off:]), true
}

// Uint32 reads a big-endian uint32 at off.
func Uint32(buf []byte, off int) (v uint32, ok bool) {
	if off < 0 || off+4 > len(buf) {
		return 0, false
	}
	return binary.BigEndian.Uint32(buf[off:]), true
}

// Float64 reads a big-endian IEEE 754 double at off.
func Float64(buf []byte, off int) (v float64, ok bool) {
	if off < 0 || off+8 > len(buf) {
		return 0, false
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[off:])), true
}

// UnicodeString reads a descriptor Unicode string at off: a uint32 count
// of UTF-16 code units followed by the units themselves. Reading stops at
// the first NUL unit, after count units, or at end, whichever comes first.
// It returns the decoded text and the offset just past the last unit read.
func UnicodeString(buf []byte, off, end int) (s string, next int) {
	if end > len(buf) {
		end = len(buf)
	}
	count, ok := Uint32(buf, off)
	if !ok || off+4 > end {
		return "", end
	}
	next = off + 4
	start := next
	for n := uint32(0); n < count && next+2 <= end; n++ {
		unit := binary.BigEndian.Uint16(buf[next:])
		if unit == 0 {
			s = decodeUTF16(buf[start:next])
			return s, next + 2
		}
		next += 2
	}
	return decodeUTF16(buf[start:next]), next
}

// TextField reads a Unicode string whose full declared length is always
// consumed, with NUL units dropped. Hierarchy descriptors are read this way.
func TextField(buf []byte, off int) (s string, next int, ok bool) {
	count, ok := Uint32(buf, off)
	if !ok {
		return "", off, false
	}
	start := off + 4
	next = start + int(count)*2
	if count > math.MaxInt32/2 || next > len(buf) {
		return "", off, false
	}
	return strings.ReplaceAll(decodeUTF16(buf[start:next]), "\x00", ""), next, true
}

// ClassID reads a descriptor class or key identifier at off: a uint32
// length followed by that many ASCII bytes, or a 4-byte code when the
// length is zero. Surrounding spaces are trimmed.
func ClassID(buf []byte, off int) (id string, next int, ok bool) {
	n, ok := Uint32(buf, off)
	if !ok {
		return "", off, false
	}
	if n == 0 {
		n = 4
	}
	start := off + 4
	if n > math.MaxInt32 || start+int(n) > len(buf) {
		return "", off, false
	}
	next = start + int(n)
	return strings.TrimSpace(string(buf[start:next])), next, true
}

func decodeUTF16(raw []byte) string {
	s, err := utf16BE.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return string(s)
}
