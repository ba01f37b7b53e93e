package descriptor

import (
	"encoding/binary"
	"math"
	"strings"
)

// Builder assembles a big-endian descriptor stream.
// The zero value is ready to use.
type Builder struct {
	buf []byte
}

// Bytes returns the assembled stream.
func (b *Builder) Bytes() []byte { return b.buf }

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return len(b.buf) }

// Tag writes a 4-byte tag.
func (b *Builder) Tag(t Tag) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, uint32(t))
}

// Key writes a descriptor key: a zero length followed by a 4-byte code.
func (b *Builder) Key(t Tag) {
	b.Uint32(0)
	b.Tag(t)
}

// ClassID writes a class identifier. Four-character identifiers use the
// zero-length short form; anything else is written as length + ASCII.
func (b *Builder) ClassID(id string) {
	if len(id) == 4 {
		b.Key(MakeTag(id))
		return
	}
	b.Uint32(uint32(len(id)))
	b.buf = append(b.buf, id...)
}

// Uint16 writes a big-endian uint16.
func (b *Builder) Uint16(v uint16) {
	b.buf = binary.BigEndian.AppendUint16(b.buf, v)
}

// Uint32 writes a big-endian uint32.
func (b *Builder) Uint32(v uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

// Float64 writes a big-endian IEEE 754 double.
func (b *Builder) Float64(v float64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, math.Float64bits(v))
}

// Zeros writes n zero bytes.
func (b *Builder) Zeros(n int) {
	b.buf = append(b.buf, make([]byte, n)...)
}

// Raw writes p unchanged.
func (b *Builder) Raw(p []byte) {
	b.buf = append(b.buf, p...)
}

// Unicode writes s as a descriptor Unicode string: a code-unit count that
// includes the trailing NUL, the UTF-16BE units, then the NUL.
func (b *Builder) Unicode(s string) {
	enc, err := utf16BE.NewEncoder().Bytes([]byte(strings.ToValidUTF8(s, "\uFFFD")))
	if err != nil {
		enc = nil
	}
	b.Uint32(uint32(len(enc)/2 + 1))
	b.buf = append(b.buf, enc...)
	b.Uint16(0)
}
