package afpalette

import (
	"encoding/binary"
	"hash/crc32"
	"math"
)

// Fixed container dimensions.
const (
	headerSize = 80
	footerSize = 115

	// The checksum covers bodySize bytes starting here.
	checksumOffset = headerSize - 4

	// Footer offsets of the two copies of the checksum.
	footerChecksum1 = 88
	footerChecksum2 = 97
)

// sizeField names a value that is only known once every chunk is staged.
type sizeField int

const (
	fileSize sizeField = iota
	fileSizeMinusFooter
	bodySize
)

// stage accumulates the file as independent chunks. Size fields are
// staged as zeroed placeholders and recorded in patches, keyed by chunk
// index, until finalize fills them in.
type stage struct {
	chunks  [][]byte
	patches map[int]sizeField
	size    int
}

func newStage() *stage {
	return &stage{patches: make(map[int]sizeField)}
}

func (s *stage) raw(p []byte) {
	s.chunks = append(s.chunks, p)
	s.size += len(p)
}

func (s *stage) text(v string) { s.raw([]byte(v)) }

func (s *stage) u8(v uint8) { s.raw([]byte{v}) }

func (s *stage) u32(v uint32) { s.raw(binary.LittleEndian.AppendUint32(nil, v)) }

func (s *stage) u64(v uint64) { s.raw(binary.LittleEndian.AppendUint64(nil, v)) }

func (s *stage) f32(v float32) { s.u32(math.Float32bits(v)) }

func (s *stage) f64(v float64) { s.u64(math.Float64bits(v)) }

// str writes a UTF-8 string prefixed by its byte length.
func (s *stage) str(v string) {
	s.u32(uint32(len(v)))
	s.text(v)
}

// placeholder stages an 8-byte size field to be patched by finalize.
func (s *stage) placeholder(f sizeField) {
	s.patches[len(s.chunks)] = f
	s.u64(0)
}

// finalize patches every size field, joins the chunks and writes the body
// checksum into the footer.
func (s *stage) finalize() []byte {
	total := uint64(s.size)
	values := map[sizeField]uint64{
		fileSize:            total,
		fileSizeMinusFooter: total - footerSize,
		bodySize:            total - footerSize - headerSize,
	}
	for idx, f := range s.patches {
		binary.LittleEndian.PutUint64(s.chunks[idx], values[f])
	}

	out := make([]byte, 0, s.size)
	for _, c := range s.chunks {
		out = append(out, c...)
	}

	sum := checksum(out)
	footer := out[len(out)-footerSize:]
	binary.LittleEndian.PutUint32(footer[footerChecksum1:], sum)
	binary.LittleEndian.PutUint32(footer[footerChecksum2:], sum)
	return out
}

// checksum returns the CRC32 (IEEE) of the body window of a complete file.
func checksum(file []byte) uint32 {
	body := len(file) - footerSize - headerSize
	return crc32.ChecksumIEEE(file[checksumOffset : checksumOffset+body])
}
