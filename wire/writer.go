// Package wire implements the Writer contract from spec.md §4.5: an
// append-only byte buffer with one method per scalar kind, tag emission,
// and nested length-delimited framing via fork/ldelim. The primitives are
// modernized versions of proto/encode.go's EncodeVarint/EncodeFixed32/
// EncodeFixed64/EncodeZigzag32/EncodeZigzag64 family; the fork/ldelim
// retroactive length-prefixing follows the "speculative length" pattern
// from blastbao-protobuf-go__encode.go's appendSpeculativeLength/
// finishSpeculativeLength.
package wire

import (
	"math"
)

// speculativeLength is the number of bytes initially reserved for a
// fork's length prefix. Most nested messages and packed runs fit in a
// single-byte varint length; ldelim shifts the payload right when more
// bytes turn out to be needed.
const speculativeLength = 1

// Writer is an append-only byte buffer used by the encoder to build a
// wire-format message. A Writer is not safe for concurrent use; callers
// own its buffer for the lifetime of a single encode.
type Writer struct {
	buf   []byte
	forks []int // stack of positions returned by fork, awaiting ldelim
}

// NewWriter returns a Writer with an empty buffer.
func NewWriter() *Writer { return &Writer{} }

// Len reports the number of bytes written so far, including any open
// fork's reserved length-prefix bytes.
func (w *Writer) Len() int { return len(w.buf) }

// Tag writes the varint tag byte(s) for fieldId and wireType: (fieldId <<
// 3) | wireType, per spec.md §6.
func (w *Writer) Tag(fieldID int32, wt WireType) {
	w.Varint(uint64(fieldID)<<3 | uint64(wt))
}

// Varint appends x in base-128 little-endian groups, the format for
// int32, int64, uint32, uint64, bool, and enum fields.
func (w *Writer) Varint(x uint64) {
	for x >= 1<<7 {
		w.buf = append(w.buf, byte(x&0x7f|0x80))
		x >>= 7
	}
	w.buf = append(w.buf, byte(x))
}

// Zigzag32 appends the zigzag-encoded varint for a signed 32-bit value,
// the format for sint32.
func (w *Writer) Zigzag32(x int32) {
	w.Varint(uint64(uint32(x<<1) ^ uint32(x>>31)))
}

// Zigzag64 appends the zigzag-encoded varint for a signed 64-bit value,
// the format for sint64.
func (w *Writer) Zigzag64(x int64) {
	w.Varint(uint64(x<<1) ^ uint64(x>>63))
}

// Fixed32 appends x as 4 little-endian bytes, the format for fixed32 and
// sfixed32 (via its bit pattern).
func (w *Writer) Fixed32(x uint32) {
	w.buf = append(w.buf, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
}

// Fixed64 appends x as 8 little-endian bytes, the format for fixed64 and
// sfixed64 (via its bit pattern).
func (w *Writer) Fixed64(x uint64) {
	w.buf = append(w.buf,
		byte(x), byte(x>>8), byte(x>>16), byte(x>>24),
		byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56))
}

// Int32 writes a plain (non-zigzag) int32 as a varint.
func (w *Writer) Int32(x int32) { w.Varint(uint64(uint32(x))) }

// Int64 writes a plain (non-zigzag) int64 as a varint.
func (w *Writer) Int64(x int64) { w.Varint(uint64(x)) }

// Uint32 writes a uint32 as a varint.
func (w *Writer) Uint32(x uint32) { w.Varint(uint64(x)) }

// Uint64 writes a uint64 as a varint.
func (w *Writer) Uint64(x uint64) { w.Varint(x) }

// Sfixed32 writes an sfixed32 as its 4-byte little-endian bit pattern.
func (w *Writer) Sfixed32(x int32) { w.Fixed32(uint32(x)) }

// Sfixed64 writes an sfixed64 as its 8-byte little-endian bit pattern.
func (w *Writer) Sfixed64(x int64) { w.Fixed64(uint64(x)) }

// Float writes a float32 as its IEEE-754 bit pattern, little-endian.
func (w *Writer) Float(x float32) { w.Fixed32(math.Float32bits(x)) }

// Double writes a float64 as its IEEE-754 bit pattern, little-endian.
func (w *Writer) Double(x float64) { w.Fixed64(math.Float64bits(x)) }

// Bool writes a bool as a single varint byte, 0 or 1.
func (w *Writer) Bool(x bool) {
	if x {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// Bytes writes a length-delimited raw byte string: the length as a
// varint, then the bytes themselves. Used for bytes-kinded fields;
// strings go through String, and submessages through Fork/Ldelim.
func (w *Writer) Bytes(b []byte) {
	w.Varint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// String writes a length-delimited UTF-8 string.
func (w *Writer) String(s string) {
	w.Varint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// Fork opens a nested length-delimited region: it reserves
// speculativeLength placeholder bytes for the eventual length prefix and
// pushes the reservation's position onto the fork stack. The caller
// writes the region's payload directly to w, then calls Ldelim to close
// it.
func (w *Writer) Fork() {
	pos := w.Len()
	var zero [speculativeLength]byte
	w.buf = append(w.buf, zero[:]...)
	w.forks = append(w.forks, pos)
}

// Ldelim closes the most recently opened Fork, retroactively prefixing
// the bytes written since Fork with their length as a varint. If the
// varint needs more than speculativeLength bytes, the payload is shifted
// right to make room. Ldelim panics if there is no open fork; that is a
// programmer error in the encoder, not a data error.
func (w *Writer) Ldelim() {
	if w.Open() == 0 {
		panic("wire: Ldelim with no matching Fork")
	}
	n := len(w.forks)
	pos := w.forks[n-1]
	w.forks = w.forks[:n-1]

	payloadLen := w.Len() - pos - speculativeLength
	size := varintSize(uint64(payloadLen))
	if size != speculativeLength {
		w.buf = append(w.buf, make([]byte, size-speculativeLength)...)
		copy(w.buf[pos+size:], w.buf[pos+speculativeLength:pos+speculativeLength+payloadLen])
		w.buf = w.buf[:pos+size+payloadLen]
	}
	putVarint(w.buf[pos:pos+size], uint64(payloadLen))
}

// Open reports the current fork nesting depth. A successful Finish
// requires this to be zero.
func (w *Writer) Open() int { return len(w.forks) }

// Finish returns the final encoded byte buffer. It panics if any Fork is
// still unmatched by a Ldelim, per spec.md §5's bracket-balance
// requirement.
func (w *Writer) Finish() []byte {
	if w.Open() != 0 {
		panic("wire: Finish called with unclosed Fork")
	}
	return w.buf
}

func varintSize(x uint64) int {
	n := 1
	for x >= 1<<7 {
		x >>= 7
		n++
	}
	return n
}

func putVarint(b []byte, x uint64) {
	i := 0
	for x >= 1<<7 {
		b[i] = byte(x&0x7f | 0x80)
		x >>= 7
		i++
	}
	b[i] = byte(x)
}
