// Package bitfield reads MSB-first bit-packed fields out of raw patch
// buffers. Offsets are byte positions, bit positions count 7 (most
// significant) down to 0, and absolute bit addresses grow left to right
// across the buffer. Reads past either end of the buffer yield zero so
// callers can decode short or padded dumps without bounds bookkeeping.
package bitfield

import (
	"strings"
)

// ByteAt returns the byte at off, or zero when off is outside the buffer.
func ByteAt(data []byte, off int) byte {
	if off < 0 || off >= len(data) {
		return 0
	}
	return data[off]
}

// AbsBit converts a byte offset plus a bit position (7..0, MSB first)
// into an absolute bit address.
func AbsBit(off, bit int) int {
	return off*8 + (7 - bit)
}

// Bits reads count bits starting at absolute bit address start and
// returns them as an unsigned integer, most significant bit first. Bits
// outside the buffer read as zero.
func Bits(data []byte, start, count int) int {
	v := 0
	for i := 0; i < count; i++ {
		abs := start + i
		b := ByteAt(data, abs/8)
		shift := 7 - abs%8
		v = v<<1 | int(b>>shift)&1
	}
	return v
}

// Field reads the bits hi..lo (inclusive, 7..0) of the single byte at off.
func Field(data []byte, off, hi, lo int) int {
	b := ByteAt(data, off)
	width := hi - lo + 1
	return int(b>>lo) & (1<<width - 1)
}

// Flag reports whether the given bit of the byte at off is set.
func Flag(data []byte, off, bit int) bool {
	return ByteAt(data, off)>>bit&1 == 1
}

// Uint16BE reads a big-endian 16-bit value at off.
func Uint16BE(data []byte, off int) uint16 {
	return uint16(ByteAt(data, off))<<8 | uint16(ByteAt(data, off+1))
}

// TrimmedString reads a fixed-width text field at off. Trailing NUL
// padding is dropped, bytes outside printable ASCII become the Unicode
// replacement rune, and surrounding whitespace is trimmed.
func TrimmedString(data []byte, off, length int) string {
	if off < 0 || off >= len(data) || length <= 0 {
		return ""
	}
	end := off + length
	if end > len(data) {
		end = len(data)
	}
	raw := data[off:end]
	for len(raw) > 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		if b > 0x7F {
			sb.WriteRune('�')
			continue
		}
		sb.WriteByte(b)
	}
	return strings.TrimSpace(sb.String())
}
