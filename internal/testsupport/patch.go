package testsupport

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// ProgramLength is the byte length of the patch images the builder
// produces, matching a full CRC-format dump.
const ProgramLength = 592

// PatchBuffer builds raw Nord Stage 3 program images for tests. Fields
// are written with the same MSB-first bit addressing the decoder reads
// with, so tests can state values in panel offset terms.
type PatchBuffer struct {
	data []byte
}

// NewPatch returns a zeroed full-length image carrying the production
// CBIN header and ns3f type tag.
func NewPatch() *PatchBuffer {
	b := NewRawPatch(ProgramLength)
	b.SetString(0x00, "CBIN")
	b.SetString(0x08, "ns3f")
	return b
}

// NewRawPatch returns a zeroed image of n bytes with no header.
func NewRawPatch(n int) *PatchBuffer {
	return &PatchBuffer{data: make([]byte, n)}
}

// SetByte stores v at off.
func (b *PatchBuffer) SetByte(off int, v byte) *PatchBuffer {
	b.data[off] = v
	return b
}

// SetFlag sets a single bit (7 = MSB) of the byte at off.
func (b *PatchBuffer) SetFlag(off, bit int) *PatchBuffer {
	b.data[off] |= 1 << bit
	return b
}

// SetField ORs v into bits hi..lo of the byte at off.
func (b *PatchBuffer) SetField(off, hi, lo, v int) *PatchBuffer {
	width := hi - lo + 1
	b.data[off] |= byte(v&(1<<width-1)) << lo
	return b
}

// SetBits ORs the count-bit value v into the image starting at the
// absolute MSB-first bit address start.
func (b *PatchBuffer) SetBits(start, count, v int) *PatchBuffer {
	for i := 0; i < count; i++ {
		if v>>(count-1-i)&1 == 0 {
			continue
		}
		abs := start + i
		b.data[abs/8] |= 1 << (7 - abs%8)
	}
	return b
}

// SetString stores s at off without padding or truncation beyond the
// image bounds.
func (b *PatchBuffer) SetString(off int, s string) *PatchBuffer {
	copy(b.data[off:], s)
	return b
}

// Bytes returns a copy of the image.
func (b *PatchBuffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// WritePatchFile writes the image to dir/name and returns the path.
func (b *PatchBuffer) WritePatchFile(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, b.data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteArchive zips the image under entryName and writes the archive to
// dir/name, returning the path.
func (b *PatchBuffer) WriteArchive(t testing.TB, dir, name, entryName string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(entryName)
	if err != nil {
		t.Fatalf("create archive entry %s: %v", entryName, err)
	}
	if _, err := w.Write(b.data); err != nil {
		t.Fatalf("write archive entry %s: %v", entryName, err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive %s: %v", path, err)
	}
	return path
}
