package ns3

import (
	"fmt"
	"path/filepath"
)

// MinProgramLength is the byte length of a complete program dump in
// the original format. The CRC-bearing revision runs 592 bytes.
const MinProgramLength = 574

// Options tune decoding strictness. The zero value is fully strict;
// DefaultOptions is what most callers want.
type Options struct {
	// AllowLegacy re-parses NORD-magic buffers under the prototype
	// header layout instead of rejecting them.
	AllowLegacy bool

	// StrictLength fails buffers shorter than MinProgramLength with
	// ErrTruncated instead of zero-filling the missing tail.
	StrictLength bool
}

// DefaultOptions returns the tolerant defaults: legacy headers
// accepted, short buffers zero-filled.
func DefaultOptions() Options {
	return Options{AllowLegacy: true}
}

// Decode reads and decodes the patch file at path with DefaultOptions.
func Decode(path string) (*Program, error) {
	return DecodeWith(path, DefaultOptions())
}

// DecodeWith reads and decodes the patch file at path.
func DecodeWith(path string, opts Options) (*Program, error) {
	data, err := ReadPatchBytes(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytesWith(data, filepath.Base(path), opts)
}

// DecodeBytes decodes an already-loaded raw .ns3f payload with
// DefaultOptions. filename is recorded on the Program as provenance
// and is not interpreted.
func DecodeBytes(data []byte, filename string) (*Program, error) {
	return DecodeBytesWith(data, filename, DefaultOptions())
}

// DecodeBytesWith decodes an already-loaded raw .ns3f payload.
func DecodeBytesWith(data []byte, filename string, opts Options) (*Program, error) {
	if opts.StrictLength && len(data) < MinProgramLength {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", ErrTruncated, len(data), MinProgramLength)
	}

	legacy := false
	switch {
	case hasMagic(data, 0x00, magicCBIN):
		if !hasMagic(data, 0x08, typeTagNS3F) {
			return nil, &FormatError{Field: "file type tag", Want: typeTagNS3F, Got: bytesAt(data, 0x08, 4)}
		}
	case opts.AllowLegacy && hasMagic(data, 0x00, magicNORD):
		legacy = true
	default:
		return nil, &FormatError{Field: "file magic", Want: magicCBIN, Got: bytesAt(data, 0x00, 4)}
	}

	p := &Program{
		FileName:  filename,
		RawLength: len(data),
	}
	if legacy {
		decodeLegacyHeader(data, p)
	} else {
		decodeHeader(data, p)
	}

	p.Piano = decodePiano(data)
	p.Organ = decodeOrgan(data)
	p.Synth = decodeSynth(data)
	p.Effects = decodeEffects(data)

	if legacy {
		applyLegacyEnables(data, p)
	}
	return p, nil
}
