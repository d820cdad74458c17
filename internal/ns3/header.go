package ns3

import "nordpatch/internal/ns3/bitfield"

const (
	magicCBIN   = "CBIN"
	typeTagNS3F = "ns3f"
	magicNORD   = "NORD"
)

func hasMagic(data []byte, off int, want string) bool {
	if off < 0 || off+len(want) > len(data) {
		return false
	}
	return string(data[off:off+len(want)]) == want
}

func bytesAt(data []byte, off, n int) []byte {
	if off < 0 || off >= len(data) {
		return nil
	}
	end := off + n
	if end > len(data) {
		end = len(data)
	}
	out := make([]byte, end-off)
	copy(out, data[off:end])
	return out
}

// decodeHeader fills the production CBIN header: format type at 0x04,
// slot bytes at 0x0C/0x0E/0x10, the 16-byte program name at 0x18 and a
// big-endian format version at 0x2E.
func decodeHeader(data []byte, p *Program) {
	p.FormatType = int(bitfield.ByteAt(data, 0x04))
	p.Bank = int(bitfield.ByteAt(data, 0x0C))
	p.Location = int(bitfield.ByteAt(data, 0x0E))
	p.Category = int(bitfield.ByteAt(data, 0x10))
	p.Name = bitfield.TrimmedString(data, 0x18, 16)
	p.FormatVersion = bitfield.Uint16BE(data, 0x2E)
	decodePanelGlobals(data, p)
}

// decodeLegacyHeader fills header fields from the prototype NORD
// layout: big-endian version at 0x0A, program name at 0x10. Prototype
// dumps carry no bank, location or category bytes.
func decodeLegacyHeader(data []byte, p *Program) {
	p.LegacyHeader = true
	p.FormatVersion = bitfield.Uint16BE(data, 0x0A)
	p.Name = bitfield.TrimmedString(data, 0x10, 16)
	decodePanelGlobals(data, p)
}

// decodePanelGlobals reads the global panel bytes shared by both header
// schemes. The master clock stores an offset above the 30 BPM floor.
func decodePanelGlobals(data []byte, p *Program) {
	p.MasterClockBPM = bitfield.Bits(data, bitfield.AbsBit(0x38, 2), 8) + 30
	p.Transpose = Transpose{
		On:        bitfield.Flag(data, 0x34, 7),
		Semitones: bitfield.Field(data, 0x34, 6, 3) - 6,
	}
}

// applyLegacyEnables overrides the section enables from the packed
// panel byte at 0x30. Prototype dumps stored all three there instead of
// in the per-section bit.
func applyLegacyEnables(data []byte, p *Program) {
	p.Piano.Enabled = bitfield.Flag(data, 0x30, 7)
	p.Organ.Enabled = bitfield.Flag(data, 0x30, 6)
	p.Synth.Enabled = bitfield.Flag(data, 0x30, 5)
}
