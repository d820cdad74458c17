package ns3

import "nordpatch/internal/ns3/bitfield"

// decodePiano reads the piano section starting at 0x43.
func decodePiano(data []byte) Piano {
	const B = 0x43

	typeIdx := bitfield.Field(data, B+0x05, 5, 3)

	p := Piano{
		Enabled: bitfield.Flag(data, B, 7),
		// 3 low bits of 0x43 plus 4 high bits of 0x44.
		Volume:      bitfield.Bits(data, bitfield.AbsBit(B, 2), 7),
		OctaveShift: int(bitfield.ByteAt(data, B+0x04)) - 6,
		PitchStick:  bitfield.Flag(data, B+0x05, 7),
		Sustain:     bitfield.Flag(data, B+0x05, 6),
		Type:        labelFor(pianoTypes, typeIdx),
		Model:       bitfield.Bits(data, bitfield.AbsBit(B+0x05, 2), 5),
		KBTouch:     labelFor(pianoKBTouch, bitfield.Bits(data, bitfield.AbsBit(B+0x0A, 0), 2)),

		SoftRelease:     bitfield.Flag(data, B+0x0A, 4),
		StringResonance: bitfield.Flag(data, B+0x0A, 3),
		PedalNoise:      bitfield.Flag(data, B+0x0A, 2),
	}

	timbreIdx := bitfield.Field(data, B+0x0B, 5, 3)
	switch typeIdx {
	case 2: // Electric
		p.Timbre = labelFor(pianoTimbreElectric, timbreIdx)
	case 3: // Clav
		p.Timbre = labelFor(pianoTimbreClav, timbreIdx)
	default:
		p.Timbre = labelFor(pianoTimbreStandard, timbreIdx)
	}
	return p
}
