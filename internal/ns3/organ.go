package ns3

import "nordpatch/internal/ns3/bitfield"

// decodeDrawbars reads nine drawbar positions from a packed run of
// 18-bit entries (4-bit position, 7-bit wheel morph, 7-bit aftertouch
// morph). Only the position is kept, clamped to the 0..8 drawbar scale.
func decodeDrawbars(data []byte, base int) [9]int {
	start := bitfield.AbsBit(base, 7)
	var out [9]int
	for i := range out {
		v := bitfield.Bits(data, start+i*18, 4)
		if v > 8 {
			v = 8
		}
		out[i] = v
	}
	return out
}

// decodeOrgan reads the organ section starting at 0xB6.
func decodeOrgan(data []byte) Organ {
	const B = 0xB6

	typeIdx := bitfield.Field(data, B+0x05, 6, 4)

	o := Organ{
		Enabled:     bitfield.Flag(data, B, 7),
		Volume:      bitfield.Bits(data, bitfield.AbsBit(B, 2), 7),
		OctaveShift: int(bitfield.ByteAt(data, B+0x04)) - 6,
		Sustain:     bitfield.Flag(data, B+0x05, 7),
		Type:        labelFor(organTypes, typeIdx),
		LiveMode:    bitfield.Flag(data, B+0x05, 3),
		Preset2On:   bitfield.Flag(data, B+0x05, 2),
		Drawbars1:   decodeDrawbars(data, B+0x08),
		Drawbars2:   decodeDrawbars(data, B+0x23),
	}

	// Preset 1 vibrato and percussion switches at 0xD3. The vibrato
	// mode selector itself sits in the global panel byte 0x34.
	const vp = 0xD3
	o.VibratoOn = bitfield.Flag(data, vp, 4)
	o.PercussionOn = bitfield.Flag(data, vp, 3)
	o.HarmonicThird = bitfield.Flag(data, vp, 2)
	o.DecayFast = bitfield.Flag(data, vp, 1)
	o.VolumeSoft = bitfield.Flag(data, vp, 0)
	o.VibratoMode = labelFor(organVibratoModes, bitfield.Field(data, 0x34, 3, 1))

	switch typeIdx {
	case 1: // Vox tabs are on/off, not 0..8
		for i := range o.Drawbars1 {
			o.Drawbars1[i] = voxTab(o.Drawbars1[i])
			o.Drawbars2[i] = voxTab(o.Drawbars2[i])
		}
	case 2: // Farfisa has no 1' stop
		o.Drawbars1[8] = 0
		o.Drawbars2[8] = 0
	}
	return o
}

func voxTab(v int) int {
	if v < 4 {
		return 0
	}
	return 1
}
