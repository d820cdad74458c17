package ns3

import "nordpatch/internal/ns3/bitfield"

// decodeSynth reads the synth section. The slot block starts at 0x52;
// engine parameters live in fixed panel bytes from 0x80 on.
func decodeSynth(data []byte) Synth {
	const B = 0x52

	s := Synth{
		Enabled:     bitfield.Flag(data, B, 7),
		Volume:      bitfield.Bits(data, bitfield.AbsBit(B, 2), 7),
		OctaveShift: int(bitfield.ByteAt(data, B+0x04)) - 6,
		PitchStick:  bitfield.Flag(data, B+0x05, 7),
		Sustain:     bitfield.Flag(data, B+0x05, 6),

		PresetLocation: bitfield.Field(data, B+0x05, 5, 0),
		PresetName:     bitfield.TrimmedString(data, B+0x06, 16),

		VoiceMode: labelFor(synthVoiceModes, bitfield.Bits(data, bitfield.AbsBit(0x84, 0), 2)),
		Glide:     bitfield.Field(data, 0x85, 6, 0),
		Unison:    labelFor(synthUnison, bitfield.Field(data, 0x86, 7, 6)),
		Vibrato:   labelFor(synthVibrato, bitfield.Field(data, 0x86, 5, 3)),

		OscType: labelFor(synthOscTypes, bitfield.Bits(data, bitfield.AbsBit(0x8D, 1), 3)),

		LFOWave:        labelFor(synthLFOWaves, bitfield.Field(data, 0x86, 2, 0)),
		LFORate:        bitfield.Field(data, 0x87, 6, 0),
		LFOMasterClock: bitfield.Flag(data, 0x87, 7),

		FilterType:      labelFor(synthFilterTypes, bitfield.Field(data, 0x98, 4, 2)),
		FilterFreq:      bitfield.Bits(data, bitfield.AbsBit(0x98, 1), 7),
		FilterResonance: bitfield.Bits(data, bitfield.AbsBit(0x99, 2), 7),

		KBTrack: labelFor(synthKBTrack, bitfield.Field(data, 0xA5, 5, 4)),
		Drive:   labelFor(synthDrive, bitfield.Field(data, 0xA5, 3, 2)),
	}

	// Both envelopes pack 7-bit stages across byte boundaries, each
	// stage starting where the previous one ended.
	s.ModEnv = ModEnvelope{
		Attack:   bitfield.Field(data, 0x8B, 7, 1),
		Decay:    bitfield.Bits(data, bitfield.AbsBit(0x8B, 0), 7),
		Release:  bitfield.Bits(data, bitfield.AbsBit(0x8C, 1), 7),
		Velocity: bitfield.Flag(data, 0x8D, 2),
	}
	s.AmpEnv = AmpEnvelope{
		Attack:   bitfield.Bits(data, bitfield.AbsBit(0xA5, 1), 7),
		Decay:    bitfield.Bits(data, bitfield.AbsBit(0xA6, 2), 7),
		Release:  bitfield.Bits(data, bitfield.AbsBit(0xA7, 3), 7),
		Velocity: bitfield.Field(data, 0xA8, 4, 3),
	}

	s.Arpeggiator = Arpeggiator{
		On:          bitfield.Flag(data, 0x80, 6),
		KBSync:      bitfield.Flag(data, 0x80, 5),
		Range:       labelFor(synthArpRanges, bitfield.Field(data, 0x80, 4, 3)),
		Pattern:     labelFor(synthArpPatterns, bitfield.Field(data, 0x80, 2, 1)),
		MasterClock: bitfield.Flag(data, 0x80, 0),
		Rate:        bitfield.Field(data, 0x81, 7, 1),
	}
	return s
}
