package ns3

import "nordpatch/internal/ns3/bitfield"

// decodeEffects reads the effects section starting at 0x10B, plus the
// reverb and compressor blocks at their fixed offsets.
func decodeEffects(data []byte) Effects {
	const B = 0x10B

	var fx Effects

	fx.Rotary = Rotary{
		On:     bitfield.Flag(data, B, 7),
		Source: labelFor(rotarySources, bitfield.Field(data, B, 6, 5)),
	}

	fx.Effect1 = Effect1{
		On:          bitfield.Flag(data, B, 4),
		Source:      labelFor(fxSources, bitfield.Field(data, B, 3, 2)),
		Type:        labelFor(fx1Types, bitfield.Bits(data, bitfield.AbsBit(B, 1), 3)),
		MasterClock: bitfield.Flag(data, B+1, 6),
		Rate:        bitfield.Field(data, B+1, 5, 0),
		Amount:      bitfield.Field(data, B+5, 6, 0),
	}

	fx.Effect2 = Effect2{
		On:     bitfield.Flag(data, B+9, 7),
		Source: labelFor(fxSources, bitfield.Field(data, B+9, 6, 5)),
		Type:   labelFor(fx2Types, bitfield.Field(data, B+9, 4, 2)),
		Rate:   bitfield.Bits(data, bitfield.AbsBit(B+9, 1), 7),
		Amount: bitfield.Bits(data, bitfield.AbsBit(B+10, 2), 7),
	}

	fx.Delay = Delay{
		On:          bitfield.Flag(data, B+14, 3),
		Source:      labelFor(fxSources, bitfield.Field(data, B+14, 2, 1)),
		MasterClock: bitfield.Flag(data, B+14, 0),
		Tempo:       bitfield.Bits(data, bitfield.AbsBit(B+15, 7), 14),
		Mix:         bitfield.Bits(data, bitfield.AbsBit(B+22, 7), 7),
		PingPong:    bitfield.Flag(data, B+26, 5),
		Filter:      bitfield.Field(data, B+26, 4, 3),
		Feedback:    bitfield.Bits(data, bitfield.AbsBit(B+26, 2), 7),
		AnalogMode:  bitfield.Flag(data, B+30, 3),
	}

	fx.Reverb = Reverb{
		// Shares its enable bit with Effect2.
		On:     bitfield.Flag(data, B+9, 7),
		Type:   labelFor(reverbTypes, bitfield.Bits(data, bitfield.AbsBit(0x134, 0), 3)),
		Bright: bitfield.Flag(data, 0x135, 5),
		Amount: bitfield.Bits(data, bitfield.AbsBit(0x135, 4), 7),
	}

	fx.AmpSimEQ = AmpSimEQ{
		On:            bitfield.Flag(data, B+30, 2),
		AmpType:       labelFor(ampTypes, bitfield.Field(data, B+31, 7, 5)),
		Treble:        bitfield.Bits(data, bitfield.AbsBit(B+31, 4), 7),
		MidRes:        bitfield.Bits(data, bitfield.AbsBit(B+32, 5), 7),
		BassDryWet:    bitfield.Field(data, B+33, 6, 0),
		MidFilterFreq: bitfield.Field(data, B+34, 7, 1),
	}

	fx.Compressor = Compressor{
		On:     bitfield.Flag(data, 0x139, 5),
		Amount: bitfield.Bits(data, bitfield.AbsBit(0x139, 4), 7),
		Fast:   bitfield.Flag(data, 0x13A, 5),
	}

	return fx
}
