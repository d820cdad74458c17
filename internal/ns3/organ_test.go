package ns3_test

import (
	"testing"

	"nordpatch/internal/ns3"
	"nordpatch/internal/ns3/bitfield"
	"nordpatch/internal/testsupport"
)

// setDrawbars writes nine 4-bit positions into the 18-bit-per-entry
// drawbar run starting at base.
func setDrawbars(b *testsupport.PatchBuffer, base int, positions [9]int) {
	start := bitfield.AbsBit(base, 7)
	for i, v := range positions {
		b.SetBits(start+i*18, 4, v)
	}
}

func TestDecodeOrganSection(t *testing.T) {
	b := testsupport.NewPatch().
		SetFlag(0xB6, 7).
		SetBits(bitfield.AbsBit(0xB6, 2), 7, 90).
		SetByte(0xBA, 5).
		SetFlag(0xBB, 7).
		SetFlag(0xBB, 3).
		SetFlag(0xBB, 2).
		SetFlag(0xD3, 4).
		SetFlag(0xD3, 3).
		SetFlag(0xD3, 2).
		SetFlag(0xD3, 1).
		SetFlag(0xD3, 0).
		SetField(0x34, 3, 1, 5)
	setDrawbars(b, 0xBE, [9]int{8, 7, 6, 5, 4, 3, 2, 1, 0})
	setDrawbars(b, 0xD9, [9]int{0, 1, 2, 3, 4, 5, 6, 7, 8})

	p, err := ns3.DecodeBytes(b.Bytes(), "organ.ns3f")
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}

	o := p.Organ
	if !o.Enabled || o.Volume != 90 {
		t.Errorf("slot = enabled %v volume %d", o.Enabled, o.Volume)
	}
	if o.OctaveShift != -1 {
		t.Errorf("octave shift = %d, want -1", o.OctaveShift)
	}
	if !o.Sustain || !o.LiveMode || !o.Preset2On {
		t.Errorf("switches = sustain %v live %v preset2 %v", o.Sustain, o.LiveMode, o.Preset2On)
	}
	if got := o.Type.String(); got != "B3" {
		t.Errorf("type = %q", got)
	}
	if !o.VibratoOn || !o.PercussionOn || !o.HarmonicThird || !o.DecayFast || !o.VolumeSoft {
		t.Errorf("preset 1 switches = %+v", o)
	}
	// Mode selector lives in the global panel byte, not the section.
	if got := o.VibratoMode.String(); got != "C3" {
		t.Errorf("vibrato mode = %q", got)
	}

	if o.Drawbars1 != [9]int{8, 7, 6, 5, 4, 3, 2, 1, 0} {
		t.Errorf("drawbars 1 = %v", o.Drawbars1)
	}
	if o.Drawbars2 != [9]int{0, 1, 2, 3, 4, 5, 6, 7, 8} {
		t.Errorf("drawbars 2 = %v", o.Drawbars2)
	}
}

func TestOrganDrawbarPositionsClamped(t *testing.T) {
	b := testsupport.NewPatch()
	// Raw 4-bit values above 8 must clamp to the drawbar scale.
	setDrawbars(b, 0xBE, [9]int{15, 12, 9, 8, 0, 0, 0, 0, 0})

	p, err := ns3.DecodeBytes(b.Bytes(), "clamp.ns3f")
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	want := [9]int{8, 8, 8, 8, 0, 0, 0, 0, 0}
	if p.Organ.Drawbars1 != want {
		t.Errorf("drawbars = %v, want %v", p.Organ.Drawbars1, want)
	}
}

func TestOrganVoxDrawbarsBinarized(t *testing.T) {
	b := testsupport.NewPatch().SetField(0xBB, 6, 4, 1)
	setDrawbars(b, 0xBE, [9]int{0, 1, 2, 3, 4, 5, 6, 7, 8})
	setDrawbars(b, 0xD9, [9]int{8, 8, 8, 0, 0, 0, 4, 4, 4})

	p, err := ns3.DecodeBytes(b.Bytes(), "vox.ns3f")
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got := p.Organ.Type.String(); got != "Vox" {
		t.Fatalf("type = %q", got)
	}
	// Vox tabs collapse to off below 4 and on from 4 up.
	if p.Organ.Drawbars1 != [9]int{0, 0, 0, 0, 1, 1, 1, 1, 1} {
		t.Errorf("drawbars 1 = %v", p.Organ.Drawbars1)
	}
	if p.Organ.Drawbars2 != [9]int{1, 1, 1, 0, 0, 0, 1, 1, 1} {
		t.Errorf("drawbars 2 = %v", p.Organ.Drawbars2)
	}
}

func TestOrganFarfisaDropsOneFootStop(t *testing.T) {
	b := testsupport.NewPatch().SetField(0xBB, 6, 4, 2)
	setDrawbars(b, 0xBE, [9]int{8, 8, 8, 8, 8, 8, 8, 8, 8})
	setDrawbars(b, 0xD9, [9]int{5, 5, 5, 5, 5, 5, 5, 5, 5})

	p, err := ns3.DecodeBytes(b.Bytes(), "farfisa.ns3f")
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got := p.Organ.Type.String(); got != "Farfisa" {
		t.Fatalf("type = %q", got)
	}
	if p.Organ.Drawbars1[8] != 0 || p.Organ.Drawbars2[8] != 0 {
		t.Errorf("1' stop should read zero on Farfisa: %v / %v", p.Organ.Drawbars1, p.Organ.Drawbars2)
	}
	if p.Organ.Drawbars1[0] != 8 || p.Organ.Drawbars2[0] != 5 {
		t.Errorf("other stops must keep their positions: %v / %v", p.Organ.Drawbars1, p.Organ.Drawbars2)
	}
}

func TestOrganPipeDrawbarsUntouched(t *testing.T) {
	b := testsupport.NewPatch().SetField(0xBB, 6, 4, 3)
	setDrawbars(b, 0xBE, [9]int{1, 2, 3, 4, 5, 6, 7, 8, 3})

	p, err := ns3.DecodeBytes(b.Bytes(), "pipe.ns3f")
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got := p.Organ.Type.String(); got != "Pipe1" {
		t.Fatalf("type = %q", got)
	}
	if p.Organ.Drawbars1 != [9]int{1, 2, 3, 4, 5, 6, 7, 8, 3} {
		t.Errorf("pipe drawbars should pass through: %v", p.Organ.Drawbars1)
	}
}
