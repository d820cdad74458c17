package main

import (
	"fmt"
	"strconv"
	"strings"

	"nordpatch/internal/ns3"
	"nordpatch/internal/textutil"
)

func onOff(value bool) string {
	return textutil.Ternary(value, "on", "off")
}

func formatSlot(bank, location int) string {
	return fmt.Sprintf("%d:%02d", bank, location)
}

func buildSummaryRows(prog *ns3.Program) [][]string {
	transpose := "off"
	if prog.Transpose.On {
		transpose = fmt.Sprintf("%+d semitones", prog.Transpose.Semitones)
	}
	var sections []string
	if prog.Piano.Enabled {
		sections = append(sections, "piano")
	}
	if prog.Organ.Enabled {
		sections = append(sections, "organ")
	}
	if prog.Synth.Enabled {
		sections = append(sections, "synth")
	}
	rows := [][]string{
		{"Name", prog.Name},
		{"File", prog.FileName},
		{"Slot", formatSlot(prog.Bank, prog.Location)},
		{"Category", strconv.Itoa(prog.Category)},
		{"Format", fmt.Sprintf("v%d (type %d)", prog.FormatVersion, prog.FormatType)},
		{"Master clock", fmt.Sprintf("%d BPM", prog.MasterClockBPM)},
		{"Transpose", transpose},
		{"Sections", textutil.Ternary(len(sections) > 0, strings.Join(sections, ", "), "none")},
	}
	if prog.LegacyHeader {
		rows = append(rows, []string{"Header", "legacy NORD layout"})
	}
	return rows
}

func buildPianoRows(p ns3.Piano) [][]string {
	return [][]string{
		{"Type", p.Type.String()},
		{"Model", strconv.Itoa(p.Model)},
		{"Timbre", p.Timbre.String()},
		{"KB touch", p.KBTouch.String()},
		{"Volume", strconv.Itoa(p.Volume)},
		{"Octave shift", fmt.Sprintf("%+d", p.OctaveShift)},
		{"Pitch stick", onOff(p.PitchStick)},
		{"Sustain pedal", onOff(p.Sustain)},
		{"Soft release", onOff(p.SoftRelease)},
		{"String resonance", onOff(p.StringResonance)},
		{"Pedal noise", onOff(p.PedalNoise)},
	}
}

func buildOrganRows(o ns3.Organ) [][]string {
	vibrato := "off"
	if o.VibratoOn {
		vibrato = o.VibratoMode.String()
	}
	percussion := "off"
	if o.PercussionOn {
		extras := make([]string, 0, 3)
		if o.HarmonicThird {
			extras = append(extras, "3rd harmonic")
		}
		if o.DecayFast {
			extras = append(extras, "fast decay")
		}
		if o.VolumeSoft {
			extras = append(extras, "soft")
		}
		percussion = "on"
		if len(extras) > 0 {
			percussion += ", " + strings.Join(extras, ", ")
		}
	}
	return [][]string{
		{"Type", o.Type.String()},
		{"Live mode", onOff(o.LiveMode)},
		{"Preset II", onOff(o.Preset2On)},
		{"Vibrato/Chorus", vibrato},
		{"Percussion", percussion},
		{"Volume", strconv.Itoa(o.Volume)},
		{"Octave shift", fmt.Sprintf("%+d", o.OctaveShift)},
		{"Sustain pedal", onOff(o.Sustain)},
	}
}

// drawbarHeaders follow the B3 footage labels low to high.
var drawbarHeaders = []string{"Preset", "16'", "5 1/3'", "8'", "4'", "2 2/3'", "2'", "1 3/5'", "1 1/3'", "1'"}

func buildDrawbarRows(o ns3.Organ) [][]string {
	return [][]string{
		drawbarRow("I", o.Drawbars1),
		drawbarRow("II", o.Drawbars2),
	}
}

func drawbarRow(label string, bars [9]int) []string {
	row := make([]string, 0, len(bars)+1)
	row = append(row, label)
	for _, v := range bars {
		row = append(row, strconv.Itoa(v))
	}
	return row
}

func buildSynthRows(s ns3.Synth) [][]string {
	preset := strconv.Itoa(s.PresetLocation)
	if name := strings.TrimSpace(s.PresetName); name != "" {
		preset = fmt.Sprintf("%d (%s)", s.PresetLocation, name)
	}
	lfo := fmt.Sprintf("%s, rate %d", s.LFOWave, s.LFORate)
	if s.LFOMasterClock {
		lfo += ", master clock"
	}
	filter := fmt.Sprintf("%s, freq %d, res %d", s.FilterType, s.FilterFreq, s.FilterResonance)
	modEnv := fmt.Sprintf("A %d / D %d / R %d, velocity %s",
		s.ModEnv.Attack, s.ModEnv.Decay, s.ModEnv.Release, onOff(s.ModEnv.Velocity))
	ampEnv := fmt.Sprintf("A %d / D %d / R %d, velocity %d",
		s.AmpEnv.Attack, s.AmpEnv.Decay, s.AmpEnv.Release, s.AmpEnv.Velocity)
	arp := "off"
	if s.Arpeggiator.On {
		arp = fmt.Sprintf("%s %s, rate %d", s.Arpeggiator.Pattern, s.Arpeggiator.Range, s.Arpeggiator.Rate)
		if s.Arpeggiator.KBSync {
			arp += ", kb sync"
		}
		if s.Arpeggiator.MasterClock {
			arp += ", master clock"
		}
	}
	return [][]string{
		{"Preset", preset},
		{"Voice mode", s.VoiceMode.String()},
		{"Glide", strconv.Itoa(s.Glide)},
		{"Unison", s.Unison.String()},
		{"Vibrato", s.Vibrato.String()},
		{"Oscillator", s.OscType.String()},
		{"LFO", lfo},
		{"Filter", filter},
		{"KB track", s.KBTrack.String()},
		{"Drive", s.Drive.String()},
		{"Mod envelope", modEnv},
		{"Amp envelope", ampEnv},
		{"Arpeggiator", arp},
		{"Volume", strconv.Itoa(s.Volume)},
		{"Octave shift", fmt.Sprintf("%+d", s.OctaveShift)},
		{"Pitch stick", onOff(s.PitchStick)},
		{"Sustain pedal", onOff(s.Sustain)},
	}
}

func buildEffectsRows(fx ns3.Effects) [][]string {
	return [][]string{
		{"Rotary", rotarySummary(fx.Rotary)},
		{"Effect 1", effect1Summary(fx.Effect1)},
		{"Effect 2", effect2Summary(fx.Effect2)},
		{"Delay", delaySummary(fx.Delay)},
		{"Reverb", reverbSummary(fx.Reverb)},
		{"Amp sim / EQ", ampSimSummary(fx.AmpSimEQ)},
		{"Compressor", compressorSummary(fx.Compressor)},
	}
}

func rotarySummary(r ns3.Rotary) string {
	if !r.On {
		return "off"
	}
	return fmt.Sprintf("on (%s)", r.Source)
}

func effect1Summary(e ns3.Effect1) string {
	if !e.On {
		return "off"
	}
	out := fmt.Sprintf("%s on %s, rate %d, amount %d", e.Type, e.Source, e.Rate, e.Amount)
	if e.MasterClock {
		out += ", master clock"
	}
	return out
}

func effect2Summary(e ns3.Effect2) string {
	if !e.On {
		return "off"
	}
	return fmt.Sprintf("%s on %s, rate %d, amount %d", e.Type, e.Source, e.Rate, e.Amount)
}

func delaySummary(d ns3.Delay) string {
	if !d.On {
		return "off"
	}
	out := fmt.Sprintf("on %s, tempo %d, mix %d, feedback %d", d.Source, d.Tempo, d.Mix, d.Feedback)
	if d.MasterClock {
		out += ", master clock"
	}
	if d.PingPong {
		out += ", ping-pong"
	}
	if d.Filter != 0 {
		out += fmt.Sprintf(", filter %d", d.Filter)
	}
	if d.AnalogMode {
		out += ", analog"
	}
	return out
}

func reverbSummary(r ns3.Reverb) string {
	if !r.On {
		return "off"
	}
	out := fmt.Sprintf("%s, amount %d", r.Type, r.Amount)
	if r.Bright {
		out += ", bright"
	}
	return out
}

func ampSimSummary(a ns3.AmpSimEQ) string {
	if !a.On {
		return "off"
	}
	return fmt.Sprintf("%s, treble %d, mid %d (freq %d), bass %d",
		a.AmpType, a.Treble, a.MidRes, a.MidFilterFreq, a.BassDryWet)
}

func compressorSummary(c ns3.Compressor) string {
	if !c.On {
		return "off"
	}
	out := fmt.Sprintf("on, amount %d", c.Amount)
	if c.Fast {
		out += ", fast"
	}
	return out
}
