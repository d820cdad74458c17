package ns3

// Program is a fully decoded Nord Stage 3 program: the header metadata
// plus one struct per panel section. JSON field names follow the panel
// terminology, so an encoded Program reads like the instrument display.
type Program struct {
	FileName      string `json:"filename"`
	FormatVersion uint16 `json:"format_version"`
	FormatType    int    `json:"format_type"`
	Name          string `json:"name"`
	Bank          int    `json:"bank"`
	Location      int    `json:"location"`
	Category      int    `json:"category"`

	// MasterClockBPM is the stored clock offset plus 30, the panel floor.
	MasterClockBPM int       `json:"master_clock_bpm"`
	Transpose      Transpose `json:"transpose"`

	Piano   Piano   `json:"piano"`
	Organ   Organ   `json:"organ"`
	Synth   Synth   `json:"synth"`
	Effects Effects `json:"effects"`

	// LegacyHeader marks programs recovered through the prototype NORD
	// header layout rather than the production CBIN one.
	LegacyHeader bool `json:"legacy_header,omitempty"`

	// RawLength is the byte length of the raw patch payload before
	// decoding, after any container unwrapping.
	RawLength int `json:"raw_length"`
}

// Transpose is the global semitone shift. Stored center is 6, so the
// decoded range runs -6..+6.
type Transpose struct {
	On        bool `json:"on"`
	Semitones int  `json:"semitones"`
}

// Piano is the piano panel section.
type Piano struct {
	Enabled     bool `json:"enabled"`
	Volume      int  `json:"volume"`
	OctaveShift int  `json:"octave_shift"`
	PitchStick  bool `json:"pitch_stick"`
	Sustain     bool `json:"sustain"`

	Type  Label `json:"type"`
	Model int   `json:"model"`
	// Timbre resolves against a per-type vocabulary: Electric and Clav
	// pianos have their own timbre sets.
	Timbre  Label `json:"timbre"`
	KBTouch Label `json:"kb_touch"`

	SoftRelease     bool `json:"soft_release"`
	StringResonance bool `json:"string_resonance"`
	PedalNoise      bool `json:"pedal_noise"`
}

// Organ is the organ panel section. Drawbar positions run 0..8 low to
// high; Vox organs collapse them to 0/1 and Farfisa forces the 1' stop
// (index 8) to zero, matching the instrument's own display rules.
type Organ struct {
	Enabled     bool `json:"enabled"`
	Volume      int  `json:"volume"`
	OctaveShift int  `json:"octave_shift"`
	Sustain     bool `json:"sustain"`

	Type      Label `json:"type"`
	LiveMode  bool  `json:"live_mode"`
	Preset2On bool  `json:"preset2_on"`

	VibratoOn     bool  `json:"vibrato_on"`
	VibratoMode   Label `json:"vibrato_mode"`
	PercussionOn  bool  `json:"percussion_on"`
	HarmonicThird bool  `json:"harmonic_third"`
	DecayFast     bool  `json:"decay_fast"`
	VolumeSoft    bool  `json:"volume_soft"`

	Drawbars1 [9]int `json:"drawbars_1"`
	Drawbars2 [9]int `json:"drawbars_2"`
}

// Synth is the synth panel section.
type Synth struct {
	Enabled     bool `json:"enabled"`
	Volume      int  `json:"volume"`
	OctaveShift int  `json:"octave_shift"`
	PitchStick  bool `json:"pitch_stick"`
	Sustain     bool `json:"sustain"`

	PresetLocation int    `json:"preset_location"`
	PresetName     string `json:"preset_name"`

	VoiceMode Label `json:"voice_mode"`
	Glide     int   `json:"glide"`
	Unison    Label `json:"unison"`
	Vibrato   Label `json:"vibrato"`

	OscType Label `json:"osc_type"`

	LFOWave        Label `json:"lfo_wave"`
	LFORate        int   `json:"lfo_rate"`
	LFOMasterClock bool  `json:"lfo_master_clock"`

	FilterType      Label `json:"filter_type"`
	FilterFreq      int   `json:"filter_freq"`
	FilterResonance int   `json:"filter_resonance"`

	KBTrack Label `json:"kb_track"`
	Drive   Label `json:"drive"`

	ModEnv ModEnvelope `json:"mod_env"`
	AmpEnv AmpEnvelope `json:"amp_env"`

	Arpeggiator Arpeggiator `json:"arpeggiator"`
}

// ModEnvelope is the modulation envelope. Velocity here is a single
// on/off switch rather than the amp envelope's stepped response.
type ModEnvelope struct {
	Attack   int  `json:"attack"`
	Decay    int  `json:"decay"`
	Release  int  `json:"release"`
	Velocity bool `json:"velocity"`
}

// AmpEnvelope is the amplifier envelope.
type AmpEnvelope struct {
	Attack   int `json:"attack"`
	Decay    int `json:"decay"`
	Release  int `json:"release"`
	Velocity int `json:"velocity"`
}

// Arpeggiator is the synth arpeggiator block.
type Arpeggiator struct {
	On          bool  `json:"on"`
	KBSync      bool  `json:"kb_sync"`
	Range       Label `json:"range"`
	Pattern     Label `json:"pattern"`
	MasterClock bool  `json:"master_clock"`
	Rate        int   `json:"rate"`
}

// Effects is the effects panel section.
type Effects struct {
	Rotary     Rotary     `json:"rotary"`
	Effect1    Effect1    `json:"effect1"`
	Effect2    Effect2    `json:"effect2"`
	Delay      Delay      `json:"delay"`
	Reverb     Reverb     `json:"reverb"`
	AmpSimEQ   AmpSimEQ   `json:"amp_sim_eq"`
	Compressor Compressor `json:"compressor"`
}

// Rotary is the rotary speaker routing block.
type Rotary struct {
	On     bool  `json:"on"`
	Source Label `json:"source"`
}

// Effect1 is the first modulation effect slot.
type Effect1 struct {
	On          bool  `json:"on"`
	Source      Label `json:"source"`
	Type        Label `json:"type"`
	Rate        int   `json:"rate"`
	Amount      int   `json:"amount"`
	MasterClock bool  `json:"master_clock"`
}

// Effect2 is the second modulation effect slot. Its enable shares a
// stored bit with the reverb enable, so the two always decode equal.
type Effect2 struct {
	On     bool  `json:"on"`
	Source Label `json:"source"`
	Type   Label `json:"type"`
	Rate   int   `json:"rate"`
	Amount int   `json:"amount"`
}

// Delay is the delay effect block.
type Delay struct {
	On          bool  `json:"on"`
	Source      Label `json:"source"`
	MasterClock bool  `json:"master_clock"`
	Tempo       int   `json:"tempo"`
	Mix         int   `json:"mix"`
	PingPong    bool  `json:"ping_pong"`
	Filter      int   `json:"filter"`
	Feedback    int   `json:"feedback"`
	AnalogMode  bool  `json:"analog_mode"`
}

// Reverb is the reverb block. On mirrors Effect2.On; see Effect2.
type Reverb struct {
	On     bool  `json:"on"`
	Type   Label `json:"type"`
	Bright bool  `json:"bright"`
	Amount int   `json:"amount"`
}

// AmpSimEQ is the amp simulator and EQ block.
type AmpSimEQ struct {
	On            bool  `json:"on"`
	AmpType       Label `json:"amp_type"`
	Treble        int   `json:"treble"`
	MidRes        int   `json:"mid_res"`
	BassDryWet    int   `json:"bass_dry_wet"`
	MidFilterFreq int   `json:"mid_filter_freq"`
}

// Compressor is the output compressor block.
type Compressor struct {
	On     bool `json:"on"`
	Amount int  `json:"amount"`
	Fast   bool `json:"fast"`
}
