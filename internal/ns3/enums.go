package ns3

// Panel vocabularies. Order matches the raw selector indexes stored in
// the patch, so position i in a table is the label for index i.

var pianoTypes = []string{"Grand", "Upright", "Electric", "Clav", "Digital", "Misc"}

var (
	pianoTimbreStandard = []string{"None", "Soft", "Mid", "Bright"}
	pianoTimbreElectric = []string{"None", "Soft", "Mid", "Bright", "Dyno1", "Dyno2"}
	pianoTimbreClav     = []string{
		"Soft", "Treble", "Soft+Treble", "Brilliant",
		"Soft+Brilliant", "Treble+Brilliant", "Soft+Treble+Brilliant", "Bass+Brilliant",
	}
)

var pianoKBTouch = []string{"Normal", "Touch 1", "Touch 2", "Touch 3"}

var (
	organTypes        = []string{"B3", "Vox", "Farfisa", "Pipe1", "Pipe2"}
	organVibratoModes = []string{"V1", "C1", "V2", "C2", "V3", "C3"}
)

var (
	synthVoiceModes  = []string{"Poly", "Legato", "Mono"}
	synthUnison      = []string{"Off", "Detune 1", "Detune 2", "Detune 3"}
	synthVibrato     = []string{"Off", "Delay 1", "Delay 2", "Delay 3", "Wheel", "AfterTouch"}
	synthLFOWaves    = []string{"Triangle", "Saw", "Neg Saw", "Square", "S&H"}
	synthOscTypes    = []string{"Classic", "Wave", "Formant", "Super", "Sample"}
	synthFilterTypes = []string{"LP12", "LP24", "Mini Moog", "LP+HP", "BP24", "HP24"}
	synthKBTrack     = []string{"Off", "1/3", "2/3", "1"}
	synthDrive       = []string{"Off", "Level 1", "Level 2", "Level 3"}
	synthArpPatterns = []string{"Up", "Down", "Up/Down", "Random"}
	synthArpRanges   = []string{"1 Oct", "2 Oct", "3 Oct", "4 Oct"}
)

var (
	fxSources     = []string{"Off", "Piano", "Synth", "Piano+Synth"}
	fx1Types      = []string{"A-Pan", "Trem", "RM", "Wa-Wa", "A-Wa 1", "A-Wa 2"}
	fx2Types      = []string{"Phas1", "Phas2", "Flanger", "Vibe", "Chor1", "Chor2"}
	reverbTypes   = []string{"Room 1", "Room 2", "Stage 1", "Stage 2", "Hall 1", "Hall 2"}
	ampTypes      = []string{"No Amp", "Small", "JC", "Twin", "4x4 Cab", "1x12 Cab", "4x12 Cab", "Acoustic"}
	rotarySources = []string{"Off", "Piano+Synth", "Synth", "Piano"}
)
