package ns3

import (
	"encoding/json"
	"testing"
)

func TestLabelFor(t *testing.T) {
	table := []string{"Zero", "One", "Two"}
	tests := []struct {
		name  string
		index int
		want  string
		known bool
	}{
		{"first", 0, "Zero", true},
		{"last", 2, "Two", true},
		{"past end", 3, "Unknown (3)", false},
		{"far past end", 250, "Unknown (250)", false},
		{"negative", -1, "Unknown (-1)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelFor(table, tt.index)
			if got.Value != tt.want {
				t.Errorf("value = %q, want %q", got.Value, tt.want)
			}
			if got.Known != tt.known {
				t.Errorf("known = %v, want %v", got.Known, tt.known)
			}
			if got.Index != tt.index {
				t.Errorf("index = %d, want %d", got.Index, tt.index)
			}
		})
	}
}

func TestLabelMarshalJSON(t *testing.T) {
	known, err := json.Marshal(labelFor(pianoTypes, 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(known) != `"Grand"` {
		t.Errorf("known label = %s", known)
	}

	unknown, err := json.Marshal(labelFor(pianoTypes, 9))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(unknown) != `"Unknown (9)"` {
		t.Errorf("unknown label = %s", unknown)
	}
}

func TestVocabularySizes(t *testing.T) {
	// Each selector's bit width bounds its index space; the tables must
	// stay within it so in-range indexes always resolve.
	tests := []struct {
		name  string
		table []string
		max   int
	}{
		{"piano types", pianoTypes, 8},
		{"piano timbre clav", pianoTimbreClav, 8},
		{"organ types", organTypes, 8},
		{"organ vibrato modes", organVibratoModes, 8},
		{"synth lfo waves", synthLFOWaves, 8},
		{"synth filter types", synthFilterTypes, 8},
		{"fx sources", fxSources, 4},
		{"fx1 types", fx1Types, 8},
		{"fx2 types", fx2Types, 8},
		{"reverb types", reverbTypes, 8},
		{"amp types", ampTypes, 8},
		{"rotary sources", rotarySources, 4},
	}
	for _, tt := range tests {
		if len(tt.table) > tt.max {
			t.Errorf("%s has %d entries, exceeds its %d-wide selector", tt.name, len(tt.table), tt.max)
		}
	}
}
