package ns3

import (
	"encoding/json"
	"fmt"
)

// Label is a decoded selector value: the raw index read from the patch
// plus the panel label it resolves to. Indexes outside the vocabulary
// keep the index and render as "Unknown (n)" so newer firmware values
// survive decoding instead of failing it.
type Label struct {
	Value string
	Index int
	Known bool
}

func labelFor(table []string, index int) Label {
	if index >= 0 && index < len(table) {
		return Label{Value: table[index], Index: index, Known: true}
	}
	return Label{Value: fmt.Sprintf("Unknown (%d)", index), Index: index}
}

func (l Label) String() string { return l.Value }

// MarshalJSON emits the label string only, keeping JSON output shaped
// like the panel display rather than the internal struct.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Value)
}
