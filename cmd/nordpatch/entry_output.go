package main

import (
	"fmt"
	"strconv"
	"time"

	"nordpatch/internal/library"
	"nordpatch/internal/textutil"
)

// entryJSON is the wire shape for index entries. The library types carry
// no JSON tags on purpose; output formatting stays a CLI concern.
type entryJSON struct {
	Path           string    `json:"path"`
	FileName       string    `json:"file_name"`
	PatchName      string    `json:"patch_name,omitempty"`
	Bank           int       `json:"bank"`
	Location       int       `json:"location"`
	Category       int       `json:"category"`
	FormatVersion  int       `json:"format_version"`
	FormatType     int       `json:"format_type"`
	PianoOn        bool      `json:"piano_on"`
	OrganOn        bool      `json:"organ_on"`
	SynthOn        bool      `json:"synth_on"`
	PianoType      string    `json:"piano_type,omitempty"`
	OrganType      string    `json:"organ_type,omitempty"`
	SynthPreset    string    `json:"synth_preset,omitempty"`
	MasterClockBPM int       `json:"master_clock_bpm,omitempty"`
	Fingerprint    string    `json:"fingerprint,omitempty"`
	LegacyHeader   bool      `json:"legacy_header,omitempty"`
	DecodeError    string    `json:"decode_error,omitempty"`
	ErrorKind      string    `json:"error_kind,omitempty"`
	ScannedAt      time.Time `json:"scanned_at"`
}

func buildEntryJSON(entries []*library.Entry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{
			Path:           e.Path,
			FileName:       e.FileName,
			PatchName:      e.PatchName,
			Bank:           e.Bank,
			Location:       e.Location,
			Category:       e.Category,
			FormatVersion:  e.FormatVersion,
			FormatType:     e.FormatType,
			PianoOn:        e.PianoOn,
			OrganOn:        e.OrganOn,
			SynthOn:        e.SynthOn,
			PianoType:      e.PianoType,
			OrganType:      e.OrganType,
			SynthPreset:    e.SynthPreset,
			MasterClockBPM: e.MasterClockBPM,
			Fingerprint:    e.Fingerprint,
			LegacyHeader:   e.LegacyHeader,
			DecodeError:    e.DecodeError,
			ErrorKind:      e.ErrorKind,
			ScannedAt:      e.ScannedAt,
		})
	}
	return out
}

var entryListHeaders = []string{"Slot", "Name", "Sections", "Cat", "File"}

var entryListAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}

func buildEntryRows(entries []*library.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, buildEntryRow(e))
	}
	return rows
}

func buildEntryRow(e *library.Entry) []string {
	if !e.Decoded() {
		kind := e.ErrorKind
		if kind == "" {
			kind = "error"
		}
		return []string{"-", "(undecodable: " + kind + ")", "---", "-", e.FileName}
	}
	name := e.PatchName
	if name == "" {
		name = "(unnamed)"
	}
	return []string{
		formatSlot(e.Bank, e.Location),
		name,
		entrySections(e),
		strconv.Itoa(e.Category),
		e.FileName,
	}
}

// entrySections renders the enabled panel sections as a compact P/O/S
// marker column.
func entrySections(e *library.Entry) string {
	return textutil.Ternary(e.PianoOn, "P", "-") +
		textutil.Ternary(e.OrganOn, "O", "-") +
		textutil.Ternary(e.SynthOn, "S", "-")
}

func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}
