package main

import (
	"testing"

	"nordpatch/internal/library"
)

func TestBuildEntryRowForFailedFile(t *testing.T) {
	row := buildEntryRow(&library.Entry{
		FileName:    "broken.ns3f",
		DecodeError: "decode: bad header",
		ErrorKind:   "format",
	})
	if row[0] != "-" || row[4] != "broken.ns3f" {
		t.Fatalf("unexpected row: %v", row)
	}
	requireContains(t, row[1], "format")
}

func TestEntrySectionsMarkers(t *testing.T) {
	if got := entrySections(&library.Entry{PianoOn: true, SynthOn: true}); got != "P-S" {
		t.Fatalf("sections = %q", got)
	}
	if got := entrySections(&library.Entry{}); got != "---" {
		t.Fatalf("sections = %q", got)
	}
}

func TestCountLabel(t *testing.T) {
	if got := countLabel(1, "match", "matches"); got != "1 match" {
		t.Fatalf("singular = %q", got)
	}
	if got := countLabel(3, "match", "matches"); got != "3 matches" {
		t.Fatalf("plural = %q", got)
	}
}
