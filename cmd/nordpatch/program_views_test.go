package main

import (
	"testing"

	"nordpatch/internal/ns3"
)

func TestBuildSummaryRowsMarksLegacyHeader(t *testing.T) {
	prog := &ns3.Program{Name: "Proto Lead", LegacyHeader: true}
	rows := buildSummaryRows(prog)
	last := rows[len(rows)-1]
	if last[0] != "Header" || last[1] != "legacy NORD layout" {
		t.Fatalf("unexpected final row: %v", last)
	}
}

func TestBuildSummaryRowsListsEnabledSections(t *testing.T) {
	prog := &ns3.Program{
		Piano: ns3.Piano{Enabled: true},
		Synth: ns3.Synth{Enabled: true},
	}
	for _, row := range buildSummaryRows(prog) {
		if row[0] == "Sections" {
			if row[1] != "piano, synth" {
				t.Fatalf("sections = %q", row[1])
			}
			return
		}
	}
	t.Fatal("no Sections row")
}

func TestDelaySummary(t *testing.T) {
	if got := delaySummary(ns3.Delay{}); got != "off" {
		t.Fatalf("off = %q", got)
	}
	on := delaySummary(ns3.Delay{
		On:       true,
		Source:   ns3.Label{Value: "Synth"},
		Tempo:    90,
		Mix:      64,
		Feedback: 80,
		PingPong: true,
	})
	requireContains(t, on, "on Synth")
	requireContains(t, on, "tempo 90")
	requireContains(t, on, "ping-pong")
}

func TestDrawbarRowCoversAllStops(t *testing.T) {
	row := drawbarRow("I", [9]int{8, 0, 8, 0, 0, 0, 0, 0, 4})
	if len(row) != len(drawbarHeaders) {
		t.Fatalf("row width %d, headers %d", len(row), len(drawbarHeaders))
	}
	if row[0] != "I" || row[1] != "8" || row[9] != "4" {
		t.Fatalf("unexpected row: %v", row)
	}
}
