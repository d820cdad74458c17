package library_test

import (
	"context"
	"path/filepath"
	"testing"

	"nordpatch/internal/library"
	"nordpatch/internal/testsupport"
)

func intPtr(v int) *int { return &v }

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := &library.Entry{
		Path:           filepath.Join(cfg.Paths.LibraryDir, "Grand One.ns3f"),
		PatchName:      "Grand One",
		Bank:           2,
		Location:       17,
		Category:       4,
		FormatVersion:  3,
		PianoOn:        true,
		PianoType:      "Grand",
		MasterClockBPM: 120,
		Fingerprint:    "fp-grand-one",
		ScanID:         "scan-1",
	}
	stored, err := store.Upsert(ctx, entry)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if stored.ID == 0 {
		t.Fatal("expected entry ID to be assigned")
	}
	if stored.FileName != "Grand One.ns3f" {
		t.Fatalf("expected file name derived from path, got %q", stored.FileName)
	}

	fetched, err := store.GetByPath(ctx, entry.Path)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected stored entry to be fetchable")
	}
	if fetched.PatchName != "Grand One" || fetched.Bank != 2 || fetched.Location != 17 {
		t.Fatalf("unexpected fetched entry: %#v", fetched)
	}
	if !fetched.PianoOn || fetched.PianoType != "Grand" {
		t.Fatalf("expected piano section persisted, got %#v", fetched)
	}
	if fetched.MasterClockBPM != 120 || fetched.Fingerprint != "fp-grand-one" {
		t.Fatalf("unexpected clock or fingerprint: %#v", fetched)
	}
	if !fetched.Decoded() {
		t.Fatal("expected entry without decode error to report decoded")
	}
	if fetched.CreatedAt.IsZero() || fetched.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps set, got created=%v updated=%v", fetched.CreatedAt, fetched.UpdatedAt)
	}
}

func TestUpsertRequiresPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.Upsert(ctx, nil); err == nil {
		t.Fatal("expected error for nil entry")
	}
	if _, err := store.Upsert(ctx, &library.Entry{PatchName: "No Path"}); err == nil {
		t.Fatal("expected error when path missing")
	}
}

func TestUpsertRefreshesExisting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	path := filepath.Join(cfg.Paths.LibraryDir, "slot.ns3f")
	first, err := store.Upsert(ctx, &library.Entry{Path: path, PatchName: "Before", Bank: 0, ScanID: "scan-1"})
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	second, err := store.Upsert(ctx, &library.Entry{Path: path, PatchName: "After", Bank: 5, ScanID: "scan-2"})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected row to be refreshed in place, IDs %d and %d", first.ID, second.ID)
	}
	if second.PatchName != "After" || second.Bank != 5 || second.ScanID != "scan-2" {
		t.Fatalf("expected fields refreshed, got %#v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected created_at preserved, before %v after %v", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("expected updated_at to advance, before %v after %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestGetByPathMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	entry, err := store.GetByPath(context.Background(), "/nowhere/missing.ns3f")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil for missing path, got %#v", entry)
	}
}

func TestListFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	dir := cfg.Paths.LibraryDir
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "a.ns3f"), PatchName: "Ballad Grand",
		Bank: 0, Location: 1, PianoOn: true, Fingerprint: "fp-a",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "b.ns3f"), PatchName: "Saw Lead",
		Bank: 1, Location: 0, SynthOn: true, Fingerprint: "fp-b",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "c.ns3f"), PatchName: "Prototype B3",
		Bank: 1, Location: 4, OrganOn: true, LegacyHeader: true, Fingerprint: "fp-c",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "d.ns3f"), PatchName: "",
		DecodeError: "bad file magic", ErrorKind: "format",
	})

	all, err := store.List(ctx, library.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(all))
	}
	if all[0].PatchName != "" || all[1].PatchName != "Ballad Grand" {
		t.Fatalf("expected bank then location ordering, got %q, %q", all[0].PatchName, all[1].PatchName)
	}

	bankOne, err := store.List(ctx, library.Filter{Bank: intPtr(1)})
	if err != nil {
		t.Fatalf("List by bank failed: %v", err)
	}
	if len(bankOne) != 2 || bankOne[0].PatchName != "Saw Lead" || bankOne[1].PatchName != "Prototype B3" {
		t.Fatalf("unexpected bank filter result: %d entries", len(bankOne))
	}

	synths, err := store.List(ctx, library.Filter{SynthOn: true})
	if err != nil {
		t.Fatalf("List by synth failed: %v", err)
	}
	if len(synths) != 1 || synths[0].PatchName != "Saw Lead" {
		t.Fatalf("unexpected synth filter result: %#v", synths)
	}

	legacy, err := store.List(ctx, library.Filter{LegacyOnly: true})
	if err != nil {
		t.Fatalf("List by legacy failed: %v", err)
	}
	if len(legacy) != 1 || legacy[0].PatchName != "Prototype B3" {
		t.Fatalf("unexpected legacy filter result: %#v", legacy)
	}

	failed, err := store.List(ctx, library.Filter{FailedOnly: true})
	if err != nil {
		t.Fatalf("List by failed failed: %v", err)
	}
	if len(failed) != 1 || failed[0].ErrorKind != "format" {
		t.Fatalf("unexpected failed filter result: %#v", failed)
	}
	if failed[0].Decoded() {
		t.Fatal("expected failed entry to report not decoded")
	}

	limited, err := store.List(ctx, library.Filter{Limit: 2})
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(limited))
	}
}

func TestSearchFoldsAndRanks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	dir := cfg.Paths.LibraryDir
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "royal.ns3f"), PatchName: "Royal Grand", Fingerprint: "fp-1",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "grand.ns3f"), PatchName: "Grand Piano", Fingerprint: "fp-2",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "lead.ns3f"), PatchName: "Whistle Lead", Fingerprint: "fp-3",
	})

	results, err := store.Search(ctx, "ROYAL GRAND")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].PatchName != "Royal Grand" {
		t.Fatalf("expected full match ranked first, got %q", results[0].PatchName)
	}

	grand, err := store.Search(ctx, "grand")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(grand) != 2 {
		t.Fatalf("expected 2 matches for token query, got %d", len(grand))
	}

	none, err := store.Search(ctx, "clavinet")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}

	blank, err := store.Search(ctx, "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(blank) != 0 {
		t.Fatalf("expected blank query to match nothing, got %d", len(blank))
	}
}

func TestSearchMatchesFileName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	// Failed rows have no decoded patch name; the file name is still a
	// search key.
	testsupport.InsertEntry(t, store, &library.Entry{
		Path:        filepath.Join(cfg.Paths.LibraryDir, "Broken Wurly.ns3f"),
		DecodeError: "bad file magic", ErrorKind: "format",
	})

	results, err := store.Search(ctx, "wurly")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].FileName != "Broken Wurly.ns3f" {
		t.Fatalf("expected file name match, got %#v", results)
	}
}

func TestDuplicatesGroupsByFingerprint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	dir := cfg.Paths.LibraryDir
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "a", "same.ns3f"), PatchName: "Same Patch", Fingerprint: "dup-1",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "b", "same.ns3fp"), PatchName: "Same Patch", Fingerprint: "dup-1",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "other.ns3f"), PatchName: "Other", Fingerprint: "solo-1",
	})
	// Failed rows carry no fingerprint and must never group together.
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "bad1.ns3f"), DecodeError: "bad file magic", ErrorKind: "format",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "bad2.ns3f"), DecodeError: "bad file magic", ErrorKind: "format",
	})

	groups, err := store.Duplicates(ctx)
	if err != nil {
		t.Fatalf("Duplicates failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", len(groups))
	}
	if groups[0].Fingerprint != "dup-1" || len(groups[0].Entries) != 2 {
		t.Fatalf("unexpected group: %#v", groups[0])
	}
	if groups[0].Entries[0].Path >= groups[0].Entries[1].Path {
		t.Fatalf("expected entries ordered by path, got %q, %q",
			groups[0].Entries[0].Path, groups[0].Entries[1].Path)
	}
}

func TestDeleteMissingScopedToRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	root := cfg.Paths.LibraryDir
	stale := filepath.Join(root, "stale.ns3f")
	fresh := filepath.Join(root, "fresh.ns3f")
	outside := filepath.Join(testsupport.BaseDir(cfg), "elsewhere", "kept.ns3f")
	testsupport.InsertEntry(t, store, &library.Entry{Path: stale, PatchName: "Stale", ScanID: "scan-old"})
	testsupport.InsertEntry(t, store, &library.Entry{Path: fresh, PatchName: "Fresh", ScanID: "scan-new"})
	testsupport.InsertEntry(t, store, &library.Entry{Path: outside, PatchName: "Kept", ScanID: "scan-old"})

	removed, err := store.DeleteMissing(ctx, "scan-new", root)
	if err != nil {
		t.Fatalf("DeleteMissing failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 row removed, got %d", removed)
	}

	gone, err := store.GetByPath(ctx, stale)
	if err != nil {
		t.Fatalf("GetByPath stale failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected stale entry removed, got %#v", gone)
	}
	for _, path := range []string{fresh, outside} {
		entry, err := store.GetByPath(ctx, path)
		if err != nil {
			t.Fatalf("GetByPath %s failed: %v", path, err)
		}
		if entry == nil {
			t.Fatalf("expected %s to survive pruning", path)
		}
	}

	if _, err := store.DeleteMissing(ctx, "", root); err == nil {
		t.Fatal("expected error for empty scan id")
	}
}

func TestStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	dir := cfg.Paths.LibraryDir
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "a.ns3f"), PatchName: "A", Bank: 0, Fingerprint: "fp-a",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "b.ns3f"), PatchName: "B", Bank: 0, Fingerprint: "fp-b",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "c.ns3f"), PatchName: "C", Bank: 3, LegacyHeader: true, Fingerprint: "fp-c",
	})
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(dir, "d.ns3f"), DecodeError: "short read", ErrorKind: "truncated",
	})

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 4 || stats.Decoded != 3 || stats.Failed != 1 || stats.Legacy != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if stats.ByBank[0] != 2 || stats.ByBank[3] != 1 {
		t.Fatalf("unexpected bank counts: %#v", stats.ByBank)
	}
	if _, ok := stats.ByBank[4]; ok {
		t.Fatal("expected no count for empty bank")
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.InsertEntry(t, store, &library.Entry{
		Path: filepath.Join(cfg.Paths.LibraryDir, "a.ns3f"), PatchName: "A", Fingerprint: "fp-a",
	})

	health, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists {
		t.Fatalf("unexpected health: %#v", health)
	}
	if len(health.MissingColumns) != 0 {
		t.Fatalf("expected no missing columns, got %v", health.MissingColumns)
	}
	if !health.IntegrityCheck {
		t.Fatal("expected integrity check to pass")
	}
	if health.TotalEntries != 1 {
		t.Fatalf("expected 1 entry counted, got %d", health.TotalEntries)
	}
}
