package library_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"nordpatch/internal/library"
	"nordpatch/internal/logging"
	"nordpatch/internal/testsupport"
)

func TestScanIndexesLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithScanWorkers(2))
	store := testsupport.MustOpenStore(t, cfg)
	dir := cfg.Paths.LibraryDir

	grand := testsupport.NewPatch().
		SetString(0x18, "Grand One").
		SetByte(0x0C, 2).
		SetByte(0x0E, 3).
		SetFlag(0x43, 7)
	rawPath := grand.WritePatchFile(t, dir, "Grand One.ns3f")
	zipPath := grand.WriteArchive(t, dir, "Grand Copy.ns3fp", "Grand Copy.ns3f")

	testsupport.NewPatch().
		SetString(0x18, "Saw Lead").
		SetFlag(0x52, 7).
		SetString(0x58, "Big Saw").
		WritePatchFile(t, dir, filepath.Join("leads", "Saw Lead.ns3f"))

	junkPath := filepath.Join(dir, "broken.ns3f")
	testsupport.WriteJunkFile(t, junkPath, 64)
	testsupport.WriteJunkFile(t, filepath.Join(dir, "notes.txt"), 16)

	result, err := library.Scan(context.Background(), cfg, store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.ScanID == "" {
		t.Fatal("expected scan ID assigned")
	}
	if result.Seen != 4 || result.Decoded != 3 || result.Failed != 1 || result.Removed != 0 {
		t.Fatalf("unexpected result: %#v", result)
	}

	ctx := context.Background()
	entry, err := store.GetByPath(ctx, rawPath)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if entry == nil || !entry.Decoded() {
		t.Fatalf("expected decoded entry for %s, got %#v", rawPath, entry)
	}
	if entry.PatchName != "Grand One" || entry.Bank != 2 || entry.Location != 3 {
		t.Fatalf("unexpected header fields: %#v", entry)
	}
	if !entry.PianoOn || entry.PianoType != "Grand" {
		t.Fatalf("expected piano section decoded, got %#v", entry)
	}
	if entry.MasterClockBPM != 30 {
		t.Fatalf("expected clock floor of 30 BPM, got %d", entry.MasterClockBPM)
	}
	if entry.Fingerprint == "" || entry.ScanID != result.ScanID {
		t.Fatalf("expected fingerprint and scan id recorded, got %#v", entry)
	}

	archived, err := store.GetByPath(ctx, zipPath)
	if err != nil {
		t.Fatalf("GetByPath archive failed: %v", err)
	}
	if archived == nil || archived.Fingerprint != entry.Fingerprint {
		t.Fatalf("expected archived copy to share the raw fingerprint, got %#v", archived)
	}

	broken, err := store.GetByPath(ctx, junkPath)
	if err != nil {
		t.Fatalf("GetByPath broken failed: %v", err)
	}
	if broken == nil || broken.Decoded() {
		t.Fatalf("expected failed row for junk file, got %#v", broken)
	}
	if broken.ErrorKind != "format" || broken.DecodeError == "" {
		t.Fatalf("unexpected failure fields: kind=%q error=%q", broken.ErrorKind, broken.DecodeError)
	}
	if broken.Fingerprint == "" {
		t.Fatal("expected junk file fingerprinted even though decoding failed")
	}

	groups, err := store.Duplicates(ctx)
	if err != nil {
		t.Fatalf("Duplicates failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Entries) != 2 {
		t.Fatalf("expected raw and archived copies grouped, got %#v", groups)
	}
}

func TestScanPrunesRemovedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	dir := cfg.Paths.LibraryDir

	keptPath := testsupport.NewPatch().SetString(0x18, "Kept").WritePatchFile(t, dir, "kept.ns3f")
	gonePath := testsupport.NewPatch().SetString(0x18, "Gone").WritePatchFile(t, dir, "gone.ns3f")

	ctx := context.Background()
	if _, err := library.Scan(ctx, cfg, store, logging.NewNop(), ""); err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	if err := os.Remove(gonePath); err != nil {
		t.Fatalf("remove %s: %v", gonePath, err)
	}

	result, err := library.Scan(ctx, cfg, store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if result.Seen != 1 || result.Decoded != 1 || result.Removed != 1 {
		t.Fatalf("unexpected result: %#v", result)
	}

	removed, err := store.GetByPath(ctx, gonePath)
	if err != nil {
		t.Fatalf("GetByPath gone failed: %v", err)
	}
	if removed != nil {
		t.Fatalf("expected pruned entry, got %#v", removed)
	}
	kept, err := store.GetByPath(ctx, keptPath)
	if err != nil {
		t.Fatalf("GetByPath kept failed: %v", err)
	}
	if kept == nil || kept.ScanID != result.ScanID {
		t.Fatalf("expected kept entry refreshed by second scan, got %#v", kept)
	}
}

func TestScanReportsLockContention(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	lock := flock.New(cfg.ScanLockPath())
	locked, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !locked {
		t.Fatal("expected to hold the scan lock")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if _, err := library.Scan(context.Background(), cfg, store, logging.NewNop(), ""); !errors.Is(err, library.ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}
}

func TestScanRejectsMissingRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	missing := filepath.Join(testsupport.BaseDir(cfg), "does-not-exist")
	if _, err := library.Scan(context.Background(), cfg, store, logging.NewNop(), missing); err == nil {
		t.Fatal("expected error for missing scan root")
	}
}

func TestScanHonorsCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	dir := cfg.Paths.LibraryDir

	for _, name := range []string{"a.ns3f", "b.ns3f", "c.ns3f"} {
		testsupport.NewPatch().SetString(0x18, "Patch").WritePatchFile(t, dir, name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := library.Scan(ctx, cfg, store, logging.NewNop(), "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
	if result.Decoded != 0 || result.Removed != 0 {
		t.Fatalf("expected no work after early cancellation, got %#v", result)
	}

	entries, err := store.List(context.Background(), library.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no rows written, got %d", len(entries))
	}
}

func TestScanAcceptsLegacyHeader(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	dir := cfg.Paths.LibraryDir

	legacy := testsupport.NewRawPatch(testsupport.ProgramLength).
		SetString(0x00, "NORD").
		SetString(0x10, "Proto Lead").
		SetFlag(0x30, 5)
	path := legacy.WritePatchFile(t, dir, "proto.ns3f")

	ctx := context.Background()
	result, err := library.Scan(ctx, cfg, store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Decoded != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %#v", result)
	}

	entry, err := store.GetByPath(ctx, path)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if entry == nil || !entry.LegacyHeader {
		t.Fatalf("expected legacy header flagged, got %#v", entry)
	}
	if entry.PatchName != "Proto Lead" || !entry.SynthOn {
		t.Fatalf("unexpected legacy fields: %#v", entry)
	}

	flagged, err := store.List(ctx, library.Filter{LegacyOnly: true})
	if err != nil {
		t.Fatalf("List legacy failed: %v", err)
	}
	if len(flagged) != 1 {
		t.Fatalf("expected 1 legacy entry, got %d", len(flagged))
	}
}

func TestScanRejectsLegacyHeaderWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLegacyDisabled())
	store := testsupport.MustOpenStore(t, cfg)
	dir := cfg.Paths.LibraryDir

	path := testsupport.NewRawPatch(testsupport.ProgramLength).
		SetString(0x00, "NORD").
		SetString(0x10, "Proto Lead").
		WritePatchFile(t, dir, "proto.ns3f")

	ctx := context.Background()
	result, err := library.Scan(ctx, cfg, store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Decoded != 0 || result.Failed != 1 {
		t.Fatalf("unexpected result: %#v", result)
	}

	entry, err := store.GetByPath(ctx, path)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if entry == nil || entry.Decoded() {
		t.Fatalf("expected failed row, got %#v", entry)
	}
	if entry.ErrorKind != "format" {
		t.Fatalf("expected format error kind, got %q", entry.ErrorKind)
	}
}

func TestScanSkipsSymlinksByDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	target := testsupport.NewPatch().
		SetString(0x18, "Linked").
		WritePatchFile(t, filepath.Join(testsupport.BaseDir(cfg), "outside"), "linked.ns3f")
	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library dir: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(cfg.Paths.LibraryDir, "linked.ns3f")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	result, err := library.Scan(context.Background(), cfg, store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Seen != 0 {
		t.Fatalf("expected symlink skipped, got %#v", result)
	}
}

func TestScanFollowsSymlinksWhenConfigured(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFollowSymlinks())
	store := testsupport.MustOpenStore(t, cfg)

	target := testsupport.NewPatch().
		SetString(0x18, "Linked").
		WritePatchFile(t, filepath.Join(testsupport.BaseDir(cfg), "outside"), "linked.ns3f")
	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library dir: %v", err)
	}
	link := filepath.Join(cfg.Paths.LibraryDir, "linked.ns3f")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	ctx := context.Background()
	result, err := library.Scan(ctx, cfg, store, logging.NewNop(), "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Seen != 1 || result.Decoded != 1 {
		t.Fatalf("expected symlinked patch indexed, got %#v", result)
	}

	entry, err := store.GetByPath(ctx, link)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if entry == nil || entry.PatchName != "Linked" {
		t.Fatalf("expected entry for symlinked patch, got %#v", entry)
	}
}
