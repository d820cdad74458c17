package library

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"nordpatch/internal/config"
	"nordpatch/internal/logging"
	"nordpatch/internal/ns3"
	"nordpatch/internal/textutil"
)

// ErrScanInProgress reports that another process holds the scan lock.
var ErrScanInProgress = errors.New("another scan is already running")

// Result summarizes one library scan. Failed counts files recorded with a
// decode error plus any whose index write failed.
type Result struct {
	ScanID   string
	Root     string
	Seen     int
	Decoded  int
	Failed   int
	Removed  int
	Duration time.Duration
}

// Scan walks dir (default: the configured library directory), decodes every
// patch file found, and reconciles the index: decoded patches and decode
// failures are both upserted, and rows for files no longer present under
// dir are removed. Only one scan may run at a time per cache directory.
func Scan(ctx context.Context, cfg *config.Config, store *Store, logger *slog.Logger, dir string) (*Result, error) {
	start := time.Now()

	if dir == "" {
		dir = cfg.Paths.LibraryDir
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}
	if err := unix.Access(root, unix.R_OK|unix.X_OK); err != nil {
		return nil, fmt.Errorf("scan root %s is not readable: %w", root, err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lock := flock.New(cfg.ScanLockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !locked {
		return nil, ErrScanInProgress
	}
	defer func() {
		_ = lock.Unlock()
	}()

	scanID := uuid.NewString()
	ctx = logging.WithScanID(ctx, scanID)
	log := logging.WithContext(ctx, logging.NewComponentLogger(logger, "scanner"))

	paths, err := collectPatchPaths(root, cfg.Scan.FollowSymlinks)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	log.Info("scan started",
		logging.String(logging.FieldPath, root),
		logging.Int(logging.FieldCount, len(paths)),
	)

	opts := ns3.Options{
		AllowLegacy:  cfg.Decode.AllowLegacyHeader,
		StrictLength: cfg.Decode.StrictLength,
	}
	workers := cfg.Scan.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		decoded int
		failed  int
	)
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				entry := decodeEntry(path, opts, scanID)
				if _, err := store.Upsert(ctx, entry); err != nil {
					log.Error("index write failed",
						logging.String(logging.FieldPath, path),
						logging.Error(err),
					)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				mu.Lock()
				if entry.Decoded() {
					decoded++
				} else {
					failed++
				}
				mu.Unlock()
				logScanned(log, entry)
			}
		}()
	}

dispatch:
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	result := &Result{
		ScanID:  scanID,
		Root:    root,
		Seen:    len(paths),
		Decoded: decoded,
		Failed:  failed,
	}
	if err := ctx.Err(); err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	removed, err := store.DeleteMissing(ctx, scanID, root)
	if err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("prune missing entries: %w", err)
	}
	result.Removed = int(removed)
	result.Duration = time.Since(start)

	log.Info("scan complete",
		logging.Int("seen", result.Seen),
		logging.Int("decoded", result.Decoded),
		logging.Int("failed", result.Failed),
		logging.Int("removed", result.Removed),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func collectPatchPaths(root string, followSymlinks bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if !followSymlinks {
				return nil
			}
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
		}
		if !isPatchPath(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func isPatchPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ns3f", ".ns3fp":
		return true
	}
	return false
}

func decodeEntry(path string, opts ns3.Options, scanID string) *Entry {
	entry := &Entry{
		Path:      path,
		FileName:  filepath.Base(path),
		ScanID:    scanID,
		ScannedAt: time.Now().UTC(),
	}

	data, err := ns3.ReadPatchBytes(path)
	if err != nil {
		entry.DecodeError = err.Error()
		entry.ErrorKind = ns3.Kind(err)
		return entry
	}
	sum := sha256.Sum256(data)
	entry.Fingerprint = hex.EncodeToString(sum[:])

	prog, err := ns3.DecodeBytesWith(data, entry.FileName, opts)
	if err != nil {
		entry.DecodeError = err.Error()
		entry.ErrorKind = ns3.Kind(err)
		return entry
	}

	entry.PatchName = textutil.NormalizeName(prog.Name)
	entry.Bank = prog.Bank
	entry.Location = prog.Location
	entry.Category = prog.Category
	entry.FormatVersion = int(prog.FormatVersion)
	entry.FormatType = prog.FormatType
	entry.PianoOn = prog.Piano.Enabled
	entry.OrganOn = prog.Organ.Enabled
	entry.SynthOn = prog.Synth.Enabled
	entry.PianoType = prog.Piano.Type.String()
	entry.OrganType = prog.Organ.Type.String()
	entry.SynthPreset = prog.Synth.PresetName
	entry.MasterClockBPM = prog.MasterClockBPM
	entry.LegacyHeader = prog.LegacyHeader
	return entry
}

func logScanned(log *slog.Logger, entry *Entry) {
	if !entry.Decoded() {
		log.Warn("patch decode failed",
			logging.String(logging.FieldPath, entry.Path),
			logging.String(logging.FieldErrorKind, entry.ErrorKind),
			logging.String("error", entry.DecodeError),
		)
		return
	}
	if entry.LegacyHeader {
		log.Warn("legacy header accepted",
			logging.String(logging.FieldPath, entry.Path),
			logging.Alert("legacy_header"),
		)
	}
	log.Debug("patch indexed",
		logging.String(logging.FieldPatch, entry.PatchName),
		logging.String(logging.FieldPath, entry.Path),
		logging.Int(logging.FieldBank, entry.Bank),
		logging.Int(logging.FieldLocation, entry.Location),
	)
}
