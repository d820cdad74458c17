package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"nordpatch/internal/config"
	"nordpatch/internal/textutil"
)

// Store manages the patch index backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.LibraryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Upsert inserts or refreshes the row for entry.Path and returns the stored
// entry. The folded search key is derived here so every write path keeps it
// consistent.
func (s *Store) Upsert(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, errors.New("entry is nil")
	}
	if strings.TrimSpace(entry.Path) == "" {
		return nil, errors.New("entry path is empty")
	}
	if entry.FileName == "" {
		entry.FileName = filepath.Base(entry.Path)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	folded := textutil.Fold(strings.TrimSpace(entry.PatchName + " " + entry.FileName))

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO patches (
            path, file_name, patch_name, name_folded, bank, location, category,
            format_version, format_type, piano_on, organ_on, synth_on,
            piano_type, organ_type, synth_preset, master_clock_bpm,
            fingerprint, legacy_header, decode_error, error_kind,
            scan_id, scanned_at, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            file_name = excluded.file_name,
            patch_name = excluded.patch_name,
            name_folded = excluded.name_folded,
            bank = excluded.bank,
            location = excluded.location,
            category = excluded.category,
            format_version = excluded.format_version,
            format_type = excluded.format_type,
            piano_on = excluded.piano_on,
            organ_on = excluded.organ_on,
            synth_on = excluded.synth_on,
            piano_type = excluded.piano_type,
            organ_type = excluded.organ_type,
            synth_preset = excluded.synth_preset,
            master_clock_bpm = excluded.master_clock_bpm,
            fingerprint = excluded.fingerprint,
            legacy_header = excluded.legacy_header,
            decode_error = excluded.decode_error,
            error_kind = excluded.error_kind,
            scan_id = excluded.scan_id,
            scanned_at = excluded.scanned_at,
            updated_at = excluded.updated_at`,
		entry.Path,
		entry.FileName,
		entry.PatchName,
		folded,
		entry.Bank,
		entry.Location,
		entry.Category,
		entry.FormatVersion,
		entry.FormatType,
		boolToInt(entry.PianoOn),
		boolToInt(entry.OrganOn),
		boolToInt(entry.SynthOn),
		nullableString(entry.PianoType),
		nullableString(entry.OrganType),
		nullableString(entry.SynthPreset),
		entry.MasterClockBPM,
		nullableString(entry.Fingerprint),
		boolToInt(entry.LegacyHeader),
		nullableString(entry.DecodeError),
		nullableString(entry.ErrorKind),
		nullableString(entry.ScanID),
		nullableTime(entry.ScannedAt),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}

	return s.GetByPath(ctx, entry.Path)
}

// GetByPath fetches an entry by its file path. Returns nil when absent.
func (s *Store) GetByPath(ctx context.Context, path string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM patches WHERE path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// List returns entries matching the filter ordered by bank, location, name.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	var clauses []string
	var args []any

	if filter.Bank != nil {
		clauses = append(clauses, "bank = ?")
		args = append(args, *filter.Bank)
	}
	if filter.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.PianoOn {
		clauses = append(clauses, "piano_on = 1")
	}
	if filter.OrganOn {
		clauses = append(clauses, "organ_on = 1")
	}
	if filter.SynthOn {
		clauses = append(clauses, "synth_on = 1")
	}
	if filter.LegacyOnly {
		clauses = append(clauses, "legacy_header = 1")
	}
	if filter.FailedOnly {
		clauses = append(clauses, "decode_error IS NOT NULL")
	}

	query := `SELECT ` + entryColumns + ` FROM patches`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY bank, location, patch_name, path`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// Search returns entries whose folded name contains the folded query or any
// of its tokens, ranked by name similarity to the query.
func (s *Store) Search(ctx context.Context, query string) ([]*Entry, error) {
	folded := textutil.Fold(textutil.NormalizeName(query))
	if folded == "" {
		return nil, nil
	}

	clauses := []string{"instr(name_folded, ?) > 0"}
	args := []any{folded}
	for _, token := range textutil.Tokenize(folded) {
		clauses = append(clauses, "instr(name_folded, ?) > 0")
		args = append(args, token)
	}

	sqlQuery := `SELECT ` + entryColumns + ` FROM patches WHERE ` +
		strings.Join(clauses, " OR ") + ` ORDER BY patch_name, path`
	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	rankBySimilarity(entries, folded)
	return entries, nil
}

// rankBySimilarity reorders entries by TF-IDF cosine similarity between the
// query and each entry's name, most similar first. Ties keep SQL order.
func rankBySimilarity(entries []*Entry, query string) {
	if len(entries) < 2 {
		return
	}
	queryFP := textutil.NewFingerprint(query)
	if queryFP.TokenCount() == 0 {
		return
	}

	corpus := textutil.NewCorpus()
	fps := make([]*textutil.Fingerprint, len(entries))
	for i, entry := range entries {
		fps[i] = textutil.NewFingerprint(entry.PatchName + " " + entry.FileName)
		corpus.Add(fps[i])
	}
	idf := corpus.IDF()
	weightedQuery := queryFP.WithIDF(idf)

	type scoredEntry struct {
		entry *Entry
		score float64
	}
	ranked := make([]scoredEntry, len(entries))
	for i := range entries {
		ranked[i] = scoredEntry{
			entry: entries[i],
			score: textutil.CosineSimilarity(weightedQuery, fps[i].WithIDF(idf)),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for i := range ranked {
		entries[i] = ranked[i].entry
	}
}

// Stats returns aggregate index counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByBank: make(map[int]int)}

	var total, decoded, legacy sql.NullInt64
	row := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               SUM(CASE WHEN decode_error IS NULL THEN 1 ELSE 0 END),
               SUM(CASE WHEN legacy_header != 0 THEN 1 ELSE 0 END)
        FROM patches`)
	if err := row.Scan(&total, &decoded, &legacy); err != nil {
		return stats, fmt.Errorf("index stats: %w", err)
	}
	stats.Total = int(total.Int64)
	stats.Decoded = int(decoded.Int64)
	stats.Legacy = int(legacy.Int64)
	stats.Failed = stats.Total - stats.Decoded

	rows, err := s.db.QueryContext(ctx, `
        SELECT bank, COUNT(1) FROM patches
        WHERE decode_error IS NULL
        GROUP BY bank`)
	if err != nil {
		return stats, fmt.Errorf("bank stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bank, count int
		if err := rows.Scan(&bank, &count); err != nil {
			return stats, err
		}
		stats.ByBank[bank] = count
	}
	return stats, rows.Err()
}

// Duplicates returns groups of entries sharing a content fingerprint.
func (s *Store) Duplicates(ctx context.Context) ([]DuplicateGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+entryColumns+` FROM patches
        WHERE fingerprint IN (
            SELECT fingerprint FROM patches
            WHERE fingerprint IS NOT NULL
            GROUP BY fingerprint
            HAVING COUNT(1) > 1
        )
        ORDER BY fingerprint, path`)
	if err != nil {
		return nil, fmt.Errorf("query duplicates: %w", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}

	var groups []DuplicateGroup
	for _, entry := range entries {
		if len(groups) == 0 || groups[len(groups)-1].Fingerprint != entry.Fingerprint {
			groups = append(groups, DuplicateGroup{Fingerprint: entry.Fingerprint})
		}
		last := &groups[len(groups)-1]
		last.Entries = append(last.Entries, entry)
	}
	return groups, nil
}

// DeleteMissing removes entries under root that the scan identified by
// scanID did not touch, returning the number of rows removed.
func (s *Store) DeleteMissing(ctx context.Context, scanID, root string) (int64, error) {
	if scanID == "" {
		return 0, errors.New("scan id is empty")
	}
	prefix := strings.TrimSuffix(root, string(os.PathSeparator)) + string(os.PathSeparator)

	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM patches
         WHERE (scan_id IS NULL OR scan_id != ?)
           AND substr(path, 1, ?) = ?`,
		scanID,
		len(prefix),
		prefix,
	)
	if err != nil {
		return 0, fmt.Errorf("delete missing entries: %w", err)
	}
	return res.RowsAffected()
}

// CheckHealth returns diagnostic information about the index database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("index database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat index database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("index database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("index database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping index database: %w", err)
	}
	health.DatabaseReadable = true

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'patches'")
	if err := row.Scan(&tableName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			health.TableExists = false
		} else {
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
	} else {
		health.TableExists = true
	}

	if health.TableExists {
		colsRows, err := s.db.QueryContext(connCtx, "PRAGMA table_info(patches)")
		if err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("table info: %w", err)
		}
		defer colsRows.Close()

		var columns []string
		for colsRows.Next() {
			var (
				cid     int
				name    string
				typeStr string
				notNull int
				dflt    any
				pk      int
			)
			if err := colsRows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
				health.Error = err.Error()
				return health, fmt.Errorf("scan table info: %w", err)
			}
			columns = append(columns, name)
		}
		if err := colsRows.Err(); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("iterate table info: %w", err)
		}
		health.ColumnsPresent = append(health.ColumnsPresent, columns...)

		expected := []string{
			"id", "path", "file_name", "patch_name", "name_folded", "bank",
			"location", "category", "format_version", "format_type", "piano_on",
			"organ_on", "synth_on", "piano_type", "organ_type", "synth_preset",
			"master_clock_bpm", "fingerprint", "legacy_header", "decode_error",
			"error_kind", "scan_id", "scanned_at", "created_at", "updated_at",
		}
		missingMap := make(map[string]struct{}, len(expected))
		for _, col := range expected {
			missingMap[col] = struct{}{}
		}
		for _, col := range columns {
			delete(missingMap, col)
		}
		for col := range missingMap {
			health.MissingColumns = append(health.MissingColumns, col)
		}

		row = s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM patches")
		if err := row.Scan(&health.TotalEntries); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count entries: %w", err)
		}
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

const entryColumns = "id, path, file_name, patch_name, bank, location, category, format_version, format_type, piano_on, organ_on, synth_on, piano_type, organ_type, synth_preset, master_clock_bpm, fingerprint, legacy_header, decode_error, error_kind, scan_id, scanned_at, created_at, updated_at"

func collectEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id            int64
		path          string
		fileName      string
		patchName     string
		bank          int
		location      int
		category      int
		formatVersion int
		formatType    int
		pianoOn       sql.NullInt64
		organOn       sql.NullInt64
		synthOn       sql.NullInt64
		pianoType     sql.NullString
		organType     sql.NullString
		synthPreset   sql.NullString
		masterClock   int
		fingerprint   sql.NullString
		legacyHeader  sql.NullInt64
		decodeError   sql.NullString
		errorKind     sql.NullString
		scanID        sql.NullString
		scannedRaw    sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&path,
		&fileName,
		&patchName,
		&bank,
		&location,
		&category,
		&formatVersion,
		&formatType,
		&pianoOn,
		&organOn,
		&synthOn,
		&pianoType,
		&organType,
		&synthPreset,
		&masterClock,
		&fingerprint,
		&legacyHeader,
		&decodeError,
		&errorKind,
		&scanID,
		&scannedRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:             id,
		Path:           path,
		FileName:       fileName,
		PatchName:      patchName,
		Bank:           bank,
		Location:       location,
		Category:       category,
		FormatVersion:  formatVersion,
		FormatType:     formatType,
		PianoOn:        pianoOn.Int64 != 0,
		OrganOn:        organOn.Int64 != 0,
		SynthOn:        synthOn.Int64 != 0,
		PianoType:      pianoType.String,
		OrganType:      organType.String,
		SynthPreset:    synthPreset.String,
		MasterClockBPM: masterClock,
		Fingerprint:    fingerprint.String,
		LegacyHeader:   legacyHeader.Int64 != 0,
		DecodeError:    decodeError.String,
		ErrorKind:      errorKind.String,
		ScanID:         scanID.String,
	}

	if scanned, err := parseTimeString(scannedRaw.String); err == nil {
		entry.ScannedAt = scanned
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		entry.UpdatedAt = updated
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
