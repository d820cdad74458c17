package library

import "time"

// Entry is one indexed patch file. Rows whose DecodeError is non-empty
// keep their header fields zeroed; the file is tracked even though its
// contents could not be read.
type Entry struct {
	ID        int64
	Path      string
	FileName  string
	PatchName string

	Bank          int
	Location      int
	Category      int
	FormatVersion int
	FormatType    int

	PianoOn bool
	OrganOn bool
	SynthOn bool

	PianoType   string
	OrganType   string
	SynthPreset string

	MasterClockBPM int

	// Fingerprint is the hex SHA-256 of the raw patch payload after any
	// container unwrapping, so a zipped and a raw copy of the same patch
	// share a fingerprint.
	Fingerprint  string
	LegacyHeader bool

	DecodeError string
	ErrorKind   string

	ScanID    string
	ScannedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decoded reports whether the entry holds a successfully decoded patch.
func (e *Entry) Decoded() bool {
	return e != nil && e.DecodeError == ""
}

// Filter narrows List results. Nil pointer fields match everything.
type Filter struct {
	Bank     *int
	Category *int

	// Section filters require the named panel section to be enabled.
	PianoOn bool
	OrganOn bool
	SynthOn bool

	LegacyOnly bool
	FailedOnly bool

	Limit int
}

// Stats aggregates index counts for diagnostic output.
type Stats struct {
	Total   int
	Decoded int
	Failed  int
	Legacy  int
	ByBank  map[int]int
}

// DuplicateGroup collects entries sharing one content fingerprint.
type DuplicateGroup struct {
	Fingerprint string
	Entries     []*Entry
}

// DatabaseHealth captures diagnostic information about the index database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	IntegrityCheck   bool
	TotalEntries     int
	Error            string
}
