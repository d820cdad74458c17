package ns3

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds reported by Kind. Callers that persist or route decode
// failures key off these rather than error strings.
const (
	KindNotFound         = "not_found"
	KindInvalidExtension = "invalid_extension"
	KindArchive          = "archive"
	KindFormat           = "format"
	KindTruncated        = "truncated"
	KindIO               = "io"
)

var (
	// ErrInvalidExtension means the path is neither .ns3f nor .ns3fp.
	ErrInvalidExtension = errors.New("expected a .ns3f or .ns3fp file")

	// ErrNoPatchInArchive means a .ns3fp container held no .ns3f entry.
	ErrNoPatchInArchive = errors.New("no .ns3f entry found inside .ns3fp archive")

	// ErrTruncated is returned under Options.StrictLength when the raw
	// payload is shorter than a full program dump.
	ErrTruncated = errors.New("patch data truncated")
)

// ErrorClassifier lets decode errors declare their kind for status and
// persistence mapping.
type ErrorClassifier interface {
	ErrorKind() string
}

// FormatError reports a header that matches no known scheme. Got holds
// the observed bytes so callers can show what was actually in the file.
type FormatError struct {
	Field string
	Want  string
	Got   []byte
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected %q)", e.Field, e.Got, e.Want)
}

func (e *FormatError) ErrorKind() string { return KindFormat }

// ArchiveError wraps a failure while opening or reading a .ns3fp
// container.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("read archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

func (e *ArchiveError) ErrorKind() string { return KindArchive }

// Kind classifies a decode error into one of the Kind constants.
// Unrecognized errors fall through to KindIO.
func Kind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, ErrInvalidExtension):
		return KindInvalidExtension
	case errors.Is(err, ErrNoPatchInArchive):
		return KindArchive
	case errors.Is(err, ErrTruncated):
		return KindTruncated
	}
	return KindIO
}
