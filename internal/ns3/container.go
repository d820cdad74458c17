package ns3

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadPatchBytes returns the raw .ns3f payload for path. A .ns3fp zip
// container is unwrapped to its first .ns3f entry; a bare .ns3f file is
// read as is. Extension matching is case-insensitive.
func ReadPatchBytes(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	switch {
	case hasExt(path, ".ns3fp"):
		return readArchive(path)
	case hasExt(path, ".ns3f"):
		return os.ReadFile(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, filepath.Base(path))
}

func hasExt(path, ext string) bool {
	return strings.HasSuffix(strings.ToLower(path), ext)
}

func readArchive(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if !hasExt(entry.Name, ".ns3f") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, &ArchiveError{Path: path, Err: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ArchiveError{Path: path, Err: err}
		}
		return data, nil
	}
	return nil, &ArchiveError{Path: path, Err: ErrNoPatchInArchive}
}
