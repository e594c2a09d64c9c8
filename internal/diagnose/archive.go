// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrArchiveUnreadable is the sentinel error wrapped by UnreadableArchiveError.
// It is the only failure Diagnose propagates; every other anomaly becomes a
// Finding inside a successfully returned Report.
var ErrArchiveUnreadable = errors.New("archive unreadable")

type (
	// Entry is a single path inside an archive, normalized to forward-slash
	// separators. Original case is preserved for display; marker matching is
	// case-insensitive.
	Entry string

	// UnreadableArchiveError is returned when an archive cannot be opened:
	// the path does not exist, is not a valid zip container, or cannot be
	// read. It wraps ErrArchiveUnreadable for errors.Is() detection.
	UnreadableArchiveError struct {
		Path  string
		Cause error
	}

	// Archive is an open zip archive. The handle is held for the minimal
	// scope needed to list entries and read the manifest; Diagnose releases
	// it before the report is returned.
	Archive struct {
		rc      *zip.ReadCloser
		entries []Entry
	}
)

// Error implements the error interface.
func (e *UnreadableArchiveError) Error() string {
	return fmt.Sprintf("cannot read archive %s: %v", e.Path, e.Cause)
}

// Unwrap returns ErrArchiveUnreadable so callers can use errors.Is for
// programmatic detection.
func (e *UnreadableArchiveError) Unwrap() error { return ErrArchiveUnreadable }

// Base returns the filename component of the entry. Directory entries
// (trailing slash) have an empty base.
func (e Entry) Base() string {
	s := string(e)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Depth returns the number of path-separator-delimited segments preceding the
// filename. Depth 0 means the file sits directly at the archive top level.
func (e Entry) Depth() int {
	return strings.Count(string(e), "/")
}

// Root returns the joined path of the segments preceding the filename, the
// directory that would become the installed package root if the archive were
// re-zipped at this entry. Empty string at depth 0.
func (e Entry) Root() string {
	s := string(e)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[:i]
	}
	return ""
}

// OpenArchive opens the zip archive at path and lists its entries. The
// returned Archive must be closed by the caller. Failure to open is the one
// true infrastructure failure of a diagnosis and is reported as an
// UnreadableArchiveError.
func OpenArchive(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, &UnreadableArchiveError{Path: path, Cause: err}
	}

	entries := make([]Entry, 0, len(rc.File))
	for _, f := range rc.File {
		entries = append(entries, Entry(strings.ReplaceAll(f.Name, `\`, "/")))
	}

	return &Archive{rc: rc, entries: entries}, nil
}

// Entries returns the flat list of entry paths contained in the archive.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// ReadEntry returns the content of the named entry. Entries are matched by
// exact original path. No other entry content is ever extracted during a
// diagnosis.
func (a *Archive) ReadEntry(entry Entry) ([]byte, error) {
	for _, f := range a.rc.File {
		if Entry(strings.ReplaceAll(f.Name, `\`, "/")) != entry {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s: %w", entry, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", entry, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("entry %s not found in archive", entry)
}

// Close releases the underlying archive handle.
func (a *Archive) Close() error {
	return a.rc.Close()
}
