// Package file implements local filesystem-backed data sources: an
// io.ReadCloser opener used by the CSV stages and a line reader used for the
// reference mapping files.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a new Local data source bound to the provided filesystem
// path. The returned value is safe for concurrent use by multiple goroutines
// as long as the underlying path location is valid for concurrent reads.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading and returns an io.ReadCloser.
//
// If the context is already canceled at the time of the call, Open returns
// the context error without touching the filesystem. Filesystem errors are
// wrapped with the path while still permitting errors.Is/As checks by
// callers (e.g., errors.Is(err, os.ErrNotExist)).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// Encoding selects the character encoding of a text input.
type Encoding string

const (
	// EncodingUTF8 reads the file bytes as-is.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingWindows1252 transcodes from Windows-1252. The reference mapping
	// files are extracts of SAS programs and frequently carry this encoding.
	EncodingWindows1252 Encoding = "windows-1252"
)

// ReadLines reads a text file line by line and returns every line, in order,
// with line endings stripped. An empty encoding defaults to UTF-8.
//
// Unlike a generic list reader, blank lines are preserved so that callers
// can report accurate line numbers for malformed input.
func ReadLines(path string, enc Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch enc {
	case "", EncodingUTF8:
	case EncodingWindows1252:
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("read %s: unsupported encoding %q", path, enc)
	}

	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
