package evtc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ParseZevtc reads a compressed log. ArcDPS stores the log as the first
// entry of a zip archive.
//
// It returns ErrNotEVTC if r is not a zip archive or has no entries.
func ParseZevtc(r io.ReaderAt, size int64) (*Log, error) {
	rc, err := openZevtc(r, size)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}

// ParseFile reads a log from path. Files with a .zevtc or .zip extension
// are decompressed.
func ParseFile(path string) (*Log, error) {
	rc, err := openLog(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}

func isCompressed(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zevtc", ".zip":
		return true
	}
	return false
}

func openZevtc(r io.ReaderAt, size int64) (io.ReadCloser, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: not a zip archive", ErrNotEVTC)
		}
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("%w: empty archive", ErrNotEVTC)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("opening archive entry %q: %w", zr.File[0].Name, err)
	}
	return rc, nil
}

// logFile is an open log, possibly an entry inside a zip archive.
type logFile struct {
	io.Reader
	closers []io.Closer
}

func (f *logFile) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		errs = append(errs, f.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openLog opens path for reading the uncompressed log stream.
func openLog(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !isCompressed(path) {
		return &logFile{Reader: bufio.NewReader(f), closers: []io.Closer{f}}, nil
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	rc, err := openZevtc(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	return &logFile{Reader: rc, closers: []io.Closer{f, rc}}, nil
}
