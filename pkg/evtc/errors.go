package evtc

import (
	"errors"
	"fmt"

	"github.com/evtclog/evtc-go/internal/logfinder"
)

// Sentinel errors returned by this package.
var (
	// ErrNotEVTC is returned when the input does not start with the EVTC
	// magic, or a zevtc archive is not a zip or is empty.
	ErrNotEVTC = errors.New("evtc: not an EVTC log")

	// ErrInvalidUTF8 is returned when an agent or skill name is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("evtc: invalid UTF-8")

	// ErrLogDirNotFound is returned when the ArcDPS log directory
	// cannot be found or accessed.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is returned when no log files are found
	// in the specified directory.
	ErrNoLogFiles = logfinder.ErrNoLogFiles
)

// UnsupportedRevisionError is returned for logs with a header revision
// other than 1.
type UnsupportedRevisionError struct {
	Revision uint8
}

func (e *UnsupportedRevisionError) Error() string {
	return fmt.Sprintf("evtc: unsupported revision %d", e.Revision)
}

// EncodingError reports a malformed string in the agent or skill table.
type EncodingError struct {
	Table string // "agent" or "skill"
	Index int    // position in the table
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("evtc: %s %d name: %v", e.Table, e.Index, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// FileError associates an error with the log file it occurred in.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
