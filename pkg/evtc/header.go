package evtc

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"
)

// Magic is the first four bytes of every EVTC log.
const Magic = "EVTC"

// headerSize is the encoded size of the header.
const headerSize = 16

// SupportedRevision is the only header revision this package decodes.
const SupportedRevision = 1

// Header is the fixed header of an EVTC log.
type Header struct {
	// Date is the ArcDPS build date as YYYYMMDD, without the magic.
	Date string `json:"date"`

	// Revision is the record layout revision.
	Revision uint8 `json:"revision"`

	// BossID is the species id of the encounter's main target.
	BossID uint16 `json:"boss_id"`
}

// dateSize is the width of the header date field.
const dateSize = 8

// ReadHeader reads the log header from r.
// It returns ErrNotEVTC if r does not start with the EVTC magic. The
// magic is checked before the rest of the header is read.
func ReadHeader(r io.Reader) (Header, error) {
	var b [headerSize]byte
	if _, err := io.ReadFull(r, b[:len(Magic)]); err != nil {
		if err == io.EOF {
			return Header{}, fmt.Errorf("%w: empty input", ErrNotEVTC)
		}
		return Header{}, fmt.Errorf("reading header: %w", err)
	}
	if string(b[:len(Magic)]) != Magic {
		return Header{}, ErrNotEVTC
	}
	if _, err := io.ReadFull(r, b[len(Magic):]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, fmt.Errorf("reading header: %w", err)
	}
	return Header{
		Date:     strings.TrimRight(string(b[4:12]), "\x00"),
		Revision: b[12],
		BossID:   binary.LittleEndian.Uint16(b[13:15]),
	}, nil
}

// Write writes the header to w. A Date shorter than eight bytes is
// NUL-padded; a longer Date, or one containing NUL, is an error.
func (h Header) Write(w io.Writer) error {
	if len(h.Date) > dateSize {
		return fmt.Errorf("header date %q exceeds %d bytes", h.Date, dateSize)
	}
	if strings.IndexByte(h.Date, 0) >= 0 {
		return fmt.Errorf("header date %q contains NUL", h.Date)
	}
	var b [headerSize]byte
	copy(b[:4], Magic)
	copy(b[4:12], h.Date)
	b[12] = h.Revision
	binary.LittleEndian.PutUint16(b[13:15], h.BossID)
	_, err := w.Write(b[:])
	return err
}

// RecordedAt parses Date. ArcDPS stamps its build date here, which is
// the closest the header gets to a recording date.
func (h Header) RecordedAt() (time.Time, error) {
	t, err := time.Parse("20060102", h.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("evtc: parsing header date %q: %w", h.Date, err)
	}
	return t, nil
}
