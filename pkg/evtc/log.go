package evtc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/evtclog/evtc-go/pkg/evtc/event"
)

// maxPrealloc caps slice preallocation from untrusted table counts.
const maxPrealloc = 1 << 14

// Log is a parsed EVTC log with raw event records.
type Log struct {
	Header Header        `json:"header"`
	Agents []Agent       `json:"agents"`
	Skills []Skill       `json:"skills"`
	Events []event.Event `json:"events"`
}

// Parse reads a complete, uncompressed EVTC log from r.
//
// The event stream ends at the end of input. A partial record at the end
// is dropped, as ArcDPS may be interrupted while writing.
func Parse(r io.Reader) (*Log, error) {
	br := bufio.NewReader(r)
	log, err := readPreamble(br)
	if err != nil {
		return nil, err
	}
	for {
		ev, err := event.Read(br)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return log, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading event %d: %w", len(log.Events), err)
		}
		log.Events = append(log.Events, ev)
	}
}

// readPreamble reads the header and the agent and skill tables.
func readPreamble(r io.Reader) (*Log, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if header.Revision != SupportedRevision {
		return nil, &UnsupportedRevisionError{Revision: header.Revision}
	}

	agentCount, err := readCount(r, "agent")
	if err != nil {
		return nil, err
	}
	agents := make([]Agent, 0, min(agentCount, maxPrealloc))
	for i := range agentCount {
		a, err := readAgent(r)
		if err != nil {
			return nil, tableError("agent", i, err)
		}
		agents = append(agents, a)
	}

	skillCount, err := readCount(r, "skill")
	if err != nil {
		return nil, err
	}
	skills := make([]Skill, 0, min(skillCount, maxPrealloc))
	for i := range skillCount {
		s, err := readSkill(r)
		if err != nil {
			return nil, tableError("skill", i, err)
		}
		skills = append(skills, s)
	}

	return &Log{Header: header, Agents: agents, Skills: skills}, nil
}

func readCount(r io.Reader, table string) (int, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("reading %s count: %w", table, noEOF(err))
	}
	return int(binary.LittleEndian.Uint32(b[:])), nil
}

func tableError(table string, i int, err error) error {
	if errors.Is(err, ErrInvalidUTF8) {
		return &EncodingError{Table: table, Index: i, Err: err}
	}
	return fmt.Errorf("reading %s %d: %w", table, i, noEOF(err))
}

// noEOF turns a clean EOF inside a table into ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Write encodes the log to w in the EVTC format. Parsing the output
// yields a Log equal to l.
func (l *Log) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := l.Header.Write(bw); err != nil {
		return err
	}

	if err := writeCount(bw, len(l.Agents)); err != nil {
		return err
	}
	for i := range l.Agents {
		if err := l.Agents[i].write(bw); err != nil {
			return err
		}
	}

	if err := writeCount(bw, len(l.Skills)); err != nil {
		return err
	}
	for i := range l.Skills {
		if err := l.Skills[i].write(bw); err != nil {
			return err
		}
	}

	for i := range l.Events {
		if err := l.Events[i].Write(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCount(w io.Writer, n int) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(n))
	_, err := w.Write(b[:])
	return err
}
