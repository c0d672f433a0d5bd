package core

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fixed column layout of an IGES record.
const (
	RecordWidth  = 80
	DataWidth    = 72
	minLineWidth = DataWidth + 1
)

// Section identifies which of the five IGES sections a record belongs to.
type Section byte

// The five section codes found in column 73.
const (
	SectionStart     Section = 'S'
	SectionGlobal    Section = 'G'
	SectionDirectory Section = 'D'
	SectionParameter Section = 'P'
	SectionTerminate Section = 'T'
)

// String returns the section name.
func (s Section) String() string {
	switch s {
	case SectionStart:
		return "Start"
	case SectionGlobal:
		return "Global"
	case SectionDirectory:
		return "Directory"
	case SectionParameter:
		return "Parameter"
	case SectionTerminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of S, G, D, P or T.
func (s Section) Valid() bool {
	switch s {
	case SectionStart, SectionGlobal, SectionDirectory, SectionParameter, SectionTerminate:
		return true
	}
	return false
}

// RawRecord is one classified physical line.
type RawRecord struct {
	Data     string  // columns 1-72
	Section  Section // column 73
	Sequence int     // columns 74-80
	Line     int     // 1-based physical record number
}

// Classify splits one physical line into its data, section code and sequence number.
func Classify(line string, lineNo int) (RawRecord, error) {
	cols := columns(line)
	rec := RawRecord{Line: lineNo}

	if len(cols) < minLineWidth {
		return rec, Errorf(KindFormat, rec, "line is %d columns, need at least %d", len(cols), minLineWidth)
	}

	rec.Section = Section(cols[DataWidth])
	if !rec.Section.Valid() {
		bad := string(cols[DataWidth])
		rec.Section = 0
		return rec, Errorf(KindFormat, rec, "unknown section code %q", bad)
	}

	end := len(cols)
	if end > RecordWidth {
		end = RecordWidth
	}
	seq := strings.TrimSpace(string(cols[minLineWidth:end]))
	if seq != "" {
		n, err := strconv.Atoi(seq)
		if err != nil {
			e := Errorf(KindParse, rec, "sequence number %q is not numeric", seq)
			e.Err = err
			return rec, e
		}
		rec.Sequence = n
	}

	rec.Data = string(cols[:DataWidth])
	return rec, nil
}

// columns returns the line as a slice of columns. ASCII lines are indexed
// by byte; anything else by rune so decoded multi-byte text keeps its place.
func columns(line string) []rune {
	if isASCII(line) {
		cols := make([]rune, len(line))
		for i := 0; i < len(line); i++ {
			cols[i] = rune(line[i])
		}
		return cols
	}
	return []rune(line)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Scanner reads classified records from a stream of 80-column lines.
type Scanner struct {
	scanner *bufio.Scanner
	pending []string
	rec     RawRecord
	line    int
	err     error
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Scanner{scanner: s}
}

// Scan advances to the next record. It returns false at end of input or
// on the first error, which is then available from Err.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for len(s.pending) == 0 {
		if !s.scanner.Scan() {
			s.err = s.scanner.Err()
			return false
		}
		line := strings.TrimRight(s.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.pending = splitPhysical(line)
	}

	line := s.pending[0]
	s.pending = s.pending[1:]
	s.line++

	rec, err := Classify(line, s.line)
	if err != nil {
		s.err = err
		return false
	}
	s.rec = rec
	return true
}

// Record returns the most recent record produced by Scan.
func (s *Scanner) Record() RawRecord {
	return s.rec
}

// Err returns the first error encountered, or nil at a clean end of input.
func (s *Scanner) Err() error {
	return s.err
}

// splitPhysical breaks an unterminated run of fixed-width records into
// 80-column lines.
func splitPhysical(line string) []string {
	if len(line) <= RecordWidth || len(line)%RecordWidth != 0 || !isASCII(line) {
		return []string{line}
	}
	out := make([]string, 0, len(line)/RecordWidth)
	for i := 0; i < len(line); i += RecordWidth {
		out = append(out, line[i:i+RecordWidth])
	}
	return out
}

// Records holds classified records bucketed by section, each bucket in file order.
type Records struct {
	Start     []RawRecord
	Global    []RawRecord
	Directory []RawRecord
	Parameter []RawRecord
	Terminate []RawRecord
}

// Add appends rec to the bucket for its section.
func (r *Records) Add(rec RawRecord) {
	switch rec.Section {
	case SectionStart:
		r.Start = append(r.Start, rec)
	case SectionGlobal:
		r.Global = append(r.Global, rec)
	case SectionDirectory:
		r.Directory = append(r.Directory, rec)
	case SectionParameter:
		r.Parameter = append(r.Parameter, rec)
	case SectionTerminate:
		r.Terminate = append(r.Terminate, rec)
	}
}

// Count returns the number of records in the given section.
func (r *Records) Count(s Section) int {
	switch s {
	case SectionStart:
		return len(r.Start)
	case SectionGlobal:
		return len(r.Global)
	case SectionDirectory:
		return len(r.Directory)
	case SectionParameter:
		return len(r.Parameter)
	case SectionTerminate:
		return len(r.Terminate)
	}
	return 0
}

// ReadRecords classifies every line of r.
func ReadRecords(r io.Reader) (*Records, error) {
	recs := &Records{}
	s := NewScanner(r)
	for s.Scan() {
		recs.Add(s.Record())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
