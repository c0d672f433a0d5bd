package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func line(data string, section byte, seq int) string {
	return fmt.Sprintf("%-72s%c%07d", data, section, seq)
}

func TestSectionString(t *testing.T) {
	tests := []struct {
		section Section
		want    string
		valid   bool
	}{
		{SectionStart, "Start", true},
		{SectionGlobal, "Global", true},
		{SectionDirectory, "Directory", true},
		{SectionParameter, "Parameter", true},
		{SectionTerminate, "Terminate", true},
		{Section('C'), "Unknown", false},
		{Section(0), "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.section.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.section.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	rec, err := Classify(line("402,2,3,19;", 'P', 12), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Section != SectionParameter {
		t.Errorf("section = %v, want Parameter", rec.Section)
	}
	if rec.Sequence != 12 {
		t.Errorf("sequence = %d, want 12", rec.Sequence)
	}
	if rec.Line != 40 {
		t.Errorf("line = %d, want 40", rec.Line)
	}
	if len(rec.Data) != DataWidth || !strings.HasPrefix(rec.Data, "402,2,3,19;") {
		t.Errorf("data = %q", rec.Data)
	}
}

func TestClassifyShortSequence(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"section code only", strings.Repeat(" ", 72) + "S", 0},
		{"blank sequence", strings.Repeat(" ", 72) + "S       ", 0},
		{"unpadded sequence", strings.Repeat(" ", 72) + "S42", 42},
		{"trailing columns ignored", line("", 'S', 3) + "XYZ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Classify(tt.line, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Sequence != tt.want {
				t.Errorf("sequence = %d, want %d", rec.Sequence, tt.want)
			}
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"short line", "402,2,3,19;", ErrFormat},
		{"72 columns", strings.Repeat(" ", 72), ErrFormat},
		{"unknown section", line("", 'X', 1), ErrFormat},
		{"lowercase section", line("", 'g', 1), ErrFormat},
		{"non-numeric sequence", strings.Repeat(" ", 72) + "G00a0001", ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.line, 7)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var ierr *Error
			if !errors.As(err, &ierr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if ierr.Line != 7 {
				t.Errorf("error line = %d, want 7", ierr.Line)
			}
		})
	}
}

func TestClassifyNonASCII(t *testing.T) {
	data := "Café"
	padded := data + strings.Repeat(" ", DataWidth-utf8.RuneCountInString(data))
	rec, err := Classify(padded+"S0000001", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Section != SectionStart || rec.Sequence != 1 {
		t.Errorf("got %v %d, want Start 1", rec.Section, rec.Sequence)
	}
	if got := utf8.RuneCountInString(rec.Data); got != DataWidth {
		t.Errorf("data is %d runes, want %d", got, DataWidth)
	}
	if !strings.HasPrefix(rec.Data, data) {
		t.Errorf("data = %q", rec.Data)
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Section
	}{
		{
			name:  "LF",
			input: line("", 'S', 1) + "\n" + line("", 'G', 1) + "\n",
			want:  []Section{SectionStart, SectionGlobal},
		},
		{
			name:  "CRLF",
			input: line("", 'S', 1) + "\r\n" + line("", 'G', 1) + "\r\n",
			want:  []Section{SectionStart, SectionGlobal},
		},
		{
			name:  "no trailing newline",
			input: line("", 'S', 1) + "\n" + line("", 'T', 1),
			want:  []Section{SectionStart, SectionTerminate},
		},
		{
			name:  "blank lines skipped",
			input: "\n" + line("", 'S', 1) + "\n   \n\n" + line("", 'G', 1) + "\n\n",
			want:  []Section{SectionStart, SectionGlobal},
		},
		{
			name:  "unterminated records",
			input: line("", 'S', 1) + line("", 'G', 1) + line("", 'T', 1),
			want:  []Section{SectionStart, SectionGlobal, SectionTerminate},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(strings.NewReader(tt.input))
			var got []Section
			for s.Scan() {
				got = append(got, s.Record().Section)
			}
			if err := s.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("record %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScannerLineNumbers(t *testing.T) {
	input := line("", 'S', 1) + "\n\n" + line("", 'G', 1) + "\n" + "bad\n"
	s := NewScanner(strings.NewReader(input))

	var lines []int
	for s.Scan() {
		lines = append(lines, s.Record().Line)
	}
	if len(lines) != 2 || lines[0] != 1 || lines[1] != 2 {
		t.Errorf("line numbers = %v, want [1 2]", lines)
	}

	var ierr *Error
	if !errors.As(s.Err(), &ierr) {
		t.Fatalf("expected *Error, got %v", s.Err())
	}
	if ierr.Line != 3 {
		t.Errorf("error line = %d, want 3", ierr.Line)
	}
	if s.Scan() {
		t.Error("Scan should keep returning false after an error")
	}
}

func TestReadRecords(t *testing.T) {
	input := strings.Join([]string{
		line("", 'S', 1),
		line(",,;", 'G', 1),
		line("     110", 'D', 1),
		line("     110", 'D', 2),
		line("110,0.,0.,0.,1.,1.,1.;", 'P', 1),
		line("S      1G      1D      2P      1", 'T', 1),
	}, "\n")

	recs, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}

	counts := map[Section]int{
		SectionStart:     1,
		SectionGlobal:    1,
		SectionDirectory: 2,
		SectionParameter: 1,
		SectionTerminate: 1,
	}
	for section, want := range counts {
		if got := recs.Count(section); got != want {
			t.Errorf("%v count = %d, want %d", section, got, want)
		}
	}
	if recs.Directory[1].Sequence != 2 {
		t.Errorf("second directory line sequence = %d, want 2", recs.Directory[1].Sequence)
	}
	if recs.Count(Section('X')) != 0 {
		t.Error("unknown section should count zero")
	}
}

func TestReadRecordsError(t *testing.T) {
	input := line("", 'S', 1) + "\n" + line("", 'Q', 2) + "\n"
	_, err := ReadRecords(strings.NewReader(input))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
