package core

import (
	"strings"
	"testing"
)

type tok struct {
	typ   TokenType
	value string
	eor   bool
}

func collect(t *testing.T, input string, pd, rd byte) []tok {
	t.Helper()
	tokens, err := SplitRecord(input, pd, rd)
	if err != nil {
		t.Fatalf("SplitRecord(%q) failed: %v", input, err)
	}
	out := make([]tok, len(tokens))
	for i, tk := range tokens {
		out[i] = tok{tk.Type, tk.Value, tk.EndOfRecord}
	}
	return out
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		typ  TokenType
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenEmpty, "Empty"},
		{TokenValue, "Value"},
		{TokenHollerith, "Hollerith"},
		{TokenType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("TokenType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSplitRecord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pd    byte
		rd    byte
		want  []tok
	}{
		{
			name:  "integers",
			input: "402,2,3,19;",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenValue, "402", false},
				{TokenValue, "2", false},
				{TokenValue, "3", false},
				{TokenValue, "19", true},
			},
		},
		{
			name:  "defaulted and hollerith",
			input: "1.,,5HHELLO;",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenValue, "1.", false},
				{TokenEmpty, "", false},
				{TokenHollerith, "HELLO", true},
			},
		},
		{
			name:  "hollerith holding delimiters",
			input: "3Ha,b,x;",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenHollerith, "a,b", false},
				{TokenValue, "x", true},
			},
		},
		{
			name:  "lowercase hollerith marker",
			input: "2hab;",
			pd:    ',', rd: ';',
			want:  []tok{{TokenHollerith, "ab", true}},
		},
		{
			name:  "blanks around values",
			input: " 1 , 2 ;",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenValue, "1", false},
				{TokenValue, "2", true},
			},
		},
		{
			name:  "custom delimiters",
			input: "1/2.5/3Hx/y|",
			pd:    '/', rd: '|',
			want: []tok{
				{TokenValue, "1", false},
				{TokenValue, "2.5", false},
				{TokenHollerith, "x/y", true},
			},
		},
		{
			name:  "stops at record delimiter",
			input: "1,2;3,4;",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenValue, "1", false},
				{TokenValue, "2", true},
			},
		},
		{
			name:  "no record delimiter",
			input: "1,2",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenValue, "1", false},
				{TokenValue, "2", true},
			},
		},
		{
			name:  "trailing parameter delimiter",
			input: "1,",
			pd:    ',', rd: ';',
			want: []tok{
				{TokenValue, "1", false},
				{TokenEmpty, "", true},
			},
		},
		{
			name:  "empty input",
			input: "",
			pd:    ',', rd: ';',
			want:  []tok{},
		},
		{
			name:  "blank input",
			input: "    ",
			pd:    ',', rd: ';',
			want:  []tok{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input, tt.pd, tt.rd)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitRecordErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"truncated hollerith", "10Habc;", "declares 10 characters"},
		{"hollerith overrun", "3Habcd,x;", "expected delimiter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitRecord(tt.input, ',', ';')
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestSplitRecordMultiByteHollerith(t *testing.T) {
	got := collect(t, "6HMüller,3Hçà€,2;", ',', ';')
	want := []string{"Müller", "çà€", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].value != w {
			t.Errorf("token %d = %q, want %q", i, got[i].value, w)
		}
	}
}

func TestTokenizerLineBreakPadding(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		breaks []LineBreak
		want   []string
	}{
		{
			name:   "blank lost inside string",
			input:  "31HOpen CASCADEIGES processor 6.8,13HFilename.iges;",
			breaks: []LineBreak{{Offset: len("31HOpen CASCADE"), Padding: 55}},
			want:   []string{"Open CASCADE IGES processor 6.8", "Filename.iges"},
		},
		{
			name:   "blank lost at end of string",
			input:  "5Habcd,x;",
			breaks: []LineBreak{{Offset: len("5Habcd"), Padding: 3}},
			want:   []string{"abcd ", "x"},
		},
		{
			name:   "string fits without padding",
			input:  "4Habcd,x;",
			breaks: []LineBreak{{Offset: len("4Hab"), Padding: 10}},
			want:   []string{"abcd", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := NewTokenizer(tt.input, ',', ';')
			tz.SetLineBreaks(tt.breaks)

			var got []string
			for {
				tk, err := tz.NextToken()
				if err != nil {
					t.Fatalf("NextToken failed: %v", err)
				}
				if tk.Type == TokenEOF {
					break
				}
				got = append(got, tk.Value)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("tokens = %q, want %q", got, tt.want)
			}
		})
	}

	// Without the break the same input overruns its field.
	if _, err := SplitRecord(tests[0].input, ',', ';'); err == nil {
		t.Error("expected error without line breaks")
	}
}

func TestTokenizerPositions(t *testing.T) {
	tz := NewTokenizer("402,2HAB,7;", ',', ';')
	wantPos := []int{0, 4, 9}
	for i, want := range wantPos {
		tk, err := tz.NextToken()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tk.Pos != want {
			t.Errorf("token %d pos = %d, want %d", i, tk.Pos, want)
		}
	}

	tk, err := tz.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Type != TokenEOF {
		t.Errorf("expected EOF after record delimiter, got %v", tk.Type)
	}
	if tz.Pos() != len("402,2HAB,7;") {
		t.Errorf("Pos() = %d, want end of input", tz.Pos())
	}
}

func TestStripHollerith(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5HHELLO", "HELLO"},
		{"6HMüller", "Müller"},
		{"2Hé", "2Hé"},
		{"2hMM", "MM"},
		{"0H", ""},
		{"3HAB", "3HAB"},
		{"402", "402"},
		{"H", "H"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHollerith(tt.in); got != tt.want {
			t.Errorf("StripHollerith(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
