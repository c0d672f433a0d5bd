package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Default delimiters used when the Global section leaves them unset.
const (
	DefaultParameterDelimiter byte = ','
	DefaultRecordDelimiter    byte = ';'
)

// TokenType represents the type of a free-format parameter token
type TokenType int

const (
	TokenEOF       TokenType = iota
	TokenEmpty               // defaulted parameter, e.g. ",,"
	TokenValue               // integer, real, pointer or other bare text
	TokenHollerith           // 5HHELLO
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenEmpty:
		return "Empty"
	case TokenValue:
		return "Value"
	case TokenHollerith:
		return "Hollerith"
	default:
		return "Unknown"
	}
}

// Token is one parameter of a free-format record.
type Token struct {
	Type  TokenType
	Value string // trimmed text; Hollerith tokens hold the decoded string
	Pos   int    // offset of the token in the input
	// EndOfRecord is set when the token was terminated by the record delimiter.
	EndOfRecord bool
}

// LineBreak marks where one line's data ends in text joined from several
// lines, and how many trailing blanks were trimmed from that line.
type LineBreak struct {
	Offset  int
	Padding int
}

// Tokenizer splits free-format parameter text (Global and Parameter Data
// sections) on the parameter and record delimiters. Hollerith strings are
// consumed by their declared length in characters, so they may contain
// either delimiter.
type Tokenizer struct {
	input  string
	pos    int
	pd     byte
	rd     byte
	done   bool
	breaks []LineBreak
}

// NewTokenizer creates a Tokenizer for input using the given delimiters.
func NewTokenizer(input string, pd, rd byte) *Tokenizer {
	return &Tokenizer{input: input, pd: pd, rd: rd}
}

// SetLineBreaks records the line boundaries of joined input, ordered by
// offset. A Hollerith string that runs across a boundary and would otherwise
// overrun its field gets back the trimmed blanks it needs.
func (t *Tokenizer) SetLineBreaks(breaks []LineBreak) {
	t.breaks = breaks
}

// Pos returns the current offset into the input.
func (t *Tokenizer) Pos() int {
	return t.pos
}

// NextToken returns the next token. After the record delimiter or the end of
// input it returns TokenEOF.
func (t *Tokenizer) NextToken() (Token, error) {
	if t.done {
		return Token{Type: TokenEOF, Pos: t.pos}, nil
	}
	t.skipSpaces()
	start := t.pos

	if t.pos >= len(t.input) {
		t.done = true
		if start == 0 && len(strings.TrimSpace(t.input)) == 0 {
			return Token{Type: TokenEOF, Pos: start}, nil
		}
		return Token{Type: TokenEmpty, Pos: start, EndOfRecord: true}, nil
	}

	if n, body, ok := t.hollerithPrefix(); ok {
		value, end, err := t.hollerith(start, body, n)
		if err != nil {
			return Token{}, err
		}
		t.pos = end
		tok := Token{Type: TokenHollerith, Value: value, Pos: start}
		if err := t.finish(&tok); err != nil {
			return Token{}, err
		}
		return tok, nil
	}

	for t.pos < len(t.input) && t.input[t.pos] != t.pd && t.input[t.pos] != t.rd {
		t.pos++
	}
	tok := Token{Type: TokenValue, Value: strings.TrimSpace(t.input[start:t.pos]), Pos: start}
	if tok.Value == "" {
		tok.Type = TokenEmpty
	}
	if err := t.finish(&tok); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// finish consumes the delimiter that ends tok.
func (t *Tokenizer) finish(tok *Token) error {
	t.skipSpaces()
	if t.pos >= len(t.input) {
		t.done = true
		tok.EndOfRecord = true
		return nil
	}
	switch t.input[t.pos] {
	case t.pd:
		t.pos++
	case t.rd:
		t.pos++
		t.done = true
		tok.EndOfRecord = true
	default:
		return fmt.Errorf("expected delimiter at offset %d, found %q", t.pos, t.input[t.pos])
	}
	return nil
}

// hollerith reads the n characters of a Hollerith string starting at body
// and returns the string and the offset following it.
func (t *Tokenizer) hollerith(start, body, n int) (string, int, error) {
	end, ok := t.advance(body, n)
	if ok && t.delimitedAt(end) {
		return t.input[body:end], end, nil
	}

	// The string may have lost blanks where its line was trimmed: restore
	// the fewest that make it end on a delimiter.
	for m := 1; m <= n && m <= t.maxPadding(); m++ {
		e, fits := t.advance(body, n-m)
		if !fits || !t.delimitedAt(e) {
			continue
		}
		for _, b := range t.breaks {
			if b.Offset >= body && b.Offset <= e && b.Padding >= m {
				return t.input[body:b.Offset] + strings.Repeat(" ", m) + t.input[b.Offset:e], e, nil
			}
		}
	}

	if !ok {
		return "", 0, fmt.Errorf("Hollerith string at offset %d declares %d characters, only %d remain",
			start, n, utf8.RuneCountInString(t.input[body:]))
	}
	return t.input[body:end], end, nil
}

// advance returns the offset n characters past i, or false when the input
// ends first.
func (t *Tokenizer) advance(i, n int) (int, bool) {
	for ; n > 0; n-- {
		if i >= len(t.input) {
			return i, false
		}
		_, size := utf8.DecodeRuneInString(t.input[i:])
		i += size
	}
	return i, true
}

// delimitedAt reports whether a delimiter or the end of input follows i,
// ignoring blanks.
func (t *Tokenizer) delimitedAt(i int) bool {
	for i < len(t.input) && t.input[i] == ' ' {
		i++
	}
	return i >= len(t.input) || t.input[i] == t.pd || t.input[i] == t.rd
}

func (t *Tokenizer) maxPadding() int {
	widest := 0
	for _, b := range t.breaks {
		widest = max(widest, b.Padding)
	}
	return widest
}

// hollerithPrefix recognises "<digits>H" at the current position and
// returns the declared length and the offset of the first string character.
func (t *Tokenizer) hollerithPrefix() (int, int, bool) {
	i := t.pos
	for i < len(t.input) && t.input[i] >= '0' && t.input[i] <= '9' {
		i++
	}
	if i == t.pos || i >= len(t.input) || (t.input[i] != 'H' && t.input[i] != 'h') {
		return 0, 0, false
	}
	n, err := strconv.Atoi(t.input[t.pos:i])
	if err != nil {
		return 0, 0, false
	}
	return n, i + 1, true
}

func (t *Tokenizer) skipSpaces() {
	for t.pos < len(t.input) && t.input[t.pos] == ' ' {
		t.pos++
	}
}

// SplitRecord tokenizes the first record of input, stopping at the record
// delimiter.
func SplitRecord(input string, pd, rd byte) ([]Token, error) {
	var tokens []Token
	tz := NewTokenizer(input, pd, rd)
	for {
		tok, err := tz.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
		if tok.EndOfRecord {
			return tokens, nil
		}
	}
}

// StripHollerith removes a leading "<n>H" prefix from s when n matches the
// number of characters that follow. Anything else is returned unchanged.
func StripHollerith(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != 'H' && s[i] != 'h') {
		return s
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n != utf8.RuneCountInString(s[i+1:]) {
		return s
	}
	return s[i+1:]
}
