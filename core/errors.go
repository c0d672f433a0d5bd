package core

import (
	"errors"
	"fmt"
)

// Kind classifies a decoding failure.
type Kind int

const (
	// KindFormat covers bad line length, unknown section codes and field count mismatches.
	KindFormat Kind = iota + 1
	// KindStructural covers directory entry pair mismatches and odd pair counts.
	KindStructural
	// KindReference covers parameter data pointing at a missing directory entry.
	KindReference
	// KindParse covers numeric coercion failures on typed fields.
	KindParse
)

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	ErrFormat     = errors.New("iges: format error")
	ErrStructural = errors.New("iges: structural error")
	ErrReference  = errors.New("iges: reference error")
	ErrParse      = errors.New("iges: parse error")
)

// String returns the name of the error kind.
func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "FormatError"
	case KindStructural:
		return "StructuralError"
	case KindReference:
		return "ReferenceError"
	case KindParse:
		return "ParseError"
	default:
		return "UnknownError"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindFormat:
		return ErrFormat
	case KindStructural:
		return ErrStructural
	case KindReference:
		return ErrReference
	case KindParse:
		return ErrParse
	default:
		return nil
	}
}

// Error reports a decoding failure together with the record that caused it.
// Line is the 1-based physical record number; Sequence is the sequence
// number printed in columns 74-80. Either may be zero when unknown.
type Error struct {
	Kind     Kind
	Section  Section
	Sequence int
	Line     int
	Msg      string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Section != 0 && e.Sequence != 0:
		msg += fmt.Sprintf(" at %c%07d", byte(e.Section), e.Sequence)
	case e.Line != 0:
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	msg += ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Errorf builds an *Error of the given kind for rec.
func Errorf(kind Kind, rec RawRecord, format string, args ...interface{}) *Error {
	return &Error{
		Kind:     kind,
		Section:  rec.Section,
		Sequence: rec.Sequence,
		Line:     rec.Line,
		Msg:      fmt.Sprintf(format, args...),
	}
}
