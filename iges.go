// Package iges provides a fluent API for decoding IGES (Initial Graphics
// Exchange Specification) files.
//
// Basic usage:
//
//	doc, warnings, err := iges.Open("bracket.igs").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", iges.FormatWarnings(warnings))
//	}
//
// With options:
//
//	entries, _, err := iges.Open("legacy.igs.gz").
//	    Encoding("latin1").
//	    AllowDanglingParameters().
//	    Entries()
//
// For advanced use cases, the lower-level reader package is also available.
package iges

import (
	"io"

	"github.com/tsawler/iges/model"
	"github.com/tsawler/iges/reader"
)

// Warning is a non-fatal issue found while decoding.
type Warning = reader.Warning

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	return reader.FormatWarnings(warnings)
}

// Open returns a Decoder for the named file. Gzip-compressed files are
// decompressed transparently.
//
// Example:
//
//	doc, warnings, err := iges.Open("bracket.igs").Document()
func Open(filename string) *Decoder {
	return &Decoder{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns a Decoder reading from r. The stream is read once, on
// the first terminal call; Decoders derived from the result share it.
// The caller is responsible for closing r.
//
// Example:
//
//	f, err := os.Open("bracket.igs")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//	global, _, err := iges.FromReader(f).Global()
func FromReader(r io.Reader) *Decoder {
	return &Decoder{
		source:  &source{r: r},
		options: defaultOptions(),
	}
}

// Parse decodes an IGES stream into its Global section and directory
// entries, with each entry's parameter data attached.
func Parse(r io.Reader) (*model.GlobalSection, model.Entries, error) {
	return reader.Parse(r)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := iges.Must(iges.Open("bracket.igs").EntryCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDecode is a helper that wraps a terminal call such as Document() and
// panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	doc := iges.MustDecode(iges.Open("bracket.igs").Document())
func MustDecode[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
