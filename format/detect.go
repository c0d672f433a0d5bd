// Package format provides IGES file detection.
package format

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/internal/filters"
)

// Format represents a recognised file form.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// IGES indicates the fixed 80-column ASCII form.
	IGES
	// CompressedASCII indicates the IGES compressed ASCII form, flagged by a
	// 'C' in column 73 of the first record. It is recognised but not decoded.
	CompressedASCII
)

// sniffSize is how much of a file DetectFromReader inspects.
const sniffSize = 512

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case IGES:
		return "IGES"
	case CompressedASCII:
		return "IGES compressed ASCII"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case IGES, CompressedASCII:
		return ".igs"
	default:
		return ""
	}
}

// Supported reports whether the decoder can read the format.
func (f Format) Supported() bool {
	return f == IGES
}

// Detect determines file format from filename extension. A trailing .gz is
// ignored, so "part.igs.gz" is IGES.
func Detect(filename string) Format {
	name := strings.ToLower(filename)
	name = strings.TrimSuffix(name, ".gz")
	switch filepath.Ext(name) {
	case ".igs", ".iges", ".ige":
		return IGES
	default:
		return Unknown
	}
}

// IsGzipName reports whether filename carries a .gz suffix.
func IsGzipName(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".gz")
}

// DetectFromMagic inspects the first record of data. It returns Unknown
// for gzip data; use DetectFromReader to look inside it.
func DetectFromMagic(data []byte) Format {
	if filters.IsGzip(data) {
		return Unknown
	}

	line := firstLine(data)
	if line == "" {
		return Unknown
	}

	rec, err := core.Classify(line, 1)
	if err == nil {
		switch rec.Section {
		case core.SectionStart, core.SectionGlobal:
			return IGES
		}
		return Unknown
	}

	cols := []rune(line)
	if len(cols) > core.DataWidth && cols[core.DataWidth] == 'C' {
		return CompressedASCII
	}
	return Unknown
}

// firstLine returns the first non-blank line of data, or the first 80
// columns when the records are not newline separated.
func firstLine(data []byte) string {
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) > core.RecordWidth && len(line)%core.RecordWidth == 0 {
			line = line[:core.RecordWidth]
		}
		return line
	}
	return ""
}

// DetectFromReader inspects the content to determine format. Gzip input is
// decompressed far enough to read its first record.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, sniffSize)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if !filters.IsGzip(magic) {
		return DetectFromMagic(magic), nil
	}

	src, closer, _, err := filters.Decompress(io.NewSectionReader(r, 0, size))
	if err != nil {
		return Unknown, err
	}
	defer closer.Close()

	inner := make([]byte, sniffSize)
	n, err = io.ReadFull(src, inner)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(inner[:n]), nil
}
