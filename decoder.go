package iges

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/tsawler/iges/export"
	"github.com/tsawler/iges/format"
	"github.com/tsawler/iges/internal/filters"
	"github.com/tsawler/iges/model"
	"github.com/tsawler/iges/reader"
)

// source buffers a caller-supplied stream so every Decoder derived from
// FromReader can decode it.
type source struct {
	r    io.Reader
	once sync.Once
	data []byte
	err  error
}

func (s *source) bytes() ([]byte, error) {
	s.once.Do(func() {
		s.data, s.err = io.ReadAll(s.r)
		if s.err != nil {
			s.err = fmt.Errorf("failed to read stream: %w", s.err)
		}
	})
	return s.data, s.err
}

// Decoder provides a fluent interface for decoding IGES files.
// Each configuration method returns a new Decoder instance, making it
// safe for concurrent use and allowing method chaining.
type Decoder struct {
	// Source: a file name or a buffered stream
	filename string
	source   *source

	// Configuration
	options DecodeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Decoder with a copy of options.
func (d *Decoder) clone() *Decoder {
	return &Decoder{
		filename: d.filename,
		source:   d.source,
		options:  d.options.clone(),
		err:      d.err,
	}
}

// ============================================================================
// Configuration Methods (return new Decoder instance)
// ============================================================================

// Encoding sets the character set of the input, e.g. "latin1",
// "windows-1252" or "cp437". Unknown names fail at the terminal call.
//
// Example:
//
//	doc, _, err := iges.Open("legacy.igs").Encoding("latin1").Document()
func (d *Decoder) Encoding(name string) *Decoder {
	n := d.clone()
	if _, err := filters.LookupEncoding(name); err != nil && n.err == nil {
		n.err = err
	}
	n.options.encoding = name
	return n
}

// AllowDanglingParameters keeps decoding when parameter data points at a
// directory entry that does not exist. The orphaned lines are dropped and
// reported as warnings instead of failing with a reference error.
//
// Example:
//
//	doc, warnings, err := iges.Open("damaged.igs").AllowDanglingParameters().Document()
func (d *Decoder) AllowDanglingParameters() *Decoder {
	n := d.clone()
	n.options.lenient = true
	return n
}

// Logger sets the logger that receives per-stage debug output.
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	doc, _, err := iges.Open("bracket.igs").Logger(logger).Document()
func (d *Decoder) Logger(logger *zap.Logger) *Decoder {
	n := d.clone()
	n.options.logger = logger
	return n
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Document decodes the whole file: Start text, Global section, directory
// entries with their parameter data, and Terminate counts.
//
// Example:
//
//	doc, warnings, err := iges.Open("bracket.igs").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Global.UnitsName(), doc.EntryCount())
func (d *Decoder) Document() (*model.Document, []Warning, error) {
	return d.decode()
}

// Global decodes the file and returns its Global section.
func (d *Decoder) Global() (*model.GlobalSection, []Warning, error) {
	doc, warnings, err := d.decode()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Global, warnings, nil
}

// Entries decodes the file and returns its directory entries keyed by the
// sequence number of each entry's first line.
//
// Example:
//
//	entries, _, err := iges.Open("bracket.igs").Entries()
//	for _, e := range entries.ByType(110) {
//	    fmt.Println(e.Sequence, e.ParamStr)
//	}
func (d *Decoder) Entries() (model.Entries, []Warning, error) {
	doc, warnings, err := d.decode()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Entries, warnings, nil
}

// EntryCount decodes the file and returns the number of directory entries.
func (d *Decoder) EntryCount() (int, error) {
	doc, _, err := d.decode()
	if err != nil {
		return 0, err
	}
	return doc.EntryCount(), nil
}

// Export decodes the file and writes it to w in the configured format.
//
// Example:
//
//	cfg := export.DefaultConfig()
//	cfg.Format = export.FormatCSV
//	_, err := iges.Open("bracket.igs").Export(os.Stdout, cfg)
func (d *Decoder) Export(w io.Writer, cfg export.Config) ([]Warning, error) {
	doc, warnings, err := d.decode()
	if err != nil {
		return warnings, err
	}
	if err := export.NewExporterWithConfig(cfg).Export(doc, w); err != nil {
		return warnings, fmt.Errorf("failed to export: %w", err)
	}
	return warnings, nil
}

// ============================================================================
// Internals
// ============================================================================

func (d *Decoder) readerOptions() []reader.Option {
	opts := []reader.Option{reader.WithEncoding(d.options.encoding)}
	if d.options.lenient {
		opts = append(opts, reader.WithLenientReferences())
	}
	if d.options.logger != nil {
		opts = append(opts, reader.WithLogger(d.options.logger))
	}
	return opts
}

// openReader opens the configured source.
func (d *Decoder) openReader() (*reader.Reader, error) {
	if d.source != nil {
		data, err := d.source.bytes()
		if err != nil {
			return nil, err
		}
		if f := format.DetectFromMagic(data); f == format.CompressedASCII {
			return nil, fmt.Errorf("unsupported file format: %s", f)
		}
		src, closer, _, err := filters.Decompress(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		text, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress stream: %w", err)
		}
		return reader.NewReader(bytes.NewReader(text), d.readerOptions()...), nil
	}

	if d.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	if err := checkFormat(d.filename); err != nil {
		return nil, err
	}
	r, err := reader.Open(d.filename, d.readerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to open IGES file: %w", err)
	}
	return r, nil
}

// checkFormat rejects files that are neither named nor shaped like IGES,
// and the compressed ASCII form, which the decoder does not read.
func checkFormat(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open IGES file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat IGES file: %w", err)
	}
	content, err := format.DetectFromReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to detect file format: %w", err)
	}

	switch {
	case content == format.CompressedASCII:
		return fmt.Errorf("unsupported file format: %s", content)
	case content == format.Unknown && format.Detect(filename) == format.Unknown:
		return fmt.Errorf("unsupported file format: %s", filename)
	}
	return nil
}

func (d *Decoder) decode() (*model.Document, []Warning, error) {
	if d.err != nil {
		return nil, nil, d.err
	}

	r, err := d.openReader()
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	doc, err := r.Parse()
	if err != nil {
		return nil, r.Warnings(), err
	}
	return doc, r.Warnings(), nil
}
