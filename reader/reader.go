package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/internal/filters"
	"github.com/tsawler/iges/model"
)

// WarningCode identifies the kind of a non-fatal decoding issue.
type WarningCode int

const (
	// WarnDanglingParameter marks parameter data dropped because its
	// back-pointer names no directory entry (lenient mode only).
	WarnDanglingParameter WarningCode = iota + 1
	// WarnTerminate marks a missing, malformed or inconsistent Terminate record.
	WarnTerminate
)

// String returns the warning code name.
func (c WarningCode) String() string {
	switch c {
	case WarnDanglingParameter:
		return "dangling-parameter"
	case WarnTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue found while decoding.
type Warning struct {
	Code     WarningCode
	Sequence int
	Message  string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Sequence != 0 {
		return fmt.Sprintf("%s (seq %d): %s", w.Code, w.Sequence, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single line-per-warning string.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// Option configures a Reader.
type Option func(*Reader)

// WithLenientReferences downgrades parameter data pointing at a missing
// directory entry from a ReferenceError to a warning.
func WithLenientReferences() Option {
	return func(r *Reader) {
		r.lenient = true
	}
}

// WithEncoding decodes the input from the named charset (e.g. "latin1").
func WithEncoding(label string) Option {
	return func(r *Reader) {
		r.encoding = label
	}
}

// WithLogger sets the logger used for stage-level debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reader decodes one IGES stream
type Reader struct {
	src      io.Reader
	closers  []io.Closer
	lenient  bool
	encoding string
	logger   *zap.Logger

	doc      *model.Document
	warnings []Warning
	err      error
}

// NewReader creates a Reader for an already-open stream. The caller owns
// the stream.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:    src,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open opens an IGES file, transparently decompressing gzip input.
func Open(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	src, zc, compressed, err := filters.Decompress(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	r := NewReader(src, opts...)
	r.closers = []io.Closer{zc, file}
	r.logger.Debug("opened IGES file",
		zap.String("file", filename),
		zap.Bool("gzip", compressed))
	return r, nil
}

// Close releases the file opened by Open. It is a no-op for readers created
// with NewReader.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// Warnings returns the non-fatal issues found by Parse.
func (r *Reader) Warnings() []Warning {
	return append([]Warning(nil), r.warnings...)
}

// Parse decodes the stream. The stream is consumed on the first call; later
// calls return the same result.
func (r *Reader) Parse() (*model.Document, error) {
	if r.doc != nil || r.err != nil {
		return r.doc, r.err
	}
	r.doc, r.err = r.parse()
	return r.doc, r.err
}

func (r *Reader) parse() (*model.Document, error) {
	src, err := filters.DecodeReader(r.src, r.encoding)
	if err != nil {
		return nil, err
	}

	recs, err := core.ReadRecords(src)
	if err != nil {
		return nil, fmt.Errorf("failed to classify records: %w", err)
	}
	r.logger.Debug("classified records",
		zap.Int("start", len(recs.Start)),
		zap.Int("global", len(recs.Global)),
		zap.Int("directory", len(recs.Directory)),
		zap.Int("parameter", len(recs.Parameter)),
		zap.Int("terminate", len(recs.Terminate)))

	doc := model.NewDocument()
	doc.Start = decodeStart(recs.Start)

	global, err := decodeGlobal(recs.Global)
	if err != nil {
		return nil, fmt.Errorf("failed to decode global section: %w", err)
	}
	doc.Global = global
	r.logger.Debug("decoded global section", zap.String("units", global.UnitsName()))

	entries, err := decodeDirectory(recs.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to decode directory section: %w", err)
	}
	doc.Entries = entries
	r.logger.Debug("decoded directory section", zap.Int("entries", len(entries)))

	groups, err := decodeParameters(recs.Parameter)
	if err != nil {
		return nil, fmt.Errorf("failed to decode parameter section: %w", err)
	}
	r.logger.Debug("decoded parameter section", zap.Int("groups", groups.Len()))

	linkWarnings, err := link(entries, groups, r.lenient)
	if err != nil {
		return nil, fmt.Errorf("failed to link parameter data: %w", err)
	}
	r.warnings = append(r.warnings, linkWarnings...)

	term, termWarnings := decodeTerminate(recs)
	doc.Terminate = term
	r.warnings = append(r.warnings, termWarnings...)

	for _, w := range r.warnings {
		r.logger.Warn("decoding issue",
			zap.Stringer("code", w.Code),
			zap.Int("sequence", w.Sequence),
			zap.String("message", w.Message))
	}

	return doc, nil
}

// Parse decodes an IGES stream into its Global section and directory
// entries, with each entry's parameter data attached.
func Parse(src io.Reader) (*model.GlobalSection, model.Entries, error) {
	doc, err := NewReader(src).Parse()
	if err != nil {
		return nil, nil, err
	}
	return doc.Global, doc.Entries, nil
}
