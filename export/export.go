// Package export writes decoded IGES documents as JSON, JSON Lines, CSV,
// YAML or an HTML report.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/iges/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatJSON exports the whole document as one JSON object
	FormatJSON Format = iota
	// FormatJSONL exports one directory entry per line
	FormatJSONL
	// FormatCSV exports the directory entries as a table
	FormatCSV
	// FormatYAML exports the whole document as YAML
	FormatYAML
	// FormatHTML exports a standalone HTML report
	FormatHTML
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatCSV:
		return "csv"
	case FormatYAML:
		return "yaml"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	case FormatCSV:
		return ".csv"
	case FormatYAML:
		return ".yaml"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// ParseFormat resolves a format name such as "json" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown export format %q", name)
	}
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// PrettyPrint indents JSON output
	PrettyPrint bool

	// IncludeParameters adds each entry's split parameter list
	IncludeParameters bool

	// CSVDelimiter specifies the delimiter for CSV export (default: comma)
	CSVDelimiter rune

	// IncludeHeader includes the header row in CSV exports
	IncludeHeader bool

	// Title is used as the HTML report title; the file name is used when empty
	Title string
}

// DefaultConfig returns the default export configuration
func DefaultConfig() Config {
	return Config{
		Format:        FormatJSON,
		CSVDelimiter:  ',',
		IncludeHeader: true,
	}
}

// Exporter writes documents in a configured format
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	if config.CSVDelimiter == 0 {
		config.CSVDelimiter = ','
	}
	return &Exporter{config: config}
}

// Export writes doc to w
func (e *Exporter) Export(doc *model.Document, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("no document to export")
	}
	exported, err := e.prepareDocument(doc)
	if err != nil {
		return err
	}

	switch e.config.Format {
	case FormatJSON:
		return e.exportJSON(exported, w)
	case FormatJSONL:
		return e.exportJSONL(exported, w)
	case FormatCSV:
		return e.exportCSV(exported, w)
	case FormatYAML:
		return e.exportYAML(exported, w)
	case FormatHTML:
		return e.exportHTML(exported, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile writes doc to a file
func (e *Exporter) ExportToFile(doc *model.Document, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := e.Export(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToString returns doc rendered as a string
func (e *Exporter) ExportToString(doc *model.Document) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// exportJSON writes the document as a single JSON object
func (e *Exporter) exportJSON(doc ExportedDocument, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// exportJSONL writes one JSON object per directory entry
func (e *Exporter) exportJSONL(doc ExportedDocument, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for _, entry := range doc.Entries {
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("encoding entry %d: %w", entry.Key, err)
		}
	}
	return nil
}

// exportYAML writes the document as YAML
func (e *Exporter) exportYAML(doc ExportedDocument, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return encoder.Close()
}

// csvColumns is the entry table header.
var csvColumns = []string{
	"key", "entity_type", "entity_name", "form", "parameter_data",
	"structure", "line_font", "level", "view", "transformation_matrix",
	"label_display", "status", "line_weight", "color", "parameter_line_count",
	"label", "subscript", "param_str",
}

// exportCSV writes the directory entries as a table
func (e *Exporter) exportCSV(doc ExportedDocument, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.config.CSVDelimiter

	columns := csvColumns
	if e.config.IncludeParameters {
		columns = append(append([]string(nil), csvColumns...), "parameters")
	}

	if e.config.IncludeHeader {
		if err := csvWriter.Write(columns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for _, entry := range doc.Entries {
		row := []string{
			strconv.Itoa(entry.Key),
			strconv.Itoa(entry.EntityType),
			entry.EntityName,
			strconv.Itoa(entry.Form),
			strconv.Itoa(entry.ParameterData),
			entry.Structure,
			entry.LineFont,
			entry.Level,
			entry.View,
			entry.TransformationMatrix,
			entry.LabelDisplay,
			entry.Status,
			entry.LineWeight,
			entry.Color,
			entry.ParameterLineCount,
			entry.Label,
			entry.Subscript,
			entry.ParamStr,
		}
		if e.config.IncludeParameters {
			row = append(row, strings.Join(entry.Parameters, "|"))
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", entry.Key, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
