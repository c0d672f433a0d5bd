package export

import (
	"fmt"
	"strings"

	"github.com/tsawler/iges/model"
)

// ExportedDocument is the serialisable form of a decoded file.
type ExportedDocument struct {
	FileName  string              `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Units     string              `json:"units,omitempty" yaml:"units,omitempty"`
	Start     string              `json:"start,omitempty" yaml:"start,omitempty"`
	Global    []ExportedParameter `json:"global" yaml:"global"`
	Entries   []ExportedEntry     `json:"entries" yaml:"entries"`
	Terminate *ExportedTerminate  `json:"terminate,omitempty" yaml:"terminate,omitempty"`
}

// ExportedParameter is one Global section parameter. Value is nil when the
// file leaves the parameter unset.
type ExportedParameter struct {
	Index int         `json:"index" yaml:"index"`
	Name  string      `json:"name" yaml:"name"`
	Type  string      `json:"type" yaml:"type"`
	Value interface{} `json:"value" yaml:"value"`
}

// ExportedEntry is one directory entry with its parameter data.
type ExportedEntry struct {
	Key                  int      `json:"key" yaml:"key"`
	EntityType           int      `json:"entity_type" yaml:"entity_type"`
	EntityName           string   `json:"entity_name" yaml:"entity_name"`
	Form                 int      `json:"form" yaml:"form"`
	ParameterData        int      `json:"parameter_data" yaml:"parameter_data"`
	Structure            string   `json:"structure,omitempty" yaml:"structure,omitempty"`
	LineFont             string   `json:"line_font" yaml:"line_font"`
	Level                string   `json:"level,omitempty" yaml:"level,omitempty"`
	View                 string   `json:"view,omitempty" yaml:"view,omitempty"`
	TransformationMatrix string   `json:"transformation_matrix,omitempty" yaml:"transformation_matrix,omitempty"`
	LabelDisplay         string   `json:"label_display,omitempty" yaml:"label_display,omitempty"`
	Status               string   `json:"status" yaml:"status"`
	LineWeight           string   `json:"line_weight,omitempty" yaml:"line_weight,omitempty"`
	Color                string   `json:"color,omitempty" yaml:"color,omitempty"`
	ParameterLineCount   string   `json:"parameter_line_count,omitempty" yaml:"parameter_line_count,omitempty"`
	Label                string   `json:"label,omitempty" yaml:"label,omitempty"`
	Subscript            string   `json:"subscript,omitempty" yaml:"subscript,omitempty"`
	ParamStr             string   `json:"param_str" yaml:"param_str"`
	Parameters           []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ExportedTerminate holds the Terminate record counts.
type ExportedTerminate struct {
	Start     int `json:"start" yaml:"start"`
	Global    int `json:"global" yaml:"global"`
	Directory int `json:"directory" yaml:"directory"`
	Parameter int `json:"parameter" yaml:"parameter"`
}

// Prepare converts doc to its exported form without IncludeParameters.
func Prepare(doc *model.Document) (ExportedDocument, error) {
	return NewExporter().prepareDocument(doc)
}

func (e *Exporter) prepareDocument(doc *model.Document) (ExportedDocument, error) {
	out := ExportedDocument{
		Start:   doc.Start,
		Global:  []ExportedParameter{},
		Entries: make([]ExportedEntry, 0, doc.EntryCount()),
	}

	if doc.Global != nil {
		out.FileName = doc.Global.FileName()
		out.Units = doc.Global.UnitsName()
		for _, p := range doc.Global.Parameters() {
			out.Global = append(out.Global, exportParameter(p))
		}
	}

	fonts := model.DefaultLineFonts()
	pd, rd := doc.Delimiters()
	for _, entry := range doc.Entries.Sorted() {
		exported := exportEntry(entry, fonts)
		if e.config.IncludeParameters {
			params, err := entry.Parameters(pd, rd)
			if err != nil {
				return ExportedDocument{}, fmt.Errorf("splitting parameters: %w", err)
			}
			exported.Parameters = params
		}
		out.Entries = append(out.Entries, exported)
	}

	if t := doc.Terminate; t != nil {
		out.Terminate = &ExportedTerminate{
			Start:     t.Start,
			Global:    t.Global,
			Directory: t.Directory,
			Parameter: t.Parameter,
		}
	}
	return out, nil
}

func exportParameter(p model.GlobalParameter) ExportedParameter {
	exported := ExportedParameter{Index: p.Index, Name: p.Name, Type: p.Type.String()}
	if !p.Value.Set {
		return exported
	}
	switch p.Type {
	case model.IntegerField:
		exported.Value = p.Value.Int
	case model.FloatField:
		exported.Value = p.Value.Float
	default:
		exported.Value = p.Value.Str
	}
	return exported
}

func exportEntry(e *model.DirectoryEntry, fonts model.LineFontTable) ExportedEntry {
	return ExportedEntry{
		Key:                  e.Sequence,
		EntityType:           e.EntityType(),
		EntityName:           e.EntityName(),
		Form:                 e.Form(),
		ParameterData:        e.ParameterData,
		Structure:            strings.TrimSpace(e.Structure),
		LineFont:             e.LineFontName(fonts),
		Level:                strings.TrimSpace(e.Level),
		View:                 strings.TrimSpace(e.View),
		TransformationMatrix: strings.TrimSpace(e.TransformationMatrix),
		LabelDisplay:         strings.TrimSpace(e.LabelDisplayAssoc),
		Status:               strings.TrimSpace(e.StatusNumber),
		LineWeight:           strings.TrimSpace(e.LineWeightNumber),
		Color:                strings.TrimSpace(e.ColorNumber),
		ParameterLineCount:   strings.TrimSpace(e.ParameterLineCount),
		Label:                e.Label(),
		Subscript:            strings.TrimSpace(e.EntrySubscriptNumber),
		ParamStr:             e.ParamStr,
	}
}
