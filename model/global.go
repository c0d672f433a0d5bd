package model

import (
	"fmt"
	"strconv"
)

// FieldType is the declared type of a Global section parameter.
type FieldType int

const (
	StringField FieldType = iota
	IntegerField
	FloatField
)

// String returns the type name.
func (t FieldType) String() string {
	switch t {
	case StringField:
		return "string"
	case IntegerField:
		return "integer"
	case FloatField:
		return "float"
	default:
		return "unknown"
	}
}

// Names of the 26 Global section parameters, in file order.
const (
	ParameterDelimiter            = "parameter_delimiter"
	RecordDelimiter               = "record_delimiter"
	ProductIdentificationSender   = "product_identification_sender"
	FileName                      = "file_name"
	NativeSystemID                = "native_system_id"
	PreprocessorVersion           = "preprocessor_version"
	IntBinaryBits                 = "int_binary_bits"
	SingleMaxPower                = "single_max_power"
	SingleSignificantDigits       = "single_significant_digits"
	DoubleMaxPower                = "double_max_power"
	DoubleSignificantDigits       = "double_significant_digits"
	ProductIdentificationReceiver = "product_identification_receiver"
	ModelSpaceScale               = "model_space_scale"
	UnitsFlag                     = "units_flag"
	UnitsName                     = "units_name"
	MaxLineWeightGradations       = "maximum_number_of_line_weight_gradations"
	MaxLineWeightWidth            = "width_of_maximum_line_weight_in_units"
	DatetimeExchange              = "datetime_exchange"
	Resolution                    = "resolution"
	MaxCoord                      = "max_coord"
	Author                        = "author"
	Organization                  = "organization"
	SpecificationFlag             = "specification_flag"
	DraftingStandardFlag          = "drafting_standard_flag"
	DatetimeMod                   = "datetime_mod"
	ApplicationProtocol           = "application_protocol"
)

type fieldDecl struct {
	name        string
	typ         FieldType
	description string
}

var globalFields = [...]fieldDecl{
	{ParameterDelimiter, StringField, "Parameter delimiter character."},
	{RecordDelimiter, StringField, "Record delimiter character."},
	{ProductIdentificationSender, StringField, "Product identification from sending system"},
	{FileName, StringField, "File name"},
	{NativeSystemID, StringField, "Native System ID"},
	{PreprocessorVersion, StringField, "Preprocessor version"},
	{IntBinaryBits, IntegerField, "Number of binary bits for integer representation"},
	{SingleMaxPower, IntegerField, "Maximum power of ten representable in a single-precision floating point number on the sending system"},
	{SingleSignificantDigits, IntegerField, "Number of significant digits in a single-precision floating point number on the sending system"},
	{DoubleMaxPower, IntegerField, "Maximum power of ten representable in a double-precision floating point number on the sending system"},
	{DoubleSignificantDigits, IntegerField, "Number of significant digits in a double-precision floating point number on the sending system"},
	{ProductIdentificationReceiver, StringField, "Product identification for the receiving system"},
	{ModelSpaceScale, FloatField, "Model space scale"},
	{UnitsFlag, IntegerField, "Units flag"},
	{UnitsName, StringField, "Units name"},
	{MaxLineWeightGradations, IntegerField, "Maximum number of line weight gradations"},
	{MaxLineWeightWidth, FloatField, "Width of maximum line weight in units"},
	{DatetimeExchange, StringField, "Date and time of exchange file generation (15HYYYYMMDD.HHNNSS or 13HYYMMDD.HHNNSS)"},
	{Resolution, FloatField, "Minimum user-intended resolution or granularity of the model"},
	{MaxCoord, FloatField, "Approximate maximum coordinate value occurring in the model"},
	{Author, StringField, "Name of author"},
	{Organization, StringField, "Author's organization"},
	{SpecificationFlag, IntegerField, "Flag value corresponding to the version of the Specification to which this file complies"},
	{DraftingStandardFlag, IntegerField, "Flag value corresponding to the drafting standard to which this file complies, if any"},
	{DatetimeMod, StringField, "Date and time the model was created or last modified"},
	{ApplicationProtocol, StringField, "Descriptor indicating application protocol, subset, Mil-specification or user-defined protocol, if any"},
}

// GlobalFieldCount is the number of declared Global section parameters.
const GlobalFieldCount = len(globalFields)

// Value holds a parameter value. Only the member matching the parameter's
// FieldType is meaningful, and only when Set is true.
type Value struct {
	Set   bool
	Str   string
	Int   int
	Float float64
}

// StringValue returns a set string Value.
func StringValue(s string) Value { return Value{Set: true, Str: s} }

// IntValue returns a set integer Value.
func IntValue(n int) Value { return Value{Set: true, Int: n} }

// FloatValue returns a set float Value.
func FloatValue(f float64) Value { return Value{Set: true, Float: f} }

// GlobalParameter is one named field of the Global section.
type GlobalParameter struct {
	Name        string
	Index       int // 1-based position in the section
	Type        FieldType
	Description string
	Value       Value
}

// Text renders the value for display, or "" when unset.
func (p GlobalParameter) Text() string {
	if !p.Value.Set {
		return ""
	}
	switch p.Type {
	case IntegerField:
		return strconv.Itoa(p.Value.Int)
	case FloatField:
		return strconv.FormatFloat(p.Value.Float, 'g', -1, 64)
	default:
		return p.Value.Str
	}
}

// GlobalSection holds the 26 Global section parameters in file order.
type GlobalSection struct {
	params []GlobalParameter
	index  map[string]int
}

// NewGlobalSection returns a section with every parameter unset except the
// two delimiters, which hold their defaults.
func NewGlobalSection() *GlobalSection {
	g := &GlobalSection{
		params: make([]GlobalParameter, len(globalFields)),
		index:  make(map[string]int, len(globalFields)),
	}
	for i, f := range globalFields {
		g.params[i] = GlobalParameter{
			Name:        f.name,
			Index:       i + 1,
			Type:        f.typ,
			Description: f.description,
		}
		g.index[f.name] = i
	}
	g.params[0].Value = StringValue(",")
	g.params[1].Value = StringValue(";")
	return g
}

// Len returns the number of declared parameters.
func (g *GlobalSection) Len() int {
	return len(g.params)
}

// Parameters returns a copy of all parameters in file order.
func (g *GlobalSection) Parameters() []GlobalParameter {
	out := make([]GlobalParameter, len(g.params))
	copy(out, g.params)
	return out
}

// At returns the parameter at the 1-based index.
func (g *GlobalSection) At(index int) (GlobalParameter, bool) {
	if index < 1 || index > len(g.params) {
		return GlobalParameter{}, false
	}
	return g.params[index-1], true
}

// Lookup returns the parameter with the given name.
func (g *GlobalSection) Lookup(name string) (GlobalParameter, bool) {
	i, ok := g.index[name]
	if !ok {
		return GlobalParameter{}, false
	}
	return g.params[i], true
}

// IsSet reports whether the named parameter has a value.
func (g *GlobalSection) IsSet(name string) bool {
	p, ok := g.Lookup(name)
	return ok && p.Value.Set
}

// String returns the value of a string parameter.
func (g *GlobalSection) String(name string) (string, bool) {
	p, ok := g.Lookup(name)
	if !ok || !p.Value.Set || p.Type != StringField {
		return "", false
	}
	return p.Value.Str, true
}

// Int returns the value of an integer parameter.
func (g *GlobalSection) Int(name string) (int, bool) {
	p, ok := g.Lookup(name)
	if !ok || !p.Value.Set || p.Type != IntegerField {
		return 0, false
	}
	return p.Value.Int, true
}

// Float returns the value of a float parameter.
func (g *GlobalSection) Float(name string) (float64, bool) {
	p, ok := g.Lookup(name)
	if !ok || !p.Value.Set || p.Type != FloatField {
		return 0, false
	}
	return p.Value.Float, true
}

// SetAt stores v in the parameter at the 1-based index.
func (g *GlobalSection) SetAt(index int, v Value) error {
	if index < 1 || index > len(g.params) {
		return fmt.Errorf("global parameter index %d out of range 1..%d", index, len(g.params))
	}
	g.params[index-1].Value = v
	return nil
}

// Set stores v in the named parameter.
func (g *GlobalSection) Set(name string, v Value) error {
	i, ok := g.index[name]
	if !ok {
		return fmt.Errorf("unknown global parameter %q", name)
	}
	g.params[i].Value = v
	return nil
}

// Delimiters returns the parameter and record delimiters.
func (g *GlobalSection) Delimiters() (pd, rd byte) {
	pd, rd = ',', ';'
	if s, ok := g.String(ParameterDelimiter); ok && len(s) == 1 {
		pd = s[0]
	}
	if s, ok := g.String(RecordDelimiter); ok && len(s) == 1 {
		rd = s[0]
	}
	return pd, rd
}

// UnitsName returns the units name, e.g. "MM" or "INCH".
func (g *GlobalSection) UnitsName() string {
	s, _ := g.String(UnitsName)
	return s
}

// FileName returns the file name recorded by the sending system.
func (g *GlobalSection) FileName() string {
	s, _ := g.String(FileName)
	return s
}
