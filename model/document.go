package model

// Document represents a decoded IGES file
type Document struct {
	// Start is the human-readable prologue from the Start section.
	Start     string
	Global    *GlobalSection
	Entries   Entries
	Terminate *Terminate // nil when the file has no Terminate record
}

// Terminate holds the per-section line counts from the Terminate record.
type Terminate struct {
	Start     int
	Global    int
	Directory int
	Parameter int
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Global:  NewGlobalSection(),
		Entries: make(Entries),
	}
}

// EntryCount returns the number of directory entries
func (d *Document) EntryCount() int {
	return len(d.Entries)
}

// Entry returns the directory entry with the given key
func (d *Document) Entry(key int) (*DirectoryEntry, bool) {
	return d.Entries.Get(key)
}

// Delimiters returns the parameter and record delimiters declared by the file
func (d *Document) Delimiters() (pd, rd byte) {
	if d.Global == nil {
		return ',', ';'
	}
	return d.Global.Delimiters()
}

// EntityParameters returns the split parameter list of the entry with the given key
func (d *Document) EntityParameters(key int) ([]string, bool, error) {
	e, ok := d.Entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	pd, rd := d.Delimiters()
	params, err := e.Parameters(pd, rd)
	return params, true, err
}

// Stats summarizes the document contents
type Stats struct {
	EntryCount   int
	LinkedCount  int
	TypeCounts   map[int]int
	UnitsName    string
	HasTerminate bool
}

// Stats returns summary statistics for the document
func (d *Document) Stats() Stats {
	s := Stats{
		EntryCount:   len(d.Entries),
		TypeCounts:   d.Entries.CountByType(),
		HasTerminate: d.Terminate != nil,
	}
	for _, e := range d.Entries {
		if e.ParamStr != "" {
			s.LinkedCount++
		}
	}
	if d.Global != nil {
		s.UnitsName = d.Global.UnitsName()
	}
	return s
}
