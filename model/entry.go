package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/iges/core"
)

// DirectoryEntry describes one entity. It is built from a pair of Directory
// section lines and keyed by the sequence number of the first line.
// Apart from Sequence and ParameterData, fields keep their raw 8-column text.
type DirectoryEntry struct {
	EntityTypeNumber     string
	ParameterData        int // sequence number of the first Parameter Data line
	Structure            string
	LineFontPattern      string
	Level                string
	View                 string
	TransformationMatrix string
	LabelDisplayAssoc    string
	StatusNumber         string
	LineWeightNumber     string
	ColorNumber          string
	ParameterLineCount   string
	FormNumber           string
	EntryLabel           string
	EntrySubscriptNumber string
	Sequence             int

	// ParamStr is the reassembled parameter data, set when the entry is linked.
	ParamStr string
}

// EntityType returns the entity type number, or 0 if it is not numeric.
func (e *DirectoryEntry) EntityType() int {
	n, err := core.ParseInt(e.EntityTypeNumber)
	if err != nil {
		return 0
	}
	return n
}

// Form returns the form number, or 0 if blank or not numeric.
func (e *DirectoryEntry) Form() int {
	n, err := core.ParseInt(e.FormNumber)
	if err != nil {
		return 0
	}
	return n
}

// EntityName returns the name of the entity type, e.g. "Line".
func (e *DirectoryEntry) EntityName() string {
	return EntityTypeName(e.EntityType())
}

// LineFontName resolves the line font pattern field through fonts.
func (e *DirectoryEntry) LineFontName(fonts LineFontTable) string {
	return fonts.Name(e.LineFontPattern)
}

// Label returns the entry label with padding removed.
func (e *DirectoryEntry) Label() string {
	return strings.TrimSpace(e.EntryLabel)
}

// Status decodes the status number field.
func (e *DirectoryEntry) Status() (Status, error) {
	return ParseStatus(e.StatusNumber)
}

// Parameters splits ParamStr into its parameters using the file's
// delimiters. The first parameter repeats the entity type number.
func (e *DirectoryEntry) Parameters(pd, rd byte) ([]string, error) {
	tokens, err := core.SplitRecord(e.ParamStr, pd, rd)
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", e.Sequence, err)
	}
	params := make([]string, len(tokens))
	for i, tok := range tokens {
		params[i] = tok.Value
	}
	return params, nil
}

// Entries maps directory entry keys (first-line sequence numbers) to entries.
type Entries map[int]*DirectoryEntry

// Len returns the number of entries.
func (m Entries) Len() int {
	return len(m)
}

// Get returns the entry with the given key.
func (m Entries) Get(key int) (*DirectoryEntry, bool) {
	e, ok := m[key]
	return e, ok
}

// Keys returns all keys in ascending order.
func (m Entries) Keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Sorted returns the entries ordered by key.
func (m Entries) Sorted() []*DirectoryEntry {
	out := make([]*DirectoryEntry, 0, len(m))
	for _, k := range m.Keys() {
		out = append(out, m[k])
	}
	return out
}

// ByType returns the entries of one entity type, ordered by key.
func (m Entries) ByType(entityType int) []*DirectoryEntry {
	var out []*DirectoryEntry
	for _, e := range m.Sorted() {
		if e.EntityType() == entityType {
			out = append(out, e)
		}
	}
	return out
}

// CountByType returns the number of entries per entity type.
func (m Entries) CountByType() map[int]int {
	counts := make(map[int]int)
	for _, e := range m {
		counts[e.EntityType()]++
	}
	return counts
}

// ParameterRecord is one Parameter Data line.
type ParameterRecord struct {
	Text     string // columns 1-65, trimmed
	Pointer  int    // columns 66-72: key of the owning directory entry
	Sequence int
}
