package reader

import (
	"strings"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/model"
)

// paramTextWidth is the width of the parameter text in a Parameter Data
// line; columns 66-72 hold the back-pointer to the directory entry.
const paramTextWidth = 65

// paramGroups holds Parameter Data records grouped by back-pointer.
type paramGroups struct {
	order   []int // pointers in order of first appearance
	records map[int][]model.ParameterRecord
	first   map[int]core.RawRecord
}

// decodeParameters splits each Parameter Data line into its text fragment
// and back-pointer and groups the fragments by pointer, keeping file order.
func decodeParameters(recs []core.RawRecord) (*paramGroups, error) {
	groups := &paramGroups{
		records: make(map[int][]model.ParameterRecord),
		first:   make(map[int]core.RawRecord),
	}

	for _, rec := range recs {
		cols := []rune(rec.Data)
		text := strings.TrimSpace(string(cols[:paramTextWidth]))
		ptrField := strings.TrimSpace(string(cols[paramTextWidth:]))

		ptr, err := core.ParseInt(ptrField)
		if err != nil {
			e := core.Errorf(core.KindParse, rec, "directory entry pointer %q is not numeric", ptrField)
			e.Err = err
			return nil, e
		}

		if _, seen := groups.records[ptr]; !seen {
			groups.order = append(groups.order, ptr)
			groups.first[ptr] = rec
		}
		groups.records[ptr] = append(groups.records[ptr], model.ParameterRecord{
			Text:     text,
			Pointer:  ptr,
			Sequence: rec.Sequence,
		})
	}

	return groups, nil
}

// joined returns the concatenated parameter text for one pointer.
func (g *paramGroups) joined(ptr int) string {
	var sb strings.Builder
	for _, r := range g.records[ptr] {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Len returns the number of distinct pointers.
func (g *paramGroups) Len() int {
	return len(g.order)
}
