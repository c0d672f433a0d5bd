package reader

import (
	"strings"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/model"
)

const (
	fieldWidth    = 8
	fieldsPerLine = core.DataWidth / fieldWidth
)

// fixedFields splits data into n fields of 8 columns, padding short data.
func fixedFields(data string, n int) []string {
	cols := []rune(data)
	if want := n * fieldWidth; len(cols) < want {
		cols = append(cols, []rune(strings.Repeat(" ", want-len(cols)))...)
	}
	fields := make([]string, n)
	for i := range fields {
		fields[i] = string(cols[i*fieldWidth : (i+1)*fieldWidth])
	}
	return fields
}

// decodeDirectory builds one entry per pair of Directory lines.
func decodeDirectory(recs []core.RawRecord) (model.Entries, error) {
	if len(recs)%2 != 0 {
		last := recs[len(recs)-1]
		return nil, core.Errorf(core.KindStructural, last,
			"directory section has an odd number of lines (%d)", len(recs))
	}

	entries := make(model.Entries, len(recs)/2)
	for i := 0; i < len(recs); i += 2 {
		e, err := decodeEntry(recs[i], recs[i+1])
		if err != nil {
			return nil, err
		}
		if _, dup := entries[e.Sequence]; dup {
			return nil, core.Errorf(core.KindStructural, recs[i],
				"duplicate directory entry sequence number %d", e.Sequence)
		}
		entries[e.Sequence] = e
	}
	return entries, nil
}

// decodeEntry decodes one Directory line pair.
//
//	line 0: type, pointer, structure, font, level, view, matrix, label assoc, status
//	line 1: type, weight, color, param lines, form, reserved, reserved, label, subscript
func decodeEntry(line0, line1 core.RawRecord) (*model.DirectoryEntry, error) {
	f0 := fixedFields(line0.Data, fieldsPerLine)
	f1 := fixedFields(line1.Data, fieldsPerLine)

	if strings.TrimSpace(f0[0]) != strings.TrimSpace(f1[0]) {
		return nil, core.Errorf(core.KindStructural, line1,
			"entity type %q does not match %q on D%07d",
			strings.TrimSpace(f1[0]), strings.TrimSpace(f0[0]), line0.Sequence)
	}

	ptr, err := core.ParseInt(f0[1])
	if err != nil {
		e := core.Errorf(core.KindParse, line0, "parameter data pointer %q is not numeric", strings.TrimSpace(f0[1]))
		e.Err = err
		return nil, e
	}

	return &model.DirectoryEntry{
		EntityTypeNumber:     f0[0],
		ParameterData:        ptr,
		Structure:            f0[2],
		LineFontPattern:      f0[3],
		Level:                f0[4],
		View:                 f0[5],
		TransformationMatrix: f0[6],
		LabelDisplayAssoc:    f0[7],
		StatusNumber:         f0[8],
		LineWeightNumber:     f1[1],
		ColorNumber:          f1[2],
		ParameterLineCount:   f1[3],
		FormNumber:           f1[4],
		EntryLabel:           f1[7],
		EntrySubscriptNumber: f1[8],
		Sequence:             line0.Sequence,
	}, nil
}
