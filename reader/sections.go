package reader

import (
	"fmt"
	"strings"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/model"
)

// decodeStart joins the Start section lines into the file prologue.
func decodeStart(recs []core.RawRecord) string {
	lines := make([]string, len(recs))
	for i, rec := range recs {
		lines[i] = strings.TrimRight(rec.Data, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// decodeTerminate reads the per-section counts from the Terminate record
// and compares them with the lines actually read. Problems are reported as
// warnings only.
func decodeTerminate(recs *core.Records) (*model.Terminate, []Warning) {
	if len(recs.Terminate) == 0 {
		return nil, []Warning{{Code: WarnTerminate, Message: "file has no terminate section"}}
	}

	var warnings []Warning
	rec := recs.Terminate[0]
	if len(recs.Terminate) > 1 {
		warnings = append(warnings, Warning{
			Code:     WarnTerminate,
			Sequence: recs.Terminate[1].Sequence,
			Message:  fmt.Sprintf("terminate section has %d lines, expected 1", len(recs.Terminate)),
		})
	}

	term := &model.Terminate{}
	for _, f := range fixedFields(rec.Data, 4) {
		if strings.TrimSpace(f) == "" {
			continue
		}
		n, err := core.ParseInt(f[1:])
		if err != nil {
			warnings = append(warnings, Warning{
				Code:     WarnTerminate,
				Sequence: rec.Sequence,
				Message:  fmt.Sprintf("malformed terminate field %q", f),
			})
			return nil, warnings
		}

		var section core.Section
		switch core.Section(f[0]) {
		case core.SectionStart:
			term.Start, section = n, core.SectionStart
		case core.SectionGlobal:
			term.Global, section = n, core.SectionGlobal
		case core.SectionDirectory:
			term.Directory, section = n, core.SectionDirectory
		case core.SectionParameter:
			term.Parameter, section = n, core.SectionParameter
		default:
			warnings = append(warnings, Warning{
				Code:     WarnTerminate,
				Sequence: rec.Sequence,
				Message:  fmt.Sprintf("unknown section %q in terminate record", f[0]),
			})
			return nil, warnings
		}

		if got := recs.Count(section); got != n {
			warnings = append(warnings, Warning{
				Code:     WarnTerminate,
				Sequence: rec.Sequence,
				Message:  fmt.Sprintf("terminate record counts %d %s lines, file has %d", n, section, got),
			})
		}
	}
	return term, warnings
}
