package reader

import (
	"fmt"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/model"
)

// link attaches each parameter group to the directory entry it points at.
// A pointer without a matching entry is a ReferenceError unless lenient is
// set, in which case it is dropped with a warning.
func link(entries model.Entries, groups *paramGroups, lenient bool) ([]Warning, error) {
	var warnings []Warning
	for _, ptr := range groups.order {
		e, ok := entries[ptr]
		if !ok {
			rec := groups.first[ptr]
			if !lenient {
				return nil, core.Errorf(core.KindReference, rec,
					"parameter data points at missing directory entry %d", ptr)
			}
			warnings = append(warnings, Warning{
				Code:     WarnDanglingParameter,
				Sequence: rec.Sequence,
				Message:  fmt.Sprintf("dropped %d parameter line(s) pointing at missing directory entry %d", len(groups.records[ptr]), ptr),
			})
			continue
		}
		e.ParamStr = groups.joined(ptr)
	}
	return warnings, nil
}
