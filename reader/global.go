package reader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/iges/core"
	"github.com/tsawler/iges/model"
)

// globalStream is the logical Global record reassembled from its lines.
type globalStream struct {
	text   string
	starts []int // offset of each line's data within text
	breaks []core.LineBreak
	recs   []core.RawRecord
}

func newGlobalStream(recs []core.RawRecord) globalStream {
	var sb strings.Builder
	gs := globalStream{recs: recs, starts: make([]int, len(recs))}
	for i, rec := range recs {
		gs.starts[i] = sb.Len()
		data := strings.TrimRight(rec.Data, " ")
		sb.WriteString(data)
		if i < len(recs)-1 {
			gs.breaks = append(gs.breaks, core.LineBreak{
				Offset:  sb.Len(),
				Padding: len(rec.Data) - len(data),
			})
		}
	}
	gs.text = sb.String()
	return gs
}

// breaksFrom returns the line breaks relative to offset base.
func (gs globalStream) breaksFrom(base int) []core.LineBreak {
	var out []core.LineBreak
	for _, b := range gs.breaks {
		if b.Offset >= base {
			out = append(out, core.LineBreak{Offset: b.Offset - base, Padding: b.Padding})
		}
	}
	return out
}

// recordAt returns the line holding the given offset of the stream.
func (gs globalStream) recordAt(off int) core.RawRecord {
	i := sort.Search(len(gs.starts), func(i int) bool { return gs.starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return gs.recs[i]
}

// decodeGlobal maps the Global section onto the 26 declared parameters.
func decodeGlobal(recs []core.RawRecord) (*model.GlobalSection, error) {
	g := model.NewGlobalSection()
	if len(recs) == 0 {
		return g, nil
	}

	gs := newGlobalStream(recs)
	pd, rd, rest, ended, err := resolveDelimiters(gs.text)
	if err != nil {
		return nil, core.Errorf(core.KindFormat, recs[0], "%v", err)
	}
	_ = g.SetAt(1, model.StringValue(string(pd)))
	_ = g.SetAt(2, model.StringValue(string(rd)))
	if ended {
		return g, nil
	}

	base := len(gs.text) - len(rest)
	tz := core.NewTokenizer(rest, pd, rd)
	tz.SetLineBreaks(gs.breaksFrom(base))
	index := 3
	for {
		tok, err := tz.NextToken()
		if err != nil {
			return nil, core.Errorf(core.KindFormat, gs.recordAt(base+tz.Pos()), "%v", err)
		}
		if tok.Type == core.TokenEOF {
			break
		}

		if index > model.GlobalFieldCount {
			return nil, core.Errorf(core.KindFormat, gs.recordAt(base+tok.Pos),
				"global section has more than %d parameters", model.GlobalFieldCount)
		}

		if tok.Type != core.TokenEmpty {
			param, _ := g.At(index)
			v, err := coerceGlobal(param, tok)
			if err != nil {
				e := core.Errorf(core.KindParse, gs.recordAt(base+tok.Pos),
					"global parameter %d (%s) %q is not a valid %s", index, param.Name, tok.Value, param.Type)
				e.Err = err
				return nil, e
			}
			_ = g.SetAt(index, v)
		}

		index++
		if tok.EndOfRecord {
			break
		}
	}

	return g, nil
}

// coerceGlobal converts a token to the parameter's declared type.
func coerceGlobal(param model.GlobalParameter, tok core.Token) (model.Value, error) {
	s := tok.Value
	if tok.Type == core.TokenValue {
		s = core.StripHollerith(s)
	}
	switch param.Type {
	case model.IntegerField:
		n, err := core.ParseInt(s)
		if err != nil {
			return model.Value{}, err
		}
		return model.IntValue(n), nil
	case model.FloatField:
		f, err := core.ParseReal(s)
		if err != nil {
			return model.Value{}, err
		}
		return model.FloatValue(f), nil
	default:
		return model.StringValue(s), nil
	}
}

// resolveDelimiters reads the first two Global parameters. Each is either
// empty, selecting the default, or a one-character Hollerith string such as
// 1H/. It returns the text following them; ended is set when the record
// delimiter closed the record within those two fields.
func resolveDelimiters(s string) (pd, rd byte, rest string, ended bool, err error) {
	pd, rd = core.DefaultParameterDelimiter, core.DefaultRecordDelimiter
	i := 0

	if d, next, ok := delimiterField(s, i); ok {
		pd, i = d, next
	}
	switch {
	case i >= len(s):
		return pd, rd, "", true, nil
	case s[i] == pd:
		i++
	case s[i] == rd:
		return pd, rd, "", true, nil
	default:
		return pd, rd, "", false, fmt.Errorf("parameter delimiter field is not empty or 1H<c>: %q", head(s, 8))
	}

	if d, next, ok := delimiterField(s, i); ok {
		rd, i = d, next
	}
	switch {
	case i >= len(s):
		return pd, rd, "", true, nil
	case s[i] == rd:
		return pd, rd, "", true, nil
	case s[i] == pd:
		i++
	default:
		return pd, rd, "", false, fmt.Errorf("record delimiter field is not empty or 1H<c>: %q", head(s[i:], 8))
	}

	return pd, rd, s[i:], false, nil
}

func delimiterField(s string, i int) (byte, int, bool) {
	if i+3 <= len(s) && s[i] == '1' && (s[i+1] == 'H' || s[i+1] == 'h') {
		return s[i+2], i + 3, true
	}
	return 0, i, false
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
