package core

import (
	"strconv"
	"strings"
)

// ParseInt parses an IGES integer field. Surrounding blanks are ignored and
// a blank field is zero.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ParseReal parses an IGES real. Both E and the double precision D exponent
// markers are accepted, as are forms like "1." and ".5".
func ParseReal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, s)
	return strconv.ParseFloat(s, 64)
}
