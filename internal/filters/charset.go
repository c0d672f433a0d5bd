package filters

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// dosCodePages covers labels the WHATWG encoding index does not know but
// which older CAD systems wrote.
var dosCodePages = map[string]*charmap.Charmap{
	"cp437":  charmap.CodePage437,
	"ibm437": charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"ibm850": charmap.CodePage850,
	"cp852":  charmap.CodePage852,
	"ibm852": charmap.CodePage852,
}

// LookupEncoding resolves a charset label such as "latin1", "iso-8859-1",
// "windows-1252" or "cp437". It returns a nil encoding for UTF-8 and ASCII,
// which need no decoding.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf-8", "utf8", "ascii", "us-ascii":
		return nil, nil
	}
	if cm, ok := dosCodePages[label]; ok {
		return cm, nil
	}
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown character encoding %q", label)
	}
	if enc == encoding.Nop {
		return nil, nil
	}
	return enc, nil
}

// DecodeReader wraps r so that it yields UTF-8 text decoded from the named
// charset. UTF-8 and ASCII inputs are returned unchanged.
func DecodeReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
