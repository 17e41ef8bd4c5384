// Package format names the document formats xdom binds.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	XMLFormat Format = iota
	AtomFormat
	SVGFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"x":    XMLFormat,
		"xml":  XMLFormat,
		"a":    AtomFormat,
		"atom": AtomFormat,
		"s":    SVGFormat,
		"svg":  SVGFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case XMLFormat:
		return []byte("xml"), nil
	case AtomFormat:
		return []byte("atom"), nil
	case SVGFormat:
		return []byte("svg"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsXML() bool  { return f == XMLFormat }
func (f Format) IsAtom() bool { return f == AtomFormat }
func (f Format) IsSVG() bool  { return f == SVGFormat }

// Namespace returns the default namespace of documents in this format.
func (f Format) Namespace() string {
	switch f {
	case AtomFormat:
		return "http://www.w3.org/2005/Atom"
	case SVGFormat:
		return "http://www.w3.org/2000/svg"
	default:
		return ""
	}
}

// Root returns the tag of the root element, empty when any is allowed.
func (f Format) Root() string {
	switch f {
	case AtomFormat:
		return "feed"
	case SVGFormat:
		return "svg"
	default:
		return ""
	}
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case XMLFormat:
		return ".xml"
	case AtomFormat:
		return ".atom"
	case SVGFormat:
		return ".svg"
	default:
		return ""
	}
}

// FromPath guesses the format of a file from its extension.
func FromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f
		}
	}
	return XMLFormat
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{XMLFormat, AtomFormat, SVGFormat}
}
