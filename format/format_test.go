package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != f {
			t.Errorf("%s parsed as %s", f, got)
		}
	}
	if f, err := ParseFormat("a"); err != nil || f != AtomFormat {
		t.Errorf("short name: %v %v", f, err)
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected bad format, got %v", err)
	}
}

func TestFormatText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("svg")); err != nil {
		t.Fatal(err)
	}
	if !f.IsSVG() || f.Root() != "svg" || f.Namespace() != "http://www.w3.org/2000/svg" {
		t.Errorf("unexpected %s", f)
	}
	if _, err := Format(7).MarshalText(); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]Format{
		"feed.atom":   AtomFormat,
		"logo.SVG":    SVGFormat,
		"data.xml":    XMLFormat,
		"no-ext":      XMLFormat,
		"dir/a.b.svg": SVGFormat,
	}
	for path, want := range tests {
		if got := FromPath(path); got != want {
			t.Errorf("%s: got %s, want %s", path, got, want)
		}
	}
}
