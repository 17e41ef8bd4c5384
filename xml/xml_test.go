package xml

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xdom/bind"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/token"
)

type playlist struct {
	Name   string `xdom:"attr,optional"`
	Tracks []string
}

type serverConfig struct {
	ListenAddr string `xdom:"attr"`
	MaxConns   int
}

func TestFromString(t *testing.T) {
	src := `<?xml version="1.0"?>
<!-- favorites -->
<playlist name="road">
  <track>Song A</track>
  <track>Song B</track>
</playlist>
`
	p, err := FromString[playlist](src)
	if err != nil {
		t.Fatal(err)
	}
	want := playlist{Name: "road", Tracks: []string{"Song A", "Song B"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestToString(t *testing.T) {
	p := &playlist{Name: "a", Tracks: []string{"x", "y"}}
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "compact",
			want: `<playlist name="a"><track>x</track><track>y</track></playlist>`,
		},
		{
			name: "indent",
			opts: []Option{Indent("  ")},
			want: "<playlist name=\"a\">\n  <track>x</track>\n  <track>y</track>\n</playlist>\n",
		},
		{
			name: "declaration and namespace",
			opts: []Option{Declaration(true), Namespace("urn:music")},
			want: `<?xml version="1.0" encoding="UTF-8"?><playlist xmlns="urn:music" name="a"><track>x</track><track>y</track></playlist>`,
		},
		{
			name: "root",
			opts: []Option{Root("list")},
			want: `<list name="a"><track>x</track><track>y</track></list>`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToString(p, tc.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got\n%s\nwant\n%s", got, tc.want)
			}
		})
	}
}

func TestNaming(t *testing.T) {
	c := &serverConfig{ListenAddr: ":80", MaxConns: 5}
	got, err := ToString(c, Naming(naming.Kebab))
	if err != nil {
		t.Fatal(err)
	}
	want := `<server-config listen-addr=":80"><max-conns>5</max-conns></server-config>`
	if got != want {
		t.Errorf("got %s", got)
	}
	back, err := FromString[serverConfig](got, Naming(naming.Kebab))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*c, back); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNamespaceIgnoredOnDecode(t *testing.T) {
	src := `<playlist xmlns="urn:music" xmlns:x="urn:x" name="a"><track>x</track></playlist>`
	p, err := FromString[playlist](src, DenyUnknown(true))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "a" || len(p.Tracks) != 1 {
		t.Errorf("unexpected %+v", p)
	}
}

func TestNamespaceReplaced(t *testing.T) {
	n := dom.Element("svg").WithAttr("xmlns", "urn:old").WithAttr("width", "1")
	b := &strings.Builder{}
	if err := Render(b, n, Format(format.SVGFormat)); err != nil {
		t.Fatal(err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="1"/>`
	if b.String() != want {
		t.Errorf("got %s", b.String())
	}
}

func TestErrors(t *testing.T) {
	_, err := FromString[playlist](`<playlist><track>x</playlist>`)
	var te *token.TokenizeErr
	if !errors.As(err, &te) || !errors.Is(err, token.ErrMismatchedTag) {
		t.Errorf("expected tokenize error, got %v", err)
	}
	_, err = FromString[playlist](`<other/>`)
	if !errors.Is(err, bind.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch, got %v", err)
	}
	if errors.As(err, &te) {
		t.Errorf("schema error reported as tokenize error")
	}
}

func TestParseRender(t *testing.T) {
	src := []byte(`<a x="1"><b>t &amp; u</b><c/></a>`)
	n, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("b").TextContent(); got != "t & u" {
		t.Errorf("text = %q", got)
	}
	b := &strings.Builder{}
	if err := Render(b, n); err != nil {
		t.Fatal(err)
	}
	if b.String() != string(src) {
		t.Errorf("got %s", b.String())
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	in := &playlist{Name: "q", Tracks: []string{"<1>", "2"}}
	d, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out playlist
	if err := Unmarshal(d, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*in, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

type note struct {
	Title string
}

type lines struct {
	Parts []string `xdom:"text"`
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   *note
		opts []Option
	}{
		{name: "blank", in: &note{Title: "   "}},
		{name: "blank indented", in: &note{Title: "   "}, opts: []Option{Indent("  ")}},
		{name: "padded", in: &note{Title: " a "}, opts: []Option{Indent("\t")}},
		{name: "line break", in: &note{Title: "\n"}},
		{name: "empty", in: &note{}, opts: []Option{Indent("  ")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ToString(tc.in, tc.opts...)
			if err != nil {
				t.Fatal(err)
			}
			got, err := FromString[note](s)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(*tc.in, got); diff != "" {
				t.Errorf("%q (-want +got):\n%s", s, diff)
			}
		})
	}
}

func TestAdjacentTextMerges(t *testing.T) {
	s, err := ToString(&lines{Parts: []string{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if s != "<lines>ab</lines>" {
		t.Errorf("got %s", s)
	}
	got, err := FromString[lines](s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(lines{Parts: []string{"ab"}}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLayout(t *testing.T) {
	src := "<lines><x/>\n  <x/> <x/></lines>"
	got, err := FromString[lines](src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{" "}, got.Parts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got, err = FromString[lines](src, KeepSpace(true))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"\n  ", " "}, got.Parts); diff != "" {
		t.Errorf("keep space (-want +got):\n%s", diff)
	}
}
