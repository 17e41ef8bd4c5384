package svg

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xdom/bind"
	"github.com/signadot/xdom/xml"
)

const sample = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="120px" height="80" viewBox="0 0 120 80">
  <title>Demo</title>
  <defs>
    <linearGradient id="grad"><stop offset="0" stop-color="red"/></linearGradient>
  </defs>
  <g id="shapes" fill="none" stroke="black" stroke-width="2">
    <rect x="10" y="10.0" width="30" height="20" rx="2"/>
    <circle cx="60" cy="20" r="10" data-kind="dot"/>
    <path d="M 10 50 L 50 70"/>
  </g>
  <text x="10" y="75">Hello <tspan font-weight="bold">SVG</tspan></text>
  <use xlink:href="#shapes" x="5"/>
</svg>
`

func TestParse(t *testing.T) {
	s, err := FromString(sample)
	if err != nil {
		t.Fatal(err)
	}
	want := &SVG{
		Presentation: Presentation{Extra: map[string]string{"xmlns:xlink": "http://www.w3.org/1999/xlink"}},
		Width:        Length{Value: 120, Unit: "px"},
		Height:       Px(80),
		ViewBox:      "0 0 120 80",
		Children: []Element{
			Title{Value: "Demo"},
			Defs{Children: []Element{
				&Foreign{
					Tag:   "linearGradient",
					Attrs: map[string]string{"id": "grad"},
					Children: []Element{
						&Foreign{Tag: "stop", Attrs: map[string]string{"offset": "0", "stop-color": "red"}},
					},
				},
			}},
			Group{
				Presentation: Presentation{ID: "shapes", Fill: "none", Stroke: "black", StrokeWidth: "2"},
				Children: []Element{
					Rect{X: Px(10), Y: Px(10), Width: Px(30), Height: Px(20), RX: Px(2)},
					Circle{
						Presentation: Presentation{Extra: map[string]string{"data-kind": "dot"}},
						CX:           Px(60), CY: Px(20), R: Px(10),
					},
					Path{D: "M 10 50 L 50 70"},
				},
			},
			Text{X: Px(10), Y: Px(75), Children: []Element{
				CharData("Hello "),
				&Foreign{Tag: "tspan", Attrs: map[string]string{"font-weight": "bold"}, Children: []Element{CharData("SVG")}},
			}},
			Use{XLinkHref: "#shapes", X: Px(5)},
		},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestStable(t *testing.T) {
	for _, indent := range []bool{false, true} {
		s, err := FromString(sample)
		if err != nil {
			t.Fatal(err)
		}
		opts := []xml.Option{}
		if indent {
			opts = append(opts, xml.Indent("  "))
		}
		first, err := ToString(s, opts...)
		if err != nil {
			t.Fatal(err)
		}
		again, err := FromString(first)
		if err != nil {
			t.Fatalf("reparse: %v\n%s", err, first)
		}
		if diff := cmp.Diff(s, again); diff != "" {
			t.Errorf("indent=%t reparse (-first +again):\n%s", indent, diff)
		}
		second, err := ToString(again, opts...)
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Errorf("indent=%t unstable output:\n%s\n%s", indent, first, second)
		}
	}
}

func TestMarshal(t *testing.T) {
	s := &SVG{
		Width:  Px(10),
		Height: Length{Value: 50, Unit: "%"},
		Children: []Element{
			Circle{Presentation: Presentation{Fill: "red"}, CX: Px(5), CY: Px(5), R: Length{Value: 2.5}},
			Line{X2: Px(10), Y2: Px(10)},
		},
	}
	got, err := ToString(s)
	if err != nil {
		t.Fatal(err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="50%">` +
		`<circle fill="red" cx="5" cy="5" r="2.5"/>` +
		`<line x2="10" y2="10"/></svg>`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestByID(t *testing.T) {
	s, err := FromString(sample)
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := s.ByID("shapes").(Group); !ok || len(g.Children) != 3 {
		t.Errorf("ByID(shapes) = %#v", s.ByID("shapes"))
	}
	if f, ok := s.ByID("grad").(*Foreign); !ok || f.Tag != "linearGradient" {
		t.Errorf("ByID(grad) = %#v", s.ByID("grad"))
	}
	if e := s.ByID("missing"); e != nil {
		t.Errorf("ByID(missing) = %#v", e)
	}
	var tags []string
	Walk(s.Children, func(e Element) bool {
		if f, ok := e.(*Foreign); ok {
			tags = append(tags, f.Tag)
		}
		_, isDefs := e.(Defs)
		return !isDefs
	})
	if diff := cmp.Diff([]string{"tspan"}, tags); diff != "" {
		t.Errorf("walk (-want +got):\n%s", diff)
	}
}

func TestLength(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Length
		err  bool
	}{
		{in: "10", want: Px(10)},
		{in: " 1.5em ", want: Length{Value: 1.5, Unit: "em"}},
		{in: "50%", want: Length{Value: 50, Unit: "%"}},
		{in: "1e3", want: Px(1000)},
		{in: "-2px", want: Length{Value: -2, Unit: "px"}},
		{in: "px", err: true},
		{in: "", err: true},
	} {
		var l Length
		err := l.UnmarshalText([]byte(tc.in))
		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if l != tc.want {
			t.Errorf("%q: got %v want %v", tc.in, l, tc.want)
		}
	}
	if s := (Length{Value: 0.25, Unit: "in"}).String(); s != "0.25in" {
		t.Errorf("String() = %q", s)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := FromString(`<svg><rect width="1" height="x"/></svg>`)
	if !errors.Is(err, bind.ErrLeafParse) {
		t.Errorf("bad length: %v", err)
	}
	_, err = FromString(`<svg><circle cx="1"/></svg>`)
	if !errors.Is(err, bind.ErrSchemaMismatch) {
		t.Errorf("missing radius: %v", err)
	}
	_, err = FromString(`<html/>`)
	if err == nil || !strings.Contains(err.Error(), "svg") {
		t.Errorf("wrong root: %v", err)
	}
}

func TestRectAutoSize(t *testing.T) {
	s, err := FromString(`<svg><rect x="1" style="width: 10px"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	want := []Element{Rect{Presentation: Presentation{Style: "width: 10px"}, X: Px(1)}}
	if diff := cmp.Diff(want, s.Children); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got, err := ToString(s)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<svg xmlns="http://www.w3.org/2000/svg"><rect style="width: 10px" x="1"/></svg>`; got != want {
		t.Errorf("got %s", got)
	}
}

func TestTextSpacing(t *testing.T) {
	s, err := FromString("<svg>\n  <text>a <tspan>b</tspan> <tspan>c</tspan></text>\n</svg>")
	if err != nil {
		t.Fatal(err)
	}
	want := []Element{Text{Children: []Element{
		CharData("a "),
		&Foreign{Tag: "tspan", Children: []Element{CharData("b")}},
		CharData(" "),
		&Foreign{Tag: "tspan", Children: []Element{CharData("c")}},
	}}}
	if diff := cmp.Diff(want, s.Children); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
