package bind

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/schema"
	"github.com/signadot/xdom/token"
)

type playlist struct {
	Name   string `xdom:"attr,optional"`
	Tracks []string
}

type shape interface{ isShape() }

type circle struct {
	Radius float64
}

type rect struct {
	Width  float64
	Height float64
}

func (circle) isShape() {}
func (rect) isShape()   {}

type figure interface{ isFigure() }

type disc struct {
	schema.Meta `xdom:"name=circle"`
	R           float64 `xdom:"attr"`
}

type box struct {
	schema.Meta `xdom:"name=rect"`
	Width       float64 `xdom:"attr"`
	Height      float64 `xdom:"attr"`
}

func (disc) isFigure() {}
func (box) isFigure()  {}

type canvas struct {
	Items []figure `xdom:"flatten"`
}

type align interface{ isAlign() }

type left struct{}
type right struct{}

func (left) isAlign()  {}
func (right) isAlign() {}

type amount interface{ isAmount() }

type exact struct {
	Value int
}

type ranged struct {
	Min int
	Max int
}

type unknownAmount struct{}

func (exact) isAmount()         {}
func (ranged) isAmount()        {}
func (unknownAmount) isAmount() {}

type point struct {
	schema.Meta `xdom:"tuple"`
	X           int
	Y           int
}

type inline interface{ isInline() }

type plain string

type bold struct {
	schema.Meta `xdom:"name=b"`
	Text        string `xdom:"text"`
}

func (plain) isInline() {}
func (bold) isInline()  {}

type para struct {
	schema.Meta `xdom:"name=p"`
	Content     []inline `xdom:"flatten"`
}

type part interface{ isPart() }

type known struct{}

type custom struct {
	Tag   string            `xdom:"tag"`
	Attrs map[string]string `xdom:"flatten"`
	Text  string            `xdom:"text,optional"`
}

func (known) isPart()   {}
func (*custom) isPart() {}

type doc struct {
	Parts []part `xdom:"flatten"`
}

type person struct {
	Name  string `xdom:"attr"`
	Email string `xdom:"attr,optional"`
}

type record struct {
	ID      int   `xdom:"attr"`
	Align   align `xdom:"attr,optional"`
	Title   string
	Note    *string
	Owner   *person
	Tags    []string
	Main    shape
	Side    align
	Qty     amount
	At      point
	Labels  map[string]string
	Data    []byte
	Updated time.Time `xdom:"optional"`
	Ratio   float64
	Ok      bool
}

type settings struct {
	Mode   align             `xdom:"attr"`
	Level  int               `xdom:"attr,optional"`
	Extra  map[string]string `xdom:"flatten"`
	Main   shape
	Side   align
	Values map[string]int
	Where  point
}

type order struct {
	Qty amount
}

type single struct {
	Title string
}

type counter struct {
	N int `xdom:"attr"`
}

type small struct {
	N int8 `xdom:"attr"`
}

type located struct {
	At point
}

type strict struct {
	schema.Meta `xdom:"denyUnknown"`
	A           string
}

type lines struct {
	Parts []string `xdom:"text"`
}

type envelope struct {
	Kind string `xdom:"attr"`
	Body *dom.Node
}

func newTestRegistry() *schema.Registry {
	r := schema.NewRegistry()
	for _, d := range []*schema.EnumDef{
		schema.DefineEnum[shape](schema.Case[circle](), schema.Case[rect]()),
		schema.DefineEnum[figure](schema.Case[disc](), schema.Case[box]()),
		schema.DefineEnum[align](schema.Case[left](), schema.Case[right]()),
		schema.DefineEnum[amount](
			schema.Case[exact](),
			schema.Case[ranged](),
			schema.Case[unknownAmount](),
		).Untagged(),
		schema.DefineEnum[inline](schema.Case[plain]().AsText(), schema.Case[bold]()),
		schema.DefineEnum[part](schema.Case[known](), schema.Case[custom]().AsOther()),
	} {
		if err := r.RegisterEnum(d); err != nil {
			panic(err)
		}
	}
	return r
}

var testRegistry = newTestRegistry()

func decodeString(src string, v any, opts ...Option) error {
	opts = append([]Option{WithRegistry(testRegistry)}, opts...)
	return Decode(token.NewTokenSource(strings.NewReader(src), token.KeepSpace(true)), v, opts...)
}

func encodeString(t *testing.T, v any, opts ...Option) string {
	t.Helper()
	opts = append([]Option{WithRegistry(testRegistry)}, opts...)
	n, err := EncodeNode(v, opts...)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return token.String(n)
}

func ptr[T any](v T) *T {
	return &v
}

func TestDecodeCollection(t *testing.T) {
	var p playlist
	err := decodeString(`<playlist><track>Song A</track><track>Song B</track></playlist>`, &p)
	if err != nil {
		t.Fatal(err)
	}
	want := playlist{Tracks: []string{"Song A", "Song B"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodePluralItems(t *testing.T) {
	var p playlist
	err := decodeString(`<playlist name="mix"><tracks>A</tracks><track>B</track></playlist>`, &p)
	if err != nil {
		t.Fatal(err)
	}
	want := playlist{Name: "mix", Tracks: []string{"A", "B"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnknownElements(t *testing.T) {
	src := `<playlist><track>A</track><extra><deep>x</deep></extra><track>B</track></playlist>`
	var p playlist
	if err := decodeString(src, &p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, p.Tracks); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	err := decodeString(src, &playlist{}, DenyUnknown(true))
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch, got %v", err)
	}
	err = decodeString(`<strict><a>x</a><b/></strict>`, &strict{})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch for denyUnknown struct, got %v", err)
	}
}

func TestEnumTagging(t *testing.T) {
	var s shape
	if err := decodeString(`<circle><radius>5.0</radius></circle>`, &s); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(shape(circle{Radius: 5}), s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	err := decodeString(`<hexagon><side>1</side></hexagon>`, &s)
	var mm *SchemaMismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
	if mm.Actual != "<hexagon>" {
		t.Errorf("actual = %q", mm.Actual)
	}
}

func TestFlatten(t *testing.T) {
	var c canvas
	err := decodeString(`<canvas><circle r="5"/><rect width="10" height="20"/></canvas>`, &c)
	if err != nil {
		t.Fatal(err)
	}
	want := canvas{Items: []figure{disc{R: 5}, box{Width: 10, Height: 20}}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMixedContent(t *testing.T) {
	src := `<p>Hello <b>world</b>!</p>`
	var p para
	if err := decodeString(src, &p); err != nil {
		t.Fatal(err)
	}
	want := para{Content: []inline{plain("Hello "), bold{Text: "world"}, plain("!")}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := encodeString(t, &p); got != src {
		t.Errorf("encode = %s", got)
	}
}

func TestMixedContentSpace(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts []Option
		want para
	}{
		{
			name: "between elements",
			src:  `<p><b>a</b> <b>b</b></p>`,
			want: para{Content: []inline{bold{Text: "a"}, plain(" "), bold{Text: "b"}}},
		},
		{
			name: "inside element",
			src:  `<p><b> </b></p>`,
			want: para{Content: []inline{bold{Text: " "}}},
		},
		{
			name: "layout",
			src:  "<p>\n  <b>a</b>\n  <b>b</b>\n</p>",
			want: para{Content: []inline{bold{Text: "a"}, bold{Text: "b"}}},
		},
		{
			name: "layout kept",
			src:  "<p>\n<b>a</b></p>",
			opts: []Option{KeepSpace(true)},
			want: para{Content: []inline{plain("\n"), bold{Text: "a"}}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p para
			if err := decodeString(tc.src, &p, tc.opts...); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, p); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			var again para
			if err := decodeString(encodeString(t, &p), &again, tc.opts...); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(p, again); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeafSpace(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`<single><title>   </title></single>`, "   "},
		{"<single><title>\n</title></single>", "\n"},
		{"<single><title>\n  <x/>\n</title></single>", ""},
		{"<single><title> <x/> </title></single>", "  "},
	}
	for _, tc := range tests {
		var s single
		if err := decodeString(tc.src, &s); err != nil {
			t.Errorf("%s: %v", tc.src, err)
			continue
		}
		if s.Title != tc.want {
			t.Errorf("%s: got %q, want %q", tc.src, s.Title, tc.want)
		}
	}
}

func TestCatchAll(t *testing.T) {
	src := `<doc><known/><custom-x a="1" b="2">x</custom-x><plain/></doc>`
	var d doc
	if err := decodeString(src, &d); err != nil {
		t.Fatal(err)
	}
	want := doc{Parts: []part{
		known{},
		&custom{Tag: "custom-x", Attrs: map[string]string{"a": "1", "b": "2"}, Text: "x"},
		&custom{Tag: "plain"},
	}}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := encodeString(t, &d); got != src {
		t.Errorf("encode = %s", got)
	}
}

func TestUntagged(t *testing.T) {
	tests := []struct {
		src  string
		want amount
	}{
		{`<order><qty><value>3</value></qty></order>`, exact{Value: 3}},
		{`<order><qty><min>1</min><max>3</max></qty></order>`, ranged{Min: 1, Max: 3}},
		{`<order><qty>unknownAmount</qty></order>`, unknownAmount{}},
	}
	for _, tc := range tests {
		var o order
		if err := decodeString(tc.src, &o); err != nil {
			t.Errorf("%s: %v", tc.src, err)
			continue
		}
		if diff := cmp.Diff(tc.want, o.Qty); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.src, diff)
		}
	}
	err := decodeString(`<order><qty><other/></qty></order>`, &order{})
	var uv *UnresolvedVariantError
	if !errors.As(err, &uv) {
		t.Fatalf("expected unresolved variant, got %v", err)
	}
	if len(uv.Errs) != 3 || uv.Tag != "qty" {
		t.Errorf("unexpected error %v", uv)
	}
}

func TestTextSequence(t *testing.T) {
	src := dom.Events{
		dom.StartEvent("lines"),
		dom.TextEvent("a"),
		dom.TextEvent("b"),
		dom.EndEvent(),
	}
	var l lines
	if err := Decode(src.Source(), &l); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, l.Parts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	rec := &dom.Recorder{}
	if err := Encode(&l, rec); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(src, rec.Events); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNodeCapture(t *testing.T) {
	src := `<envelope kind="x"><body><a href="u">t</a></body></envelope>`
	var e envelope
	if err := decodeString(src, &e); err != nil {
		t.Fatal(err)
	}
	want := envelope{
		Kind: "x",
		Body: dom.Element("body").WithChild(dom.Element("a").WithAttr("href", "u").WithText("t")),
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := encodeString(t, &e); got != src {
		t.Errorf("encode = %s", got)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "collection",
			in:   &playlist{Name: "mix", Tracks: []string{"A", "B"}},
			want: `<playlist name="mix"><track>A</track><track>B</track></playlist>`,
		},
		{
			name: "optional attribute omitted",
			in:   playlist{},
			want: `<playlist/>`,
		},
		{
			name: "flatten",
			in:   &canvas{Items: []figure{disc{R: 5}, box{Width: 10, Height: 20}}},
			want: `<canvas><circle r="5"/><rect width="10" height="20"/></canvas>`,
		},
		{
			name: "settings",
			in: &settings{
				Mode:   right{},
				Extra:  map[string]string{"z": "1", "a": "2"},
				Main:   circle{Radius: 1.5},
				Side:   left{},
				Values: map[string]int{"b": 2, "a": 1},
				Where:  point{X: 1, Y: 2},
			},
			want: `<settings mode="right" a="2" z="1">` +
				`<main><circle><radius>1.5</radius></circle></main>` +
				`<side>left</side>` +
				`<values><a>1</a><b>2</b></values>` +
				`<where><x>1</x><y>2</y></where>` +
				`</settings>`,
		},
		{
			name: "untagged",
			in:   &order{Qty: ranged{Min: 1, Max: 2}},
			want: `<order><qty><min>1</min><max>2</max></qty></order>`,
		},
		{
			name: "root name",
			in:   &single{Title: "t"},
			want: `<entry><title>t</title></entry>`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var opts []Option
			if tc.name == "root name" {
				opts = append(opts, RootName("entry"))
			}
			if got := encodeString(t, tc.in, opts...); got != tc.want {
				t.Errorf("got  %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestEncodeEnumRoot(t *testing.T) {
	var s shape = rect{Width: 1, Height: 2}
	if got := encodeString(t, &s); got != `<rect><width>1</width><height>2</height></rect>` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeErrors(t *testing.T) {
	if err := Encode(nil, &dom.Recorder{}); !errors.Is(err, ErrNilValue) {
		t.Errorf("expected nil value error, got %v", err)
	}
	var s shape
	err := Encode(&s, &dom.Recorder{}, WithRegistry(testRegistry))
	if !errors.Is(err, ErrNilValue) {
		t.Errorf("expected nil value error, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    any
		out  func() any
	}{
		{
			name: "playlist",
			v:    &playlist{Name: "road", Tracks: []string{"One", "Two & Three"}},
			out:  func() any { return &playlist{} },
		},
		{
			name: "canvas",
			v:    &canvas{Items: []figure{box{Width: 1.25, Height: 3}, disc{R: 0.5}, disc{R: 2}}},
			out:  func() any { return &canvas{} },
		},
		{
			name: "record",
			v: &record{
				ID:      7,
				Align:   right{},
				Title:   "quarterly <report>",
				Note:    ptr("see attached"),
				Owner:   &person{Name: "ann"},
				Tags:    []string{"x", "y"},
				Main:    circle{Radius: 2},
				Side:    left{},
				Qty:     ranged{Min: 1, Max: 3},
				At:      point{X: 3, Y: 4},
				Labels:  map[string]string{"k": "v", "j": "w"},
				Data:    []byte{1, 2, 3},
				Updated: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				Ratio:   0.25,
				Ok:      true,
			},
			out: func() any { return &record{} },
		},
		{
			name: "sparse record",
			v:    &record{Title: "t", Qty: unknownAmount{}},
			out:  func() any { return &record{} },
		},
		{
			name: "settings",
			v: &settings{
				Mode:  left{},
				Level: 3,
				Extra: map[string]string{"data-x": "1"},
				Main:  rect{Width: 2, Height: 1},
				Side:  right{},
				Where: point{X: -1, Y: 0},
			},
			out: func() any { return &settings{} },
		},
		{
			name: "mixed",
			v:    &para{Content: []inline{bold{Text: "a"}, plain(" and "), bold{Text: "b"}}},
			out:  func() any { return &para{} },
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := encodeString(t, tc.v)
			got := tc.out()
			if err := decodeString(text, got); err != nil {
				t.Fatalf("decode %s: %v", text, err)
			}
			if diff := cmp.Diff(tc.v, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		v    any
		want error
	}{
		{"duplicate element", `<single><title>a</title><title>b</title></single>`, &single{}, ErrDuplicateElement},
		{"missing element", `<single/>`, &single{}, ErrSchemaMismatch},
		{"missing attribute", `<counter/>`, &counter{}, ErrSchemaMismatch},
		{"bad int", `<counter n="x"/>`, &counter{}, ErrLeafParse},
		{"overflow", `<small n="300"/>`, &small{}, ErrLeafParse},
		{"wrong root", `<other n="1"/>`, &counter{}, ErrSchemaMismatch},
		{"tuple order", `<located><at><y>2</y><x>1</x></at></located>`, &located{}, ErrSchemaMismatch},
		{"tuple short", `<located><at><x>1</x></at></located>`, &located{}, ErrSchemaMismatch},
		{"bad variant", `<record id="1"><title>t</title><side>middle</side></record>`, &record{}, ErrSchemaMismatch},
		{"unresolved", `<order><qty><none/></qty></order>`, &order{}, ErrUnresolvedVariant},
		{"bad float", `<circle><radius>wide</radius></circle>`, new(shape), ErrLeafParse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := decodeString(tc.src, tc.v)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLeafParseError(t *testing.T) {
	err := decodeString(`<counter n="x"/>`, &counter{})
	var lp *LeafParseError
	if !errors.As(err, &lp) {
		t.Fatalf("expected leaf parse error, got %v", err)
	}
	if lp.Text != "x" || lp.Kind != "int" || lp.FieldPath != "counter@n" {
		t.Errorf("unexpected error %+v", lp)
	}
}

func TestMalformedSource(t *testing.T) {
	src := dom.Events{dom.StartEvent("playlist"), dom.StartEvent("track")}
	err := Decode(src.Source(), &playlist{})
	if !errors.Is(err, dom.ErrMalformed) {
		t.Errorf("expected malformed error, got %v", err)
	}
	if err := Decode(src.Source(), playlist{}); err == nil {
		t.Errorf("expected error for non pointer destination")
	}
}

func TestDecodeNode(t *testing.T) {
	n := dom.Element("playlist").
		WithChild(dom.Element("track").WithText("A"))
	var p playlist
	if err := DecodeNode(n, &p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A"}, p.Tracks); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
