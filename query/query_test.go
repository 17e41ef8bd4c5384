package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/xml"
)

const doc = `<feed>
  <title>News</title>
  <entry id="1"><title>One</title><link rel="alternate" href="/1"/></entry>
  <entry id="2"><title>Two</title><link rel="self" href="/2"/><link href="/2.html"/></entry>
</feed>`

func paths(ns []*dom.Node) []string {
	res := make([]string, 0, len(ns))
	for _, n := range ns {
		res = append(res, n.Path())
	}
	return res
}

func TestSelect(t *testing.T) {
	root, err := xml.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "tag",
			expr: `tag == "entry"`,
			want: []string{"/feed/entry", "/feed/entry[1]"},
		},
		{
			name: "attrs",
			expr: `tag == "link" && attrs.rel == "self"`,
			want: []string{"/feed/entry[1]/link"},
		},
		{
			name: "attr func",
			expr: `tag == "link" && attr("rel") in ["alternate", ""]`,
			want: []string{"/feed/entry/link", "/feed/entry[1]/link[1]"},
		},
		{
			name: "has",
			expr: `has("id") && !has("rel")`,
			want: []string{"/feed/entry", "/feed/entry[1]"},
		},
		{
			name: "text",
			expr: `tag == "title" && text startsWith "T"`,
			want: []string{"/feed/entry[1]/title"},
		},
		{
			name: "depth",
			expr: `depth == 1 && child("link")`,
			want: []string{"/feed/entry", "/feed/entry[1]"},
		},
		{
			name: "path",
			expr: `path endsWith "/title"`,
			want: []string{"/feed/title", "/feed/entry/title", "/feed/entry[1]/title"},
		},
		{
			name: "none",
			expr: `tag == "missing"`,
			want: []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Select(root, tc.expr)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, paths(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{
		`tag ==`,
		`tag`,
		`nosuch == 1`,
	} {
		if _, err := Compile(src); err == nil {
			t.Errorf("%q: expected error", src)
		}
	}
}

func TestMatchText(t *testing.T) {
	q, err := Compile(`true`)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := q.Match(dom.TextNode("x"))
	if err != nil || ok {
		t.Errorf("text node matched: %t %v", ok, err)
	}
	if q.String() != "true" {
		t.Errorf("String() = %q", q.String())
	}
}
