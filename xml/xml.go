// Package xml reads and writes Go values as XML documents.
//
//	type Playlist struct {
//	    Name   string   `xdom:"attr"`
//	    Tracks []string
//	}
//
//	p, err := xml.FromString[Playlist](`<playlist name="a"><track>x</track></playlist>`)
//	s, err := xml.ToString(&p, xml.Indent("  "))
//
// Byte level errors are *token.TokenizeErr; binding errors come from
// package bind.
//
// Text survives ToString then FromString with two exceptions. Adjacent
// text items, as in a []string text field or consecutive text variants of
// a flattened enum, are written back to back and read as one item.
// Whitespace-only text holding a line break is read as layout and dropped
// unless KeepSpace is given.
package xml

import (
	"bytes"
	"io"
	"strings"

	"github.com/signadot/xdom/bind"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/token"
)

// Decode reads one document from r into the value v points to. All text
// reaches the binding engine, which drops layout only where no text is
// expected.
func Decode(r io.Reader, v any, opts ...Option) error {
	o := newOpts(opts)
	topts := append(o.token, token.KeepSpace(true))
	return bind.Decode(token.NewTokenSource(r, topts...), v, o.bind...)
}

// Encode writes v as a document to w.
func Encode(w io.Writer, v any, opts ...Option) error {
	o := newOpts(opts)
	sink := token.NewSink(w, o.write...)
	if err := bind.Encode(v, withNamespace(sink, o.namespace), o.bind...); err != nil {
		return err
	}
	return sink.Close()
}

func Unmarshal(data []byte, v any, opts ...Option) error {
	return Decode(bytes.NewReader(data), v, opts...)
}

func Marshal(v any, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func FromString[T any](s string, opts ...Option) (T, error) {
	var v T
	err := Decode(strings.NewReader(s), &v, opts...)
	return v, err
}

func ToString(v any, opts ...Option) (string, error) {
	b := &strings.Builder{}
	if err := Encode(b, v, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Parse reads a document into an untyped tree.
func Parse(data []byte, opts ...Option) (*dom.Node, error) {
	o := newOpts(opts)
	return dom.Build(token.NewTokenSource(bytes.NewReader(data), o.token...))
}

// Render writes the tree n as a document.
func Render(w io.Writer, n *dom.Node, opts ...Option) error {
	o := newOpts(opts)
	sink := token.NewSink(w, o.write...)
	if err := dom.Walk(n, withNamespace(sink, o.namespace)); err != nil {
		return err
	}
	return sink.Close()
}

// nsSink declares a default namespace on the root element, replacing any
// xmlns attribute the root carries.
type nsSink struct {
	dst       dom.Sink
	ns        string
	started   bool
	rootAttrs bool
}

func withNamespace(dst dom.Sink, ns string) dom.Sink {
	if ns == "" {
		return dst
	}
	return &nsSink{dst: dst, ns: ns}
}

func (s *nsSink) Emit(ev dom.Event) error {
	if s.rootAttrs {
		if ev.Kind == dom.Attribute && ev.Name == "xmlns" {
			return nil
		}
		if ev.Kind != dom.Attribute {
			s.rootAttrs = false
		}
	}
	if err := s.dst.Emit(ev); err != nil {
		return err
	}
	if !s.started && ev.Kind == dom.StartElement {
		s.started = true
		s.rootAttrs = true
		return s.dst.Emit(dom.AttrEvent("xmlns", s.ns))
	}
	return nil
}
