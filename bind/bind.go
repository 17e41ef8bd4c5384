package bind

import (
	"io"
	"reflect"

	"github.com/signadot/xdom/dom"
)

// Decode reads one document from src into the value v points to. The
// source is checked for well-formedness as it is read.
func Decode(src dom.Source, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	o := newOpts(opts)
	s, err := o.registry.ShapeOf(rv.Type())
	if err != nil {
		return err
	}
	d := &decoder{p: dom.NewPeeker(dom.Check(src)), opts: o}
	if err := d.root(rv.Elem(), s); err != nil {
		return err
	}
	ev, err := d.p.Next()
	switch {
	case err == io.EOF:
		return nil
	case err != nil:
		return err
	}
	return &SchemaMismatchError{Expected: "end of document", Actual: ev.String()}
}

// DecodeNode decodes the tree rooted at n into the value v points to.
func DecodeNode(n *dom.Node, v any, opts ...Option) error {
	return Decode(dom.NodeSource(n), v, opts...)
}

// Encode emits the document of v to sink. To encode an enum as the root,
// pass a pointer to the interface value.
func Encode(v any, sink dom.Sink, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return &MarshalError{Message: "nil value", Err: ErrNilValue}
	}
	o := newOpts(opts)
	s, err := o.registry.ShapeOf(rv.Type())
	if err != nil {
		return err
	}
	cs := dom.CheckSink(sink)
	e := &encoder{sink: cs, opts: o}
	if err := e.root(rv, s); err != nil {
		return err
	}
	return cs.Close()
}

// EncodeNode encodes v into a tree.
func EncodeNode(v any, opts ...Option) (*dom.Node, error) {
	b := &dom.Builder{}
	if err := Encode(v, b, opts...); err != nil {
		return nil, err
	}
	return b.Root(), nil
}
