// Package query selects elements of a node tree with expr-lang
// predicates.
//
// A predicate sees each element as
//
//	tag    string             the element tag
//	attrs  map[string]string  its attributes
//	text   string             its concatenated text content
//	depth  int                0 for the root
//	path   string             as in /feed/entry[1]/title
//
// and may call attr(name), has(name) and child(tag). For example
//
//	tag == "link" && attr("rel") in ["alternate", ""]
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/xdom/debug"
	"github.com/signadot/xdom/dom"
)

type Env struct {
	Tag   string            `expr:"tag"`
	Attrs map[string]string `expr:"attrs"`
	Text  string            `expr:"text"`
	Depth int               `expr:"depth"`
	Path  string            `expr:"path"`

	AttrFunc  func(name string) string `expr:"attr"`
	HasFunc   func(name string) bool   `expr:"has"`
	ChildFunc func(tag string) bool    `expr:"child"`
}

func newEnv(n *dom.Node) *Env {
	attrs := make(map[string]string, len(n.Attrs))
	for _, a := range n.Attrs {
		attrs[a.Name] = a.Value
	}
	return &Env{
		Tag:   n.Tag,
		Attrs: attrs,
		Text:  n.TextContent(),
		Depth: n.Depth(),
		Path:  n.Path(),
		AttrFunc: func(name string) string {
			return attrs[name]
		},
		HasFunc: func(name string) bool {
			_, ok := attrs[name]
			return ok
		},
		ChildFunc: func(tag string) bool {
			return n.Child(tag) != nil
		},
	}
}

type Query struct {
	src  string
	prog *vm.Program
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(&Env{}),
		expr.AsBool(),
	}
}

// Compile compiles a predicate.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return &Query{src: src, prog: prog}, nil
}

func (q *Query) String() string {
	return q.src
}

// Match evaluates the predicate on the element n.
func (q *Query) Match(n *dom.Node) (bool, error) {
	if !n.IsElement() {
		return false, nil
	}
	res, err := expr.Run(q.prog, newEnv(n))
	if err != nil {
		return false, fmt.Errorf("query %q at %s: %w", q.src, n.Path(), err)
	}
	ok := res.(bool)
	if debug.Query() {
		debug.Logf("query %q at %s: %t\n", q.src, n.Path(), ok)
	}
	return ok, nil
}

// Select returns the elements under root, root included, matching the
// predicate in document order.
func (q *Query) Select(root *dom.Node) ([]*dom.Node, error) {
	var res []*dom.Node
	err := root.Visit(func(n *dom.Node, isPost bool) (bool, error) {
		if isPost || !n.IsElement() {
			return false, nil
		}
		ok, err := q.Match(n)
		if err != nil {
			return false, err
		}
		if ok {
			res = append(res, n)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Select compiles src and applies it to root.
func Select(root *dom.Node, src string) ([]*dom.Node, error) {
	q, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return q.Select(root)
}
