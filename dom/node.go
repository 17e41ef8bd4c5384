package dom

import (
	"slices"
	"strconv"
	"strings"
)

type Type uint8

const (
	ElementType Type = iota
	TextType
)

func (t Type) String() string {
	if t == TextType {
		return "text"
	}
	return "element"
}

type Attr struct {
	Name  string
	Value string
}

// Node is an element or a text node. Children keep document order and
// may interleave text and elements.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int

	Tag      string
	Attrs    []Attr
	Children []*Node

	Text string
}

func Element(tag string) *Node {
	return &Node{Type: ElementType, Tag: tag}
}

func TextNode(s string) *Node {
	return &Node{Type: TextType, Text: s}
}

func (n *Node) IsElement() bool { return n.Type == ElementType }
func (n *Node) IsText() bool    { return n.Type == TextType }

// WithAttr sets an attribute, replacing an existing one of the same name.
func (n *Node) WithAttr(name, value string) *Node {
	n.SetAttr(name, value)
	return n
}

func (n *Node) WithChild(c *Node) *Node {
	n.Append(c)
	return n
}

func (n *Node) WithText(s string) *Node {
	n.Append(TextNode(s))
	return n
}

func (n *Node) Append(c *Node) {
	c.Parent = n
	c.ParentIndex = len(n.Children)
	n.Children = append(n.Children, c)
}

func (n *Node) Attr(name string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

func (n *Node) RemoveAttr(name string) bool {
	i := slices.IndexFunc(n.Attrs, func(a Attr) bool { return a.Name == name })
	if i < 0 {
		return false
	}
	n.Attrs = slices.Delete(n.Attrs, i, i+1)
	return true
}

func (n *Node) ChildElements() []*Node {
	var res []*Node
	for _, c := range n.Children {
		if c.Type == ElementType {
			res = append(res, c)
		}
	}
	return res
}

// Child returns the first child element with the given tag.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Type == ElementType && c.Tag == tag {
			return c
		}
	}
	return nil
}

// TextContent concatenates the text of n and all its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextType {
		return n.Text
	}
	var b strings.Builder
	n.Visit(func(c *Node, isPost bool) (bool, error) {
		if !isPost && c.Type == TextType {
			b.WriteString(c.Text)
		}
		return true, nil
	})
	return b.String()
}

// HasText reports whether n has a direct text child.
func (n *Node) HasText() bool {
	for _, c := range n.Children {
		if c.Type == TextType {
			return true
		}
	}
	return false
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.Type = n.Type
	dst.Tag = n.Tag
	dst.Text = n.Text
	dst.Attrs = slices.Clone(n.Attrs)
	dst.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		dc := &Node{}
		c.CloneTo(dc)
		dc.Parent = dst
		dc.ParentIndex = i
		dst.Children[i] = dc
	}
	return dst
}

// Visit calls f on n before and after its children. Children are visited
// when the pre-order call returns true.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Path locates n from the root, as in /feed/entry[1]/title. Indices
// count preceding siblings with the same tag and are omitted for the
// first one.
func (n *Node) Path() string {
	if n.Parent == nil {
		return "/" + n.segment()
	}
	return n.Parent.Path() + "/" + n.segment()
}

func (n *Node) segment() string {
	if n.Type == TextType {
		return "text()"
	}
	if n.Parent == nil {
		return n.Tag
	}
	i := 0
	for _, s := range n.Parent.Children[:n.ParentIndex] {
		if s.Type == ElementType && s.Tag == n.Tag {
			i++
		}
	}
	if i == 0 {
		return n.Tag
	}
	return n.Tag + "[" + strconv.Itoa(i) + "]"
}

// Equal compares structure and content, ignoring parent links and
// attribute order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Tag != o.Tag || n.Text != o.Text {
		return false
	}
	if len(n.Attrs) != len(o.Attrs) || len(n.Children) != len(o.Children) {
		return false
	}
	for _, a := range n.Attrs {
		if v, ok := o.Attr(a.Name); !ok || v != a.Value {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
