package dom

import "io"

// ReadNode reads the element starting at the next event of p into a
// tree. The returned node has no parent.
func ReadNode(p *Peeker) (*Node, error) {
	b := &Builder{}
	ev, err := p.Next()
	if err != nil {
		return nil, err
	}
	if ev.Kind != StartElement {
		return nil, &MalformedError{Event: ev, Message: "expected start element, got " + ev.Kind.String()}
	}
	if err := b.Emit(ev); err != nil {
		return nil, err
	}
	for !b.Done() {
		ev, err := p.Next()
		if err == io.EOF {
			return nil, &MalformedError{Path: b.cur.Path(), Message: "unexpected end of events"}
		}
		if err != nil {
			return nil, err
		}
		if err := b.Emit(ev); err != nil {
			return nil, err
		}
	}
	return b.Root(), nil
}

// Skip discards the element starting at the next event of p.
func Skip(p *Peeker) error {
	depth := 0
	for {
		ev, err := p.Next()
		if err == io.EOF {
			return &MalformedError{Message: "unexpected end of events while skipping"}
		}
		if err != nil {
			return err
		}
		switch ev.Kind {
		case StartElement:
			depth++
		case EndElement:
			depth--
		}
		if depth <= 0 {
			return nil
		}
	}
}

// Build reads a whole document.
func Build(src Source) (*Node, error) {
	p := NewPeeker(Check(src))
	n, err := ReadNode(p)
	if err != nil {
		return nil, err
	}
	if _, err := p.Next(); err != io.EOF {
		if err == nil {
			err = &MalformedError{Message: "trailing events after the root element"}
		}
		return nil, err
	}
	return n, nil
}

// Walk emits the events of n to sink.
func Walk(n *Node, sink Sink) error {
	if n.Type == TextType {
		return sink.Emit(TextEvent(n.Text))
	}
	if err := sink.Emit(StartEvent(n.Tag)); err != nil {
		return err
	}
	for _, a := range n.Attrs {
		if err := sink.Emit(AttrEvent(a.Name, a.Value)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := Walk(c, sink); err != nil {
			return err
		}
	}
	return sink.Emit(EndEvent())
}

// NodeSource replays the events of n.
func NodeSource(n *Node) Source {
	r := &Recorder{}
	Walk(n, r)
	return r.Events.Source()
}

// Builder is a Sink assembling a tree from events.
type Builder struct {
	root *Node
	cur  *Node
}

func (b *Builder) Emit(ev Event) error {
	switch ev.Kind {
	case StartElement:
		n := Element(ev.Name)
		if b.root == nil {
			b.root = n
		} else if b.cur == nil {
			return &MalformedError{Event: ev, Message: "element after the root element"}
		} else {
			b.cur.Append(n)
		}
		b.cur = n
	case Attribute:
		if b.cur == nil || len(b.cur.Children) != 0 {
			return &MalformedError{Event: ev, Message: "attribute outside a start tag"}
		}
		b.cur.Attrs = append(b.cur.Attrs, Attr{Name: ev.Name, Value: ev.Value})
	case Text:
		if b.cur == nil {
			return &MalformedError{Event: ev, Message: "text outside the root element"}
		}
		b.cur.Append(TextNode(ev.Value))
	case EndElement:
		if b.cur == nil {
			return &MalformedError{Event: ev, Message: "end element without start"}
		}
		b.cur = b.cur.Parent
	default:
		return &MalformedError{Event: ev, Message: "unknown event kind " + ev.Kind.String()}
	}
	return nil
}

// Done reports whether the root element has been closed.
func (b *Builder) Done() bool {
	return b.root != nil && b.cur == nil
}

func (b *Builder) Root() *Node {
	return b.root
}
