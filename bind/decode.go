package bind

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/signadot/xdom/debug"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/schema"
)

type decoder struct {
	p    *dom.Peeker
	opts *bindOpts
}

func (d *decoder) next() (dom.Event, error) {
	ev, err := d.p.Next()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return ev, err
}

func (d *decoder) peek() (dom.Event, error) {
	ev, err := d.p.Peek()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return ev, err
}

func (d *decoder) root(v reflect.Value, s *schema.Shape) error {
	ev, err := d.p.Next()
	if err == io.EOF {
		return &SchemaMismatchError{Expected: "a root element", Actual: "end of document"}
	}
	if err != nil {
		return err
	}
	if s.Kind == schema.EnumKind && !s.Untagged && d.opts.root == "" {
		return d.variant(ev, v, s, ev.Name)
	}
	if want := d.rootName(s); want != "" && ev.Name != want {
		return &SchemaMismatchError{Expected: "<" + want + ">", Actual: "<" + ev.Name + ">"}
	}
	return d.value(ev, v, s, ev.Name)
}

// rootName is the tag the root element must carry, empty when any tag
// is accepted.
func (d *decoder) rootName(s *schema.Shape) string {
	if d.opts.root != "" {
		return d.opts.root
	}
	switch s.Kind {
	case schema.StructKind:
		if fieldsOf(s, d.opts.style).tag >= 0 {
			return ""
		}
		return s.WireName(d.opts.style)
	case schema.TupleKind, schema.EnumKind:
		return s.WireName(d.opts.style)
	}
	return ""
}

// value decodes the element opened by start into v.
func (d *decoder) value(start dom.Event, v reflect.Value, s *schema.Shape, path string) error {
	if debug.Decode() {
		debug.Logf("decode <%s> as %s (%s) at %s\n", start.Name, s, s.Kind, path)
	}
	switch s.Kind {
	case schema.NodeKind:
		return d.node(start, v)
	case schema.PrimitiveKind:
		text, err := d.leafText(path)
		if err != nil {
			return err
		}
		return parseLeaf(text, v, path)
	case schema.StructKind:
		return d.structContent(start, alloc(v), s, path)
	case schema.TupleKind:
		return d.tupleContent(alloc(v), s, path)
	case schema.EnumKind:
		if s.Untagged {
			return d.untagged(start, v, s, path)
		}
		return d.wrapped(v, s, path)
	case schema.SequenceKind:
		return d.sequence(alloc(v), s, path)
	case schema.MapKind:
		return d.mapContent(alloc(v), s, path)
	}
	return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("cannot decode into %s", s)}
}

func (d *decoder) deny(s *schema.Shape) bool {
	return d.opts.denyUnknown || (s != nil && s.DenyUnknown)
}

func isNamespaceAttr(name string) bool {
	return name == "xmlns" || strings.HasPrefix(name, "xmlns:")
}

func (d *decoder) unknownAttr(ev dom.Event, deny bool, path string) error {
	if !deny || isNamespaceAttr(ev.Name) {
		return nil
	}
	return &SchemaMismatchError{FieldPath: path, Expected: "a known attribute", Actual: strconv.Quote(ev.Name)}
}

func (d *decoder) unknownElement(ev dom.Event, deny bool, path string) error {
	if deny {
		return &SchemaMismatchError{FieldPath: path, Expected: "a known element", Actual: "<" + ev.Name + ">"}
	}
	if debug.Decode() {
		debug.Logf("skip <%s> at %s\n", ev.Name, path)
	}
	return d.skip()
}

// skip discards the rest of an element whose start was consumed.
func (d *decoder) skip() error {
	depth := 1
	for depth > 0 {
		ev, err := d.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case dom.StartElement:
			depth++
		case dom.EndElement:
			depth--
		}
	}
	return nil
}

// capture reads the element opened by start into a tree.
func (d *decoder) capture(start dom.Event) (*dom.Node, error) {
	b := &dom.Builder{}
	if err := b.Emit(start); err != nil {
		return nil, err
	}
	for !b.Done() {
		ev, err := d.next()
		if err != nil {
			return nil, err
		}
		if ev.Kind == dom.Text && d.layout(ev.Value) {
			continue
		}
		if err := b.Emit(ev); err != nil {
			return nil, err
		}
	}
	return b.Root(), nil
}

func (d *decoder) node(start dom.Event, v reflect.Value) error {
	n, err := d.capture(start)
	if err != nil {
		return err
	}
	if v.Kind() == reflect.Pointer && v.Type().Elem().Kind() != reflect.Pointer {
		v.Set(reflect.ValueOf(n))
		return nil
	}
	v = alloc(v)
	v.Set(reflect.ValueOf(*n))
	res := v.Addr().Interface().(*dom.Node)
	for _, c := range res.Children {
		c.Parent = res
	}
	return nil
}

// leafText reads the text of an element whose start was consumed. The
// text is kept as is, unless the element also holds child elements; then
// layout between them is dropped.
func (d *decoder) leafText(path string) (string, error) {
	var runs []string
	nested := false
	for {
		ev, err := d.next()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case dom.Attribute:
			if err := d.unknownAttr(ev, d.opts.denyUnknown, path); err != nil {
				return "", err
			}
		case dom.Text:
			runs = append(runs, ev.Value)
		case dom.StartElement:
			nested = true
			if err := d.unknownElement(ev, d.opts.denyUnknown, path); err != nil {
				return "", err
			}
		case dom.EndElement:
			var b strings.Builder
			for _, r := range runs {
				if nested && d.layout(r) {
					continue
				}
				b.WriteString(r)
			}
			return b.String(), nil
		}
	}
}

// layout reports whether text is whitespace holding a line break, as
// written between indented elements.
func (d *decoder) layout(text string) bool {
	return !d.opts.keepSpace && strings.ContainsAny(text, "\n\r") && strings.TrimSpace(text) == ""
}

type structState struct {
	seen   []bool
	counts []int
}

func (d *decoder) structContent(start dom.Event, v reflect.Value, s *schema.Shape, path string) error {
	fm := fieldsOf(s, d.opts.style)
	deny := d.deny(s)
	st := &structState{seen: make([]bool, len(s.Fields)), counts: make([]int, len(s.Fields))}
	if fm.tag >= 0 {
		v.FieldByIndex(s.Fields[fm.tag].Index).SetString(start.Name)
		st.seen[fm.tag] = true
	}
	for {
		ev, err := d.peek()
		if err != nil {
			return err
		}
		if ev.Kind != dom.Attribute {
			break
		}
		d.p.Next()
		if err := d.attr(ev, v, s, fm, st, deny, path); err != nil {
			return err
		}
	}

	var text, pending strings.Builder
	hasText, hasPending := false, false
	flush := func() error {
		if !hasPending {
			return nil
		}
		hasPending = false
		t := pending.String()
		pending.Reset()
		return d.textItem(t, v, s, fm, st, path)
	}
	for done := false; !done; {
		ev, err := d.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case dom.Text:
			if d.layout(ev.Value) {
				continue
			}
			switch {
			case fm.text >= 0 && s.Fields[fm.text].IsSequence():
				f := s.Fields[fm.text]
				item, err := d.grow(v.FieldByIndex(f.Index), st, fm.text, "text", path)
				if err != nil {
					return err
				}
				if err := d.leaf(ev.Value, item, f.Items(), path); err != nil {
					return err
				}
			case fm.text >= 0:
				text.WriteString(ev.Value)
				hasText = true
			case fm.textItem != nil:
				pending.WriteString(ev.Value)
				hasPending = true
			}
		case dom.StartElement:
			if err := flush(); err != nil {
				return err
			}
			if err := d.child(ev, v, s, fm, st, deny, path); err != nil {
				return err
			}
		case dom.EndElement:
			if err := flush(); err != nil {
				return err
			}
			done = true
		}
	}
	if fm.text >= 0 && !s.Fields[fm.text].IsSequence() {
		f := s.Fields[fm.text]
		if hasText || !f.Optional {
			if err := d.leaf(text.String(), v.FieldByIndex(f.Index), f.Shape, path); err != nil {
				return err
			}
		}
		st.seen[fm.text] = true
	}
	return d.checkRequired(s, st, path)
}

func (d *decoder) attr(ev dom.Event, v reflect.Value, s *schema.Shape, fm *fieldMap, st *structState, deny bool, path string) error {
	apath := path + "@" + ev.Name
	if i, ok := fm.attrs[ev.Name]; ok {
		f := s.Fields[i]
		st.seen[i] = true
		return d.leaf(ev.Value, v.FieldByIndex(f.Index), f.Shape, apath)
	}
	if fm.flatMap >= 0 && ev.Name != "xmlns" {
		f := s.Fields[fm.flatMap]
		m := alloc(v.FieldByIndex(f.Index))
		if m.IsNil() {
			m.Set(reflect.MakeMap(m.Type()))
		}
		elem := reflect.New(m.Type().Elem()).Elem()
		if err := parseLeaf(ev.Value, elem, apath); err != nil {
			return err
		}
		m.SetMapIndex(reflect.ValueOf(ev.Name).Convert(m.Type().Key()), elem)
		st.seen[fm.flatMap] = true
		return nil
	}
	return d.unknownAttr(ev, deny, path)
}

// leaf decodes text into a primitive or an enum named by its text.
func (d *decoder) leaf(text string, v reflect.Value, s *schema.Shape, path string) error {
	if s.Kind == schema.EnumKind {
		return d.leafVariant(text, v, s, path)
	}
	return parseLeaf(text, v, path)
}

func (d *decoder) child(ev dom.Event, v reflect.Value, s *schema.Shape, fm *fieldMap, st *structState, deny bool, path string) error {
	b, ok := fm.children[ev.Name]
	if !ok {
		if fm.other == nil {
			return d.unknownElement(ev, deny, path)
		}
		b = *fm.other
	}
	f := s.Fields[b.field]
	fv := v.FieldByIndex(f.Index)
	if f.IsSequence() {
		n := st.counts[b.field]
		item, err := d.grow(fv, st, b.field, "<"+ev.Name+">", path)
		if err != nil {
			return err
		}
		return d.item(ev, item, f.Items(), b.variant, fmt.Sprintf("%s/%s[%d]", path, ev.Name, n))
	}
	if st.seen[b.field] {
		return &DuplicateElementError{FieldPath: path, Tag: ev.Name}
	}
	st.seen[b.field] = true
	cpath := path + "/" + ev.Name
	if b.variant != nil {
		return d.decodeVariant(ev, fv, b.variant, cpath)
	}
	return d.value(ev, fv, f.Shape, cpath)
}

// grow returns the next item slot of the collection field i.
func (d *decoder) grow(fv reflect.Value, st *structState, i int, what, path string) (reflect.Value, error) {
	seq := alloc(fv)
	n := st.counts[i]
	st.counts[i]++
	st.seen[i] = true
	if seq.Kind() == reflect.Array {
		if n >= seq.Len() {
			return reflect.Value{}, &SchemaMismatchError{
				FieldPath: path,
				Expected:  fmt.Sprintf("at most %d %s", seq.Len(), what),
				Actual:    strconv.Itoa(n + 1),
			}
		}
		return seq.Index(n), nil
	}
	seq.Set(reflect.Append(seq, reflect.Zero(seq.Type().Elem())))
	return seq.Index(seq.Len() - 1), nil
}

func (d *decoder) item(ev dom.Event, item reflect.Value, s *schema.Shape, vr *schema.Variant, path string) error {
	if vr != nil {
		return d.decodeVariant(ev, item, vr, path)
	}
	if s.Kind == schema.EnumKind && !s.Untagged {
		return d.variant(ev, item, s, path)
	}
	return d.value(ev, item, s, path)
}

func (d *decoder) textItem(text string, v reflect.Value, s *schema.Shape, fm *fieldMap, st *structState, path string) error {
	b := fm.textItem
	f := s.Fields[b.field]
	payload := reflect.New(b.variant.Shape.Type).Elem()
	if err := parseLeaf(text, payload, path); err != nil {
		return err
	}
	fv := v.FieldByIndex(f.Index)
	if f.IsSequence() {
		item, err := d.grow(fv, st, b.field, "text", path)
		if err != nil {
			return err
		}
		setVariant(item, b.variant, payload)
		return nil
	}
	if st.seen[b.field] {
		return &DuplicateElementError{FieldPath: path, Tag: "text()"}
	}
	st.seen[b.field] = true
	setVariant(fv, b.variant, payload)
	return nil
}

func (d *decoder) checkRequired(s *schema.Shape, st *structState, path string) error {
	for i, f := range s.Fields {
		if st.seen[i] || f.Optional {
			continue
		}
		switch f.Role {
		case schema.AttributeRole:
			return &SchemaMismatchError{FieldPath: path, Expected: "attribute " + strconv.Quote(f.Key(d.opts.style)), Actual: "none"}
		case schema.ElementRole:
			return &SchemaMismatchError{FieldPath: path, Expected: "<" + f.Key(d.opts.style) + ">", Actual: "none"}
		}
	}
	return nil
}

func (d *decoder) tupleContent(v reflect.Value, s *schema.Shape, path string) error {
	deny := d.deny(s)
	st := &structState{seen: make([]bool, len(s.Fields)), counts: make([]int, len(s.Fields))}
	i := 0
	for {
		ev, err := d.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case dom.Attribute:
			if err := d.unknownAttr(ev, deny, path); err != nil {
				return err
			}
		case dom.StartElement:
			for i < len(s.Fields) && s.Fields[i].IsSequence() && !d.claims(s.Fields[i], ev.Name) {
				i++
			}
			if i >= len(s.Fields) {
				if err := d.unknownElement(ev, deny, path); err != nil {
					return err
				}
				continue
			}
			f := s.Fields[i]
			fv := v.FieldByIndex(f.Index)
			if f.IsSequence() {
				n := st.counts[i]
				item, err := d.grow(fv, st, i, "<"+ev.Name+">", path)
				if err != nil {
					return err
				}
				if err := d.item(ev, item, f.Items(), nil, fmt.Sprintf("%s/%s[%d]", path, ev.Name, n)); err != nil {
					return err
				}
				continue
			}
			if key := f.Key(d.opts.style); ev.Name != key {
				return &SchemaMismatchError{
					FieldPath: fmt.Sprintf("%s[%d]", path, i),
					Expected:  "<" + key + ">",
					Actual:    "<" + ev.Name + ">",
				}
			}
			if err := d.value(ev, fv, f.Shape, path+"/"+ev.Name); err != nil {
				return err
			}
			i++
		case dom.EndElement:
			for ; i < len(s.Fields); i++ {
				f := s.Fields[i]
				if !f.IsSequence() && !f.Optional {
					return &SchemaMismatchError{
						FieldPath: fmt.Sprintf("%s[%d]", path, i),
						Expected:  "<" + f.Key(d.opts.style) + ">",
						Actual:    "end of element",
					}
				}
			}
			return nil
		}
	}
}

// claims reports whether the collection field f takes a child named tag.
func (d *decoder) claims(f *schema.Field, tag string) bool {
	items := f.Items()
	if items.Kind == schema.EnumKind && !items.Untagged {
		return d.lookupVariant(items, tag) != nil
	}
	return tag == f.ItemKey(d.opts.style) || tag == f.Key(d.opts.style)
}

func (d *decoder) sequence(v reflect.Value, s *schema.Shape, path string) error {
	deny := d.deny(s)
	n := 0
	for {
		ev, err := d.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case dom.Attribute:
			if err := d.unknownAttr(ev, deny, path); err != nil {
				return err
			}
		case dom.StartElement:
			var item reflect.Value
			if v.Kind() == reflect.Array {
				if n >= v.Len() {
					return &SchemaMismatchError{FieldPath: path, Expected: fmt.Sprintf("at most %d items", v.Len()), Actual: strconv.Itoa(n + 1)}
				}
				item = v.Index(n)
			} else {
				v.Set(reflect.Append(v, reflect.Zero(v.Type().Elem())))
				item = v.Index(v.Len() - 1)
			}
			if err := d.item(ev, item, s.Elem, nil, fmt.Sprintf("%s[%d]", path, n)); err != nil {
				return err
			}
			n++
		case dom.EndElement:
			return nil
		}
	}
}

func (d *decoder) mapContent(v reflect.Value, s *schema.Shape, path string) error {
	deny := d.deny(s)
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	for {
		ev, err := d.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case dom.Attribute:
			if err := d.unknownAttr(ev, deny, path); err != nil {
				return err
			}
		case dom.StartElement:
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := d.value(ev, elem, s.Elem, path+"/"+ev.Name); err != nil {
				return err
			}
			v.SetMapIndex(reflect.ValueOf(ev.Name).Convert(v.Type().Key()), elem)
		case dom.EndElement:
			return nil
		}
	}
}

func (d *decoder) lookupVariant(s *schema.Shape, tag string) *schema.Variant {
	var other *schema.Variant
	for _, vr := range s.Variants {
		switch {
		case vr.Other:
			other = vr
		case vr.Text:
		case vr.Key(d.opts.style) == tag:
			return vr
		}
	}
	return other
}

func (d *decoder) variantNames(s *schema.Shape) string {
	var names []string
	for _, vr := range s.Variants {
		if !vr.Text && !vr.Other {
			names = append(names, "<"+vr.Key(d.opts.style)+">")
		}
	}
	return "one of " + strings.Join(names, ", ")
}

// variant decodes an element whose tag selects a variant of s.
func (d *decoder) variant(start dom.Event, v reflect.Value, s *schema.Shape, path string) error {
	vr := d.lookupVariant(s, start.Name)
	if vr == nil {
		return &SchemaMismatchError{FieldPath: path, Expected: d.variantNames(s), Actual: "<" + start.Name + ">"}
	}
	return d.decodeVariant(start, v, vr, path)
}

func (d *decoder) decodeVariant(start dom.Event, v reflect.Value, vr *schema.Variant, path string) error {
	payload := reflect.New(vr.Shape.Type).Elem()
	if err := d.value(start, payload, vr.Shape, path); err != nil {
		return err
	}
	setVariant(v, vr, payload)
	return nil
}

// setVariant stores payload in the enum slot v as the dynamic type of vr.
func setVariant(v reflect.Value, vr *schema.Variant, payload reflect.Value) {
	v = alloc(v)
	if vr.Type.Kind() == reflect.Pointer {
		v.Set(payload.Addr())
		return
	}
	v.Set(payload)
}

// wrapped decodes a tagged enum held by an element: either one child
// element selecting the variant, or text naming a unit variant.
func (d *decoder) wrapped(v reflect.Value, s *schema.Shape, path string) error {
	var text strings.Builder
	found := false
	for {
		ev, err := d.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case dom.Attribute:
			if err := d.unknownAttr(ev, d.deny(s), path); err != nil {
				return err
			}
		case dom.Text:
			text.WriteString(ev.Value)
		case dom.StartElement:
			if found {
				return &DuplicateElementError{FieldPath: path, Tag: ev.Name}
			}
			found = true
			if err := d.variant(ev, v, s, path+"/"+ev.Name); err != nil {
				return err
			}
		case dom.EndElement:
			if found {
				return nil
			}
			return d.leafVariant(text.String(), v, s, path)
		}
	}
}

// leafVariant decodes an enum from text: the name of a unit variant, or
// the value of a primitive text or catch-all variant.
func (d *decoder) leafVariant(text string, v reflect.Value, s *schema.Shape, path string) error {
	name := strings.TrimSpace(text)
	for _, vr := range s.Variants {
		if vr.Kind == schema.UnitVariant && !vr.Other && vr.Key(d.opts.style) == name {
			setVariant(v, vr, reflect.New(vr.Shape.Type).Elem())
			return nil
		}
	}
	for _, vr := range s.Variants {
		if (vr.Text || vr.Other) && vr.Shape.Kind == schema.PrimitiveKind {
			payload := reflect.New(vr.Shape.Type).Elem()
			if err := parseLeaf(text, payload, path); err != nil {
				return err
			}
			setVariant(v, vr, payload)
			return nil
		}
	}
	return &SchemaMismatchError{FieldPath: path, Expected: "a unit variant of " + s.String(), Actual: strconv.Quote(name)}
}

// untagged captures the element and decodes it as each variant in turn.
// The first variant that decodes wins.
func (d *decoder) untagged(start dom.Event, v reflect.Value, s *schema.Shape, path string) error {
	n, err := d.capture(start)
	if err != nil {
		return err
	}
	var errs []error
	for _, vr := range s.Variants {
		payload := reflect.New(vr.Shape.Type).Elem()
		if vr.Kind == schema.UnitVariant {
			if got := strings.TrimSpace(n.TextContent()); got != vr.Key(d.opts.style) {
				errs = append(errs, fmt.Errorf("%s: text %q", vr.Name, got))
				continue
			}
		} else {
			sub := &decoder{p: dom.NewPeeker(dom.NodeSource(n)), opts: d.opts}
			ev, _ := sub.p.Next()
			if err := sub.value(ev, payload, vr.Shape, path); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", vr.Name, err))
				continue
			}
		}
		if debug.Decode() {
			debug.Logf("untagged %s resolved to %s at %s\n", s, vr.Name, path)
		}
		setVariant(v, vr, payload)
		return nil
	}
	return &UnresolvedVariantError{FieldPath: path, Enum: s.String(), Tag: start.Name, Errs: errs}
}
