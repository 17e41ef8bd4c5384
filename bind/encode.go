package bind

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/signadot/xdom/debug"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/schema"
	"github.com/signadot/xdom/singular"
)

type encoder struct {
	sink dom.Sink
	opts *bindOpts
}

func (e *encoder) emit(ev dom.Event) error {
	if debug.Encode() {
		debug.Logf("emit %s\n", ev)
	}
	return e.sink.Emit(ev)
}

func (e *encoder) start(name string) error {
	return e.emit(dom.StartEvent(name))
}

func (e *encoder) end() error {
	return e.emit(dom.EndEvent())
}

func (e *encoder) root(v reflect.Value, s *schema.Shape) error {
	if s.Kind == schema.EnumKind && !s.Untagged && e.opts.root == "" {
		return e.variant(v, s, "")
	}
	name := e.opts.root
	if name == "" {
		name = s.WireName(e.opts.style)
	}
	return e.element(name, v, s, name)
}

// element emits v as an element named name.
func (e *encoder) element(name string, v reflect.Value, s *schema.Shape, path string) error {
	v, ok := indirect(v)
	if !ok {
		return &MarshalError{FieldPath: path, Message: "nil pointer", Err: ErrNilValue}
	}
	switch s.Kind {
	case schema.NodeKind:
		n := v.Interface().(dom.Node)
		return dom.Walk(&n, e)
	case schema.PrimitiveKind:
		text, err := formatLeaf(v, path)
		if err != nil {
			return err
		}
		if err := e.start(name); err != nil {
			return err
		}
		if text != "" {
			if err := e.emit(dom.TextEvent(text)); err != nil {
				return err
			}
		}
		return e.end()
	case schema.StructKind:
		return e.structElement(name, v, s, path)
	case schema.TupleKind:
		return e.tupleElement(name, v, s, path)
	case schema.EnumKind:
		if s.Untagged {
			return e.untagged(name, v, s, path)
		}
		return e.wrapped(name, v, s, path)
	case schema.SequenceKind:
		if err := e.start(name); err != nil {
			return err
		}
		itemName := singular.Singularize(name)
		for i := 0; i < v.Len(); i++ {
			if err := e.item(itemName, v.Index(i), s.Elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return e.end()
	case schema.MapKind:
		if err := e.start(name); err != nil {
			return err
		}
		for _, k := range sortedKeys(v) {
			key := k.String()
			if err := e.element(key, v.MapIndex(k), s.Elem, path+"/"+key); err != nil {
				return err
			}
		}
		return e.end()
	}
	return &MarshalError{FieldPath: path, Message: fmt.Sprintf("cannot encode %s", s)}
}

// Emit lets dom.Walk write captured nodes through the encoder.
func (e *encoder) Emit(ev dom.Event) error {
	return e.emit(ev)
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	return keys
}

func (e *encoder) item(name string, v reflect.Value, s *schema.Shape, path string) error {
	if s.Kind == schema.EnumKind && !s.Untagged {
		return e.variant(v, s, path)
	}
	return e.element(name, v, s, path)
}

func (e *encoder) structElement(name string, v reflect.Value, s *schema.Shape, path string) error {
	fm := fieldsOf(s, e.opts.style)
	if fm.tag >= 0 {
		if tag := v.FieldByIndex(s.Fields[fm.tag].Index).String(); tag != "" {
			name = tag
		}
	}
	if err := e.start(name); err != nil {
		return err
	}
	if err := e.attrs(v, s, fm, path); err != nil {
		return err
	}
	for _, f := range s.Fields {
		fv := v.FieldByIndex(f.Index)
		var err error
		switch f.Role {
		case schema.TextRole:
			err = e.text(fv, f, path)
		case schema.ElementRole:
			if f.Optional && fv.IsZero() {
				continue
			}
			key := f.Key(e.opts.style)
			err = e.element(key, fv, f.Shape, path+"/"+key)
		case schema.ElementsRole:
			err = e.items(fv, f, path)
		case schema.FlattenRole:
			if f.Shape.Kind == schema.MapKind {
				continue
			}
			err = e.flatten(fv, f, path)
		}
		if err != nil {
			return err
		}
	}
	return e.end()
}

func (e *encoder) attrs(v reflect.Value, s *schema.Shape, fm *fieldMap, path string) error {
	for _, f := range s.Fields {
		if f.Role != schema.AttributeRole {
			continue
		}
		fv, ok := indirect(v.FieldByIndex(f.Index))
		if !ok || (f.Optional && fv.IsZero()) {
			continue
		}
		key := f.Key(e.opts.style)
		text, err := e.leafText(fv, f.Shape, path+"@"+key)
		if err != nil {
			return err
		}
		if err := e.emit(dom.AttrEvent(key, text)); err != nil {
			return err
		}
	}
	if fm.flatMap < 0 {
		return nil
	}
	m, ok := indirect(v.FieldByIndex(s.Fields[fm.flatMap].Index))
	if !ok || m.IsNil() {
		return nil
	}
	for _, k := range sortedKeys(m) {
		key := k.String()
		if _, claimed := fm.attrs[key]; claimed {
			continue
		}
		text, err := formatLeaf(m.MapIndex(k), path+"@"+key)
		if err != nil {
			return err
		}
		if err := e.emit(dom.AttrEvent(key, text)); err != nil {
			return err
		}
	}
	return nil
}

// leafText writes a primitive, or an enum as the name of a unit variant.
func (e *encoder) leafText(v reflect.Value, s *schema.Shape, path string) (string, error) {
	if s.Kind != schema.EnumKind {
		return formatLeaf(v, path)
	}
	vr, payload, err := e.resolve(v, s, path)
	if err != nil {
		return "", err
	}
	switch {
	case vr.Kind == schema.UnitVariant:
		return vr.Key(e.opts.style), nil
	case vr.Shape.Kind == schema.PrimitiveKind && (vr.Text || vr.Other):
		return formatLeaf(payload, path)
	}
	return "", &LeafWriteError{FieldPath: path, Kind: vr.Type.String(), Err: fmt.Errorf("variant %s is not a leaf", vr.Name)}
}

func (e *encoder) text(v reflect.Value, f *schema.Field, path string) error {
	v, ok := indirect(v)
	if !ok {
		return nil
	}
	if f.IsSequence() {
		for i := 0; i < v.Len(); i++ {
			text, err := e.leafText(v.Index(i), f.Items(), fmt.Sprintf("%s/text()[%d]", path, i))
			if err != nil {
				return err
			}
			if err := e.emit(dom.TextEvent(text)); err != nil {
				return err
			}
		}
		return nil
	}
	if f.Optional && v.IsZero() {
		return nil
	}
	text, err := e.leafText(v, f.Shape, path+"/text()")
	if err != nil || text == "" {
		return err
	}
	return e.emit(dom.TextEvent(text))
}

func (e *encoder) items(v reflect.Value, f *schema.Field, path string) error {
	v, ok := indirect(v)
	if !ok {
		return nil
	}
	name := f.ItemKey(e.opts.style)
	for i := 0; i < v.Len(); i++ {
		if err := e.item(name, v.Index(i), f.Items(), fmt.Sprintf("%s/%s[%d]", path, name, i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) flatten(v reflect.Value, f *schema.Field, path string) error {
	if !f.IsSequence() {
		if v.IsZero() {
			return nil
		}
		return e.variant(v, f.Shape, path)
	}
	v, ok := indirect(v)
	if !ok {
		return nil
	}
	for i := 0; i < v.Len(); i++ {
		if err := e.variant(v.Index(i), f.Items(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) tupleElement(name string, v reflect.Value, s *schema.Shape, path string) error {
	if err := e.start(name); err != nil {
		return err
	}
	for i, f := range s.Fields {
		fv := v.FieldByIndex(f.Index)
		if f.IsSequence() {
			if err := e.items(fv, f, path); err != nil {
				return err
			}
			continue
		}
		if f.Optional && fv.IsZero() {
			continue
		}
		if err := e.element(f.Key(e.opts.style), fv, f.Shape, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return e.end()
}

// resolve finds the variant of the enum value v and its payload.
func (e *encoder) resolve(v reflect.Value, s *schema.Shape, path string) (*schema.Variant, reflect.Value, error) {
	v, ok := indirect(v)
	if ok && v.Kind() == reflect.Interface {
		if v.IsNil() {
			ok = false
		} else {
			v = v.Elem()
		}
	}
	if !ok {
		return nil, v, &MarshalError{FieldPath: path, Message: "nil " + s.String(), Err: ErrNilValue}
	}
	vr := s.VariantOf(v.Type())
	if vr == nil {
		return nil, v, &MarshalError{FieldPath: path, Message: fmt.Sprintf("%s is not a variant of %s", v.Type(), s)}
	}
	payload, ok := indirect(v)
	if !ok {
		return nil, v, &MarshalError{FieldPath: path, Message: "nil " + vr.Type.String(), Err: ErrNilValue}
	}
	return vr, payload, nil
}

// variant emits an enum value as an element named by its variant, or as
// text for a text variant.
func (e *encoder) variant(v reflect.Value, s *schema.Shape, path string) error {
	vr, payload, err := e.resolve(v, s, path)
	if err != nil {
		return err
	}
	if vr.Text {
		text, err := formatLeaf(payload, path)
		if err != nil {
			return err
		}
		return e.emit(dom.TextEvent(text))
	}
	name := vr.Key(e.opts.style)
	return e.element(name, payload, vr.Shape, path+"/"+name)
}

// wrapped emits a tagged enum held by an element named name.
func (e *encoder) wrapped(name string, v reflect.Value, s *schema.Shape, path string) error {
	vr, payload, err := e.resolve(v, s, path)
	if err != nil {
		return err
	}
	if err := e.start(name); err != nil {
		return err
	}
	switch {
	case vr.Kind == schema.UnitVariant:
		err = e.emit(dom.TextEvent(vr.Key(e.opts.style)))
	case vr.Shape.Kind == schema.PrimitiveKind && (vr.Text || vr.Other):
		var text string
		text, err = formatLeaf(payload, path)
		if err == nil {
			err = e.emit(dom.TextEvent(text))
		}
	default:
		key := vr.Key(e.opts.style)
		err = e.element(key, payload, vr.Shape, path+"/"+key)
	}
	if err != nil {
		return err
	}
	return e.end()
}

// untagged emits the payload of an untagged enum under name.
func (e *encoder) untagged(name string, v reflect.Value, s *schema.Shape, path string) error {
	vr, payload, err := e.resolve(v, s, path)
	if err != nil {
		return err
	}
	if vr.Kind != schema.UnitVariant {
		return e.element(name, payload, vr.Shape, path)
	}
	if err := e.start(name); err != nil {
		return err
	}
	if err := e.emit(dom.TextEvent(vr.Key(e.opts.style))); err != nil {
		return err
	}
	return e.end()
}
