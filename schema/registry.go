package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/signadot/xdom/debug"
	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/naming"
)

// Registry derives and caches shapes. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	shapes  map[reflect.Type]*Shape
	enums   map[reflect.Type]*EnumDef
	structs map[reflect.Type]*StructDef
}

func NewRegistry() *Registry {
	return &Registry{
		shapes:  map[reflect.Type]*Shape{},
		enums:   map[reflect.Type]*EnumDef{},
		structs: map[reflect.Type]*StructDef{},
	}
}

// Default is the registry used when none is given.
var Default = NewRegistry()

func (r *Registry) RegisterEnum(d *EnumDef) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enums[d.Type]; ok {
		return &SchemaError{TypeName: d.Type.String(), Message: "enum already registered"}
	}
	r.enums[d.Type] = d
	return nil
}

func (r *Registry) RegisterStruct(d *StructDef) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.structs[d.Type]; ok {
		return &SchemaError{TypeName: d.Type.String(), Message: "struct already registered"}
	}
	if _, ok := r.shapes[d.Type]; ok {
		return &SchemaError{TypeName: d.Type.String(), Message: "struct already described from its tags"}
	}
	r.structs[d.Type] = d
	return nil
}

func RegisterEnum(d *EnumDef) error {
	return Default.RegisterEnum(d)
}

func MustRegisterEnum(d *EnumDef) {
	if err := Default.RegisterEnum(d); err != nil {
		panic(err)
	}
}

func RegisterStruct(d *StructDef) error {
	return Default.RegisterStruct(d)
}

func MustRegisterStruct(d *StructDef) {
	if err := Default.RegisterStruct(d); err != nil {
		panic(err)
	}
}

// ShapeOf returns the shape of t, deriving it on first use.
func (r *Registry) ShapeOf(t reflect.Type) (*Shape, error) {
	t = deref(t)
	r.mu.RLock()
	s, ok := r.shapes[t]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shapes[t]; ok {
		return s, nil
	}
	b := &builder{r: r}
	s, err := b.shape(t)
	if err == nil {
		err = b.finish()
	}
	if err != nil {
		for _, t := range b.added {
			delete(r.shapes, t)
		}
		return nil, err
	}
	if debug.Schema() {
		for _, t := range b.added {
			debug.Logf("described %s as %s\n", t, r.shapes[t].Kind)
		}
	}
	return s, nil
}

func ShapeOf(t reflect.Type) (*Shape, error) {
	return Default.ShapeOf(t)
}

// For returns the shape of T in the default registry.
func For[T any]() (*Shape, error) {
	return Default.ShapeOf(reflect.TypeFor[T]())
}

var (
	nodeType            = reflect.TypeFor[dom.Node]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// IsLeaf reports whether values of t are written as a single string.
func IsLeaf(t reflect.Type) bool {
	if t.Kind() != reflect.Interface {
		if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
			return true
		}
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	}
	return false
}

func optionalType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Array:
		return true
	}
	return false
}

type builder struct {
	r     *Registry
	added []reflect.Type
	enums []*Shape
}

func (b *builder) shape(t reflect.Type) (*Shape, error) {
	t = deref(t)
	if s, ok := b.r.shapes[t]; ok {
		return s, nil
	}
	s := &Shape{Type: t, Name: t.Name()}
	b.r.shapes[t] = s
	b.added = append(b.added, t)

	var err error
	switch {
	case t == nodeType:
		s.Kind = NodeKind
	case t.Kind() == reflect.Interface && b.r.enums[t] != nil:
		err = b.enum(s, b.r.enums[t])
	case IsLeaf(t):
		s.Kind = PrimitiveKind
	case t.Kind() == reflect.Interface:
		err = &SchemaError{TypeName: t.String(), Message: "interface type is not a registered enum"}
	case t.Kind() == reflect.Struct:
		err = b.structShape(s)
	case t.Kind() == reflect.Slice, t.Kind() == reflect.Array:
		s.Kind = SequenceKind
		s.Elem, err = b.shape(t.Elem())
	case t.Kind() == reflect.Map:
		if t.Key().Kind() != reflect.String {
			err = &SchemaError{TypeName: t.String(), Message: "map keys must be strings"}
			break
		}
		s.Kind = MapKind
		s.Elem, err = b.shape(t.Elem())
	default:
		err = &SchemaError{TypeName: t.String(), Message: fmt.Sprintf("unsupported kind %s", t.Kind())}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *builder) enum(s *Shape, d *EnumDef) error {
	s.Kind = EnumKind
	s.Rename = d.rename
	s.RenameAll = d.renameAll
	s.Untagged = d.untagged
	keys := map[string]bool{}
	for _, c := range d.Cases {
		vt, err := c.variantType(d.Type)
		if err != nil {
			return err
		}
		base := deref(c.Type)
		ps, err := b.shape(base)
		if err != nil {
			return err
		}
		v := &Variant{
			Name:   base.Name(),
			Rename: c.rename,
			Type:   vt,
			Shape:  ps,
			Text:   c.text,
			Other:  c.other,
			Style:  d.renameAll,
		}
		key := v.Key(naming.Default)
		if keys[key] {
			return &SchemaError{TypeName: d.Type.String(), Field: v.Name, Message: fmt.Sprintf("duplicate variant name %q", key)}
		}
		keys[key] = true
		s.Variants = append(s.Variants, v)
	}
	b.enums = append(b.enums, s)
	return nil
}

// finish classifies variants once every payload shape is complete.
// Recursive types reach shapes that are still being built.
func (b *builder) finish() error {
	for _, s := range b.enums {
		for _, v := range s.Variants {
			ps := v.Shape
			switch ps.Kind {
			case StructKind:
				v.Kind = StructVariant
				if len(ps.Fields) == 0 {
					v.Kind = UnitVariant
				}
			case TupleKind:
				v.Kind = TupleVariant
			default:
				v.Kind = NewtypeVariant
			}
			if v.Rename == "" && (ps.Kind == StructKind || ps.Kind == TupleKind) {
				v.Rename = ps.Rename
			}
			if v.Text && (v.Kind != NewtypeVariant || ps.Kind != PrimitiveKind) {
				return &SchemaError{TypeName: s.Type.String(), Field: v.Name, Message: "text variant must wrap a primitive"}
			}
		}
	}
	return nil
}

func (b *builder) structShape(s *Shape) error {
	t := s.Type
	s.Kind = StructKind
	if d, ok := b.r.structs[t]; ok {
		b.applyOpts(s, &d.Opts)
		for _, fd := range d.Fields {
			if fd.Skip {
				continue
			}
			sf, _ := t.FieldByName(fd.Name)
			if b.flattensStruct(sf, fd) {
				if sf.Type.Kind() == reflect.Pointer {
					return &SchemaError{TypeName: t.String(), Field: sf.Name, Message: "cannot flatten a pointer to struct"}
				}
				if err := b.structFields(s, sf.Type, sf.Index, d.Opts.RenameAll); err != nil {
					return err
				}
				continue
			}
			if err := b.addField(s, sf, fd, sf.Index, d.Opts.RenameAll); err != nil {
				return err
			}
		}
		return b.checkStruct(s)
	}
	opts, err := GetStructOpts(t)
	if err != nil {
		return &SchemaError{TypeName: t.String(), Message: err.Error(), Err: err}
	}
	if opts == nil {
		opts = &StructOpts{}
	}
	b.applyOpts(s, opts)
	if err := b.structFields(s, t, nil, opts.RenameAll); err != nil {
		return err
	}
	return b.checkStruct(s)
}

func (b *builder) applyOpts(s *Shape, opts *StructOpts) {
	s.Rename = opts.Rename
	s.RenameAll = opts.RenameAll
	s.DenyUnknown = opts.DenyUnknown
	if opts.Tuple {
		s.Kind = TupleKind
	}
}

// structFields adds the fields of t to s, flattening embedded structs and
// fields tagged flatten whose type is a struct.
func (b *builder) structFields(s *Shape, t reflect.Type, prefix []int, style naming.Style) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(slices.Clone(prefix), i)
		if sf.Anonymous && sf.Type == metaType {
			continue
		}
		if !sf.Anonymous && !sf.IsExported() {
			continue
		}
		def, err := ParseFieldTag(sf)
		if err != nil {
			return &SchemaError{TypeName: s.Type.String(), Field: sf.Name, Message: err.Error(), Err: err}
		}
		if def.Skip {
			continue
		}
		if b.flattensStruct(sf, def) {
			if sf.Type.Kind() == reflect.Pointer {
				return &SchemaError{TypeName: s.Type.String(), Field: sf.Name, Message: "cannot flatten a pointer to struct"}
			}
			inner := style
			if opts, err := GetStructOpts(sf.Type); err == nil && opts != nil && opts.RenameAll != "" {
				inner = opts.RenameAll
			}
			if err := b.structFields(s, sf.Type, index, inner); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if err := b.addField(s, sf, def, index, style); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) flattensStruct(sf reflect.StructField, def FieldDef) bool {
	t := deref(sf.Type)
	if t.Kind() != reflect.Struct || IsLeaf(t) || t == nodeType {
		return false
	}
	if sf.Anonymous {
		return def.Rename == "" && (def.Role == ElementRole || def.Role == FlattenRole)
	}
	return def.Role == FlattenRole
}

func (b *builder) addField(s *Shape, sf reflect.StructField, def FieldDef, index []int, style naming.Style) error {
	fs, err := b.shape(sf.Type)
	if err != nil {
		return err
	}
	f := &Field{
		Name:   sf.Name,
		Rename: def.Rename,
		Role:   def.Role,
		Index:  index,
		Type:   sf.Type,
		Shape:  fs,
		Style:  style,
	}
	f.Optional = def.Optional || (!def.Required && optionalType(sf.Type))
	if f.Role == ElementRole && fs.Kind == SequenceKind {
		f.Role = ElementsRole
	}
	if err := checkRole(f); err != nil {
		return &SchemaError{TypeName: s.Type.String(), Field: sf.Name, Message: err.Error()}
	}
	if s.Kind == TupleKind && f.Role != ElementRole && f.Role != ElementsRole {
		return &SchemaError{TypeName: s.Type.String(), Field: sf.Name, Message: "tuple fields must be elements"}
	}
	s.Fields = append(s.Fields, f)
	return nil
}

func checkRole(f *Field) error {
	k := f.Shape.Kind
	switch f.Role {
	case AttributeRole:
		if k != PrimitiveKind && k != EnumKind {
			return fmt.Errorf("attribute must be a primitive or enum, got %s", k)
		}
	case TextRole:
		if k == SequenceKind {
			k = f.Shape.Elem.Kind
		}
		if k != PrimitiveKind && k != EnumKind {
			return fmt.Errorf("text must be a primitive, enum or sequence of them, got %s", f.Shape.Kind)
		}
	case TagRole:
		if f.Type.Kind() != reflect.String {
			return fmt.Errorf("tag field must be a string, got %s", f.Type)
		}
	case ElementsRole:
		if k != SequenceKind {
			return fmt.Errorf("elements field must be a sequence, got %s", k)
		}
	case FlattenRole:
		switch {
		case k == EnumKind:
		case k == SequenceKind && f.Shape.Elem.Kind == EnumKind:
		case k == MapKind && f.Shape.Elem.Kind == PrimitiveKind:
		default:
			return fmt.Errorf("flatten needs a struct, enum, sequence of enums or map of primitives, got %s", k)
		}
	}
	return nil
}

func (b *builder) checkStruct(s *Shape) error {
	count := map[string]int{}
	for _, f := range s.Fields {
		switch {
		case f.Role == TextRole:
			count["text"]++
		case f.Role == TagRole:
			count["tag"]++
		case f.Role == FlattenRole && f.Shape.Kind == MapKind:
			count["flattened map"]++
		case f.Role == FlattenRole:
			count["flattened enum"]++
		}
	}
	for what, n := range count {
		if n > 1 {
			return &SchemaError{TypeName: s.Type.String(), Message: fmt.Sprintf("more than one %s field", what)}
		}
	}
	return nil
}
