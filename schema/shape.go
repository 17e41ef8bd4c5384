package schema

import (
	"reflect"
	"strconv"

	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/singular"
)

type Kind uint8

const (
	InvalidKind Kind = iota
	PrimitiveKind
	StructKind
	TupleKind
	EnumKind
	SequenceKind
	MapKind
	NodeKind
)

func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case StructKind:
		return "struct"
	case TupleKind:
		return "tuple"
	case EnumKind:
		return "enum"
	case SequenceKind:
		return "sequence"
	case MapKind:
		return "map"
	case NodeKind:
		return "node"
	default:
		return "invalid"
	}
}

// Role is how a field maps onto the document.
type Role uint8

const (
	ElementRole Role = iota
	AttributeRole
	TextRole
	ElementsRole
	FlattenRole
	TagRole
)

func (r Role) String() string {
	switch r {
	case ElementRole:
		return "element"
	case AttributeRole:
		return "attribute"
	case TextRole:
		return "text"
	case ElementsRole:
		return "elements"
	case FlattenRole:
		return "flatten"
	case TagRole:
		return "tag"
	default:
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
}

// Shape is the binding descriptor of a Go type. Type is never a pointer
// type: pointers are handled by the engine and make a value optional.
type Shape struct {
	Kind Kind
	Type reflect.Type
	Name string

	Rename      string
	RenameAll   naming.Style
	DenyUnknown bool
	Untagged    bool

	// struct and tuple
	Fields []*Field
	// enum
	Variants []*Variant
	// sequence items, map values
	Elem *Shape
}

// WireName is the tag of an element holding a value of s when no field
// or variant names it.
func (s *Shape) WireName(style naming.Style) string {
	return naming.Key(s.Name, s.Rename, style)
}

// VariantOf returns the variant whose Go type is t.
func (s *Shape) VariantOf(t reflect.Type) *Variant {
	for _, v := range s.Variants {
		if v.Type == t {
			return v
		}
	}
	return nil
}

func (s *Shape) String() string {
	if s.Type == nil {
		return s.Kind.String()
	}
	return s.Type.String()
}

type Field struct {
	Name     string
	Rename   string
	Role     Role
	Optional bool

	// Index is the reflect field index path, through embedded structs.
	Index []int
	// Type is the declared field type, possibly a pointer.
	Type  reflect.Type
	Shape *Shape
	// Style is the renameAll style of the declaring struct.
	Style naming.Style
}

// Key is the wire name of f.
func (f *Field) Key(style naming.Style) string {
	if f.Style != "" {
		style = f.Style
	}
	return naming.Key(f.Name, f.Rename, style)
}

// ItemKey is the wire name of each item of a collection field: the rename
// if present, else the singular of the field's key.
func (f *Field) ItemKey(style naming.Style) string {
	if f.Rename != "" {
		return f.Rename
	}
	return singular.Singularize(f.Key(style))
}

// IsSequence reports whether f holds a collection.
func (f *Field) IsSequence() bool {
	return f.Shape.Kind == SequenceKind
}

// Items is the item shape of a collection field or the field shape.
func (f *Field) Items() *Shape {
	if f.Shape.Kind == SequenceKind {
		return f.Shape.Elem
	}
	return f.Shape
}

type VariantKind uint8

const (
	UnitVariant VariantKind = iota
	NewtypeVariant
	StructVariant
	TupleVariant
)

func (k VariantKind) String() string {
	switch k {
	case UnitVariant:
		return "unit"
	case NewtypeVariant:
		return "newtype"
	case StructVariant:
		return "struct"
	case TupleVariant:
		return "tuple"
	default:
		return "variant(" + strconv.Itoa(int(k)) + ")"
	}
}

type Variant struct {
	Name   string
	Rename string
	Kind   VariantKind

	// Type is the dynamic type stored in the enum interface.
	Type reflect.Type
	// Shape describes the payload: the struct for struct and tuple
	// variants, the inner value for newtype variants.
	Shape *Shape

	// Text variants hold text found among flattened children.
	Text bool
	// Other variants receive elements no other variant claims.
	Other bool
	// Style is the renameAll style of the enum.
	Style naming.Style
}

// Key is the element name discriminating v.
func (v *Variant) Key(style naming.Style) string {
	if v.Style != "" {
		style = v.Style
	}
	return naming.Key(v.Name, v.Rename, style)
}
