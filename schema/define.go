package schema

import (
	"fmt"
	"reflect"

	"github.com/signadot/xdom/naming"
)

// EnumDef declares an enum: an interface type and its variants in
// declaration order.
type EnumDef struct {
	Type      reflect.Type
	Cases     []*CaseDef
	rename    string
	renameAll naming.Style
	untagged  bool
}

// CaseDef declares one variant of an enum.
type CaseDef struct {
	Type   reflect.Type
	rename string
	text   bool
	other  bool
}

// DefineEnum declares the interface type I as an enum with the given
// variants.
func DefineEnum[I any](cases ...*CaseDef) *EnumDef {
	return &EnumDef{Type: reflect.TypeFor[I](), Cases: cases}
}

// Case declares T as a variant. T or *T must implement the enum
// interface.
func Case[T any]() *CaseDef {
	return &CaseDef{Type: reflect.TypeFor[T]()}
}

// Rename sets the wire name of the enum itself, used when it is untagged.
func (d *EnumDef) Rename(name string) *EnumDef {
	d.rename = name
	return d
}

// RenameAll sets the case style of the variant names.
func (d *EnumDef) RenameAll(s naming.Style) *EnumDef {
	d.renameAll = s
	return d
}

// Untagged makes the enum resolve variants by shape instead of by tag.
func (d *EnumDef) Untagged() *EnumDef {
	d.untagged = true
	return d
}

func (c *CaseDef) Rename(name string) *CaseDef {
	c.rename = name
	return c
}

// AsText marks a newtype variant over a primitive as the receiver of text
// among flattened children.
func (c *CaseDef) AsText() *CaseDef {
	c.text = true
	return c
}

// AsOther marks the variant receiving elements that match no other
// variant.
func (c *CaseDef) AsOther() *CaseDef {
	c.other = true
	return c
}

// StructDef declares the binding of a struct type explicitly, in place of
// its struct tags.
type StructDef struct {
	Type   reflect.Type
	Opts   StructOpts
	Fields []FieldDef
}

// DefineStruct declares the fields of T in binding order. Exported fields
// of T not listed are not bound.
func DefineStruct[T any](opts StructOpts, fields ...FieldDef) *StructDef {
	return &StructDef{Type: reflect.TypeFor[T](), Opts: opts, Fields: fields}
}

func (d *StructDef) validate() error {
	if d.Type.Kind() != reflect.Struct {
		return &SchemaError{TypeName: d.Type.String(), Message: "not a struct type"}
	}
	seen := map[string]bool{}
	for _, f := range d.Fields {
		sf, ok := d.Type.FieldByName(f.Name)
		if !ok || !sf.IsExported() {
			return &SchemaError{TypeName: d.Type.String(), Field: f.Name, Message: "no such exported field"}
		}
		if seen[f.Name] {
			return &SchemaError{TypeName: d.Type.String(), Field: f.Name, Message: "declared twice"}
		}
		seen[f.Name] = true
	}
	return nil
}

func (d *EnumDef) validate() error {
	if d.Type.Kind() != reflect.Interface {
		return &SchemaError{TypeName: d.Type.String(), Message: "enum type must be an interface"}
	}
	if len(d.Cases) == 0 {
		return &SchemaError{TypeName: d.Type.String(), Message: "enum has no variants"}
	}
	others := 0
	for _, c := range d.Cases {
		if _, err := c.variantType(d.Type); err != nil {
			return err
		}
		if c.other {
			others++
		}
	}
	if others > 1 {
		return &SchemaError{TypeName: d.Type.String(), Message: "more than one catch-all variant"}
	}
	return nil
}

// variantType is the type stored in the interface: T, or *T when only the
// pointer implements it.
func (c *CaseDef) variantType(iface reflect.Type) (reflect.Type, error) {
	switch {
	case c.Type.Implements(iface):
		return c.Type, nil
	case c.Type.Kind() != reflect.Pointer && reflect.PointerTo(c.Type).Implements(iface):
		return reflect.PointerTo(c.Type), nil
	}
	return nil, &SchemaError{
		TypeName: iface.String(),
		Message:  fmt.Sprintf("variant %s does not implement the enum", c.Type),
	}
}
