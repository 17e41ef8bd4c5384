package bind

import (
	"sync"

	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/schema"
)

// binding is what claims a child element of a struct: a field, and for
// enum items the variant the tag selects.
type binding struct {
	field   int
	variant *schema.Variant
}

// fieldMap indexes the fields of a struct shape by wire name.
type fieldMap struct {
	attrs    map[string]int
	children map[string]binding
	text     int
	tag      int
	flatMap  int
	// other receives children no other binding claims.
	other *binding
	// textItem receives text among flattened children.
	textItem *binding
}

type fieldMapKey struct {
	shape *schema.Shape
	style naming.Style
}

var fieldMaps sync.Map

func fieldsOf(s *schema.Shape, style naming.Style) *fieldMap {
	key := fieldMapKey{shape: s, style: style}
	if fm, ok := fieldMaps.Load(key); ok {
		return fm.(*fieldMap)
	}
	fm, _ := fieldMaps.LoadOrStore(key, buildFieldMap(s, style))
	return fm.(*fieldMap)
}

func buildFieldMap(s *schema.Shape, style naming.Style) *fieldMap {
	fm := &fieldMap{
		attrs:    map[string]int{},
		children: map[string]binding{},
		text:     -1,
		tag:      -1,
		flatMap:  -1,
	}
	claim := func(name string, b binding) {
		if _, ok := fm.children[name]; !ok {
			fm.children[name] = b
		}
	}
	variants := func(i int, enum *schema.Shape) {
		for _, v := range enum.Variants {
			b := binding{field: i, variant: v}
			switch {
			case v.Text:
				if fm.textItem == nil {
					fm.textItem = &b
				}
			case v.Other:
				if fm.other == nil {
					fm.other = &b
				}
			default:
				claim(v.Key(style), b)
			}
		}
	}
	for i, f := range s.Fields {
		switch f.Role {
		case schema.AttributeRole:
			if _, ok := fm.attrs[f.Key(style)]; !ok {
				fm.attrs[f.Key(style)] = i
			}
		case schema.TextRole:
			fm.text = i
		case schema.TagRole:
			fm.tag = i
		case schema.ElementRole:
			claim(f.Key(style), binding{field: i})
		case schema.ElementsRole:
			items := f.Items()
			if items.Kind == schema.EnumKind && !items.Untagged {
				variants(i, items)
				continue
			}
			claim(f.ItemKey(style), binding{field: i})
			claim(f.Key(style), binding{field: i})
		case schema.FlattenRole:
			if f.Shape.Kind == schema.MapKind {
				fm.flatMap = i
				continue
			}
			variants(i, f.Items())
		}
	}
	return fm
}
