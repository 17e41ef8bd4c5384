// Package schema describes how Go types bind to XML-family documents.
//
// A Shape is the binding descriptor of one Go type: its kind (primitive,
// struct, tuple, enum, sequence, map or raw node) and, for structs and
// tuples, its fields with their binding roles and wire names. The bind
// package consults shapes only; it never inspects struct tags itself.
//
// Shapes are derived once per type from struct tags and cached in a
// Registry. A type can also be described explicitly with DefineStruct,
// which is what code generated by xdom-gen does.
//
// # Struct tags
//
// Fields are tagged with the key "xdom":
//
//	Name   string   `xdom:"attr"`               // attribute
//	Title  string   `xdom:"name=heading"`       // child element <heading>
//	Body   string   `xdom:"text"`               // text content
//	Tracks []string `xdom:"elems"`              // repeated <track> children
//	Shapes []Shape  `xdom:"flatten"`            // children tagged by variant
//	Kind   string   `xdom:"tag"`                // the element's own tag
//	Note   string   `xdom:"optional"`           // absent is not an error
//	Skip   int      `xdom:"-"`
//
// Container options live on an embedded Meta field:
//
//	type Playlist struct {
//		schema.Meta `xdom:"name=playlist,renameAll=kebab-case,denyUnknown"`
//		...
//	}
//
// The "tuple" container flag binds fields positionally.
//
// # Enums
//
// An enum is a Go interface type whose implementations are registered
// as variants:
//
//	schema.MustRegisterEnum(schema.DefineEnum[Shape](
//		schema.Case[Circle](),
//		schema.Case[Rect]().Rename("rectangle"),
//	))
//
// A variant is a unit variant if it is a struct without exported fields,
// a struct variant if it is any other struct, and a newtype variant
// otherwise (type Label string). Enums are externally tagged: the element
// name selects the variant.
package schema
