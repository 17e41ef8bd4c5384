// Package bind converts between dom event streams and Go values
// described by schema shapes.
//
// # Usage
//
//	type Playlist struct {
//	    Name   string   `xdom:"attr"`
//	    Tracks []string
//	}
//
//	var p Playlist
//	err := bind.Decode(events, &p)
//
//	rec := &dom.Recorder{}
//	err = bind.Encode(&p, rec)
//
// # Decoding
//
// Decode makes a single forward pass over its source with one event of
// lookahead. Attributes bind to attribute fields, text to the text field,
// and child elements to the field claiming their tag. Collections claim
// every child named after their singular item name. Flattened enums claim
// every child named after one of their variants. Children no field claims
// are skipped unless unknown elements are denied.
//
// # Encoding
//
// Encode emits the element of a value, its attributes in declaration
// order, then its remaining fields in declaration order.
//
// Encoding then decoding reproduces an equal value, except for text.
// Adjacent text items, from a text sequence field or consecutive text
// variants of a flattened enum, are emitted as separate events but a
// byte level reader delivers them as one run, so they come back merged.
// Whitespace-only text holding a line break is layout: a text receiver
// drops it unless KeepSpace is given. Other whitespace is kept, so
// "<p><b>a</b> <b>b</b></p>" keeps the space between its elements.
//
// Decoding then encoding does not reproduce the input: layout, attribute
// order, comments and skipped unknown elements are lost, and optional
// fields holding zero values are omitted.
//
// # Related Packages
//
//   - github.com/signadot/xdom/schema - shape descriptors
//   - github.com/signadot/xdom/dom - events and trees
//   - github.com/signadot/xdom/xml - byte level adapter
package bind
