// Package dom defines the event model shared by the tokenizer, the
// writer and the binding engine, together with an element tree built
// from events.
//
// A document is a finite sequence of events:
//
//	StartElement(name)
//	Attribute(name, value)   zero or more, directly after StartElement
//	Text(content)            zero or more, interleaved with children
//	EndElement               closes the innermost open element
//
// Sources produce events and return io.EOF after the last one. Sinks
// consume them. Check and CheckSink enforce well-formedness on either
// side; malformed sequences fail with a *MalformedError.
package dom
