// Package token converts between XML bytes and dom events.
//
// TokenSource reads a document from an io.Reader and produces a
// well-formed event stream: element names keep their prefixes
// ("xlink:href"), namespace declarations are ordinary attributes,
// comments, processing instructions and directives are dropped, and
// whitespace-only text is dropped unless KeepSpace is given. Byte level
// problems are reported as *TokenizeErr.
//
// Sink and Render do the reverse, with optional indentation and colors.
// Elements holding text are written inline so mixed content keeps its
// exact whitespace.
package token
