package token

type tokenOpts struct {
	keepSpace    bool
	htmlEntities bool
}

type TokenOpt func(*tokenOpts)

// KeepSpace keeps whitespace-only text between elements.
func KeepSpace(v bool) TokenOpt {
	return func(o *tokenOpts) { o.keepSpace = v }
}

// HTMLEntities accepts the HTML entity set (&nbsp; and friends) in
// addition to the five predefined XML entities.
func HTMLEntities(v bool) TokenOpt {
	return func(o *tokenOpts) { o.htmlEntities = v }
}

type writeOpts struct {
	indent      string
	declaration bool
	noSelfClose bool
	colors      *Colors
}

type WriteOpt func(*writeOpts)

// Indent writes each child element on its own line, indented by unit
// per level. The default is compact output.
func Indent(unit string) WriteOpt {
	return func(o *writeOpts) { o.indent = unit }
}

// Declaration prefixes the output with an XML declaration.
func Declaration(v bool) WriteOpt {
	return func(o *writeOpts) { o.declaration = v }
}

// SelfClose controls whether empty elements are written as <a/>. It
// defaults to true.
func SelfClose(v bool) WriteOpt {
	return func(o *writeOpts) { o.noSelfClose = !v }
}

func WriteColors(c *Colors) WriteOpt {
	return func(o *writeOpts) { o.colors = c }
}
