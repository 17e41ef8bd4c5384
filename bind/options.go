package bind

import (
	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/schema"
)

type bindOpts struct {
	registry    *schema.Registry
	style       naming.Style
	root        string
	denyUnknown bool
	keepSpace   bool
}

type Option func(*bindOpts)

// WithRegistry sets the registry shapes are taken from. Defaults to
// schema.Default.
func WithRegistry(r *schema.Registry) Option {
	return func(o *bindOpts) { o.registry = r }
}

// WithNaming sets the case style of derived wire names.
func WithNaming(s naming.Style) Option {
	return func(o *bindOpts) { o.style = s }
}

// RootName overrides the tag of the root element.
func RootName(name string) Option {
	return func(o *bindOpts) { o.root = name }
}

// DenyUnknown makes unclaimed child elements and attributes a schema
// mismatch.
func DenyUnknown(v bool) Option {
	return func(o *bindOpts) { o.denyUnknown = v }
}

// KeepSpace keeps whitespace-only text holding a line break. By default
// such text is layout between elements and text receivers never see it.
func KeepSpace(v bool) Option {
	return func(o *bindOpts) { o.keepSpace = v }
}

func newOpts(opts []Option) *bindOpts {
	o := &bindOpts{registry: schema.Default, style: naming.Default}
	for _, f := range opts {
		f(o)
	}
	if o.registry == nil {
		o.registry = schema.Default
	}
	if o.style == "" {
		o.style = naming.Default
	}
	return o
}
