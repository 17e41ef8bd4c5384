package xml

import (
	"github.com/signadot/xdom/bind"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/naming"
	"github.com/signadot/xdom/schema"
	"github.com/signadot/xdom/token"
)

type xmlOpts struct {
	bind      []bind.Option
	token     []token.TokenOpt
	write     []token.WriteOpt
	namespace string
}

type Option func(*xmlOpts)

func newOpts(opts []Option) *xmlOpts {
	o := &xmlOpts{}
	for _, f := range opts {
		f(o)
	}
	return o
}

// Indent writes one element per line indented by unit.
func Indent(unit string) Option {
	return func(o *xmlOpts) { o.write = append(o.write, token.Indent(unit)) }
}

// Declaration prefixes output with an XML declaration.
func Declaration(v bool) Option {
	return func(o *xmlOpts) { o.write = append(o.write, token.Declaration(v)) }
}

func Colors(c *token.Colors) Option {
	return func(o *xmlOpts) { o.write = append(o.write, token.WriteColors(c)) }
}

func SelfClose(v bool) Option {
	return func(o *xmlOpts) { o.write = append(o.write, token.SelfClose(v)) }
}

// KeepSpace keeps whitespace-only text when reading, including the layout
// between indented elements.
func KeepSpace(v bool) Option {
	return func(o *xmlOpts) {
		o.token = append(o.token, token.KeepSpace(v))
		o.bind = append(o.bind, bind.KeepSpace(v))
	}
}

func HTMLEntities(v bool) Option {
	return func(o *xmlOpts) { o.token = append(o.token, token.HTMLEntities(v)) }
}

// Naming sets the case style of derived wire names.
func Naming(s naming.Style) Option {
	return func(o *xmlOpts) { o.bind = append(o.bind, bind.WithNaming(s)) }
}

func Registry(r *schema.Registry) Option {
	return func(o *xmlOpts) { o.bind = append(o.bind, bind.WithRegistry(r)) }
}

// Root overrides the tag of the root element.
func Root(name string) Option {
	return func(o *xmlOpts) { o.bind = append(o.bind, bind.RootName(name)) }
}

func DenyUnknown(v bool) Option {
	return func(o *xmlOpts) { o.bind = append(o.bind, bind.DenyUnknown(v)) }
}

// Namespace sets the default namespace written on the root element.
func Namespace(ns string) Option {
	return func(o *xmlOpts) { o.namespace = ns }
}

// Format applies the namespace and root conventions of f.
func Format(f format.Format) Option {
	return func(o *xmlOpts) {
		o.namespace = f.Namespace()
		if root := f.Root(); root != "" {
			o.bind = append(o.bind, bind.RootName(root))
		}
	}
}
