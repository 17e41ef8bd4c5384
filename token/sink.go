package token

import (
	"bufio"
	"io"
	"strings"

	"github.com/signadot/xdom/dom"
)

// Sink is a dom.Sink writing XML to an io.Writer. Events are assembled
// into a tree and rendered by Close.
type Sink struct {
	w   io.Writer
	opt *writeOpts
	b   *dom.Builder
	chk *dom.SinkChecker
}

func NewSink(w io.Writer, opts ...WriteOpt) *Sink {
	s := &Sink{w: w, opt: newWriteOpts(opts), b: &dom.Builder{}}
	s.chk = dom.CheckSink(s.b)
	return s
}

func newWriteOpts(opts []WriteOpt) *writeOpts {
	opt := &writeOpts{}
	for _, o := range opts {
		o(opt)
	}
	return opt
}

func (s *Sink) Emit(ev dom.Event) error {
	return s.chk.Emit(ev)
}

func (s *Sink) Close() error {
	if err := s.chk.Close(); err != nil {
		return err
	}
	return render(s.w, s.b.Root(), s.opt)
}

// Write renders the events of src.
func Write(w io.Writer, src dom.Source, opts ...WriteOpt) error {
	n, err := dom.Build(src)
	if err != nil {
		return err
	}
	return render(w, n, newWriteOpts(opts))
}

// Render writes the element tree n.
func Render(w io.Writer, n *dom.Node, opts ...WriteOpt) error {
	return render(w, n, newWriteOpts(opts))
}

// String renders n compactly.
func String(n *dom.Node, opts ...WriteOpt) string {
	b := &strings.Builder{}
	render(b, n, newWriteOpts(opts))
	return b.String()
}

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

type renderer struct {
	w   *bufio.Writer
	opt *writeOpts
	c   *Colors
}

func render(w io.Writer, n *dom.Node, opt *writeOpts) error {
	r := &renderer{w: bufio.NewWriter(w), opt: opt, c: opt.colors}
	if opt.declaration {
		r.w.WriteString(r.c.Color(DeclColor, declaration))
		if opt.indent != "" {
			r.w.WriteByte('\n')
		}
	}
	r.node(n, 0, opt.indent != "")
	if opt.indent != "" {
		r.w.WriteByte('\n')
	}
	return r.w.Flush()
}

func (r *renderer) punct(s string) {
	r.w.WriteString(r.c.Color(PunctColor, s))
}

func (r *renderer) newline(depth int) {
	r.w.WriteByte('\n')
	for range depth {
		r.w.WriteString(r.opt.indent)
	}
}

func (r *renderer) node(n *dom.Node, depth int, pretty bool) {
	if n.Type == dom.TextType {
		r.w.WriteString(r.c.Color(TextColor, escapeText(n.Text)))
		return
	}
	r.punct("<")
	r.w.WriteString(r.c.Color(TagColor, n.Tag))
	for _, a := range n.Attrs {
		r.w.WriteByte(' ')
		r.w.WriteString(r.c.Color(AttrNameColor, a.Name))
		r.punct("=")
		r.w.WriteString(r.c.Color(AttrValueColor, `"`+escapeAttr(a.Value)+`"`))
	}
	if len(n.Children) == 0 {
		if !r.opt.noSelfClose {
			r.punct("/>")
			return
		}
		r.punct(">")
		r.closeTag(n)
		return
	}
	r.punct(">")
	inline := !pretty || n.HasText()
	for _, c := range n.Children {
		if !inline {
			r.newline(depth + 1)
		}
		r.node(c, depth+1, !inline)
	}
	if !inline {
		r.newline(depth)
	}
	r.closeTag(n)
}

func (r *renderer) closeTag(n *dom.Node) {
	r.punct("</")
	r.w.WriteString(r.c.Color(TagColor, n.Tag))
	r.punct(">")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
