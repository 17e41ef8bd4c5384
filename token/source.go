package token

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/xdom/debug"
	"github.com/signadot/xdom/dom"
)

// TokenSource is a dom.Source reading XML from an io.Reader.
type TokenSource struct {
	dec     *xml.Decoder
	opt     *tokenOpts
	stack   []string
	pending []dom.Event
	started bool
	done    bool
	err     error
}

func NewTokenSource(r io.Reader, opts ...TokenOpt) *TokenSource {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	dec := xml.NewDecoder(r)
	if opt.htmlEntities {
		dec.Entity = xml.HTMLEntity
	}
	return &TokenSource{dec: dec, opt: opt}
}

// Tokenize reads all events of src.
func Tokenize(src []byte, opts ...TokenOpt) (dom.Events, error) {
	return dom.Collect(NewTokenSource(bytes.NewReader(src), opts...))
}

func (ts *TokenSource) pos() Pos {
	line, col := ts.dec.InputPos()
	return Pos{Line: line, Col: col}
}

func (ts *TokenSource) fail(err error) (dom.Event, error) {
	ts.err = err
	return dom.Event{}, err
}

func (ts *TokenSource) Next() (dom.Event, error) {
	if ts.err != nil {
		return dom.Event{}, ts.err
	}
	if len(ts.pending) != 0 {
		ev := ts.pending[0]
		ts.pending = ts.pending[1:]
		return ev, nil
	}
	for {
		tok, err := ts.dec.RawToken()
		if err == io.EOF {
			if len(ts.stack) != 0 {
				return ts.fail(NewTokenizeErr(fmt.Errorf("%w <%s>", ErrUnclosed, ts.stack[len(ts.stack)-1]), ts.pos()))
			}
			if !ts.started {
				return ts.fail(NewTokenizeErr(ErrNoRoot, ts.pos()))
			}
			ts.err = io.EOF
			return dom.Event{}, io.EOF
		}
		if err != nil {
			return ts.fail(syntaxErr(err, ts.pos()))
		}
		ev, ok, err := ts.event(tok)
		if err != nil {
			return ts.fail(err)
		}
		if !ok {
			continue
		}
		if debug.Tokens() {
			debug.Logf("token %s at %s\n", ev, ts.pos())
		}
		return ev, nil
	}
}

func (ts *TokenSource) event(tok xml.Token) (dom.Event, bool, error) {
	switch t := tok.(type) {
	case xml.StartElement:
		name := qname(t.Name)
		if ts.done {
			return dom.Event{}, false, NewTokenizeErr(fmt.Errorf("%w: <%s>", ErrOutsideRoot, name), ts.pos())
		}
		ts.started = true
		ts.stack = append(ts.stack, name)
		seen := make(map[string]bool, len(t.Attr))
		for _, a := range t.Attr {
			an := qname(a.Name)
			if seen[an] {
				return dom.Event{}, false, NewTokenizeErr(fmt.Errorf("%w %q on <%s>", ErrDuplicateAttr, an, name), ts.pos())
			}
			seen[an] = true
			ts.pending = append(ts.pending, dom.AttrEvent(an, a.Value))
		}
		return dom.StartEvent(name), true, nil
	case xml.EndElement:
		name := qname(t.Name)
		if len(ts.stack) == 0 {
			return dom.Event{}, false, NewTokenizeErr(fmt.Errorf("%w </%s>", ErrMismatchedTag, name), ts.pos())
		}
		top := ts.stack[len(ts.stack)-1]
		if top != name {
			return dom.Event{}, false, NewTokenizeErr(fmt.Errorf("%w </%s>, expected </%s>", ErrMismatchedTag, name, top), ts.pos())
		}
		ts.stack = ts.stack[:len(ts.stack)-1]
		if len(ts.stack) == 0 {
			ts.done = true
		}
		return dom.EndEvent(), true, nil
	case xml.CharData:
		s := string(t)
		blank := strings.TrimSpace(s) == ""
		if len(ts.stack) == 0 {
			if blank {
				return dom.Event{}, false, nil
			}
			return dom.Event{}, false, NewTokenizeErr(fmt.Errorf("%w: text %q", ErrOutsideRoot, s), ts.pos())
		}
		if blank && !ts.opt.keepSpace {
			return dom.Event{}, false, nil
		}
		return dom.TextEvent(s), true, nil
	}
	return dom.Event{}, false, nil
}
