package token

import (
	"encoding/xml"
	"errors"
	"fmt"
)

var (
	ErrSyntax        = errors.New("syntax error")
	ErrMismatchedTag = errors.New("mismatched end tag")
	ErrUnclosed      = errors.New("unclosed element")
	ErrDuplicateAttr = errors.New("duplicate attribute")
	ErrOutsideRoot   = errors.New("content outside root element")
	ErrNoRoot        = errors.New("no root element")
)

// Pos is a 1-based line and column in the input.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos)
}

func syntaxErr(err error, p Pos) *TokenizeErr {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return NewTokenizeErr(fmt.Errorf("%w: %s", ErrSyntax, se.Msg), Pos{Line: se.Line, Col: p.Col})
	}
	return NewTokenizeErr(fmt.Errorf("%w: %w", ErrSyntax, err), p)
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
