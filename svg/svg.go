// Package svg binds SVG documents.
//
// Elements without a dedicated type decode as *Foreign and keep their
// tag, attributes and children, so documents survive a parse and
// serialize cycle. Attributes without a dedicated field are kept in
// Presentation.Extra.
package svg

import (
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/schema"
	"github.com/signadot/xdom/xml"
)

var Namespace = format.SVGFormat.Namespace()

// Presentation holds the attributes common to all elements.
type Presentation struct {
	ID          string            `xdom:"name=id,attr,optional"`
	Class       string            `xdom:"attr,optional"`
	Style       string            `xdom:"attr,optional"`
	Transform   string            `xdom:"attr,optional"`
	Fill        string            `xdom:"attr,optional"`
	Stroke      string            `xdom:"attr,optional"`
	StrokeWidth string            `xdom:"name=stroke-width,attr,optional"`
	Opacity     string            `xdom:"attr,optional"`
	Extra       map[string]string `xdom:"flatten"`
}

type SVG struct {
	schema.Meta `xdom:"name=svg"`
	Presentation

	Width    Length    `xdom:"attr,optional"`
	Height   Length    `xdom:"attr,optional"`
	ViewBox  string    `xdom:"name=viewBox,attr,optional"`
	Version  string    `xdom:"attr,optional"`
	Children []Element `xdom:"flatten"`
}

// Element is any child of a container element.
type Element interface {
	isElement()
}

type Group struct {
	schema.Meta `xdom:"name=g"`
	Presentation

	Children []Element `xdom:"flatten"`
}

type Defs struct {
	schema.Meta `xdom:"name=defs"`
	Presentation

	Children []Element `xdom:"flatten"`
}

type Rect struct {
	schema.Meta `xdom:"name=rect"`
	Presentation

	X      Length `xdom:"attr,optional"`
	Y      Length `xdom:"attr,optional"`
	Width  Length `xdom:"attr,optional"`
	Height Length `xdom:"attr,optional"`
	RX     Length `xdom:"name=rx,attr,optional"`
	RY     Length `xdom:"name=ry,attr,optional"`
}

type Circle struct {
	schema.Meta `xdom:"name=circle"`
	Presentation

	CX Length `xdom:"name=cx,attr,optional"`
	CY Length `xdom:"name=cy,attr,optional"`
	R  Length `xdom:"name=r,attr"`
}

type Ellipse struct {
	schema.Meta `xdom:"name=ellipse"`
	Presentation

	CX Length `xdom:"name=cx,attr,optional"`
	CY Length `xdom:"name=cy,attr,optional"`
	RX Length `xdom:"name=rx,attr"`
	RY Length `xdom:"name=ry,attr"`
}

type Line struct {
	schema.Meta `xdom:"name=line"`
	Presentation

	X1 Length `xdom:"name=x1,attr,optional"`
	Y1 Length `xdom:"name=y1,attr,optional"`
	X2 Length `xdom:"name=x2,attr,optional"`
	Y2 Length `xdom:"name=y2,attr,optional"`
}

type Polyline struct {
	schema.Meta `xdom:"name=polyline"`
	Presentation

	Points string `xdom:"attr"`
}

type Polygon struct {
	schema.Meta `xdom:"name=polygon"`
	Presentation

	Points string `xdom:"attr"`
}

type Path struct {
	schema.Meta `xdom:"name=path"`
	Presentation

	D string `xdom:"name=d,attr"`
}

type Text struct {
	schema.Meta `xdom:"name=text"`
	Presentation

	X        Length    `xdom:"attr,optional"`
	Y        Length    `xdom:"attr,optional"`
	Children []Element `xdom:"flatten"`
}

type Title struct {
	schema.Meta `xdom:"name=title"`
	Value       string `xdom:"text"`
}

type Desc struct {
	schema.Meta `xdom:"name=desc"`
	Value       string `xdom:"text"`
}

type Use struct {
	schema.Meta `xdom:"name=use"`
	Presentation

	Href      string `xdom:"name=href,attr,optional"`
	XLinkHref string `xdom:"name=xlink:href,attr,optional"`
	X         Length `xdom:"attr,optional"`
	Y         Length `xdom:"attr,optional"`
	Width     Length `xdom:"attr,optional"`
	Height    Length `xdom:"attr,optional"`
}

// Foreign is an element with no dedicated type.
type Foreign struct {
	Tag      string            `xdom:"tag"`
	Attrs    map[string]string `xdom:"flatten"`
	Children []Element         `xdom:"flatten"`
}

// CharData is text among the children of an element.
type CharData string

func (Group) isElement()    {}
func (Defs) isElement()     {}
func (Rect) isElement()     {}
func (Circle) isElement()   {}
func (Ellipse) isElement()  {}
func (Line) isElement()     {}
func (Polyline) isElement() {}
func (Polygon) isElement()  {}
func (Path) isElement()     {}
func (Text) isElement()     {}
func (Title) isElement()    {}
func (Desc) isElement()     {}
func (Use) isElement()      {}
func (*Foreign) isElement() {}
func (CharData) isElement() {}

func init() {
	schema.MustRegisterEnum(schema.DefineEnum[Element](
		schema.Case[Group](),
		schema.Case[Defs](),
		schema.Case[Rect](),
		schema.Case[Circle](),
		schema.Case[Ellipse](),
		schema.Case[Line](),
		schema.Case[Polyline](),
		schema.Case[Polygon](),
		schema.Case[Path](),
		schema.Case[Text](),
		schema.Case[Title](),
		schema.Case[Desc](),
		schema.Case[Use](),
		schema.Case[CharData]().AsText(),
		schema.Case[Foreign]().AsOther(),
	))
}

// Walk calls f on each element of children and their descendants in
// document order. Returning false from f skips the element's children.
func Walk(children []Element, f func(Element) bool) {
	for _, c := range children {
		if !f(c) {
			continue
		}
		switch x := c.(type) {
		case Group:
			Walk(x.Children, f)
		case Defs:
			Walk(x.Children, f)
		case Text:
			Walk(x.Children, f)
		case *Foreign:
			Walk(x.Children, f)
		}
	}
}

// ByID returns the first element carrying the given id.
func (s *SVG) ByID(id string) Element {
	var res Element
	Walk(s.Children, func(e Element) bool {
		if res != nil {
			return false
		}
		if p := presentation(e); p != nil && p.ID == id {
			res = e
			return false
		}
		if f, ok := e.(*Foreign); ok && f.Attrs["id"] == id {
			res = e
			return false
		}
		return true
	})
	return res
}

func presentation(e Element) *Presentation {
	switch x := e.(type) {
	case Group:
		return &x.Presentation
	case Defs:
		return &x.Presentation
	case Rect:
		return &x.Presentation
	case Circle:
		return &x.Presentation
	case Ellipse:
		return &x.Presentation
	case Line:
		return &x.Presentation
	case Polyline:
		return &x.Presentation
	case Polygon:
		return &x.Presentation
	case Path:
		return &x.Presentation
	case Text:
		return &x.Presentation
	case Use:
		return &x.Presentation
	}
	return nil
}

func svgOpts(opts []xml.Option) []xml.Option {
	return append([]xml.Option{xml.Format(format.SVGFormat)}, opts...)
}

func Parse(data []byte, opts ...xml.Option) (*SVG, error) {
	s := &SVG{}
	if err := xml.Unmarshal(data, s, svgOpts(opts)...); err != nil {
		return nil, err
	}
	return s, nil
}

func Marshal(s *SVG, opts ...xml.Option) ([]byte, error) {
	return xml.Marshal(s, svgOpts(opts)...)
}

func FromString(src string, opts ...xml.Option) (*SVG, error) {
	return Parse([]byte(src), opts...)
}

func ToString(s *SVG, opts ...xml.Option) (string, error) {
	d, err := Marshal(s, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
