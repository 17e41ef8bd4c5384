// Package atom binds Atom syndication feeds (RFC 4287).
package atom

import (
	"time"

	"github.com/signadot/xdom/dom"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/schema"
	"github.com/signadot/xdom/xml"
)

// Namespace is the Atom namespace written on the root element.
var Namespace = format.AtomFormat.Namespace()

type Feed struct {
	schema.Meta `xdom:"name=feed"`

	Lang         string `xdom:"name=xml:lang,attr,optional"`
	ID           string `xdom:"name=id"`
	Title        Text
	Subtitle     *Text
	Updated      time.Time
	Authors      []Person
	Contributors []Person
	Links        []Link
	Categories   []Category
	Generator    *Generator
	Icon         string `xdom:"optional"`
	Logo         string `xdom:"optional"`
	Rights       *Text
	Entries      []Entry
}

type Entry struct {
	schema.Meta `xdom:"name=entry"`

	ID           string `xdom:"name=id"`
	Title        Text
	Updated      time.Time
	Published    time.Time `xdom:"optional"`
	Authors      []Person
	Contributors []Person
	Links        []Link
	Categories   []Category
	Summary      *Text
	Content      *Content
	Rights       *Text
}

// Text is a human readable text construct. Type is text, html or xhtml;
// xhtml content is kept as a tree in XHTML.
type Text struct {
	Type  string    `xdom:"attr,optional"`
	Lang  string    `xdom:"name=xml:lang,attr,optional"`
	Value string    `xdom:"text"`
	XHTML *dom.Node `xdom:"name=div"`
}

type Person struct {
	Name  string
	URI   string `xdom:"name=uri,optional"`
	Email string `xdom:"optional"`
}

type Link struct {
	Href     string `xdom:"attr"`
	Rel      string `xdom:"attr,optional"`
	Type     string `xdom:"attr,optional"`
	HrefLang string `xdom:"name=hreflang,attr,optional"`
	Title    string `xdom:"attr,optional"`
	Length   int64  `xdom:"attr,optional"`
}

type Category struct {
	Term   string `xdom:"attr"`
	Scheme string `xdom:"attr,optional"`
	Label  string `xdom:"attr,optional"`
}

type Generator struct {
	URI     string `xdom:"name=uri,attr,optional"`
	Version string `xdom:"attr,optional"`
	Value   string `xdom:"text"`
}

// Content is the content of an entry, inline or referenced by Src.
type Content struct {
	Type  string    `xdom:"attr,optional"`
	Src   string    `xdom:"attr,optional"`
	Value string    `xdom:"text"`
	XHTML *dom.Node `xdom:"name=div"`
}

// IsAlternate reports whether l points to an alternate version of its
// parent, the default relation.
func (l *Link) IsAlternate() bool {
	return l.Rel == "" || l.Rel == "alternate"
}

// Alternate returns the href of the first alternate link.
func (f *Feed) Alternate() string {
	return alternate(f.Links)
}

func (e *Entry) Alternate() string {
	return alternate(e.Links)
}

func alternate(links []Link) string {
	for i := range links {
		if links[i].IsAlternate() {
			return links[i].Href
		}
	}
	return ""
}

// Entry returns the entry with the given id.
func (f *Feed) Entry(id string) *Entry {
	for i := range f.Entries {
		if f.Entries[i].ID == id {
			return &f.Entries[i]
		}
	}
	return nil
}

func feedOpts(opts []xml.Option) []xml.Option {
	return append([]xml.Option{xml.Format(format.AtomFormat)}, opts...)
}

func Parse(data []byte, opts ...xml.Option) (*Feed, error) {
	f := &Feed{}
	if err := xml.Unmarshal(data, f, feedOpts(opts)...); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseEntry reads a standalone entry document.
func ParseEntry(data []byte, opts ...xml.Option) (*Entry, error) {
	e := &Entry{}
	opts = append(feedOpts(opts), xml.Root("entry"))
	if err := xml.Unmarshal(data, e, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

func Marshal(f *Feed, opts ...xml.Option) ([]byte, error) {
	return xml.Marshal(f, feedOpts(opts)...)
}

// MarshalEntry writes e as a standalone entry document.
func MarshalEntry(e *Entry, opts ...xml.Option) ([]byte, error) {
	return xml.Marshal(e, append(feedOpts(opts), xml.Root("entry"))...)
}

func FromString(s string, opts ...xml.Option) (*Feed, error) {
	return Parse([]byte(s), opts...)
}

func ToString(f *Feed, opts ...xml.Option) (string, error) {
	d, err := Marshal(f, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
