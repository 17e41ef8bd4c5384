package dom

import (
	"fmt"
	"strconv"
)

type Kind uint8

const (
	StartElement Kind = iota + 1
	Attribute
	Text
	EndElement
)

func (k Kind) String() string {
	switch k {
	case StartElement:
		return "start"
	case Attribute:
		return "attr"
	case Text:
		return "text"
	case EndElement:
		return "end"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Event is one step of a document. Name is set for StartElement and
// Attribute, Value for Attribute and Text.
type Event struct {
	Kind  Kind
	Name  string
	Value string
}

func StartEvent(name string) Event {
	return Event{Kind: StartElement, Name: name}
}

func AttrEvent(name, value string) Event {
	return Event{Kind: Attribute, Name: name, Value: value}
}

func TextEvent(content string) Event {
	return Event{Kind: Text, Value: content}
}

func EndEvent() Event {
	return Event{Kind: EndElement}
}

func (e Event) String() string {
	switch e.Kind {
	case StartElement:
		return "<" + e.Name + ">"
	case Attribute:
		return fmt.Sprintf("@%s=%q", e.Name, e.Value)
	case Text:
		return strconv.Quote(e.Value)
	case EndElement:
		return "</>"
	default:
		return e.Kind.String()
	}
}
