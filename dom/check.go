package dom

import (
	"errors"
	"fmt"
	"io"
)

var ErrMalformed = errors.New("malformed event stream")

// MalformedError reports an event that breaks well-formedness.
type MalformedError struct {
	Event   Event
	Path    string
	Message string
}

func (e *MalformedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed event stream at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed event stream: %s", e.Message)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

type checker struct {
	stack   []string
	attrs   map[string]bool
	started bool
	done    bool
}

func (c *checker) path() string {
	res := ""
	for _, name := range c.stack {
		res += "/" + name
	}
	return res
}

func (c *checker) fail(ev Event, format string, args ...any) error {
	return &MalformedError{Event: ev, Path: c.path(), Message: fmt.Sprintf(format, args...)}
}

func (c *checker) accept(ev Event) error {
	switch ev.Kind {
	case StartElement:
		if c.done {
			return c.fail(ev, "element <%s> after the root element", ev.Name)
		}
		if ev.Name == "" {
			return c.fail(ev, "empty element name")
		}
		c.started = true
		c.stack = append(c.stack, ev.Name)
		c.attrs = map[string]bool{}
	case Attribute:
		if c.attrs == nil {
			return c.fail(ev, "attribute %q outside a start tag", ev.Name)
		}
		if ev.Name == "" {
			return c.fail(ev, "empty attribute name")
		}
		if c.attrs[ev.Name] {
			return c.fail(ev, "duplicate attribute %q", ev.Name)
		}
		c.attrs[ev.Name] = true
	case Text:
		if len(c.stack) == 0 {
			return c.fail(ev, "text outside the root element")
		}
		c.attrs = nil
	case EndElement:
		if len(c.stack) == 0 {
			return c.fail(ev, "end element without start")
		}
		c.stack = c.stack[:len(c.stack)-1]
		c.attrs = nil
		if len(c.stack) == 0 {
			c.done = true
		}
	default:
		return c.fail(ev, "unknown event kind %s", ev.Kind)
	}
	return nil
}

func (c *checker) finish() error {
	if len(c.stack) != 0 {
		return c.fail(Event{}, "unclosed element <%s>", c.stack[len(c.stack)-1])
	}
	if !c.started {
		return c.fail(Event{}, "no root element")
	}
	return nil
}

// Checker is a Source validating the events of another Source.
type Checker struct {
	src Source
	c   checker
}

func Check(src Source) *Checker {
	if c, ok := src.(*Checker); ok {
		return c
	}
	return &Checker{src: src}
}

func (c *Checker) Next() (Event, error) {
	ev, err := c.src.Next()
	if err == io.EOF {
		if ferr := c.c.finish(); ferr != nil {
			return Event{}, ferr
		}
		return Event{}, io.EOF
	}
	if err != nil {
		return Event{}, err
	}
	if err := c.c.accept(ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// SinkChecker is a Sink validating events before forwarding them.
type SinkChecker struct {
	dst Sink
	c   checker
}

func CheckSink(dst Sink) *SinkChecker {
	return &SinkChecker{dst: dst}
}

func (s *SinkChecker) Emit(ev Event) error {
	if err := s.c.accept(ev); err != nil {
		return err
	}
	return s.dst.Emit(ev)
}

// Close reports whether the emitted events formed a complete document.
func (s *SinkChecker) Close() error {
	return s.c.finish()
}
