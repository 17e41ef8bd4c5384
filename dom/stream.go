package dom

import "io"

// Source produces events. Next returns io.EOF once the document is
// exhausted.
type Source interface {
	Next() (Event, error)
}

// Sink consumes events.
type Sink interface {
	Emit(Event) error
}

type SourceFunc func() (Event, error)

func (f SourceFunc) Next() (Event, error) { return f() }

type SinkFunc func(Event) error

func (f SinkFunc) Emit(ev Event) error { return f(ev) }

// Events is a materialized event sequence.
type Events []Event

// Source returns a Source reading es from the start.
func (es Events) Source() Source {
	i := 0
	return SourceFunc(func() (Event, error) {
		if i >= len(es) {
			return Event{}, io.EOF
		}
		ev := es[i]
		i++
		return ev, nil
	})
}

// Recorder is a Sink that keeps every event.
type Recorder struct {
	Events Events
}

func (r *Recorder) Emit(ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

// Collect reads src until io.EOF.
func Collect(src Source) (Events, error) {
	var res Events
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res = append(res, ev)
	}
}

// Copy emits every event of src to dst.
func Copy(dst Sink, src Source) error {
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dst.Emit(ev); err != nil {
			return err
		}
	}
}

// Peeker is a Source with one event of lookahead. Errors are sticky.
type Peeker struct {
	src  Source
	ev   Event
	err  error
	full bool
}

func NewPeeker(src Source) *Peeker {
	if p, ok := src.(*Peeker); ok {
		return p
	}
	return &Peeker{src: src}
}

func (p *Peeker) Peek() (Event, error) {
	if !p.full {
		p.ev, p.err = p.src.Next()
		p.full = true
	}
	return p.ev, p.err
}

func (p *Peeker) Next() (Event, error) {
	ev, err := p.Peek()
	if err == nil {
		p.full = false
	}
	return ev, err
}
