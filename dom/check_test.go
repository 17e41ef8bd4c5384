package dom

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		events Events
		ok     bool
	}{
		{
			name:   "simple",
			events: Events{StartEvent("a"), AttrEvent("x", "1"), TextEvent("hi"), EndEvent()},
			ok:     true,
		},
		{
			name: "nested mixed",
			events: Events{
				StartEvent("p"), TextEvent("a"), StartEvent("b"), TextEvent("b"), EndEvent(),
				TextEvent("c"), EndEvent(),
			},
			ok: true,
		},
		{
			name:   "attribute after text",
			events: Events{StartEvent("a"), TextEvent("hi"), AttrEvent("x", "1"), EndEvent()},
		},
		{
			name:   "attribute after child",
			events: Events{StartEvent("a"), StartEvent("b"), EndEvent(), AttrEvent("x", "1"), EndEvent()},
		},
		{
			name:   "duplicate attribute",
			events: Events{StartEvent("a"), AttrEvent("x", "1"), AttrEvent("x", "2"), EndEvent()},
		},
		{
			name:   "unclosed",
			events: Events{StartEvent("a"), StartEvent("b"), EndEvent()},
		},
		{
			name:   "unbalanced end",
			events: Events{StartEvent("a"), EndEvent(), EndEvent()},
		},
		{
			name:   "two roots",
			events: Events{StartEvent("a"), EndEvent(), StartEvent("b"), EndEvent()},
		},
		{
			name:   "text outside root",
			events: Events{TextEvent("x"), StartEvent("a"), EndEvent()},
		},
		{
			name: "empty",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Collect(Check(tc.events.Source()))
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected malformed error, got %v", err)
			}
		})
	}
}

func TestCheckSink(t *testing.T) {
	r := &Recorder{}
	s := CheckSink(r)
	for _, ev := range []Event{StartEvent("a"), AttrEvent("x", "1"), StartEvent("b")} {
		if err := s.Emit(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected unclosed error, got %v", err)
	}
	if err := s.Emit(AttrEvent("y", "2")); err != nil {
		t.Fatalf("attribute on open start tag rejected: %v", err)
	}
	if err := s.Emit(TextEvent("t")); err != nil {
		t.Fatal(err)
	}
	if err := s.Emit(AttrEvent("z", "3")); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
	if len(r.Events) != 5 {
		t.Errorf("forwarded %d events, want 5", len(r.Events))
	}
}

func TestPeeker(t *testing.T) {
	p := NewPeeker(Events{StartEvent("a"), EndEvent()}.Source())
	ev, err := p.Peek()
	if err != nil || ev.Kind != StartElement {
		t.Fatalf("peek: %v %v", ev, err)
	}
	ev2, _ := p.Next()
	if ev2 != ev {
		t.Errorf("next after peek = %v, want %v", ev2, ev)
	}
	ev, _ = p.Next()
	if ev.Kind != EndElement {
		t.Errorf("got %v", ev)
	}
	if NewPeeker(p) != p {
		t.Errorf("NewPeeker did not reuse peeker")
	}
}
