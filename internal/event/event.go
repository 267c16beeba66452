package event

import (
	"time"

	"touchmax/internal/domain"
)

// Type identifies the kind of event.
type Type int

const (
	DirEntered Type = iota + 1
	DirNotFound
	ListFailed
	EntryVisited
	FieldChanged
	FieldSkipped
	FieldFailed
)

var typeNames = [...]string{
	DirEntered:   "DirEntered",
	DirNotFound:  "DirNotFound",
	ListFailed:   "ListFailed",
	EntryVisited: "EntryVisited",
	FieldChanged: "FieldChanged",
	FieldSkipped: "FieldSkipped",
	FieldFailed:  "FieldFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event is one progress report from a run.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string
	Level     int
	IsDir     bool
	Field     domain.Field
	Before    time.Time
	After     time.Time
	// Target is the computed value; it differs from After when the
	// filesystem rounds or rejects part of the write.
	Target time.Time
	DryRun bool
	Error  error
}

// Sink receives events. Emit must not block for long; the walk is
// sequential and waits on it.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

type multi []Sink

func (m multi) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

// Multi fans events out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Stamp returns a sink that fills in Timestamp from now before forwarding.
func Stamp(next Sink, now func() time.Time) Sink {
	return SinkFunc(func(ev Event) {
		if ev.Timestamp.IsZero() {
			ev.Timestamp = now()
		}
		next.Emit(ev)
	})
}

// Recorder keeps every event in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// OfType returns the recorded events of type t in emission order.
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
