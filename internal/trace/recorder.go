package trace

import "sync"

// Sink receives check events as a sweep produces them. Implementations
// never return errors; SafeRecord shields callers from panicking sinks.
type Sink interface {
	Record(event CheckEvent)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Record(CheckEvent) {}

// SafeRecord forwards an event to s, absorbing nil sinks and panics.
// A broken sink must never change a verification outcome.
func SafeRecord(s Sink, event CheckEvent) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()
	s.Record(event)
}

// Recorder accumulates events in memory until the campaign ends and the
// canonical trace is built. Insertion order is irrelevant; Trace sorts.
type Recorder struct {
	mu     sync.Mutex
	events []CheckEvent
}

func NewRecorder() *Recorder { return &Recorder{} }

// Record appends one event. Safe for concurrent use and nil receivers.
func (r *Recorder) Record(event CheckEvent) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Snapshot copies the events recorded so far.
func (r *Recorder) Snapshot() []CheckEvent {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CheckEvent(nil), r.events...)
}

// Trace assembles the canonical trace for a backend from the events
// recorded so far. The recorder stays usable afterwards.
func (r *Recorder) Trace(backend string) VerificationTrace {
	tr := VerificationTrace{Backend: backend, Events: r.Snapshot()}
	tr.Canonicalize()
	return tr
}
