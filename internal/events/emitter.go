package events

import "sync"

// Emitter is the seam services publish through.
type Emitter interface {
	Emit(event Event)
}

// NoopEmitter discards every event. Used in tests and when nothing subscribes.
type NoopEmitter struct{}

// NewNoopEmitter creates an emitter that drops events.
func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

// Emit does nothing.
func (NoopEmitter) Emit(Event) {}

// Recorder keeps every emitted event in order. Intended for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit appends the event.
func (r *Recorder) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the recorded event types in emission order.
func (r *Recorder) Types() []Type {
	events := r.Events()
	out := make([]Type, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
