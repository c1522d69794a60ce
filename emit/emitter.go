// SPDX-License-Identifier: MIT

package emit

// Emitter receives events. Implementations must be safe for concurrent use and
// must not block or panic; delivery failures are swallowed.
type Emitter interface {
	Emit(event Event)
}

// NullEmitter discards every event.
type NullEmitter struct{}

// NewNullEmitter returns an emitter that drops everything.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

// Emit is a no-op.
func (n *NullEmitter) Emit(Event) {}

// MultiEmitter fans an event out to several emitters in order.
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter combines emitters; nil entries are skipped.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	out := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}

	return &MultiEmitter{emitters: out}
}

// Emit forwards event to every wrapped emitter.
func (m *MultiEmitter) Emit(event Event) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
