package ripple

import "fmt"

// ReadSignal is the read half of a signal: a copyable handle over a NodeID.
type ReadSignal[T any] struct {
	rt *Runtime
	id NodeID
}

// WriteSignal is the write half of a signal.
type WriteSignal[T any] struct {
	rt *Runtime
	id NodeID
}

// RwSignal exposes both operation sets over the same node.
type RwSignal[T any] struct {
	ReadSignal[T]
	WriteSignal[T]
}

// CreateSignal allocates a writable reactive value and returns its two
// halves. Signals never compare old and new values on write: every write
// counts as a change, so the payload type needs no equality support.
func CreateSignal[T any](rt *Runtime, initial T) (ReadSignal[T], WriteSignal[T]) {
	id := rt.allocate(node{
		kind:  kindSignal,
		state: stateClean,
		value: initial,
	})
	return ReadSignal[T]{rt: rt, id: id}, WriteSignal[T]{rt: rt, id: id}
}

// CreateRWSignal allocates a signal behind a single combined handle.
func CreateRWSignal[T any](rt *Runtime, initial T) RwSignal[T] {
	r, w := CreateSignal(rt, initial)
	return RwSignal[T]{ReadSignal: r, WriteSignal: w}
}

// Get returns the current value and, inside a tracked computation, registers
// this signal as a source of it.
func (s ReadSignal[T]) Get() T {
	n := s.rt.lookup(s.id)
	if n == nil {
		s.rt.report(fmt.Errorf("read signal: %w", ErrDisposed))
		var zero T
		return zero
	}
	s.rt.trackRead(s.id)
	return n.value.(T)
}

// GetUntracked returns the current value without registering a dependency.
func (s ReadSignal[T]) GetUntracked() T {
	n := s.rt.lookup(s.id)
	if n == nil {
		s.rt.report(fmt.Errorf("read signal: %w", ErrDisposed))
		var zero T
		return zero
	}
	return n.value.(T)
}

// With applies fn to the current value as a tracked read.
func (s ReadSignal[T]) With(fn func(value T)) {
	fn(s.Get())
}

// WithUntracked applies fn to the current value without registering a
// dependency.
func (s ReadSignal[T]) WithUntracked(fn func(value T)) {
	fn(s.GetUntracked())
}

// NodeID returns the underlying graph vertex id.
func (s ReadSignal[T]) NodeID() NodeID {
	return s.id
}

// Set stores v and triggers propagation. Writing the same value still
// notifies subscribers; only memos downstream short-circuit.
func (s WriteSignal[T]) Set(v T) {
	n := s.rt.lookup(s.id)
	if n == nil {
		s.rt.report(fmt.Errorf("write signal: %w", ErrDisposed))
		return
	}
	if n.running {
		s.rt.report(fmt.Errorf("write signal: %w", ErrBorrowConflict))
		return
	}
	n.value = v
	s.rt.notifyWrite(s.id, n)
}

// Update applies fn to the current value and writes the result.
func (s WriteSignal[T]) Update(fn func(old T) T) {
	n := s.rt.lookup(s.id)
	if n == nil {
		s.rt.report(fmt.Errorf("write signal: %w", ErrDisposed))
		return
	}
	if n.running {
		s.rt.report(fmt.Errorf("write signal: %w", ErrBorrowConflict))
		return
	}
	n.value = fn(n.value.(T))
	s.rt.notifyWrite(s.id, n)
}

// NodeID returns the underlying graph vertex id.
func (s WriteSignal[T]) NodeID() NodeID {
	return s.id
}

// NodeID returns the underlying graph vertex id.
func (s RwSignal[T]) NodeID() NodeID {
	return s.ReadSignal.id
}

// ReadOnly returns just the read half of a combined handle.
func (s RwSignal[T]) ReadOnly() ReadSignal[T] {
	return s.ReadSignal
}

// WriteOnly returns just the write half of a combined handle.
func (s RwSignal[T]) WriteOnly() WriteSignal[T] {
	return s.WriteSignal
}
