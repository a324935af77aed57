package ripple

import "fmt"

// Memo is a copyable handle over an equality-memoized derived value.
type Memo[T comparable] struct {
	rt *Runtime
	id NodeID
}

// CreateMemo allocates a derived value recomputed from whatever fn reads.
// The first computation is lazy, on the first Get. A recompute whose result
// equals the previous value does not notify subscribers, which is why T must
// support equality; for payloads without it, derive outside the graph or use
// a signal instead.
func CreateMemo[T comparable](rt *Runtime, fn func() T) Memo[T] {
	id := rt.allocate(node{
		kind:  kindMemo,
		state: stateDirty,
		compute: func() (any, error) {
			return fn(), nil
		},
		equals: func(old, next any) bool {
			if old == nil {
				return false // first run has no previous value
			}
			return old.(T) == next.(T)
		},
	})
	return Memo[T]{rt: rt, id: id}
}

// Get resolves the memo if it is possibly stale, registers it as a source of
// the surrounding computation, and returns the settled value. Resolution
// recurses through sources first, so the caller never observes a value
// derived from partially updated inputs.
func (m Memo[T]) Get() T {
	n := m.rt.lookup(m.id)
	if n == nil {
		m.rt.report(fmt.Errorf("read memo: %w", ErrDisposed))
		var zero T
		return zero
	}
	if n.state != stateClean {
		m.rt.resolve(m.id)
	}
	m.rt.trackRead(m.id)
	return n.value.(T)
}

// GetUntracked resolves and returns the value without registering a
// dependency.
func (m Memo[T]) GetUntracked() T {
	m.rt.PauseTracking()
	defer m.rt.ResumeTracking()
	return m.Get()
}

// With applies fn to the settled value as a tracked read.
func (m Memo[T]) With(fn func(value T)) {
	fn(m.Get())
}

// WithUntracked applies fn to the settled value without registering a
// dependency.
func (m Memo[T]) WithUntracked(fn func(value T)) {
	fn(m.GetUntracked())
}

// NodeID returns the underlying graph vertex id.
func (m Memo[T]) NodeID() NodeID {
	return m.id
}
