// Package arena provides generational-index storage. Values live behind
// stable, copyable handles; removing a value bumps the slot's generation so
// every outstanding handle to it stops resolving, while the slot itself is
// recycled for the next insert.
package arena

// Handle is a {slot, generation} pair. The zero Handle is never valid.
type Handle struct {
	slot uint32
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

type entry[T any] struct {
	gen uint32
	val *T // nil when the slot is vacant
}

// Arena owns all stored values. Lookups are generation-checked so a stale
// handle from before a Remove can never observe the slot's next occupant.
type Arena[T any] struct {
	entries []entry[T]
	free    []uint32
	count   int
}

func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns its handle. Amortized O(1).
func (a *Arena[T]) Insert(v T) Handle {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		e := &a.entries[slot]
		e.gen++
		e.val = &v
		a.count++
		return Handle{slot: slot, gen: e.gen}
	}
	a.entries = append(a.entries, entry[T]{gen: 1, val: &v})
	a.count++
	return Handle{slot: uint32(len(a.entries) - 1), gen: 1}
}

// Get returns a pointer to the value behind h, or false if h was removed or
// never issued. The pointer stays valid across later Inserts.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h.slot) >= len(a.entries) {
		return nil, false
	}
	e := a.entries[h.slot]
	if e.gen != h.gen || e.val == nil {
		return nil, false
	}
	return e.val, true
}

// Remove invalidates h and frees its slot for reuse under a new generation.
// Reports whether h was live.
func (a *Arena[T]) Remove(h Handle) bool {
	if int(h.slot) >= len(a.entries) {
		return false
	}
	e := &a.entries[h.slot]
	if e.gen != h.gen || e.val == nil {
		return false
	}
	e.val = nil
	e.gen++ // retire the handle even before the slot is reused
	a.free = append(a.free, h.slot)
	a.count--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}
