package ripple

import "fmt"

// Trigger is a dependency-only node: it carries no payload, only change
// notifications. Computations call Track to depend on it and Notify forces
// them to rerun.
type Trigger struct {
	rt *Runtime
	id NodeID
}

// CreateTrigger allocates a trigger in the current scope.
func CreateTrigger(rt *Runtime) Trigger {
	id := rt.allocate(node{
		kind:  kindTrigger,
		state: stateClean,
	})
	return Trigger{rt: rt, id: id}
}

// Track registers the trigger as a source of the surrounding computation.
// Outside a tracked computation it is a no-op.
func (t Trigger) Track() {
	n := t.rt.lookup(t.id)
	if n == nil {
		t.rt.report(fmt.Errorf("track trigger: %w", ErrDisposed))
		return
	}
	t.rt.trackRead(t.id)
}

// Notify propagates a change to every subscriber. There is no value to
// compare, so every notification counts as a change.
func (t Trigger) Notify() {
	n := t.rt.lookup(t.id)
	if n == nil {
		t.rt.report(fmt.Errorf("notify trigger: %w", ErrDisposed))
		return
	}
	t.rt.notifyWrite(t.id, n)
}

// NodeID returns the underlying graph vertex id.
func (t Trigger) NodeID() NodeID {
	return t.id
}
