package ripple

// CreateEffect allocates a side-effecting observer and runs it once
// immediately to establish its initial sources. It reruns after every
// resolved change of anything it read, at most once per propagation pass. A
// returned error is routed to the runtime's error hook without aborting the
// pass; a panic aborts the remainder of the pass.
//
// The returned stop function removes the effect from the graph; it does not
// interrupt a run already in progress.
func CreateEffect(rt *Runtime, fn func() error) (stop func()) {
	id := rt.allocate(node{
		kind:  kindEffect,
		state: stateClean,
		compute: func() (any, error) {
			return nil, fn()
		},
	})
	// The initial run counts as part of a pass: a write issued inside it
	// must queue for the follow-up drain, not start a nested one while
	// this effect is still running.
	n := rt.lookup(id)
	wasDraining := rt.draining
	rt.draining = true
	rt.recompute(id, n)
	rt.draining = wasDraining
	if !wasDraining && rt.batchDepth == 0 {
		rt.drain()
	}

	return func() {
		if n := rt.lookup(id); n != nil {
			n.scope.forget(id)
		}
		rt.disposeNode(id)
	}
}
