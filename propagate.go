package ripple

import "fmt"

// notifyWrite marks id confirmed-changed after its value cell was updated,
// marks every transitive subscriber possibly-changed, queues reachable
// effects, and drains the queue unless a batch is open.
func (rt *Runtime) notifyWrite(id NodeID, n *node) {
	if n.state != stateDirty {
		n.state = stateDirty
		rt.passDirty = append(rt.passDirty, id)
	}
	for _, subID := range n.subs {
		rt.staleCheck(subID)
	}
	if rt.batchDepth == 0 {
		rt.drain()
	}
}

// staleCheck marks id possibly-changed and recurses through its subscribers.
// A node already Check or Dirty covers its subtree, so recursion stops there.
// Every effect encountered is enqueued at most once per pass regardless of
// how many paths reach it.
func (rt *Runtime) staleCheck(id NodeID) {
	n := rt.lookup(id)
	if n == nil {
		return // disposed mid-traversal: no subscribers, skip silently
	}
	if n.running && n.kind == kindMemo {
		// the write came from inside this memo's own compute: a cycle
		// within one resolution pass. Report it and do not propagate
		// through this edge; effects may write their own sources, memos
		// may not.
		rt.report(fmt.Errorf("mark node: %w", ErrBorrowConflict))
		return
	}
	if n.kind == kindEffect && !rt.queued.Contains(id) {
		rt.queued.Add(id)
		rt.queue = append(rt.queue, id)
	}
	if n.state != stateClean {
		return
	}
	n.state = stateCheck
	for _, subID := range n.subs {
		rt.staleCheck(subID)
	}
}

// resolve settles id for the current pass and reports whether its value
// changed. Dirty is terminal for signals and triggers (they settle at the
// end of the pass), so repeated resolutions of a shared ancestor stay O(1):
// this memoization is what makes the diamond cost a single run.
func (rt *Runtime) resolve(id NodeID) bool {
	n := rt.lookup(id)
	if n == nil {
		return false
	}
	switch n.state {
	case stateDirty:
		if n.compute == nil {
			return true
		}
		return rt.recompute(id, n)
	case stateCheck:
		for _, srcID := range n.sources {
			if rt.resolve(srcID) || n.state == stateDirty {
				// either this source reported a change, or its recompute
				// marked us Dirty directly; recompute reads any remaining
				// sources itself
				return rt.recompute(id, n)
			}
		}
		n.state = stateClean
		return false
	default:
		return false
	}
}

// recompute clears the node's edges, reruns compute with this node as the
// tracked observer, and reports whether the pass should treat the node as
// changed. Memos compare old and new by equality; an effect that runs always
// counts as changed.
func (rt *Runtime) recompute(id NodeID, n *node) (changed bool) {
	if n.running {
		rt.report(fmt.Errorf("resolve node: %w", ErrBorrowConflict))
		n.state = stateClean
		return false
	}
	rt.clearSources(id, n)

	// Settle before running, not after: a re-entrant write from inside the
	// compute may legitimately re-mark this node, and that mark must
	// survive the run so the same pass picks it up again.
	n.state = stateClean

	n.running = true
	rt.observers = append(rt.observers, id)
	prevScope := rt.currentScope
	rt.currentScope = n.scope
	defer func() {
		rt.currentScope = prevScope
		rt.observers = rt.observers[:len(rt.observers)-1]
		n.running = false
	}()

	next, err := n.compute()
	if err != nil {
		rt.report(fmt.Errorf("effect: %w", err))
		return false
	}

	switch n.kind {
	case kindMemo:
		changed = !n.equals(n.value, next)
		if changed {
			n.value = next
			rt.markSubsDirty(n)
		}
	case kindEffect:
		changed = true
	}
	return changed
}

// markSubsDirty promotes a changed node's direct subscribers from
// possibly-changed to confirmed-changed. Subscribers deeper down stay Check;
// their own resolution pulls the change through.
func (rt *Runtime) markSubsDirty(n *node) {
	for _, subID := range n.subs {
		sub := rt.lookup(subID)
		if sub != nil && sub.state == stateCheck {
			sub.state = stateDirty
		}
	}
}

// drain resolves the pending effect queue in insertion order. Writes issued
// by effect bodies extend the queue and are consumed by the same pass.
func (rt *Runtime) drain() {
	if rt.draining {
		return
	}
	rt.draining = true
	defer rt.settlePass()
	for i := 0; i < len(rt.queue); i++ {
		id := rt.queue[i]
		rt.queued.Remove(id)
		rt.resolve(id)
	}
}

// settlePass closes out a propagation pass. It also runs when an effect
// panics: the remaining queue is abandoned (fail-fast) while states resolved
// before the panic stay valid. Written signals and triggers settle back to
// Clean; any subscriber they still hold at Check is promoted to Dirty so a
// lazy read after the pass does not mistake the node for unchanged.
func (rt *Runtime) settlePass() {
	rt.draining = false
	rt.queue = rt.queue[:0]
	rt.queued.Clear()
	for _, id := range rt.passDirty {
		n := rt.lookup(id)
		if n == nil || n.compute != nil {
			continue
		}
		for _, subID := range n.subs {
			sub := rt.lookup(subID)
			if sub != nil && sub.state == stateCheck {
				sub.state = stateDirty
			}
		}
		n.state = stateClean
	}
	rt.passDirty = rt.passDirty[:0]
}

// disposeNode removes id from the graph: every partner edge set forgets it
// and the arena retires its generation so outstanding handles fail with
// ErrDisposed. Safe to call mid-pass; queued references to it are skipped.
func (rt *Runtime) disposeNode(id NodeID) {
	n := rt.lookup(id)
	if n == nil {
		return
	}
	for _, srcID := range n.sources {
		if src := rt.lookup(srcID); src != nil {
			src.subs = removeID(src.subs, id)
		}
	}
	for _, subID := range n.subs {
		if sub := rt.lookup(subID); sub != nil {
			sub.sources = removeID(sub.sources, id)
		}
	}
	rt.arena.Remove(id)
}
