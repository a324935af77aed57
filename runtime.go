// Package ripple is a fine-grained reactive dataflow engine. Callers declare
// signals (writable values), memos (equality-memoized derivations), and
// effects (side-effecting observers); the runtime discovers dependencies from
// what each computation actually reads and propagates writes glitch-free,
// running every affected effect exactly once per pass.
package ripple

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ripplekit/ripple/arena"
)

// Runtime owns one arena of nodes, the pending effect queue, the observer
// stack, and the scope tree. It is single-threaded: a write synchronously
// drives the whole propagation pass (or defers it to the end of the
// enclosing Batch) before returning.
type Runtime struct {
	arena *arena.Arena[node]

	// observers is the stack of currently computing nodes; reads register
	// edges against its top. A zero NodeID frame marks a paused (untracked)
	// region without hiding the frames below it from nested recomputes.
	observers []NodeID

	// queue holds pending effects in insertion order; queued deduplicates
	// so an effect reachable over several paths is enqueued once.
	queue  []NodeID
	queued mapset.Set[NodeID]

	// passDirty holds the signals and triggers written during the current
	// pass. They stay Dirty until the queue drains so resolution can keep
	// answering "changed" for them, then settle back to Clean.
	passDirty []NodeID

	batchDepth int
	draining   bool

	rootScope    *Scope
	currentScope *Scope
	onError      OnErrorFunc
}

// New creates an independent Runtime. Errors surfaced by handle operations
// are routed to onError; with a nil hook the runtime panics instead, so
// misuse never passes silently.
func New(onError OnErrorFunc) *Runtime {
	rt := &Runtime{
		arena:   arena.New[node](),
		queued:  mapset.NewThreadUnsafeSet[NodeID](),
		onError: onError,
	}
	rt.rootScope = &Scope{
		rt:    rt,
		nodes: mapset.NewThreadUnsafeSet[NodeID](),
	}
	rt.currentScope = rt.rootScope
	return rt
}

// Dispose tears down the whole graph by disposing the root scope. Every
// outstanding handle fails with ErrDisposed afterwards.
func (rt *Runtime) Dispose() {
	rt.rootScope.Dispose()
}

func (rt *Runtime) allocate(n node) NodeID {
	n.scope = rt.currentScope
	id := rt.arena.Insert(n)
	rt.currentScope.adopt(id)
	return id
}

// StartBatch suspends queue drains until the matching EndBatch.
func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

// EndBatch closes the innermost batch; closing the outermost one drains the
// queue accumulated by every write inside it, exactly once.
func (rt *Runtime) EndBatch() {
	rt.batchDepth--
	if rt.batchDepth == 0 {
		rt.drain()
	}
}

// Batch runs fn with propagation deferred: writes inside fn mark the graph
// but effects resolve in a single pass when fn returns.
func (rt *Runtime) Batch(fn func()) {
	rt.StartBatch()
	defer rt.EndBatch()
	fn()
}

// PauseTracking stops reads from registering dependencies until the matching
// ResumeTracking. Pairs may nest, and a computation resolved inside the
// paused region still tracks its own reads normally.
func (rt *Runtime) PauseTracking() {
	rt.observers = append(rt.observers, NodeID{})
}

func (rt *Runtime) ResumeTracking() {
	rt.observers = rt.observers[:len(rt.observers)-1]
}

// Untracked runs fn with dependency registration suspended: signals read
// inside fn do not become sources of the surrounding computation.
func Untracked[T any](rt *Runtime, fn func() T) T {
	rt.PauseTracking()
	defer rt.ResumeTracking()
	return fn()
}

// trackRead registers id as a source of the computation currently on top of
// the observer stack. Reads outside any computation, or under PauseTracking,
// register nothing.
func (rt *Runtime) trackRead(id NodeID) {
	if len(rt.observers) == 0 {
		return
	}
	top := rt.observers[len(rt.observers)-1]
	if top.IsZero() {
		return
	}
	rt.addEdge(id, top)
}
