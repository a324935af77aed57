package ripple

import "github.com/ripplekit/ripple/arena"

// NodeID identifies a graph vertex. It is a generational index: once the
// node is disposed the id never resolves again, even after its slot is
// recycled.
type NodeID = arena.Handle

type nodeKind uint8

const (
	kindSignal nodeKind = iota
	kindMemo
	kindEffect
	kindTrigger
)

type nodeState uint8

const (
	stateClean nodeState = iota // known unchanged
	stateCheck                  // possibly changed, not yet confirmed
	stateDirty                  // confirmed changed, recompute needed
)

// node is the tagged representation of a graph vertex. The propagation
// engine switches on kind; compute and equals are populated only for the
// kinds that carry them.
type node struct {
	kind    nodeKind
	state   nodeState
	running bool // compute in progress, guards reentrant mutation

	value   any                      // absent for Trigger and Effect
	compute func() (any, error)      // Memo and Effect only
	equals  func(old, next any) bool // Memo only

	// sources preserves read order so resolution queries parents in the
	// order this node last read them. subs preserves subscription order so
	// effect queueing stays deterministic. Both are rebuilt from scratch on
	// every run.
	sources []NodeID
	subs    []NodeID

	scope *Scope
}

func (rt *Runtime) lookup(id NodeID) *node {
	n, ok := rt.arena.Get(id)
	if !ok {
		return nil
	}
	return n
}

// addEdge records that sub read src, in both directions. Duplicate reads
// within one run collapse to a single edge.
func (rt *Runtime) addEdge(srcID, subID NodeID) {
	src := rt.lookup(srcID)
	sub := rt.lookup(subID)
	if src == nil || sub == nil {
		return
	}
	for _, id := range sub.sources {
		if id == srcID {
			return
		}
	}
	sub.sources = append(sub.sources, srcID)
	src.subs = append(src.subs, subID)
}

// clearSources drops every edge out of n, unlinking n from each partner's
// subscriber list. Called immediately before a recompute so the dependency
// set is exactly what the new run reads.
func (rt *Runtime) clearSources(id NodeID, n *node) {
	for _, srcID := range n.sources {
		src := rt.lookup(srcID)
		if src == nil {
			continue
		}
		src.subs = removeID(src.subs, id)
	}
	n.sources = n.sources[:0]
}

func removeID(ids []NodeID, drop NodeID) []NodeID {
	revised := ids[:0]
	for _, id := range ids {
		if id != drop {
			revised = append(revised, id)
		}
	}
	return revised
}
