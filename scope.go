package ripple

import mapset "github.com/deckarep/golang-set/v2"

// Scope is a disposal boundary. Nodes allocate into the current scope;
// disposing a scope disposes its nodes, its child scopes, and runs its
// cleanups. Scopes partition the arena logically, they do not own storage.
type Scope struct {
	rt       *Runtime
	parent   *Scope
	children []*Scope
	nodes    mapset.Set[NodeID]
	cleanups []func()
	values   map[uint64]any // context entries, keyed by hashed value type
	disposed bool
}

// CreateScope makes a child of the current scope. Run fn inside it with
// Run, or pass work directly; the scope stays alive until Dispose.
func (rt *Runtime) CreateScope() *Scope {
	s := &Scope{
		rt:     rt,
		parent: rt.currentScope,
		nodes:  mapset.NewThreadUnsafeSet[NodeID](),
	}
	rt.currentScope.children = append(rt.currentScope.children, s)
	return s
}

// Run executes fn with s as the ambient current scope, restoring the
// previous one on every exit path. Nodes created and context values
// provided inside fn belong to s.
func (s *Scope) Run(fn func()) {
	prev := s.rt.currentScope
	s.rt.currentScope = s
	defer func() {
		s.rt.currentScope = prev
	}()
	fn()
}

// Dispose disposes every node created within s, all child scopes
// transitively, and runs cleanups in reverse registration order. All
// outstanding handles to the disposed nodes fail with ErrDisposed.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	for i := len(s.children) - 1; i >= 0; i-- {
		s.children[i].Dispose()
	}
	s.children = nil

	for id := range s.nodes.Iter() {
		s.rt.disposeNode(id)
	}
	s.nodes.Clear()

	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
	s.values = nil

	if s.parent != nil {
		s.parent.removeChild(s)
	}
}

// IsDisposed reports whether Dispose has run.
func (s *Scope) IsDisposed() bool {
	return s.disposed
}

func (s *Scope) adopt(id NodeID) {
	if s.disposed {
		return
	}
	s.nodes.Add(id)
}

func (s *Scope) forget(id NodeID) {
	s.nodes.Remove(id)
}

func (s *Scope) removeChild(child *Scope) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers fn to run when the current scope is disposed. On an
// already disposed scope the cleanup runs immediately.
func OnCleanup(rt *Runtime, fn func()) {
	s := rt.currentScope
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}
