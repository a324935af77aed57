package ripple

import "errors"

var (
	// ErrDisposed is reported when a handle's generation no longer matches
	// the arena slot, i.e. the node's scope was disposed.
	ErrDisposed = errors.New("node disposed")

	// ErrBorrowConflict is reported when a node's value cell is mutated
	// while that node's own compute is running.
	ErrBorrowConflict = errors.New("reentrant mutation of node under computation")

	// ErrMissingContext is reported by UseContext when no value for the
	// requested type exists anywhere in the scope ancestry.
	ErrMissingContext = errors.New("no context value provided")
)

// OnErrorFunc receives every error surfaced by handle operations: disposed
// lookups, borrow conflicts, and errors returned from effect bodies.
type OnErrorFunc func(err error)

func (rt *Runtime) report(err error) {
	if rt.onError == nil {
		panic(err)
	}
	rt.onError(err)
}
