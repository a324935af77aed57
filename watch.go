package ripple

// Watch observes the value produced by deps, which runs as a tracked read.
// On every resolved change of anything deps read, callback receives the new
// and previous values. The callback itself runs untracked, so its reads do
// not become dependencies. With runImmediately the callback also fires for
// the initial value (with the zero value as previous).
//
// The returned stop function disposes the underlying node, preventing
// further runs; an invocation already in progress is not interrupted.
func Watch[T any](rt *Runtime, deps func() T, callback func(next, prev T), runImmediately bool) (stop func()) {
	var prev T
	first := true
	return CreateEffect(rt, func() error {
		next := deps()
		fire := !first || runImmediately
		first = false
		if fire {
			func() {
				// resume must run even if the callback panics, or the
				// pause frame leaks and later pops strip the wrong
				// observer
				rt.PauseTracking()
				defer rt.ResumeTracking()
				callback(next, prev)
			}()
		}
		prev = next
		return nil
	})
}
