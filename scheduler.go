package glyphedit

import "time"

// Scheduler queues work onto the host's frame loop. The editor core is
// single-threaded and cooperative: it never spawns goroutines, it
// hands continuations to the scheduler and the host runs them between
// frames.
//
// Without a scheduler the editor degrades gracefully: posted work runs
// inline and layer-switch animation snaps straight to its target.
type Scheduler interface {
	// Post queues fn to run as soon as possible.
	Post(fn func())
	// After queues fn to run once delay has elapsed.
	After(delay time.Duration, fn func())
}

// post hands fn to the scheduler, or runs it inline when none is
// configured.
func (e *Editor) post(fn func()) {
	if e.sched != nil {
		e.sched.Post(fn)
		return
	}
	fn()
}
