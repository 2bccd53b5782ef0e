package kernel

import "fmt"

type coroEvent struct {
	done bool
	err  error
}

// invocation is one in-flight run of a suspending task body. The body runs
// on its own goroutine but only ever between a resume send and the matching
// event receive, so exactly one body executes at a time.
type invocation struct {
	resume chan struct{}
	events chan coroEvent
}

func launch(fn SuspendFunc) *invocation {
	inv := &invocation{
		resume: make(chan struct{}),
		events: make(chan coroEvent),
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				inv.events <- coroEvent{done: true, err: fmt.Errorf("task panic: %v", r)}
			}
		}()
		yield := func() {
			inv.events <- coroEvent{}
			<-inv.resume
		}
		err := fn(yield)
		inv.events <- coroEvent{done: true, err: err}
	}()
	return inv
}

// wait blocks until the body reaches its first suspension point or returns.
func (inv *invocation) wait() (done bool, err error) {
	ev := <-inv.events
	return ev.done, ev.err
}

// step resumes a parked body and blocks until its next suspension point or
// return.
func (inv *invocation) step() (done bool, err error) {
	inv.resume <- struct{}{}
	ev := <-inv.events
	return ev.done, ev.err
}
