package kernel

import "tact/hal"

// FrequencyMax requests dispatch on every loop iteration. One task interval
// per microsecond is the finest cadence the tick clock can express.
const FrequencyMax = 1_000_000

// TaskFunc is a synchronous task body. It runs to completion within a single
// loop iteration.
type TaskFunc func() error

// SuspendFunc is a cooperatively-suspending task body. Calling yield parks
// the body until the next loop iteration; the loop never runs two bodies at
// the same time.
type SuspendFunc func(yield func()) error

// TaskConfig configures a task at registration.
//
// Frequency is the desired dispatch rate in Hz; 0 means the task only runs
// when enqueued or touch-forced. TouchForcesExecution makes the task run on
// every iteration while a touch is active, plus once more on release.
// Inactive registers the task disabled.
type TaskConfig struct {
	Frequency            int
	TouchForcesExecution bool
	Inactive             bool
}

// Task is a registered unit of work dispatched by the run loop.
type Task struct {
	fn      TaskFunc
	suspend SuspendFunc
	cfg     TaskConfig

	active   bool
	enqueued bool
	lastRun  uint64
	hasRun   bool
	removed  bool

	inflight *invocation
}

// Active reports whether the task is eligible for dispatch.
func (t *Task) Active() bool { return t.active }

// SetActive enables or disables dispatch. Reactivating a task makes it due on
// the very next iteration regardless of its stale schedule. Deactivating does
// not interrupt a body already in flight and does not clear a pending
// enqueue.
func (t *Task) SetActive(active bool) {
	if active && !t.active {
		t.enqueued = true
	}
	t.active = active
}

// Enqueue requests a one-shot run on the next iteration. An enqueue on an
// inactive task persists until the task is reactivated.
func (t *Task) Enqueue() {
	t.enqueued = true
}

func (t *Task) interval() int64 {
	return 1_000_000 / int64(t.cfg.Frequency)
}

func (t *Task) due(now uint64, touchActive, touchReleased bool) bool {
	if !t.active || t.removed || t.inflight != nil {
		return false
	}
	if t.enqueued {
		return true
	}
	if t.cfg.TouchForcesExecution && (touchActive || touchReleased) {
		return true
	}
	if t.cfg.Frequency <= 0 {
		return false
	}
	if t.cfg.Frequency >= FrequencyMax || !t.hasRun {
		return true
	}
	return hal.TicksDiff(now, t.lastRun) >= t.interval()
}

func (t *Task) markRun(now uint64) {
	t.enqueued = false
	t.lastRun = now
	t.hasRun = true
}
