package kernel

import (
	"errors"
	"fmt"

	"tact/hal"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrTaskNotFound         = errors.New("task not found")
)

// Longest idle wait between iterations. Touch is polled, so the loop must
// wake often enough to notice a press promptly.
const maxIdleWaitMicros = 10_000

// Kernel owns the cooperative run loop: it polls touch, advances the power
// monitor, dispatches due tasks in registration order and flushes the
// display at most once per iteration. All task and page state is mutated
// only from inside the loop's own control flow.
type Kernel struct {
	h     hal.HAL
	power *PowerMonitor

	tasks    []*Task
	draining []*Task
	handlers []*Handler

	dirty    hal.Region
	hasDirty bool

	glowR, glowG, glowB uint8

	touchWasActive bool
	swallowTouch   bool
	touch          hal.TouchState
	touchReleased  bool

	stopped bool
}

// New returns a kernel over the given hardware with default power timeouts.
func New(h hal.HAL) *Kernel {
	return &Kernel{
		h: h,
		power: NewPowerMonitor(PowerConfig{
			DimTimeout:        DefaultDimTimeout,
			SleepTimeout:      DefaultSleepTimeout,
			WakeConsumesTouch: true,
			PhaseControlsGlow: true,
		}),
	}
}

// ConfigurePower replaces the power monitor configuration. Brightness
// overrides made through Power() are kept.
func (k *Kernel) ConfigurePower(cfg PowerConfig) {
	k.power.cfg = cfg
}

// Power returns the kernel's power monitor.
func (k *Kernel) Power() *PowerMonitor { return k.power }

// Display returns the display capability, for pages and accessories.
func (k *Kernel) Display() hal.Display { return k.h.Display() }

// Clock returns the monotonic clock capability.
func (k *Kernel) Clock() hal.Clock { return k.h.Clock() }

// TouchState returns the touch state as seen by tasks this iteration. A
// touch consumed by a display wake reads as inactive until released.
func (k *Kernel) TouchState() hal.TouchState { return k.touch }

// TouchReleased reports whether a touch-release edge occurred this iteration.
func (k *Kernel) TouchReleased() bool { return k.touchReleased }

// SetGlow sets the requested glow LED color. The value written to the
// hardware each iteration is scaled by the current backlight brightness when
// PhaseControlsGlow is set.
func (k *Kernel) SetGlow(r, g, b uint8) {
	k.glowR, k.glowG, k.glowB = r, g, b
}

// RequestFlush marks a display region dirty. All dirty regions accumulate
// into a single flush at the end of the iteration.
func (k *Kernel) RequestFlush(r hal.Region) {
	if r.Empty() {
		return
	}
	if k.hasDirty {
		k.dirty = k.dirty.Union(r)
	} else {
		k.dirty = r
	}
	k.hasDirty = true
}

// AddTask registers a synchronous task at the end of the dispatch order.
func (k *Kernel) AddTask(fn TaskFunc, cfg TaskConfig) (*Task, error) {
	return k.AddTaskAt(len(k.tasks), fn, cfg)
}

// AddTaskAt registers a synchronous task at the given dispatch position.
func (k *Kernel) AddTaskAt(index int, fn TaskFunc, cfg TaskConfig) (*Task, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil task func", ErrInvalidConfiguration)
	}
	return k.insert(index, &Task{fn: fn, cfg: cfg, active: !cfg.Inactive})
}

// AddSuspendingTask registers a cooperatively-suspending task at the end of
// the dispatch order.
func (k *Kernel) AddSuspendingTask(fn SuspendFunc, cfg TaskConfig) (*Task, error) {
	return k.AddSuspendingTaskAt(len(k.tasks), fn, cfg)
}

// AddSuspendingTaskAt registers a cooperatively-suspending task at the given
// dispatch position.
func (k *Kernel) AddSuspendingTaskAt(index int, fn SuspendFunc, cfg TaskConfig) (*Task, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil task func", ErrInvalidConfiguration)
	}
	return k.insert(index, &Task{suspend: fn, cfg: cfg, active: !cfg.Inactive})
}

func (k *Kernel) insert(index int, t *Task) (*Task, error) {
	if t.cfg.Frequency < 0 {
		return nil, fmt.Errorf("%w: negative frequency %d", ErrInvalidConfiguration, t.cfg.Frequency)
	}
	if t.cfg.Frequency > FrequencyMax {
		return nil, fmt.Errorf("%w: frequency %d above %d", ErrInvalidConfiguration, t.cfg.Frequency, FrequencyMax)
	}
	if index < 0 {
		index = 0
	}
	if index > len(k.tasks) {
		index = len(k.tasks)
	}
	k.tasks = append(k.tasks, nil)
	copy(k.tasks[index+1:], k.tasks[index:])
	k.tasks[index] = t
	return t, nil
}

// RemoveTask unregisters a task. A removal during an iteration takes effect
// for the remainder of that iteration's dispatch pass. A suspending body
// parked at a yield keeps being stepped until it returns; it is never
// cancelled mid-body, so its deferred cleanup runs.
func (k *Kernel) RemoveTask(t *Task) error {
	for i, cur := range k.tasks {
		if cur == t {
			k.tasks = append(k.tasks[:i], k.tasks[i+1:]...)
			t.removed = true
			if t.inflight != nil {
				k.draining = append(k.draining, t)
			}
			return nil
		}
	}
	return ErrTaskNotFound
}

// Tasks returns the tasks in dispatch order.
func (k *Kernel) Tasks() []*Task {
	out := make([]*Task, len(k.tasks))
	copy(out, k.tasks)
	return out
}

// Step runs one loop iteration. It is the entry point for externally driven
// loops, like the host window's frame callback.
func (k *Kernel) Step() error {
	return k.stepAt(k.h.Clock().NowMicros())
}

func (k *Kernel) stepAt(now uint64) error {
	touch := k.h.Touch()
	touch.Poll()
	raw := touch.State()

	pressEdge := raw.Active && !k.touchWasActive
	releaseEdge := !raw.Active && k.touchWasActive
	k.touchWasActive = raw.Active

	if pressEdge && k.power.State() != PowerAwake && k.power.cfg.WakeConsumesTouch {
		k.swallowTouch = true
	}
	// A held touch is interaction: the idle clock restarts on every iteration
	// the touch stays down, so the display cannot dim under a finger.
	if raw.Active {
		k.power.OnTouchEdge(true)
	}
	if releaseEdge {
		k.power.OnTouchEdge(false)
	}

	state := k.power.Tick(now)
	pct := k.power.BrightnessFor(state)
	k.h.Illumination().SetBrightness(pct)
	k.writeGlow(pct)

	// A touch that woke the display belongs to the wake, not to whatever
	// control happens to sit under the finger. Hide it until release.
	k.touch = raw
	k.touchReleased = releaseEdge
	if k.swallowTouch {
		k.touch = hal.TouchState{}
		k.touchReleased = false
		if releaseEdge {
			k.swallowTouch = false
		}
	}

	var firstErr error

	// Removed tasks with a body still in flight drain one segment per
	// iteration until the body returns.
	if len(k.draining) > 0 {
		kept := k.draining[:0]
		for _, t := range k.draining {
			done, err := t.inflight.step()
			if done {
				t.inflight = nil
			} else {
				kept = append(kept, t)
			}
			firstErr = k.reportTaskErr(firstErr, err)
		}
		k.draining = kept
	}

	snapshot := make([]*Task, len(k.tasks))
	copy(snapshot, k.tasks)
	for _, t := range snapshot {
		if t.removed {
			continue
		}
		if t.inflight != nil {
			done, err := t.inflight.step()
			if done {
				t.inflight = nil
			}
			firstErr = k.reportTaskErr(firstErr, err)
			continue
		}
		if !t.due(now, k.touch.Active, k.touchReleased) {
			continue
		}
		t.markRun(now)
		if t.suspend != nil {
			inv := launch(t.suspend)
			done, err := inv.wait()
			if !done {
				t.inflight = inv
			}
			firstErr = k.reportTaskErr(firstErr, err)
			continue
		}
		firstErr = k.reportTaskErr(firstErr, runSync(t.fn))
	}

	// One flush per iteration. While asleep the dirty region keeps
	// accumulating so the first awake iteration repaints everything missed.
	if k.hasDirty && state != PowerAsleep {
		b := k.h.Display().Bounds()
		full := hal.Region{W: b.W, H: b.H}
		var err error
		if k.dirty.X <= 0 && k.dirty.Y <= 0 && k.dirty.X+k.dirty.W >= full.W && k.dirty.Y+k.dirty.H >= full.H {
			err = k.h.Display().Update()
		} else {
			err = k.h.Display().UpdateRegion(k.dirty)
		}
		if err != nil {
			k.Post(SeverityWarning, fmt.Sprintf("display flush: %v", err))
		}
		k.hasDirty = false
		k.dirty = hal.Region{}
	}

	return firstErr
}

func (k *Kernel) reportTaskErr(firstErr, err error) error {
	if err == nil {
		return firstErr
	}
	k.Post(SeverityFatal, err.Error())
	if firstErr == nil {
		return err
	}
	return firstErr
}

func runSync(fn TaskFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return fn()
}

func (k *Kernel) writeGlow(pct int) {
	r, g, b := k.glowR, k.glowG, k.glowB
	if k.power.cfg.PhaseControlsGlow {
		r = uint8(int(r) * pct / 100)
		g = uint8(int(g) * pct / 100)
		b = uint8(int(b) * pct / 100)
	}
	k.h.Illumination().SetGlow(r, g, b)
}

// Run iterates until Stop is called. A task failure is posted as a fatal
// message; the loop recovers and continues with the next iteration.
func (k *Kernel) Run() {
	k.stopped = false
	for !k.stopped {
		// Step already posted any task failure.
		_ = k.Step()
		k.idleWait()
	}
}

// Stop makes Run return after the current iteration. Callable from a task.
func (k *Kernel) Stop() {
	k.stopped = true
}

// idleWait sleeps until the earliest task deadline, bounded by the touch
// polling cadence. Pending enqueues and in-flight suspending bodies skip the
// wait entirely.
func (k *Kernel) idleWait() {
	if len(k.draining) > 0 {
		return
	}
	now := k.h.Clock().NowMicros()
	wait := int64(maxIdleWaitMicros)
	for _, t := range k.tasks {
		if !t.active {
			continue
		}
		if t.enqueued || t.inflight != nil {
			return
		}
		if t.cfg.TouchForcesExecution && k.touch.Active {
			return
		}
		if t.cfg.Frequency <= 0 {
			continue
		}
		if t.cfg.Frequency >= FrequencyMax {
			return
		}
		remain := t.interval()
		if t.hasRun {
			remain -= hal.TicksDiff(now, t.lastRun)
		} else {
			remain = 0
		}
		if remain <= 0 {
			return
		}
		if remain < wait {
			wait = remain
		}
	}
	k.h.Clock().SleepMicros(uint64(wait))
}
