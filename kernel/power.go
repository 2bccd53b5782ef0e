package kernel

import (
	"time"

	"tact/hal"
)

// PowerState is the display/LED brightness tier driven by idle time.
type PowerState int

const (
	PowerAwake PowerState = iota
	PowerDimmed
	PowerAsleep
)

func (s PowerState) String() string {
	switch s {
	case PowerAwake:
		return "awake"
	case PowerDimmed:
		return "dimmed"
	case PowerAsleep:
		return "asleep"
	default:
		return "unknown"
	}
}

// Default idle timeouts.
const (
	DefaultDimTimeout   = 30 * time.Second
	DefaultSleepTimeout = 10 * time.Minute
)

// PowerConfig configures the power monitor.
//
// DimTimeout is the idle time before the display dims; SleepTimeout is the
// additional idle time after dimming before the display sleeps. A zero
// timeout disables that phase. WakeConsumesTouch makes the touch that wakes
// a dimmed or sleeping display invisible to tasks until it is released.
// PhaseControlsGlow scales the glow LEDs by the current brightness.
type PowerConfig struct {
	DimTimeout        time.Duration
	SleepTimeout      time.Duration
	WakeConsumesTouch bool
	PhaseControlsGlow bool
}

// PowerMonitor tracks idle time against the configured timeouts and maps the
// resulting state to a backlight brightness.
type PowerMonitor struct {
	cfg   PowerConfig
	state PowerState

	idleSince  uint64
	hasIdle    bool
	resetIdle  bool
	brightness [3]int
}

func NewPowerMonitor(cfg PowerConfig) *PowerMonitor {
	return &PowerMonitor{
		cfg:        cfg,
		state:      PowerAwake,
		brightness: [3]int{100, 30, 0},
	}
}

// State returns the state computed by the last Tick.
func (m *PowerMonitor) State() PowerState { return m.state }

// OnTouchEdge records a touch transition. A press forces the state to awake
// and resets the idle clock on the next Tick, from any prior state.
func (m *PowerMonitor) OnTouchEdge(active bool) {
	if active {
		m.state = PowerAwake
		m.resetIdle = true
	}
}

// Tick advances the state machine to time now and returns the new state.
func (m *PowerMonitor) Tick(now uint64) PowerState {
	if !m.hasIdle || m.resetIdle {
		m.idleSince = now
		m.hasIdle = true
		m.resetIdle = false
		m.state = PowerAwake
		return m.state
	}

	idle := hal.TicksDiff(now, m.idleSince)
	dim := m.cfg.DimTimeout.Microseconds()
	sleep := m.cfg.SleepTimeout.Microseconds()

	state := PowerAwake
	if dim > 0 && idle >= dim {
		state = PowerDimmed
		if sleep > 0 && idle >= dim+sleep {
			state = PowerAsleep
		}
	}
	m.state = state
	return state
}

// BrightnessFor is a pure lookup from state to backlight percentage. It is
// safe to call every iteration whether or not Tick advanced.
func (m *PowerMonitor) BrightnessFor(state PowerState) int {
	if state < PowerAwake || state > PowerAsleep {
		return m.brightness[PowerAwake]
	}
	return m.brightness[state]
}

// SetStateBrightness overrides the brightness used for one state.
func (m *PowerMonitor) SetStateBrightness(state PowerState, pct int) {
	if state < PowerAwake || state > PowerAsleep {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	m.brightness[state] = pct
}
