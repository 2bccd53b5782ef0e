package kernel

import (
	"testing"
	"time"
)

func TestPowerTimeline(t *testing.T) {
	m := NewPowerMonitor(PowerConfig{
		DimTimeout:   5 * time.Second,
		SleepTimeout: 3 * time.Second,
	})

	at := func(sec float64) PowerState {
		return m.Tick(uint64(sec * 1e6))
	}

	if got := at(0); got != PowerAwake {
		t.Fatalf("t=0: %v", got)
	}
	if got := at(4.9); got != PowerAwake {
		t.Fatalf("t=4.9s: %v", got)
	}
	if got := at(5); got != PowerDimmed {
		t.Fatalf("t=5s: %v", got)
	}
	if got := at(7.9); got != PowerDimmed {
		t.Fatalf("t=7.9s: %v", got)
	}
	if got := at(8); got != PowerAsleep {
		t.Fatalf("t=8s: %v", got)
	}

	// A touch at t=6s restarts the idle clock from 6s, whatever the state.
	at(6)
	m.OnTouchEdge(true)
	if got := at(6); got != PowerAwake {
		t.Fatalf("t=6s after touch: %v", got)
	}
	if got := at(10.9); got != PowerAwake {
		t.Fatalf("t=10.9s: %v", got)
	}
	if got := at(11); got != PowerDimmed {
		t.Fatalf("t=11s: %v", got)
	}
}

func TestPowerWrapSafeIdle(t *testing.T) {
	m := NewPowerMonitor(PowerConfig{
		DimTimeout:   time.Second,
		SleepTimeout: time.Second,
	})

	// Start close enough to the counter wrap that the idle window spans it.
	const start = 1<<30 - 500_000
	if got := m.Tick(start); got != PowerAwake {
		t.Fatalf("before wrap: %v", got)
	}
	if got := m.Tick(100_000); got != PowerAwake {
		t.Fatalf("idle 600ms across wrap: %v", got)
	}
	if got := m.Tick(600_000); got != PowerDimmed {
		t.Fatalf("idle 1.1s across wrap: %v", got)
	}
}

func TestBrightnessLookup(t *testing.T) {
	m := NewPowerMonitor(PowerConfig{})

	if got := m.BrightnessFor(PowerAwake); got != 100 {
		t.Fatalf("awake: %d", got)
	}
	if got := m.BrightnessFor(PowerDimmed); got != 30 {
		t.Fatalf("dimmed: %d", got)
	}
	if got := m.BrightnessFor(PowerAsleep); got != 0 {
		t.Fatalf("asleep: %d", got)
	}

	m.SetStateBrightness(PowerDimmed, 55)
	if got := m.BrightnessFor(PowerDimmed); got != 55 {
		t.Fatalf("dimmed override: %d", got)
	}
}

func TestZeroTimeoutDisablesPhase(t *testing.T) {
	never := NewPowerMonitor(PowerConfig{SleepTimeout: time.Second})
	never.Tick(0)
	if got := never.Tick(1 << 28); got != PowerAwake {
		t.Fatalf("dimming disabled, got %v", got)
	}

	noSleep := NewPowerMonitor(PowerConfig{DimTimeout: time.Second})
	noSleep.Tick(0)
	if got := noSleep.Tick(1 << 28); got != PowerDimmed {
		t.Fatalf("sleep disabled, got %v", got)
	}
}
