package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// Size is a width/height pair in pixels.
type Size struct {
	W int
	H int
}

// Region is an axis-aligned rectangle in screen space.
type Region struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the region by dx on the left/right and dy on the top/bottom.
//
// No effort is made to keep the result at positive volume.
func (r Region) Inset(dx, dy int) Region {
	return Region{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Union returns the smallest region covering both r and o.
func (r Region) Union(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := r.X, r.Y
	if o.X < x0 {
		x0 = o.X
	}
	if o.Y < y0 {
		y0 = o.Y
	}
	x1, y1 := r.X+r.W, r.Y+r.H
	if o.X+o.W > x1 {
		x1 = o.X + o.W
	}
	if o.Y+o.H > y1 {
		y1 = o.Y + o.H
	}
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Pen is an opaque drawing color handle (RGB565 by construction).
type Pen uint16

// Display is a pixel surface plus a "present" hook.
//
// Update and UpdateRegion are driven by the run loop, which guarantees at
// most one call per iteration.
type Display interface {
	Bounds() Size
	CreatePen(r, g, b uint8) Pen
	SetPen(p Pen)
	Clear()
	Rectangle(r Region)
	Line(x0, y0, x1, y1 int)
	Text(s string, x, y, scale int)
	MeasureText(s string, scale int) int
	SetClip(r Region)
	RemoveClip()
	Update() error
	UpdateRegion(r Region) error
}

// TouchState is a snapshot of the touch panel.
type TouchState struct {
	Active bool
	X      int
	Y      int
}

// Touch is a polled touch panel. State returns the values captured by the
// most recent Poll.
type Touch interface {
	Poll()
	State() TouchState
}

// Illumination drives the backlight and the glow LED strip.
//
// Brightness is a percentage; glow colors arrive pre-scaled by the current
// power phase brightness.
type Illumination interface {
	SetBrightness(pct int)
	SetGlow(r, g, b uint8)
}

// Clock is a monotonic microsecond counter wrapping at TickPeriod.
//
// SleepMicros is the run loop's idle wait; implementations must yield, not
// spin.
type Clock interface {
	NowMicros() uint64
	SleepMicros(us uint64)
}

// Network provides connectivity setup for boot (best effort per platform).
type Network interface {
	Connect() error
	SyncTime() error
}

// Buzzer is a minimal piezo abstraction.
type Buzzer interface {
	Beep(freqHz, ms int)
}

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// HAL provides the only contact point between the runtime and the hardware.
type HAL interface {
	Logger() Logger
	Display() Display
	Touch() Touch
	Illumination() Illumination
	Clock() Clock
	Network() Network
	Buzzer() Buzzer
}
