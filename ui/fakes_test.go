package ui

import "tact/hal"

type fakeClock struct {
	now    uint64
	sleeps int
}

func (c *fakeClock) NowMicros() uint64 { return c.now % hal.TickPeriod }

func (c *fakeClock) SleepMicros(us uint64) {
	c.now += us
	c.sleeps++
}

func (c *fakeClock) advance(us uint64) { c.now += us }

type fakeDisplay struct {
	updates int
}

func (d *fakeDisplay) Bounds() hal.Size                    { return hal.Size{W: 240, H: 240} }
func (d *fakeDisplay) CreatePen(r, g, b uint8) hal.Pen     { return 0 }
func (d *fakeDisplay) SetPen(p hal.Pen)                    {}
func (d *fakeDisplay) Clear()                              {}
func (d *fakeDisplay) Rectangle(r hal.Region)              {}
func (d *fakeDisplay) Line(x0, y0, x1, y1 int)             {}
func (d *fakeDisplay) Text(s string, x, y, scale int)      {}
func (d *fakeDisplay) MeasureText(s string, scale int) int { return 6 * len(s) * scale }
func (d *fakeDisplay) SetClip(r hal.Region)                {}
func (d *fakeDisplay) RemoveClip()                         {}

func (d *fakeDisplay) Update() error {
	d.updates++
	return nil
}

func (d *fakeDisplay) UpdateRegion(r hal.Region) error {
	d.updates++
	return nil
}

type fakeTouch struct {
	next  hal.TouchState
	state hal.TouchState
}

func (t *fakeTouch) Poll()                 { t.state = t.next }
func (t *fakeTouch) State() hal.TouchState { return t.state }

func (t *fakeTouch) press(x, y int) { t.next = hal.TouchState{Active: true, X: x, Y: y} }
func (t *fakeTouch) release()       { t.next = hal.TouchState{} }

type fakeIllumination struct{}

func (fakeIllumination) SetBrightness(pct int) {}
func (fakeIllumination) SetGlow(r, g, b uint8) {}

type fakeNetwork struct{}

func (fakeNetwork) Connect() error  { return nil }
func (fakeNetwork) SyncTime() error { return nil }

type fakeBuzzer struct{}

func (fakeBuzzer) Beep(freqHz, ms int) {}

type fakeLogger struct{}

func (fakeLogger) WriteLineString(s string) {}

type fakeHAL struct {
	disp  *fakeDisplay
	touch *fakeTouch
	clock *fakeClock
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		disp:  &fakeDisplay{},
		touch: &fakeTouch{},
		clock: &fakeClock{},
	}
}

func (h *fakeHAL) Logger() hal.Logger             { return fakeLogger{} }
func (h *fakeHAL) Display() hal.Display           { return h.disp }
func (h *fakeHAL) Touch() hal.Touch               { return h.touch }
func (h *fakeHAL) Illumination() hal.Illumination { return fakeIllumination{} }
func (h *fakeHAL) Clock() hal.Clock               { return h.clock }
func (h *fakeHAL) Network() hal.Network           { return fakeNetwork{} }
func (h *fakeHAL) Buzzer() hal.Buzzer             { return fakeBuzzer{} }
