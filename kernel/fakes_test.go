package kernel

import "tact/hal"

type fakeClock struct {
	now uint64
}

func (c *fakeClock) NowMicros() uint64 {
	return c.now % hal.TickPeriod
}

func (c *fakeClock) SleepMicros(us uint64) {
	c.now += us
}

func (c *fakeClock) advance(us uint64) {
	c.now += us
}

type fakeDisplay struct {
	bounds      hal.Size
	updates     int
	lastPartial hal.Region
	partials    int
}

func (d *fakeDisplay) Bounds() hal.Size {
	if d.bounds.W == 0 {
		return hal.Size{W: 240, H: 240}
	}
	return d.bounds
}

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
	d.partials++
	d.lastPartial = r
	return nil
}

type fakeTouch struct {
	next  hal.TouchState
	state hal.TouchState
}

func (t *fakeTouch) Poll()                 { t.state = t.next }
func (t *fakeTouch) State() hal.TouchState { return t.state }

func (t *fakeTouch) press(x, y int) {
	t.next = hal.TouchState{Active: true, X: x, Y: y}
}

func (t *fakeTouch) release() {
	t.next = hal.TouchState{}
}

type fakeIllumination struct {
	brightness int
	glowR      uint8
	glowG      uint8
	glowB      uint8
}

func (i *fakeIllumination) SetBrightness(pct int) { i.brightness = pct }
func (i *fakeIllumination) SetGlow(r, g, b uint8) { i.glowR, i.glowG, i.glowB = r, g, b }

type fakeNetwork struct {
	connectErr error
	syncErr    error
	connects   int
	syncs      int
}

func (n *fakeNetwork) Connect() error {
	n.connects++
	return n.connectErr
}

func (n *fakeNetwork) SyncTime() error {
	n.syncs++
	return n.syncErr
}

type fakeBuzzer struct {
	beeps int
}

func (b *fakeBuzzer) Beep(freqHz, ms int) { b.beeps++ }

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }

type fakeHAL struct {
	logger *fakeLogger
	disp   *fakeDisplay
	touch  *fakeTouch
	illum  *fakeIllumination
	clock  *fakeClock
	net    *fakeNetwork
	buzzer *fakeBuzzer
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		logger: &fakeLogger{},
		disp:   &fakeDisplay{},
		touch:  &fakeTouch{},
		illum:  &fakeIllumination{brightness: 100},
		clock:  &fakeClock{},
		net:    &fakeNetwork{},
		buzzer: &fakeBuzzer{},
	}
}

func (h *fakeHAL) Logger() hal.Logger             { return h.logger }
func (h *fakeHAL) Display() hal.Display           { return h.disp }
func (h *fakeHAL) Touch() hal.Touch               { return h.touch }
func (h *fakeHAL) Illumination() hal.Illumination { return h.illum }
func (h *fakeHAL) Clock() hal.Clock               { return h.clock }
func (h *fakeHAL) Network() hal.Network           { return h.net }
func (h *fakeHAL) Buzzer() hal.Buzzer             { return h.buzzer }
