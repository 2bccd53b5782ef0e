//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type hostHAL struct {
	logger *hostLogger
	fb     *memFramebuffer
	disp   *memDisplay
	touch  *hostTouch
	illum  *hostIllumination
	clock  *hostClock
	net    hostNetwork
	buzzer *hostBuzzer
}

// New returns a host HAL implementation backed by an in-memory framebuffer.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	fb := newMemFramebuffer(320, 320)
	return &hostHAL{
		logger: logger,
		fb:     fb,
		disp:   newMemDisplay(fb, nil),
		touch:  &hostTouch{},
		illum:  &hostIllumination{brightness: 100},
		clock:  newHostClock(),
		net:    hostNetwork{},
		buzzer: &hostBuzzer{logger: logger},
	}
}

func (h *hostHAL) Logger() Logger             { return h.logger }
func (h *hostHAL) Display() Display           { return h.disp }
func (h *hostHAL) Touch() Touch               { return h.touch }
func (h *hostHAL) Illumination() Illumination { return h.illum }
func (h *hostHAL) Clock() Clock               { return h.clock }
func (h *hostHAL) Network() Network           { return h.net }
func (h *hostHAL) Buzzer() Buzzer             { return h.buzzer }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) NowMicros() uint64 {
	return uint64(time.Since(c.start).Microseconds()) & tickMask
}

func (c *hostClock) SleepMicros(us uint64) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// hostIllumination records brightness and glow so the window blit can apply
// them at present time.
type hostIllumination struct {
	mu         sync.Mutex
	brightness int
	glowR      uint8
	glowG      uint8
	glowB      uint8
}

func (i *hostIllumination) SetBrightness(pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	i.mu.Lock()
	i.brightness = pct
	i.mu.Unlock()
}

func (i *hostIllumination) SetGlow(r, g, b uint8) {
	i.mu.Lock()
	i.glowR, i.glowG, i.glowB = r, g, b
	i.mu.Unlock()
}

func (i *hostIllumination) snapshot() (pct int, r, g, b uint8) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.brightness, i.glowR, i.glowG, i.glowB
}

type hostNetwork struct{}

func (hostNetwork) Connect() error  { return nil }
func (hostNetwork) SyncTime() error { return nil }

type hostBuzzer struct {
	logger *hostLogger
}

func (b *hostBuzzer) Beep(freqHz, ms int) {
	b.logger.WriteLineString(fmt.Sprintf("buzzer: %dHz for %dms", freqHz, ms))
}
