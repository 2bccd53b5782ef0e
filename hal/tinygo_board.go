//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ft6336"
	"tinygo.org/x/drivers/st7789"
	"tinygo.org/x/drivers/ws2812"
)

const glowLEDCount = 7

type boardHAL struct {
	logger *uartLogger
	fb     *memFramebuffer
	disp   *memDisplay
	touch  *boardTouch
	illum  *boardIllumination
	clock  *boardClock
	net    stubNetwork
	buzzer *pwmBuzzer
}

// New returns the board HAL: an ST7789 panel over SPI0, an FT6336 capacitive
// touch controller on I2C0, a WS2812 glow strip, and a PWM backlight.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Frequency: 62_500_000,
	})
	panel := st7789.New(machine.SPI0,
		machine.GP20, // reset
		machine.GP16, // dc
		machine.GP17, // cs
		machine.GP21, // backlight enable
	)
	panel.Configure(st7789.Config{
		Width:  240,
		Height: 240,
	})

	machine.I2C0.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	tp := ft6336.New(machine.I2C0, machine.GP3)
	tp.Configure(ft6336.Config{})

	fb := newMemFramebuffer(240, 240)
	out := &panelPresenter{panel: &panel, line: make([]uint8, 240*2)}

	return &boardHAL{
		logger: &uartLogger{uart: uart},
		fb:     fb,
		disp:   newMemDisplay(fb, out),
		touch:  &boardTouch{dev: &tp},
		illum:  newBoardIllumination(machine.GP22, machine.GP33),
		clock:  &boardClock{},
		net:    stubNetwork{},
		buzzer: newPWMBuzzer(machine.GP2),
	}
}

func (h *boardHAL) Logger() Logger             { return h.logger }
func (h *boardHAL) Display() Display           { return h.disp }
func (h *boardHAL) Touch() Touch               { return h.touch }
func (h *boardHAL) Illumination() Illumination { return h.illum }
func (h *boardHAL) Clock() Clock               { return h.clock }
func (h *boardHAL) Network() Network           { return h.net }
func (h *boardHAL) Buzzer() Buzzer             { return h.buzzer }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.Write([]byte("\r\n"))
}

// panelPresenter pushes framebuffer rows to the ST7789 as RGB565 scanlines.
type panelPresenter struct {
	panel *st7789.Device
	line  []uint8
}

func (p *panelPresenter) present(f *memFramebuffer, r Region) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for y := r.Y; y < r.Y+r.H; y++ {
		if y < 0 || y >= f.height {
			continue
		}
		row := f.buf[y*f.stride : y*f.stride+f.width*2]
		src := row[r.X*2 : (r.X+r.W)*2]
		// The framebuffer stores RGB565 little-endian. The panel wants
		// big-endian.
		for i := 0; i < len(src); i += 2 {
			p.line[i] = src[i+1]
			p.line[i+1] = src[i]
		}
		if err := p.panel.DrawRGBBitmap8(int16(r.X), int16(y), p.line[:r.W*2], int16(r.W), 1); err != nil {
			return err
		}
	}
	return nil
}

type boardTouch struct {
	dev   *ft6336.Device
	state TouchState
}

func (t *boardTouch) Poll() {
	p := t.dev.ReadTouchPoint()
	if p.Z == 0 {
		t.state = TouchState{}
		return
	}
	t.state = TouchState{Active: true, X: int(p.X), Y: int(p.Y)}
}

func (t *boardTouch) State() TouchState {
	return t.state
}

type boardIllumination struct {
	backlight machine.Pin
	glow      ws2812.Device
	colors    [glowLEDCount]color.RGBA
	pct       int
}

func newBoardIllumination(backlightPin, glowPin machine.Pin) *boardIllumination {
	backlightPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	glowPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &boardIllumination{
		backlight: backlightPin,
		glow:      ws2812.New(glowPin),
		pct:       100,
	}
}

func (i *boardIllumination) SetBrightness(pct int) {
	i.pct = pct
	// The panel backlight has no analog control line on this board; treat
	// anything below the sleep threshold as off.
	if pct > 0 {
		i.backlight.High()
	} else {
		i.backlight.Low()
	}
}

func (i *boardIllumination) SetGlow(r, g, b uint8) {
	c := color.RGBA{R: r, G: g, B: b, A: 0xFF}
	for n := range i.colors {
		i.colors[n] = c
	}
	i.glow.WriteColors(i.colors[:])
}

type boardClock struct{}

func (boardClock) NowMicros() uint64 {
	return uint64(time.Now().UnixMicro()) & tickMask
}

func (boardClock) SleepMicros(us uint64) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

type stubNetwork struct{}

func (stubNetwork) Connect() error  { return ErrNotImplemented }
func (stubNetwork) SyncTime() error { return ErrNotImplemented }

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

type pwmBuzzer struct {
	pin machine.Pin
	pwm pwmDevice
}

func newPWMBuzzer(pin machine.Pin) *pwmBuzzer {
	return &pwmBuzzer{pin: pin, pwm: pwmForPin(pin)}
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (b *pwmBuzzer) Beep(freqHz, ms int) {
	if b.pwm == nil || freqHz <= 0 || ms <= 0 {
		return
	}
	if err := b.pwm.Configure(machine.PWMConfig{Period: uint64(1e9 / freqHz)}); err != nil {
		return
	}
	ch, err := b.pwm.Channel(b.pin)
	if err != nil {
		return
	}
	b.pwm.Set(ch, b.pwm.Top()/2)
	b.pwm.Enable(true)
	time.Sleep(time.Duration(ms) * time.Millisecond)
	b.pwm.Enable(false)
}
