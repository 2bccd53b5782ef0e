package app

import (
	"time"

	"tact/apps"
	"tact/hal"
	"tact/kernel"
	"tact/ui"
)

// clockApp shows the wall clock and breathes the glow LEDs while it is the
// active app.
type clockApp struct {
	k    *kernel.Kernel
	page *clockPage
}

func newClockApp(k *kernel.Kernel) *clockApp {
	return &clockApp{
		k:    k,
		page: &clockPage{PageBase: ui.NewPageBase("Clock", 1)},
	}
}

func (a *clockApp) Name() string { return "Clock" }

func (a *clockApp) Pages() []ui.Page { return []ui.Page{a.page} }

func (a *clockApp) Tasks() []apps.TaskSpec {
	return []apps.TaskSpec{{
		Suspend: a.pulseGlow,
		Config:  kernel.TaskConfig{Frequency: 2},
	}}
}

// pulseGlow runs one breath of the glow LEDs per invocation, yielding
// between steps so each change lands on its own loop iteration.
func (a *clockApp) pulseGlow(yield func()) error {
	for v := 0; v <= 60; v += 4 {
		a.k.SetGlow(0, uint8(v), uint8(v))
		yield()
	}
	for v := 60; v >= 0; v -= 4 {
		a.k.SetGlow(0, uint8(v), uint8(v))
		yield()
	}
	return nil
}

type clockPage struct {
	ui.PageBase
}

func (p *clockPage) Draw(d hal.Display, r hal.Region, th *ui.Theme) {
	th.ClearRegion(d, r)

	now := time.Now()
	upper := hal.Region{X: r.X, Y: r.Y, W: r.W, H: r.H / 2}
	lower := hal.Region{X: r.X, Y: r.Y + r.H/2, W: r.W, H: r.H / 2}
	th.CenteredText(d, upper, now.Format("15:04:05"), 3)
	th.CenteredText(d, lower, now.Format("Mon 2 Jan 2006"), 1)
}
