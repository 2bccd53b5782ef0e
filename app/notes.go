package app

import (
	"fmt"

	"tact/apps"
	"tact/hal"
	"tact/ui"
)

// notesApp is a small scratch counter, mostly here to exercise on-screen
// controls and the buzzer.
type notesApp struct {
	page *notesPage
}

func newNotesApp(buzzer hal.Buzzer) *notesApp {
	return &notesApp{page: &notesPage{
		PageBase: ui.NewStaticBase("Notes"),
		buzzer:   buzzer,
	}}
}

func (a *notesApp) Name() string { return "Notes" }

func (a *notesApp) Pages() []ui.Page { return []ui.Page{a.page} }

func (a *notesApp) Tasks() []apps.TaskSpec { return nil }

type notesPage struct {
	ui.PageBase
	buzzer hal.Buzzer
	count  int
	region hal.Region
}

func (p *notesPage) Setup(r hal.Region, wm *ui.WindowManager) {
	p.ClearControls()
	p.region = r

	th := wm.Theme()
	pad := th.Padding
	bw := (r.W - 3*pad) / 2
	by := r.Y + r.H - th.ControlHeight - pad

	minus := ui.NewMomentaryButton(hal.Region{X: r.X + pad, Y: by, W: bw, H: th.ControlHeight}, "-")
	minus.TitleScale = 2
	minus.OnUp = func() {
		p.count--
		p.buzzer.Beep(440, 20)
		p.RequestUpdate()
	}
	p.AddControl(minus)

	plus := ui.NewMomentaryButton(hal.Region{X: r.X + 2*pad + bw, Y: by, W: bw, H: th.ControlHeight}, "+")
	plus.TitleScale = 2
	plus.OnUp = func() {
		p.count++
		p.buzzer.Beep(880, 20)
		p.RequestUpdate()
	}
	p.AddControl(plus)
}

func (p *notesPage) Draw(d hal.Display, r hal.Region, th *ui.Theme) {
	th.ClearRegion(d, r)
	upper := hal.Region{X: r.X, Y: r.Y, W: r.W, H: r.H / 2}
	th.CenteredText(d, upper, fmt.Sprintf("%d", p.count), 4)
}
