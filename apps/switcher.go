package apps

import (
	"fmt"

	"tact/hal"
	"tact/kernel"
	"tact/ui"
)

// AppSwitcher is a modal page listing the registered apps. Selecting one
// closes the modal and switches to it.
type AppSwitcher struct {
	ui.PageBase
	mgr *AppManager
}

func newAppSwitcher(mgr *AppManager) *AppSwitcher {
	return &AppSwitcher{PageBase: ui.NewStaticBase("App Switcher"), mgr: mgr}
}

func (p *AppSwitcher) Setup(r hal.Region, wm *ui.WindowManager) {
	p.ClearControls()

	th := wm.Theme()
	pad := th.Padding
	bh := th.ControlHeight
	maxY := r.H - bh - 2*pad

	y := pad
	for _, app := range p.mgr.Apps() {
		app := app
		b := ui.NewMomentaryButton(hal.Region{
			X: r.X + pad,
			Y: r.Y + y,
			W: r.W - 2*pad,
			H: bh,
		}, app.Name())
		b.TitleScale = 2
		b.OnUp = func() {
			wm.ClearModalPage()
			if err := p.mgr.SwitchTo(app); err != nil {
				wm.Kernel().Post(kernel.SeverityWarning, fmt.Sprintf("app switch: %v", err))
			}
		}
		p.AddControl(b)

		y += bh + pad
		if y > maxY {
			break
		}
	}
}

func (p *AppSwitcher) Draw(d hal.Display, r hal.Region, th *ui.Theme) {
	th.ClearRegion(d, r)
}

// OpenSwitcher shows the modal app switcher. It closes itself when an app
// is selected.
func (m *AppManager) OpenSwitcher() {
	if err := m.wm.ShowModalPage(newAppSwitcher(m)); err != nil {
		m.wm.Kernel().Post(kernel.SeverityWarning, fmt.Sprintf("app switcher: %v", err))
	}
}

// SwitcherAccessory returns a square systray button that opens the app
// switcher.
func (m *AppManager) SwitcherAccessory() ui.Accessory {
	return &switcherAccessory{mgr: m}
}

type switcherAccessory struct {
	mgr    *AppManager
	button *ui.MomentaryButton
}

func (a *switcherAccessory) Size(max hal.Size) hal.Size {
	return hal.Size{W: max.H, H: max.H}
}

func (a *switcherAccessory) Setup(r hal.Region, wm *ui.WindowManager) {
	b := ui.NewMomentaryButton(r.Inset(2, 2), "")
	b.OnUp = a.mgr.OpenSwitcher
	a.button = b
}

func (a *switcherAccessory) ProcessTouch(t hal.TouchState) {
	if a.button != nil {
		a.button.ProcessTouch(t)
	}
}

func (a *switcherAccessory) Draw(d hal.Display, r hal.Region, th *ui.Theme) {
	th.DrawAppSwitcherButton(d, r, a.button != nil && a.button.IsDown())
}
