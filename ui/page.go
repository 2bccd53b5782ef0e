package ui

import "tact/hal"

// Page is a single screen managed by the WindowManager. Implementations
// embed PageBase and draw their content in Draw; touch handling, control
// drawing and the display flush are driven by the manager's default tick.
type Page interface {
	Base() *PageBase
	Draw(d hal.Display, r hal.Region, th *Theme)
}

// PageSetup is implemented by pages that need to build controls or other
// region-dependent state. Called when the page's content region changes,
// including before it is first shown.
type PageSetup interface {
	Setup(r hal.Region, wm *WindowManager)
}

// PageUpdater runs after touches are processed and before the page is drawn.
// An opportunity to update button titles, LEDs and the like.
type PageUpdater interface {
	Update(wm *WindowManager)
}

// PageTicker replaces the default tick entirely. The implementation is
// responsible for its own touch handling, drawing and flush request.
type PageTicker interface {
	Tick(r hal.Region, wm *WindowManager)
}

// PageWillShow is called before the page transitions to visible.
type PageWillShow interface {
	WillShow()
}

// PageWillHide is called when the page stops being visible.
type PageWillHide interface {
	WillHide()
}

// PageTeardown is called before the page is removed from its manager.
type PageTeardown interface {
	Teardown()
}

// PageBase carries the state the WindowManager needs from every page.
type PageBase struct {
	// Title identifies the page in system UI like the systray selector.
	Title string

	// Frequency is the preferred tick rate. kernel.FrequencyMax ticks every
	// iteration; 0 ticks only on touches or an update request.
	Frequency int

	needsUpdate bool
	notify      func()
	controls    []Control
}

// NewPageBase returns a base for a page ticking at the given frequency.
func NewPageBase(title string, frequency int) PageBase {
	return PageBase{Title: title, Frequency: frequency}
}

// NewStaticBase returns a base for a page that only updates on touch
// interaction or an explicit RequestUpdate.
func NewStaticBase(title string) PageBase {
	return PageBase{Title: title}
}

// Base implements Page for embedders.
func (b *PageBase) Base() *PageBase { return b }

// RequestUpdate forces a tick on the next run loop iteration regardless of
// the page's frequency.
func (b *PageBase) RequestUpdate() {
	b.needsUpdate = true
	if b.notify != nil {
		b.notify()
	}
}

// AddControl appends a control processed and drawn by the default tick.
func (b *PageBase) AddControl(c Control) {
	b.controls = append(b.controls, c)
}

// ClearControls drops all registered controls. Typical at the top of Setup,
// which may run more than once.
func (b *PageBase) ClearControls() {
	b.controls = nil
}

// Controls returns the registered controls in draw order.
func (b *PageBase) Controls() []Control {
	return b.controls
}
