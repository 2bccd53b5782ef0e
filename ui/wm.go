package ui

import (
	"errors"
	"fmt"

	"tact/hal"
	"tact/kernel"
)

var ErrPageNotFound = errors.New("page not found")

// SystrayPosition places the systray band at an edge of the display.
type SystrayPosition int

const (
	SystrayBottom SystrayPosition = iota
	SystrayTop
)

// Config configures a WindowManager. The zero value uses the default theme,
// shows system messages, and hides the systray.
type Config struct {
	Theme                 *Theme
	SystrayVisible        bool
	SystrayPosition       SystrayPosition
	DisableSystemMessages bool
}

// WindowManager tracks a set of pages and presents one at a time, plus an
// optional modal overlay and systray. Pages run as kernel tasks at their own
// frequencies; the manager's job each iteration is deciding which of those
// tasks are active and relaying update requests into enqueues.
type WindowManager struct {
	k     *kernel.Kernel
	theme *Theme

	pages     []Page
	tasks     map[Page]*kernel.Task
	current   int
	last      Page
	needSetup bool

	modal     Page
	modalTask *kernel.Task

	tray           *systray
	trayTask       *kernel.Task
	trayVisible    bool
	trayPosition   SystrayPosition
	trayNeedsSetup bool
	leading        []Accessory
	trailing       []Accessory

	content    hal.Region
	trayRegion hal.Region

	messages []string

	tickTask *kernel.Task
}

// NewWindowManager builds a manager over the kernel and installs its tick
// task at the head of the dispatch order, so page task states settle before
// the page tasks themselves are considered. The tick is event driven: it
// runs while a touch is active and whenever a manager mutation or update
// request enqueues it, leaving the loop free to idle-wait in between.
func NewWindowManager(k *kernel.Kernel, cfg Config) (*WindowManager, error) {
	th := cfg.Theme
	if th == nil {
		th = NewDefaultTheme(k.Display())
	}

	wm := &WindowManager{
		k:            k,
		theme:        th,
		tasks:        make(map[Page]*kernel.Task),
		current:      -1,
		trayPosition: cfg.SystrayPosition,
	}

	t, err := k.AddTaskAt(0, wm.tick, kernel.TaskConfig{TouchForcesExecution: true})
	if err != nil {
		return nil, err
	}
	wm.tickTask = t

	wm.updateRegions()
	if cfg.SystrayVisible {
		wm.SetSystrayVisible(true)
	}

	if !cfg.DisableSystemMessages {
		k.RegisterHandler(kernel.SeverityWarning.String(), wm.onSystemMessage)
		k.RegisterHandler(kernel.SeverityFatal.String(), wm.onSystemMessage)
	}
	return wm, nil
}

// Kernel returns the kernel the manager runs on.
func (wm *WindowManager) Kernel() *kernel.Kernel { return wm.k }

// Theme returns the active theme.
func (wm *WindowManager) Theme() *Theme { return wm.theme }

// Display returns the display pages draw on.
func (wm *WindowManager) Display() hal.Display { return wm.k.Display() }

// ContentRegion is the display area available to pages.
func (wm *WindowManager) ContentRegion() hal.Region { return wm.content }

// SystrayRegion is the display area occupied by the systray band, empty
// when hidden.
func (wm *WindowManager) SystrayRegion() hal.Region { return wm.trayRegion }

// RequestFlush forwards a dirty region to the kernel's single per-iteration
// flush.
func (wm *WindowManager) RequestFlush(r hal.Region) {
	wm.k.RequestFlush(r)
}

// wake schedules the tick task for the next iteration.
func (wm *WindowManager) wake() {
	if wm.tickTask != nil {
		wm.tickTask.Enqueue()
	}
}

// AddPage registers a page and its kernel task. The task starts inactive;
// it activates when the page becomes current.
func (wm *WindowManager) AddPage(p Page, makeCurrent bool) error {
	b := p.Base()
	t, err := wm.k.AddTask(func() error {
		wm.tickTarget(p)
		return nil
	}, kernel.TaskConfig{
		Frequency:            b.Frequency,
		TouchForcesExecution: true,
		Inactive:             true,
	})
	if err != nil {
		return err
	}

	wm.pages = append(wm.pages, p)
	wm.tasks[p] = t
	b.notify = wm.wake
	if makeCurrent {
		wm.current = len(wm.pages) - 1
	}
	wm.needSetup = true
	wm.trayNeedsSetup = true
	wm.wake()

	wm.k.Post(kernel.SeverityDebug, fmt.Sprintf("added page %q (current: %t)", b.Title, makeCurrent))
	return nil
}

// RemovePage unregisters a page.
func (wm *WindowManager) RemovePage(p Page) error {
	for i, cur := range wm.pages {
		if cur == p {
			return wm.RemovePageAt(i)
		}
	}
	return ErrPageNotFound
}

// RemovePageAt unregisters the page at the given index. Removing the current
// page makes its predecessor current, or clears the current page if the list
// is now empty.
func (wm *WindowManager) RemovePageAt(i int) error {
	if i < 0 || i >= len(wm.pages) {
		return ErrPageNotFound
	}
	p := wm.pages[i]

	_ = wm.k.RemoveTask(wm.tasks[p])
	delete(wm.tasks, p)
	wm.pages = append(wm.pages[:i], wm.pages[i+1:]...)

	if td, ok := p.(PageTeardown); ok {
		td.Teardown()
	}
	p.Base().ClearControls()
	p.Base().notify = nil

	switch {
	case wm.current == i:
		if len(wm.pages) == 0 {
			wm.current = -1
		} else if i > 0 {
			wm.current = i - 1
		} else {
			wm.current = 0
		}
	case wm.current > i:
		wm.current--
	}
	if wm.last == p {
		wm.last = nil
	}
	wm.trayNeedsSetup = true
	wm.wake()

	wm.k.Post(kernel.SeverityDebug, fmt.Sprintf("removed page %q", p.Base().Title))
	return nil
}

// RemoveAllPages unregisters every page, last first.
func (wm *WindowManager) RemoveAllPages() {
	for len(wm.pages) > 0 {
		_ = wm.RemovePageAt(len(wm.pages) - 1)
	}
}

// Pages returns the registered pages in navigation order.
func (wm *WindowManager) Pages() []Page {
	out := make([]Page, len(wm.pages))
	copy(out, wm.pages)
	return out
}

// CurrentPage returns the page being ticked, or nil.
func (wm *WindowManager) CurrentPage() Page {
	if wm.current < 0 {
		return nil
	}
	return wm.pages[wm.current]
}

// NavigateTo makes the given page current.
func (wm *WindowManager) NavigateTo(p Page) error {
	for i, cur := range wm.pages {
		if cur == p {
			return wm.NavigateToIndex(i)
		}
	}
	return ErrPageNotFound
}

// NavigateToIndex makes the page at the given index current.
func (wm *WindowManager) NavigateToIndex(i int) error {
	if i < 0 || i >= len(wm.pages) {
		return ErrPageNotFound
	}
	wm.current = i
	wm.wake()
	return nil
}

// NextPage advances to the next page, wrapping to the first.
func (wm *WindowManager) NextPage() { wm.changePage(1, 0) }

// PrevPage goes back to the previous page, wrapping to the last.
func (wm *WindowManager) PrevPage() { wm.changePage(-1, len(wm.pages)-1) }

func (wm *WindowManager) changePage(offset, fallback int) {
	if len(wm.pages) == 0 {
		return
	}
	i := fallback
	if wm.current >= 0 {
		i = (wm.current + offset + len(wm.pages)) % len(wm.pages)
	}
	wm.current = i
	wm.wake()
}

// ModalPage returns the page shown as a modal overlay, or nil.
func (wm *WindowManager) ModalPage() Page { return wm.modal }

// ShowModalPage overlays a page on top of the current one. The modal's task
// replaces the current page's task until cleared; the systray stays visible
// and interactive.
func (wm *WindowManager) ShowModalPage(p Page) error {
	if wm.modal != nil {
		wm.ClearModalPage()
	}
	b := p.Base()
	t, err := wm.k.AddTask(func() error {
		wm.tickTarget(p)
		return nil
	}, kernel.TaskConfig{
		Frequency:            b.Frequency,
		TouchForcesExecution: true,
	})
	if err != nil {
		return err
	}
	wm.modal = p
	wm.modalTask = t
	b.notify = wm.wake

	if cur := wm.CurrentPage(); cur != nil {
		wm.tasks[cur].SetActive(false)
	}
	if s, ok := p.(PageSetup); ok {
		s.Setup(wm.content, wm)
	}
	if s, ok := p.(PageWillShow); ok {
		s.WillShow()
	}
	b.RequestUpdate()
	return nil
}

// ClearModalPage removes the modal overlay and reinstates the current page's
// task, due on the next iteration so the page repaints.
func (wm *WindowManager) ClearModalPage() {
	if wm.modal == nil {
		return
	}
	if h, ok := wm.modal.(PageWillHide); ok {
		h.WillHide()
	}
	_ = wm.k.RemoveTask(wm.modalTask)
	if td, ok := wm.modal.(PageTeardown); ok {
		td.Teardown()
	}
	wm.modal.Base().ClearControls()
	wm.modal.Base().notify = nil
	wm.modal = nil
	wm.modalTask = nil

	if cur := wm.CurrentPage(); cur != nil {
		wm.tasks[cur].SetActive(true)
	}
	wm.wake()
}

// SystrayVisible reports whether the systray band is shown.
func (wm *WindowManager) SystrayVisible() bool { return wm.trayVisible }

// SetSystrayVisible shows or hides the systray, shrinking or restoring the
// page content region.
func (wm *WindowManager) SetSystrayVisible(visible bool) {
	if visible == wm.trayVisible {
		return
	}
	wm.trayVisible = visible
	wm.updateRegions()
}

// SetSystrayPosition moves the systray band to the top or bottom edge.
func (wm *WindowManager) SetSystrayPosition(pos SystrayPosition) {
	if pos == wm.trayPosition {
		return
	}
	wm.trayPosition = pos
	wm.updateRegions()
}

// AddSystrayAccessory adds an accessory to the systray band. Leading
// accessories pack from the left edge, trailing from the right; the page
// selector takes the space between.
func (wm *WindowManager) AddSystrayAccessory(a Accessory, pos AccessoryPosition) {
	if pos == AccessoryTrailing {
		wm.trailing = append(wm.trailing, a)
	} else {
		wm.leading = append(wm.leading, a)
	}
	wm.trayNeedsSetup = true
	wm.wake()
}

// MarkSystrayDirty forces the systray to tick on every iteration until the
// redraw happens, bypassing its refresh throttle.
func (wm *WindowManager) MarkSystrayDirty() {
	if wm.tray != nil {
		wm.tray.dirty = true
	}
	wm.wake()
}

func (wm *WindowManager) updateRegions() {
	b := wm.k.Display().Bounds()
	if !wm.trayVisible {
		wm.content = hal.Region{W: b.W, H: b.H}
		wm.trayRegion = hal.Region{}
	} else {
		h := wm.theme.SystrayHeight
		if wm.trayPosition == SystrayTop {
			wm.trayRegion = hal.Region{W: b.W, H: h}
			wm.content = hal.Region{Y: h, W: b.W, H: b.H - h}
		} else {
			wm.trayRegion = hal.Region{Y: b.H - h, W: b.W, H: h}
			wm.content = hal.Region{W: b.W, H: b.H - h}
		}
	}
	wm.needSetup = true
	wm.trayNeedsSetup = true
	wm.wake()
}

// tick runs ahead of any page task, whenever a touch is active or a manager
// mutation enqueued it.
func (wm *WindowManager) tick() error {
	wm.updatePages()
	wm.updateSystray()
	return nil
}

func (wm *WindowManager) updatePages() {
	if wm.needSetup {
		for _, p := range wm.pages {
			if s, ok := p.(PageSetup); ok {
				s.Setup(wm.content, wm)
			}
			p.Base().needsUpdate = true
		}
		if wm.modal != nil {
			if s, ok := wm.modal.(PageSetup); ok {
				s.Setup(wm.content, wm)
			}
			wm.modal.Base().needsUpdate = true
		}
		wm.needSetup = false
	}

	for _, p := range wm.pages {
		b := p.Base()
		if b.needsUpdate {
			b.needsUpdate = false
			wm.tasks[p].Enqueue()
		}
	}
	if wm.modal != nil && wm.modal.Base().needsUpdate {
		wm.modal.Base().needsUpdate = false
		wm.modalTask.Enqueue()
	}

	cur := wm.CurrentPage()
	if cur == wm.last {
		return
	}
	if wm.last != nil {
		if h, ok := wm.last.(PageWillHide); ok {
			h.WillHide()
		}
	}
	if cur != nil {
		if s, ok := cur.(PageWillShow); ok {
			s.WillShow()
		}
	}
	for p, t := range wm.tasks {
		t.SetActive(p == cur && wm.modal == nil)
	}
	wm.last = cur
}

func (wm *WindowManager) updateSystray() {
	if wm.trayNeedsSetup {
		if wm.trayVisible {
			if wm.tray == nil {
				wm.tray = newSystray(wm)
				t, err := wm.k.AddTask(wm.tray.tick, kernel.TaskConfig{
					Frequency:            1,
					TouchForcesExecution: true,
				})
				if err != nil {
					wm.tray = nil
					return
				}
				wm.trayTask = t
			}
			wm.tray.setup(wm.trayRegion)
			wm.tray.dirty = true
		} else if wm.tray != nil {
			_ = wm.k.RemoveTask(wm.trayTask)
			wm.tray = nil
			wm.trayTask = nil
		}
		wm.trayNeedsSetup = false
	}

	if wm.tray == nil {
		return
	}
	wm.tray.syncCurrent(wm.current)
	if wm.tray.dirty {
		wm.tray.dirty = false
		wm.trayTask.Enqueue()
	}
}

// tickTarget runs the default page tick: process controls, update, draw,
// draw controls, request a flush of the content region. A PageTicker
// replaces the whole flow.
func (wm *WindowManager) tickTarget(p Page) {
	d := wm.k.Display()
	d.SetClip(wm.content)
	defer d.RemoveClip()

	if t, ok := p.(PageTicker); ok {
		t.Tick(wm.content, wm)
		return
	}

	touch := wm.k.TouchState()
	for _, c := range p.Base().Controls() {
		c.ProcessTouch(touch)
	}
	if u, ok := p.(PageUpdater); ok {
		u.Update(wm)
	}
	p.Draw(d, wm.content, wm.theme)
	for _, c := range p.Base().Controls() {
		c.Draw(d, wm.theme)
	}
	wm.k.RequestFlush(wm.content)
}

// onSystemMessage presents warning-or-worse messages as a full-screen
// overlay of the last ten.
func (wm *WindowManager) onSystemMessage(name, text string) {
	wm.messages = append(wm.messages, name+": "+text)
	if len(wm.messages) > 10 {
		wm.messages = wm.messages[len(wm.messages)-10:]
	}

	b := wm.k.Display().Bounds()
	full := hal.Region{W: b.W, H: b.H}
	wm.theme.DrawStrings(wm.k.Display(), wm.messages, full, 1)
	wm.k.RequestFlush(full)
}
