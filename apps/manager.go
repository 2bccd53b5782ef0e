package apps

import (
	"errors"
	"fmt"

	"tact/kernel"
	"tact/ui"
)

var ErrAppNotFound = errors.New("app not found")

// AppManager layers multi-app switching on top of a WindowManager: each app
// owns a page set and a task list, and switching swaps the active app's
// contribution in and out of the kernel and window manager.
type AppManager struct {
	wm        *ui.WindowManager
	apps      []App
	current   App
	installed []*kernel.Task
}

// NewAppManager returns a manager driving the supplied window manager's
// page list.
func NewAppManager(wm *ui.WindowManager) *AppManager {
	return &AppManager{wm: wm}
}

// AddApp registers an app, optionally switching to it immediately.
func (m *AppManager) AddApp(app App, makeCurrent bool) error {
	m.apps = append(m.apps, app)
	m.wm.Kernel().Post(kernel.SeverityDebug,
		fmt.Sprintf("added app %q (current: %t)", app.Name(), makeCurrent))
	if makeCurrent {
		return m.SwitchTo(app)
	}
	return nil
}

// RemoveApp unregisters an app. Removing the current app uninstalls its
// tasks and pages and leaves no app current.
func (m *AppManager) RemoveApp(app App) error {
	for i, cur := range m.apps {
		if cur == app {
			if app == m.current {
				m.uninstallCurrent()
			}
			m.apps = append(m.apps[:i], m.apps[i+1:]...)
			return nil
		}
	}
	return ErrAppNotFound
}

// Apps returns the registered apps in registration order.
func (m *AppManager) Apps() []App {
	out := make([]App, len(m.apps))
	copy(out, m.apps)
	return out
}

// CurrentApp returns the active app, or nil before the first switch.
func (m *AppManager) CurrentApp() App { return m.current }

// SwitchTo makes an app current. The previous app's tasks are removed in
// reverse install order and its pages dropped before the new app's tasks
// are installed ahead of the window manager tick, then its pages added with
// the first current. Switching to the current app is a no-op.
func (m *AppManager) SwitchTo(app App) error {
	if !m.registered(app) {
		return fmt.Errorf("%w: %s", ErrAppNotFound, app.Name())
	}
	if app == m.current {
		return nil
	}

	pages := app.Pages()
	if len(pages) == 0 {
		return fmt.Errorf("app %q provided no pages", app.Name())
	}

	m.uninstallCurrent()

	k := m.wm.Kernel()
	for i, spec := range app.Tasks() {
		var (
			t   *kernel.Task
			err error
		)
		if spec.Suspend != nil {
			t, err = k.AddSuspendingTaskAt(i, spec.Suspend, spec.Config)
		} else {
			t, err = k.AddTaskAt(i, spec.Fn, spec.Config)
		}
		if err != nil {
			m.uninstallCurrent()
			return fmt.Errorf("installing %q task %d: %w", app.Name(), i, err)
		}
		m.installed = append(m.installed, t)
	}

	for i, p := range pages {
		if err := m.wm.AddPage(p, i == 0); err != nil {
			m.uninstallCurrent()
			return fmt.Errorf("installing %q page %d: %w", app.Name(), i, err)
		}
	}

	m.current = app
	k.Post(kernel.SeverityInfo, fmt.Sprintf("switched to app %q", app.Name()))
	return nil
}

func (m *AppManager) registered(app App) bool {
	for _, cur := range m.apps {
		if cur == app {
			return true
		}
	}
	return false
}

func (m *AppManager) uninstallCurrent() {
	k := m.wm.Kernel()
	for i := len(m.installed) - 1; i >= 0; i-- {
		_ = k.RemoveTask(m.installed[i])
	}
	m.installed = nil
	m.wm.RemoveAllPages()
	m.current = nil
}
