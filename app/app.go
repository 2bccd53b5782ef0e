// Package app assembles a complete system: kernel, window manager, app
// manager and a pair of demo apps. Hosts and boards share this wiring and
// differ only in how the loop is driven.
package app

import (
	"time"

	"tact/apps"
	"tact/hal"
	"tact/kernel"
	"tact/ui"
)

// Config selects optional system features. The zero value boots offline
// with the kernel's default power timeouts.
type Config struct {
	Wifi         bool
	UseNTP       bool
	DimTimeout   time.Duration
	SleepTimeout time.Duration
}

// System bundles the assembled runtime pieces for callers that need more
// than the step function.
type System struct {
	K    *kernel.Kernel
	WM   *ui.WindowManager
	Apps *apps.AppManager
}

// NewSystem builds and boots the system on the given hardware.
func NewSystem(h hal.HAL, cfg Config) (*System, error) {
	k := kernel.New(h)
	installLogHandlers(k, h.Logger())

	wm, err := ui.NewWindowManager(k, ui.Config{SystrayVisible: true})
	if err != nil {
		return nil, err
	}

	mgr := apps.NewAppManager(wm)
	wm.AddSystrayAccessory(mgr.SwitcherAccessory(), ui.AccessoryTrailing)

	if err := mgr.AddApp(newClockApp(k), true); err != nil {
		return nil, err
	}
	if err := mgr.AddApp(newNotesApp(h.Buzzer()), false); err != nil {
		return nil, err
	}

	if err := k.Boot(kernel.Config{
		Wifi:         cfg.Wifi,
		UseNTP:       cfg.UseNTP,
		DimTimeout:   cfg.DimTimeout,
		SleepTimeout: cfg.SleepTimeout,
	}); err != nil {
		return nil, err
	}
	return &System{K: k, WM: wm, Apps: mgr}, nil
}

// Step runs one loop iteration. Task failures have already been posted as
// fatal messages by the kernel, so external drivers keep stepping.
func (s *System) Step() {
	_ = s.K.Step()
}

// New builds the default system and returns its step function, the shape the
// host runners expect.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig is New with explicit configuration. A construction failure
// is deferred into the returned step so the runner surfaces it.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return func() error {
		s.Step()
		return nil
	}
}

// Run builds the system and blocks in the kernel's own loop, the board
// entrypoint.
func Run(h hal.HAL, cfg Config) error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return err
	}
	s.K.Run()
	return nil
}

// installLogHandlers mirrors every system message onto the hardware logger.
func installLogHandlers(k *kernel.Kernel, log hal.Logger) {
	for _, sev := range []kernel.Severity{
		kernel.SeverityDebug,
		kernel.SeverityInfo,
		kernel.SeverityWarning,
		kernel.SeverityFatal,
	} {
		k.RegisterHandler(sev.String(), func(name, text string) {
			log.WriteLineString(name + ": " + text)
		})
	}
}
